package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	AddComment(ctx context.Context) error
	GlobalComments(ctx context.Context) error
	MyComments(ctx context.Context) error
	AllMyComments(ctx context.Context) error
	EditComment(ctx context.Context) error
	DeleteComment(ctx context.Context) error
	SetImage(ctx context.Context) error
	ShowImage(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the GameVault CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
// Command handlers also read follow-up input through the same reader, so
// there is exactly one buffered reader over stdin.
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gv %s> ", statusFn()))
		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				return
			}
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: comment, comments, mine, all, edit, delete, setimg, showimg, logout, exit")
			} else {
				printlnFn("Available commands: register, login, comments, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "comment":
			_ = a.AddComment(ctx)

		case "comments":
			_ = a.GlobalComments(ctx)

		case "mine":
			_ = a.MyComments(ctx)

		case "all":
			_ = a.AllMyComments(ctx)

		case "edit":
			_ = a.EditComment(ctx)

		case "delete":
			_ = a.DeleteComment(ctx)

		case "setimg":
			_ = a.SetImage(ctx)

		case "showimg":
			_ = a.ShowImage(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if readErr != nil {
			return
		}
	}
}
