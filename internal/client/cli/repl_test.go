package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) isLoggedIn() bool                        { return s.loggedIn }
func (s *stubExec) Register(ctx context.Context) error      { return s.record("register") }
func (s *stubExec) Login(ctx context.Context) error         { return s.record("login") }
func (s *stubExec) Logout(ctx context.Context) error        { return s.record("logout") }
func (s *stubExec) AddComment(ctx context.Context) error    { return s.record("comment") }
func (s *stubExec) GlobalComments(ctx context.Context) error { return s.record("comments") }
func (s *stubExec) MyComments(ctx context.Context) error    { return s.record("mine") }
func (s *stubExec) AllMyComments(ctx context.Context) error { return s.record("all") }
func (s *stubExec) EditComment(ctx context.Context) error   { return s.record("edit") }
func (s *stubExec) DeleteComment(ctx context.Context) error { return s.record("delete") }
func (s *stubExec) SetImage(ctx context.Context) error      { return s.record("setimg") }
func (s *stubExec) ShowImage(ctx context.Context) error     { return s.record("showimg") }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })

	lines := &[]string{}
	printlnFn = func(a ...any) (int, error) {
		*lines = append(*lines, fmt.Sprintln(a...))
		return 0, nil
	}
	return lines
}

func runScript(t *testing.T, s *stubExec, script string) []string {
	t.Helper()
	lines := captureOutput(t)
	reader := bufio.NewReader(strings.NewReader(script))
	runREPL(context.Background(), s, func() string { return "" }, reader)
	return *lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	s := &stubExec{}
	runScript(t, s, "register\nlogin\ncomment\ncomments\nmine\nall\nedit\ndelete\nsetimg\nshowimg\nlogout\nexit\n")

	assert.Equal(t, []string{
		"register", "login", "comment", "comments", "mine", "all",
		"edit", "delete", "setimg", "showimg", "logout",
	}, s.calls)
}

func TestRunREPL_UnknownCommand(t *testing.T) {
	s := &stubExec{}
	out := runScript(t, s, "frobnicate\nexit\n")

	require.Empty(t, s.calls)
	joined := strings.Join(out, "")
	assert.Contains(t, joined, "Unknown command")
}

func TestRunREPL_BlankLinesSkipped(t *testing.T) {
	s := &stubExec{}
	runScript(t, s, "\n\nlogin\nquit\n")

	assert.Equal(t, []string{"login"}, s.calls)
}

func TestRunREPL_HelpDependsOnLoginState(t *testing.T) {
	out := runScript(t, &stubExec{loggedIn: false}, "help\nexit\n")
	assert.Contains(t, strings.Join(out, ""), "register, login")

	out = runScript(t, &stubExec{loggedIn: true}, "help\nexit\n")
	assert.Contains(t, strings.Join(out, ""), "logout")
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	s := &stubExec{}
	runScript(t, s, "login\n") // no exit command; reader hits EOF
	assert.Equal(t, []string{"login"}, s.calls)
}
