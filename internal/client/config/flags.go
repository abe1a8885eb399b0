package config

import (
	"flag"
	"os"
	"time"

	"github.com/gamevault-app/gamevault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-s string   path (SQLite DSN) of the local store
//	-b string   backend: local or remote
//	-r string   base URL of the hosted backend
//	-t int      remote request timeout in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-b", "-r", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "path of the local store")
	backend := fs.String("b", string(cfg.Backend), "backend: local or remote")
	fs.StringVar(&cfg.RemoteBaseURL, "r", cfg.RemoteBaseURL, "base URL of the hosted backend")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "remote request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Backend = Backend(*backend)
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
