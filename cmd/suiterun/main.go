// Package main implements the suiterun executable, used to run suites of
// system-level tests and report a single machine-readable verdict.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"github.com/vk/suiterun/internal/cli"
)

// doMain is the body of the program, separated so its deferred functions run
// before os.Exit.
func doMain() int {
	// Until a job configures its own logger, only warnings reach the console.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(cli.NewRunCmd(os.Stdout, os.Stderr), "")
	subcommands.Register(cli.NewListCmd(os.Stdout, os.Stderr), "")

	flag.Parse()

	return int(subcommands.Execute(context.Background()))
}

func main() {
	os.Exit(doMain())
}
