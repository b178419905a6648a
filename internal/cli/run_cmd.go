package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/google/subcommands"

	"github.com/vk/suiterun/internal/exitcode"
	"github.com/vk/suiterun/internal/job"
)

// runCmd implements subcommands.Command to execute a batch of tests.
type runCmd struct {
	stdout io.Writer
	stderr io.Writer

	uniqueID      string
	logLevel      string
	logFormat     string
	url           string
	multiplexFile string
	keepTmpFiles  bool
}

var _ = subcommands.Command(&runCmd{})

// NewRunCmd builds the run subcommand writing to the given streams.
func NewRunCmd(stdout, stderr io.Writer) subcommands.Command {
	return &runCmd{stdout: stdout, stderr: stderr}
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run tests" }
func (*runCmd) Usage() string {
	return `Usage: suiterun run [flag]... [test]...

Description:
    Resolves each test identifier and runs the tests strictly in the order
    given, then exits with 0 (all passed), 1 (some tests failed), 2 (the job
    itself failed) or 3 (suiterun crashed).

    A test identifier names either an existing file to execute directly, or a
    test discoverable under the test root. With -multiplex-file, identifiers
    expand into one run per matching parameter variant.

Flag:
`
}

func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.uniqueID, "unique-id", "", "override the generated job identifier")
	f.StringVar(&r.logLevel, "log-level", "debug", "debug log verbosity: debug, info, warn or error")
	f.StringVar(&r.logFormat, "log-format", "text", "debug log format: text or json")
	f.StringVar(&r.url, "url", "", "whitespace-separated test list, used when no tests are given as arguments")
	f.StringVar(&r.multiplexFile, "multiplex-file", "", "path to the parameter-multiplication file")
	f.BoolVar(&r.keepTmpFiles, "keep-tmp-files", false, "do not clean temporary artifacts after the run")
}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := validateChoice("log-level", r.logLevel, "debug", "info", "warn", "error"); err != nil {
		fmt.Fprintln(r.stderr, err)
		return subcommands.ExitUsageError
	}
	if err := validateChoice("log-format", r.logFormat, "text", "json"); err != nil {
		fmt.Fprintln(r.stderr, err)
		return subcommands.ExitUsageError
	}

	j, err := job.New(&job.Config{
		UniqueID:      r.uniqueID,
		LogLevel:      r.logLevel,
		LogFormat:     r.logFormat,
		URLs:          r.url,
		MultiplexFile: r.multiplexFile,
		KeepTmpFiles:  r.keepTmpFiles,
		Stdout:        r.stdout,
		Stderr:        r.stderr,
	})
	if err != nil {
		// The job could not even be set up; there is nothing to classify.
		fmt.Fprintf(r.stderr, "suiterun job failed: %v\n", err)
		return subcommands.ExitStatus(exitcode.JobFail)
	}
	defer j.Close()

	var urls []string
	if f.NArg() > 0 {
		urls = f.Args()
	}
	return subcommands.ExitStatus(j.Run(ctx, urls, ""))
}

// validateChoice rejects a flag value outside its closed set.
func validateChoice(name, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s: must be one of %s", name, strings.Join(allowed, ", "))
}
