package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"github.com/vk/suiterun/internal/datadir"
	"github.com/vk/suiterun/internal/output"
	"github.com/vk/suiterun/internal/params"
	"github.com/vk/suiterun/internal/test"
)

// listCmd implements subcommands.Command to show how identifiers resolve.
type listCmd struct {
	stdout io.Writer
	stderr io.Writer
}

var _ = subcommands.Command(&listCmd{})

// NewListCmd builds the list subcommand writing to the given streams.
func NewListCmd(stdout, stderr io.Writer) subcommands.Command {
	return &listCmd{stdout: stdout, stderr: stderr}
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "show how test identifiers resolve, without running them" }
func (*listCmd) Usage() string {
	return `Usage: suiterun list <test>...

Description:
    Resolves each identifier the same way run would and prints the verdict:
    the executable path for a resolvable test, or MISSING with the reason.

`
}

func (*listCmd) SetFlags(*flag.FlagSet) {}

func (l *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprint(l.stderr, l.Usage())
		return subcommands.ExitUsageError
	}

	settings, err := datadir.LoadSettings()
	if err != nil {
		fmt.Fprintln(l.stderr, err)
		return subcommands.ExitFailure
	}

	out := output.New(l.stdout, l.stderr)
	missing := false
	for _, id := range f.Args() {
		inst := test.Resolve(params.Bare(id), resolveScope{testDir: settings.TestDir})
		switch inst.Kind() {
		case test.MissingKind:
			missing = true
			out.Info("%s: %s", inst.Name(), out.StatusLabel("MISSING"))
		default:
			out.Info("%s: %s %s", inst.Name(), inst.Kind(), out.Muted(inst.Path()))
		}
	}
	if missing {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// resolveScope is the minimal job view resolution needs; listing has no job
// and therefore no identity or log directory.
type resolveScope struct {
	testDir string
}

func (resolveScope) ID() string { return "" }

func (resolveScope) LogDir() string { return "" }

func (s resolveScope) TestDir() string { return s.testDir }
