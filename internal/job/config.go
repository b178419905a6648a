package job

import (
	"context"
	"io"

	"github.com/vk/suiterun/internal/datadir"
	"github.com/vk/suiterun/internal/params"
	"github.com/vk/suiterun/internal/result"
)

// RunnerFunc executes a batch of parameter sets against a result tracker and
// returns the names of the tests that did not pass. It is the replaceable
// execution strategy of a job; the built-in one runs strictly sequentially.
type RunnerFunc func(ctx context.Context, sets []*params.Set, tr result.TestResult) []string

// Config carries one invocation's options. The zero value is usable: it
// produces a debug-level job with generated identity, default directories and
// the built-in runner and result tracker.
type Config struct {
	// UniqueID overrides the generated job identifier.
	UniqueID string
	// LogLevel is the job-wide verbosity: debug, info, warn or error.
	// Empty means debug.
	LogLevel string
	// LogFormat selects the debug-log encoding: text or json. Empty means
	// text.
	LogFormat string
	// URLs is the default whitespace-separated identifier list, used when
	// Run is called without explicit identifiers.
	URLs string
	// MultiplexFile is the default parameter-multiplication source, used
	// when Run is called without an explicit one.
	MultiplexFile string
	// KeepTmpFiles suppresses the end-of-run cleanup of temporary
	// artifacts.
	KeepTmpFiles bool

	// Settings overrides the directory layout. Nil loads the user's
	// settings file.
	Settings *datadir.Settings

	// Stdout and Stderr replace the process streams, mainly for tests.
	Stdout io.Writer
	Stderr io.Writer

	// TestRunner replaces the built-in sequential execution loop.
	TestRunner RunnerFunc
	// TestResult replaces the built-in human result tracker.
	TestResult result.Factory
}
