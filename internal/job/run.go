package job

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/vk/suiterun/internal/ctxlog"
	"github.com/vk/suiterun/internal/datadir"
	"github.com/vk/suiterun/internal/exitcode"
	"github.com/vk/suiterun/internal/mux"
	"github.com/vk/suiterun/internal/params"
	"github.com/vk/suiterun/internal/result"
	"github.com/vk/suiterun/internal/status"
	"github.com/vk/suiterun/internal/sysinfo"
	"github.com/vk/suiterun/internal/test"
)

// newIssueLink is where crash reports go.
const newIssueLink = "https://github.com/vk/suiterun/issues/new"

// Run executes the job to completion and returns its exit code. It never
// panics and never returns an error: this is the top boundary where every
// failure is classified. A *Error produces JOB_FAIL with the failure's own
// status recorded on the job; any other failure, including a panic below,
// produces CRASH with a stack dump and a bug-report request.
//
// urls may be nil to use the configured default identifier list;
// multiplexFile may be empty to use the configured default source.
func (j *Job) Run(ctx context.Context, urls []string, multiplexFile string) (code exitcode.Code) {
	ctx = ctxlog.WithLogger(ctx, j.logger)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if err, ok := r.(error); ok {
			var jobErr *Error
			if errors.As(err, &jobErr) {
				code = j.jobFail(jobErr)
				return
			}
		}
		code = j.crash(r, stackLines(3))
	}()

	code, err := j.run(ctx, urls, multiplexFile)
	if err == nil {
		return code
	}

	var jobErr *Error
	if errors.As(err, &jobErr) {
		return j.jobFail(jobErr)
	}
	return j.crash(err, stackLines(2))
}

// jobFail records the failure's own target status on the job and emits the
// single failure header.
func (j *Job) jobFail(jobErr *Error) exitcode.Code {
	j.status = jobErr.Status
	j.out.LogFailHeader("suiterun job failed: %s: %s", errorClass(jobErr), jobErr.Message)
	return exitcode.JobFail
}

// crash records the ERROR terminal status and emits the full diagnostic
// block: failure header, stack, and the bug-report instructions.
func (j *Job) crash(cause any, stack []string) exitcode.Code {
	j.status = status.JobError
	j.out.LogFailHeader("suiterun crashed: %s: %v", errorClass(cause), cause)
	for _, line := range stack {
		j.out.Error(line)
	}
	j.out.LogFailHeader("Please include the traceback info and command line used on your bug report")
	j.out.LogFailHeader("Report bugs visiting %s", newIssueLink)
	return exitcode.Crash
}

// stackLines captures the current call stack, skipping the classifier's own
// frames, one rendered line per frame.
func stackLines(skip int) []string {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip+1, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var lines []string
	for {
		frame, more := frames.Next()
		lines = append(lines, fmt.Sprintf("  %s\n    %s:%d", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}
	return lines
}

// run is the unclassified job body: normalize the inputs, expand the
// parameter sets, run the batch and translate the aggregate into an exit
// code. Failures escape to Run untouched.
func (j *Job) run(ctx context.Context, urls []string, multiplexFile string) (exitcode.Code, error) {
	logger := ctxlog.FromContext(ctx)

	urls, multiplexFile, err := j.normalize(urls, multiplexFile)
	if err != nil {
		return 0, err
	}

	var m params.Multiplexer
	if multiplexFile != "" {
		parser, err := mux.New(multiplexFile)
		if err != nil {
			return 0, err
		}
		m = parser
	}

	sets := params.Build(urls, m)
	logger.Debug("Parameter sets built.", "count", len(sets), "urls", urls, "multiplex_file", multiplexFile)

	if err := sysinfo.Write(ctx, j.logDir); err != nil {
		// The snapshot is informational; a probe failure must not touch
		// the verdict.
		logger.Warn("System snapshot failed.", "error", err)
	}

	tr := j.makeTestResult(len(sets))
	runner := j.makeTestRunner()

	failures := runner(ctx, sets, tr)

	// A terminal status set by a lower layer wins over the controller's
	// own PASS.
	if j.status == status.JobRunning {
		j.status = status.JobPass
	}

	if !j.cfg.KeepTmpFiles && !j.settings.KeepTmpFiles {
		if err := datadir.CleanTmpFiles(); err != nil {
			logger.Warn("Tmp cleanup failed.", "error", err)
		}
	}

	if len(failures) > 0 {
		logger.Debug("Job finished with failing tests.", "failures", failures)
		return exitcode.TestsFail, nil
	}
	return exitcode.AllOK, nil
}

// normalize applies the configured defaults and resolves the multiplex file
// against the working directory.
func (j *Job) normalize(urls []string, multiplexFile string) ([]string, string, error) {
	if urls == nil && j.cfg.URLs != "" {
		urls = []string{j.cfg.URLs}
	}
	// Callers may hand over pre-split identifiers or whitespace-separated
	// strings; both forms normalize to one identifier per element.
	var split []string
	for _, u := range urls {
		split = append(split, strings.Fields(u)...)
	}
	urls = split
	if multiplexFile == "" {
		multiplexFile = j.cfg.MultiplexFile
	}
	if multiplexFile != "" {
		abs, err := filepath.Abs(multiplexFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve multiplex file %s: %w", multiplexFile, err)
		}
		multiplexFile = abs
	}
	return urls, multiplexFile, nil
}

// makeTestResult builds the result tracker, honoring the configured
// override, seeded with the batch size and the job log metadata.
func (j *Job) makeTestResult(total int) result.TestResult {
	factory := j.cfg.TestResult
	if factory == nil {
		factory = result.NewHumanResult
	}
	return factory(j.out, &result.Seed{
		Total:    total,
		JobID:    j.uniqueID,
		DebugLog: j.debugLog,
	})
}

// makeTestRunner selects the execution strategy, honoring the configured
// override.
func (j *Job) makeTestRunner() RunnerFunc {
	if j.cfg.TestRunner != nil {
		return j.cfg.TestRunner
	}
	return j.runTests
}

// runTests is the built-in execution loop: strictly sequential, in input
// order, with no fail-fast. Every set is resolved and executed; the names of
// the instances whose final status does not map to passing are returned.
func (j *Job) runTests(ctx context.Context, sets []*params.Set, tr result.TestResult) []string {
	var failures []string
	tr.StartTests()
	for _, set := range sets {
		inst := test.Resolve(set, j)
		inst.Run(ctx)
		tr.CheckTest(inst)
		if !status.Passing(inst.Status()) {
			failures = append(failures, inst.Name())
		}
	}
	tr.EndTests()
	return failures
}
