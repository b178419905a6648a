// Package exitcode defines the process exit statuses a job run can end with.
//
// The integer values are a stable external contract: wrapper scripts and CI
// systems branch on them, so they must never be renumbered.
package exitcode

// Code is the terminal outcome of one job run.
type Code int

const (
	// AllOK means every executed test passed.
	AllOK Code = 0
	// TestsFail means the job completed but at least one test did not pass.
	TestsFail Code = 1
	// JobFail means a recognized job-level failure stopped the run.
	JobFail Code = 2
	// Crash means an unclassified failure escaped to the top boundary.
	Crash Code = 3
)

// String returns the symbolic name of the code.
func (c Code) String() string {
	switch c {
	case AllOK:
		return "ALL_OK"
	case TestsFail:
		return "TESTS_FAIL"
	case JobFail:
		return "JOB_FAIL"
	case Crash:
		return "CRASH"
	}
	return "UNKNOWN"
}
