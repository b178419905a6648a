// Package status holds the test status vocabulary and the table deciding
// which statuses count as passing, plus the job lifecycle statuses.
package status

// Test statuses a test instance can end with. A test's status field is
// authoritative once its run entry point has returned.
const (
	Pass   = "PASS"
	Fail   = "FAIL"
	Error  = "ERROR"
	Abort  = "ABORT"
	Alert  = "ALERT"
	Warn   = "WARN"
	TestNA = "TEST_NA"
	Start  = "START"
)

// Job lifecycle statuses. A job starts RUNNING and transitions exactly once
// to a terminal value before it is discarded.
const (
	JobRunning = "RUNNING"
	JobPass    = "PASS"
	JobFail    = "FAIL"
	JobError   = "ERROR"
)

// mapping decides whether a test status counts as passing.
var mapping = map[string]bool{
	Pass:   true,
	TestNA: true,
	Start:  true,
	Warn:   false,
	Fail:   false,
	Error:  false,
	Abort:  false,
	Alert:  false,
}

// Passing reports whether s is a passing test status. Unknown statuses are
// treated as not passing.
func Passing(s string) bool {
	return mapping[s]
}
