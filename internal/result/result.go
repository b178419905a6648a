// Package result defines the result-tracking collaborator a job feeds while
// it runs, and the human-readable implementation used by default.
package result

import (
	"time"

	"github.com/vk/suiterun/internal/output"
	"github.com/vk/suiterun/internal/status"
)

// Test is the view of a finished test instance a result tracker needs.
type Test interface {
	Name() string
	Status() string
	LogDir() string
}

// Seed carries the job metadata a tracker is constructed with.
type Seed struct {
	Total    int
	JobID    string
	DebugLog string
}

// TestResult is notified once before the batch, once per finished test, and
// once after the batch.
type TestResult interface {
	StartTests()
	CheckTest(t Test)
	EndTests()
}

// Factory builds a tracker from the output manager and the job seed. It is
// the replaceable construction hook for alternative reporting strategies.
type Factory func(out *output.Manager, seed *Seed) TestResult

// HumanResult prints a job header, one line per finished test, and a totals
// footer. It is the default tracker.
type HumanResult struct {
	out   *output.Manager
	seed  *Seed
	began time.Time

	index   int
	passed  int
	failed  int
	errors  int
	skipped int
	warned  int
}

// NewHumanResult builds the default human tracker. Its signature matches
// Factory.
func NewHumanResult(out *output.Manager, seed *Seed) TestResult {
	return &HumanResult{out: out, seed: seed}
}

// StartTests announces the job and its size.
func (r *HumanResult) StartTests() {
	r.began = time.Now()
	r.out.Header("JOB ID     : %s", r.seed.JobID)
	r.out.Header("JOB LOG    : %s", r.seed.DebugLog)
	r.out.Header("TESTS      : %d", r.seed.Total)
}

// CheckTest prints the per-test verdict line and updates the totals.
func (r *HumanResult) CheckTest(t Test) {
	r.index++
	switch st := t.Status(); st {
	case status.Pass:
		r.passed++
	case status.Error, status.Abort, status.Alert:
		r.errors++
	case status.TestNA:
		r.skipped++
	case status.Warn:
		r.warned++
	default:
		r.failed++
	}
	r.out.Info("(%d/%d) %s: %s", r.index, r.seed.Total, t.Name(), r.out.StatusLabel(t.Status()))
}

// EndTests prints the totals footer.
func (r *HumanResult) EndTests() {
	r.out.Header("PASS       : %d", r.passed)
	r.out.Header("ERROR      : %d", r.errors)
	r.out.Header("FAIL       : %d", r.failed)
	r.out.Header("SKIP       : %d", r.skipped)
	r.out.Header("WARN       : %d", r.warned)
	r.out.Header("TIME       : %.2f s", time.Since(r.began).Seconds())
}
