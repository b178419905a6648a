package result

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/suiterun/internal/output"
	"github.com/vk/suiterun/internal/status"
)

// fakeTest is a finished instance as the tracker sees it.
type fakeTest struct {
	name   string
	status string
}

func (f fakeTest) Name() string   { return f.name }
func (f fakeTest) Status() string { return f.status }
func (f fakeTest) LogDir() string { return "" }

func TestHumanResult_FullLifecycle(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	out := output.New(stdout, &bytes.Buffer{})
	tr := NewHumanResult(out, &Seed{
		Total:    3,
		JobID:    "0689edfa",
		DebugLog: "/tmp/job/debug.log",
	})

	tr.StartTests()
	tr.CheckTest(fakeTest{name: "sleeptest", status: status.Pass})
	tr.CheckTest(fakeTest{name: "failtest", status: status.Fail})
	tr.CheckTest(fakeTest{name: "absenttest", status: status.Error})
	tr.EndTests()

	text := stdout.String()
	require.Contains(t, text, "JOB ID     : 0689edfa")
	require.Contains(t, text, "JOB LOG    : /tmp/job/debug.log")
	require.Contains(t, text, "TESTS      : 3")
	assert.Contains(t, text, "(1/3) sleeptest: PASS")
	assert.Contains(t, text, "(2/3) failtest: FAIL")
	assert.Contains(t, text, "(3/3) absenttest: ERROR")
	assert.Contains(t, text, "PASS       : 1")
	assert.Contains(t, text, "FAIL       : 1")
	assert.Contains(t, text, "ERROR      : 1")
	assert.Contains(t, text, "SKIP       : 0")
}

func TestHumanResult_CountsSkipsAndWarnings(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	out := output.New(stdout, &bytes.Buffer{})
	tr := NewHumanResult(out, &Seed{Total: 2, JobID: "x", DebugLog: "y"})

	tr.StartTests()
	tr.CheckTest(fakeTest{name: "natest", status: status.TestNA})
	tr.CheckTest(fakeTest{name: "warntest", status: status.Warn})
	tr.EndTests()

	text := stdout.String()
	assert.Contains(t, text, "SKIP       : 1")
	assert.Contains(t, text, "WARN       : 1")
	assert.Contains(t, text, "FAIL       : 0")
}
