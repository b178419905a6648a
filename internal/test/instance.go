package test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/vk/suiterun/internal/ctxlog"
	"github.com/vk/suiterun/internal/params"
	"github.com/vk/suiterun/internal/status"
)

// LogName is the file an instance's captured output is written to inside its
// log directory.
const LogName = "test.log"

// Kind tags the three resolution outcomes.
type Kind int

const (
	// PathKind backs onto an existing filesystem path.
	PathKind Kind = iota
	// DiscoveredKind backs onto an executable found under the test root.
	DiscoveredKind
	// MissingKind is the fallback used when discovery fails.
	MissingKind
)

// String returns the lowercase tag of the kind.
func (k Kind) String() string {
	switch k {
	case PathKind:
		return "path"
	case DiscoveredKind:
		return "discovered"
	case MissingKind:
		return "missing"
	}
	return "unknown"
}

// JobInfo is the read-only view of the owning job an instance carries. The
// instance never mutates the job.
type JobInfo interface {
	ID() string
	LogDir() string
	TestDir() string
}

// Instance is one resolved, runnable test bound to one parameter set. After
// Run returns, Status is authoritative.
type Instance struct {
	kind    Kind
	name    string
	path    string // executable for path/discovered kinds
	baseLog string
	params  *params.Set // nil for path-based instances
	job     JobInfo
	reason  string // why discovery failed, for missing instances

	status string
	logDir string
}

// Name returns the instance's name: the identifier prefix it was resolved
// from.
func (t *Instance) Name() string { return t.name }

// Status returns the instance's final status; empty until Run has returned.
func (t *Instance) Status() string { return t.status }

// Kind returns the resolution outcome tag.
func (t *Instance) Kind() Kind { return t.kind }

// Path returns the executable the instance is bound to, if any.
func (t *Instance) Path() string { return t.path }

// Params returns the originating parameter set; nil for path-based
// instances.
func (t *Instance) Params() *params.Set { return t.params }

// LogDir returns the instance's own log directory; empty until Run has
// created it.
func (t *Instance) LogDir() string { return t.logDir }

// Run executes the instance to completion and records the final status on
// the instance itself. It never returns an error: execution problems are
// statuses, not errors.
func (t *Instance) Run(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)

	dir, err := makeLogDir(t.baseLog, t.name)
	if err != nil {
		logger.Error("Failed to create test log directory.", "test", t.name, "error", err)
		t.status = status.Error
		return
	}
	t.logDir = dir

	logFile, err := os.Create(filepath.Join(dir, LogName))
	if err != nil {
		logger.Error("Failed to create test log.", "test", t.name, "error", err)
		t.status = status.Error
		return
	}
	defer logFile.Close()

	if t.kind == MissingKind {
		fmt.Fprintf(logFile, "test %q could not be found: %s\n", t.name, t.reason)
		t.status = status.Error
		return
	}

	cmd := exec.Command(t.path)
	cmd.Dir = dir
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Env = t.environ()

	logger.Debug("Executing test.", "test", t.name, "path", t.path, "logdir", dir)
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			fmt.Fprintf(logFile, "test exited with failure: %v\n", err)
			t.status = status.Fail
		} else {
			fmt.Fprintf(logFile, "test could not be executed: %v\n", err)
			t.status = status.Error
		}
		return
	}
	t.status = status.Pass
}

// environ builds the subprocess environment: the job identity, the test's
// own log directory, and one SUITERUN_PARAM_* variable per parameter.
func (t *Instance) environ() []string {
	env := os.Environ()
	if t.job != nil {
		env = append(env, "SUITERUN_JOB_ID="+t.job.ID())
	}
	env = append(env, "SUITERUN_TEST_LOGDIR="+t.logDir)
	if t.params != nil {
		for _, key := range t.params.Keys() {
			val, _ := t.params.Get(key)
			env = append(env, "SUITERUN_PARAM_"+envKey(key)+"="+val)
		}
	}
	return env
}

// envKey maps a parameter key to an environment variable suffix.
func envKey(key string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, key)
	return mapped
}

// makeLogDir creates a fresh directory for one execution under base, named
// after the test with a numeric tag when the bare name is already taken.
func makeLogDir(base, name string) (string, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", err
	}
	for i := 0; ; i++ {
		cand := filepath.Join(base, name)
		if i > 0 {
			cand = filepath.Join(base, fmt.Sprintf("%s.%d", name, i))
		}
		err := os.Mkdir(cand, 0o755)
		if err == nil {
			return cand, nil
		}
		if !os.IsExist(err) {
			return "", err
		}
	}
}
