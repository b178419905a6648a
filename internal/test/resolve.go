package test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/suiterun/internal/params"
)

// Resolve maps one parameter set to exactly one instance. It never fails for
// a well-formed set: every discovery problem is downgraded to a missing-test
// instance that reports the failure when run.
func Resolve(p *params.Set, job JobInfo) *Instance {
	prefix := params.Prefix(p.Shortname())

	// Filesystem existence always wins, even over a same-named discoverable
	// test. A path-based instance carries no params beyond the path itself.
	if abs, err := filepath.Abs(prefix); err == nil {
		if _, err := os.Stat(abs); err == nil {
			return &Instance{
				kind:    PathKind,
				name:    prefix,
				path:    abs,
				baseLog: job.LogDir(),
				job:     job,
			}
		}
	}

	inst := &Instance{
		name:    prefix,
		baseLog: job.LogDir(),
		params:  p,
		job:     job,
	}

	path, err := discover(job.TestDir(), prefix)
	if err != nil {
		inst.kind = MissingKind
		inst.reason = err.Error()
		return inst
	}
	inst.kind = DiscoveredKind
	inst.path = path
	return inst
}

// discover locates a runnable implementation for prefix under the test root.
// Three steps must all succeed: a directory named after the prefix, an entry
// inside it also named after the prefix, and that entry being a regular
// executable file.
func discover(testDir, prefix string) (string, error) {
	dir := filepath.Join(testDir, prefix)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("no test directory %s", dir)
	}

	entry := filepath.Join(dir, prefix)
	info, err = os.Stat(entry)
	if err != nil {
		return "", fmt.Errorf("no entry %s", entry)
	}
	if !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
		return "", fmt.Errorf("entry %s is not an executable implementation", entry)
	}
	return entry, nil
}
