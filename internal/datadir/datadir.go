// Package datadir owns the on-disk layout of the tool: where job results,
// discoverable tests and temporary files live. Defaults can be overridden by
// an optional YAML settings file.
package datadir

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigEnv names the environment variable overriding the settings file path.
const ConfigEnv = "SUITERUN_CONFIG"

// Settings configures the directory layout. Zero fields fall back to the
// defaults derived from the user's home directory.
type Settings struct {
	BaseDir      string `yaml:"base_dir"`
	LogsDir      string `yaml:"logs_dir"`
	TestDir      string `yaml:"test_dir"`
	TmpBaseDir   string `yaml:"tmp_dir"`
	KeepTmpFiles bool   `yaml:"keep_tmp_files"`
}

// LoadSettings reads the settings file from $SUITERUN_CONFIG, falling back to
// ~/.config/suiterun/suiterun.yaml. A missing file is not an error; the
// returned settings then carry only defaults.
func LoadSettings() (*Settings, error) {
	path := os.Getenv(ConfigEnv)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return defaults(""), nil
		}
		path = filepath.Join(home, ".config", "suiterun", "suiterun.yaml")
	}

	s := &Settings{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults(""), nil
		}
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return s.WithDefaults(), nil
}

// defaults returns the directory layout rooted at base, or at ~/.suiterun
// when base is empty.
func defaults(base string) *Settings {
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		base = filepath.Join(home, ".suiterun")
	}
	return (&Settings{BaseDir: base}).WithDefaults()
}

// WithDefaults fills every unset field from the base directory. It is
// idempotent.
func (s *Settings) WithDefaults() *Settings {
	if s.BaseDir == "" {
		return defaults("").merge(s)
	}
	if s.LogsDir == "" {
		s.LogsDir = filepath.Join(s.BaseDir, "job-results")
	}
	if s.TestDir == "" {
		s.TestDir = filepath.Join(s.BaseDir, "tests")
	}
	if s.TmpBaseDir == "" {
		s.TmpBaseDir = os.TempDir()
	}
	return s
}

// merge copies the explicitly set fields of other on top of s.
func (s *Settings) merge(other *Settings) *Settings {
	if other.LogsDir != "" {
		s.LogsDir = other.LogsDir
	}
	if other.TestDir != "" {
		s.TestDir = other.TestDir
	}
	if other.TmpBaseDir != "" {
		s.TmpBaseDir = other.TmpBaseDir
	}
	s.KeepTmpFiles = other.KeepTmpFiles
	return s
}

// JobLogsDir creates and returns the log directory for one job run, named
// after the start time and the short form of the job id. It also points the
// "latest" symlink in the logs base dir at the new directory; symlink
// failures are ignored since the directory itself is what matters.
func (s *Settings) JobLogsDir(start time.Time, shortID string) (string, error) {
	name := fmt.Sprintf("job-%s-%s", start.Format("2006-01-02T15.04.05"), shortID)
	dir := filepath.Join(s.LogsDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create job log directory: %w", err)
	}

	link := filepath.Join(s.LogsDir, "latest")
	os.Remove(link)
	os.Symlink(name, link)

	return dir, nil
}

// tmpDir is the per-process scratch directory, created on first use.
var tmpDir string

// TmpDir returns the process-wide scratch directory, creating it on first
// call under the configured tmp base.
func (s *Settings) TmpDir() (string, error) {
	if tmpDir != "" {
		return tmpDir, nil
	}
	dir, err := os.MkdirTemp(s.TmpBaseDir, "suiterun-tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create tmp directory: %w", err)
	}
	tmpDir = dir
	return tmpDir, nil
}

// CleanTmpFiles removes the scratch directory created by TmpDir, if any.
func CleanTmpFiles() error {
	if tmpDir == "" {
		return nil
	}
	err := os.RemoveAll(tmpDir)
	tmpDir = ""
	return err
}
