package datadir

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDefaults_FillsLayoutFromBaseDir(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	s := (&Settings{BaseDir: base}).WithDefaults()

	assert.Equal(t, filepath.Join(base, "job-results"), s.LogsDir)
	assert.Equal(t, filepath.Join(base, "tests"), s.TestDir)
	assert.NotEmpty(t, s.TmpBaseDir)
}

func TestWithDefaults_KeepsExplicitFields(t *testing.T) {
	t.Parallel()

	s := (&Settings{
		BaseDir: t.TempDir(),
		TestDir: "/opt/tests",
	}).WithDefaults()

	assert.Equal(t, "/opt/tests", s.TestDir)
}

func TestLoadSettings_ReadsFileFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suiterun.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"base_dir: /srv/suiterun\nkeep_tmp_files: true\n",
	), 0o644))
	t.Setenv(ConfigEnv, path)

	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "/srv/suiterun", s.BaseDir)
	assert.Equal(t, filepath.Join("/srv/suiterun", "job-results"), s.LogsDir)
	assert.True(t, s.KeepTmpFiles)
}

func TestLoadSettings_MissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv(ConfigEnv, filepath.Join(t.TempDir(), "absent.yaml"))

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.NotEmpty(t, s.LogsDir)
	assert.NotEmpty(t, s.TestDir)
}

func TestLoadSettings_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suiterun.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_dir: [broken"), 0o644))
	t.Setenv(ConfigEnv, path)

	_, err := LoadSettings()
	require.Error(t, err)
}

func TestJobLogsDir_CreatesDirAndLatestSymlink(t *testing.T) {
	t.Parallel()

	s := (&Settings{BaseDir: t.TempDir()}).WithDefaults()
	start := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)

	dir, err := s.JobLogsDir(start, "deadbeef")
	require.NoError(t, err)

	assert.DirExists(t, dir)
	assert.Equal(t, "job-2026-08-29T10.30.00-deadbeef", filepath.Base(dir))

	target, err := os.Readlink(filepath.Join(s.LogsDir, "latest"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), target)
}

func TestJobLogsDir_LatestFollowsNewestRun(t *testing.T) {
	t.Parallel()

	s := (&Settings{BaseDir: t.TempDir()}).WithDefaults()

	_, err := s.JobLogsDir(time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC), "aaaaaaaa")
	require.NoError(t, err)
	second, err := s.JobLogsDir(time.Date(2026, 8, 29, 11, 0, 0, 0, time.UTC), "bbbbbbbb")
	require.NoError(t, err)

	target, err := os.Readlink(filepath.Join(s.LogsDir, "latest"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(second), target)
}

func TestTmpDirLifecycle(t *testing.T) {
	s := (&Settings{BaseDir: t.TempDir(), TmpBaseDir: t.TempDir()}).WithDefaults()

	dir, err := s.TmpDir()
	require.NoError(t, err)
	assert.DirExists(t, dir)

	// The scratch dir is process-wide: a second call returns the same one.
	again, err := s.TmpDir()
	require.NoError(t, err)
	assert.Equal(t, dir, again)

	require.NoError(t, CleanTmpFiles())
	assert.NoDirExists(t, dir)

	// Cleaning twice is fine.
	require.NoError(t, CleanTmpFiles())
}
