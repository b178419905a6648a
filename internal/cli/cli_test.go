package cli

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/suiterun/internal/datadir"
)

// setupBase points the settings file at a fresh base dir and installs the
// named tests under its test root. Returns the base dir.
func setupBase(t *testing.T, tests map[string]string) string {
	t.Helper()
	base := t.TempDir()

	settingsPath := filepath.Join(t.TempDir(), "suiterun.yaml")
	require.NoError(t, os.WriteFile(settingsPath, []byte("base_dir: "+base+"\n"), 0o644))
	t.Setenv(datadir.ConfigEnv, settingsPath)

	for name, body := range tests {
		dir := filepath.Join(base, "tests", name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		script := []byte("#!/bin/sh\n" + body + "\n")
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), script, 0o755))
	}
	return base
}

// execute runs a command the way subcommands would: parse flags, then run.
func execute(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return cmd.Execute(context.Background(), fs)
}

func TestRunCmd_PassingSuiteExitsZero(t *testing.T) {
	setupBase(t, map[string]string{"passtest": "exit 0"})
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	rc := execute(t, NewRunCmd(stdout, stderr), "passtest")

	assert.Equal(t, subcommands.ExitSuccess, rc)
	assert.Contains(t, stdout.String(), "(1/1) passtest: PASS")
}

func TestRunCmd_FailingSuiteExitsOne(t *testing.T) {
	setupBase(t, map[string]string{"failtest": "exit 1"})
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	rc := execute(t, NewRunCmd(stdout, stderr), "failtest")

	assert.Equal(t, subcommands.ExitStatus(1), rc)
}

func TestRunCmd_URLFlagSuppliesDefaults(t *testing.T) {
	setupBase(t, map[string]string{"passtest": "exit 0"})
	stdout := &bytes.Buffer{}

	rc := execute(t, NewRunCmd(stdout, &bytes.Buffer{}), "-url", "passtest passtest")

	assert.Equal(t, subcommands.ExitSuccess, rc)
	assert.Contains(t, stdout.String(), "(2/2) passtest: PASS")
}

func TestRunCmd_RejectsInvalidFlagChoices(t *testing.T) {
	t.Parallel()

	stderr := &bytes.Buffer{}
	rc := execute(t, NewRunCmd(&bytes.Buffer{}, stderr), "-log-level", "loud", "passtest")

	assert.Equal(t, subcommands.ExitUsageError, rc)
	assert.Contains(t, stderr.String(), "invalid log-level")

	rc = execute(t, NewRunCmd(&bytes.Buffer{}, stderr), "-log-format", "xml", "passtest")
	assert.Equal(t, subcommands.ExitUsageError, rc)
}

func TestListCmd_ReportsResolutionWithoutRunning(t *testing.T) {
	base := setupBase(t, map[string]string{"sleeptest": "touch ran; exit 0"})
	stdout := &bytes.Buffer{}

	rc := execute(t, NewListCmd(stdout, &bytes.Buffer{}), "sleeptest", "absenttest")

	assert.Equal(t, subcommands.ExitFailure, rc, "a missing test makes list fail")
	text := stdout.String()
	assert.Contains(t, text, "sleeptest: discovered")
	assert.Contains(t, text, "absenttest: MISSING")

	// list never executes anything.
	assert.NoFileExists(t, filepath.Join(base, "tests", "sleeptest", "ran"))
}

func TestListCmd_NoArgsIsUsageError(t *testing.T) {
	t.Parallel()

	stderr := &bytes.Buffer{}
	rc := execute(t, NewListCmd(&bytes.Buffer{}, stderr))

	assert.Equal(t, subcommands.ExitUsageError, rc)
	assert.Contains(t, stderr.String(), "Usage: suiterun list")
}
