package job

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/vk/suiterun/internal/datadir"
	"github.com/vk/suiterun/internal/output"
	"github.com/vk/suiterun/internal/status"
)

// DebugLogName is the job-scoped log file inside the job's log directory.
const DebugLogName = "debug.log"

// Job is one end-to-end invocation: resolve every identifier, run the tests,
// aggregate the outcome, exit. A Job belongs exclusively to the invocation
// that created it and transitions from RUNNING to exactly one terminal
// status before it is discarded.
type Job struct {
	cfg      *Config
	settings *datadir.Settings

	uniqueID string
	logDir   string
	debugLog string
	testDir  string

	status  string
	out     *output.Manager
	logger  *slog.Logger
	logFile *os.File
}

// New creates a Job from the invocation config: it fixes the job identity,
// creates the job log directory with its debug log, and wires the logger and
// the console output manager.
func New(cfg *Config) (*Job, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	settings := cfg.Settings
	if settings == nil {
		var err error
		settings, err = datadir.LoadSettings()
		if err != nil {
			return nil, err
		}
	} else {
		settings = settings.WithDefaults()
	}

	uniqueID := cfg.UniqueID
	if uniqueID == "" {
		uniqueID = uuid.NewString()
	}

	logDir, err := settings.JobLogsDir(time.Now(), shortID(uniqueID))
	if err != nil {
		return nil, err
	}

	debugLog := filepath.Join(logDir, DebugLogName)
	logFile, err := os.Create(debugLog)
	if err != nil {
		return nil, fmt.Errorf("failed to create debug log: %w", err)
	}

	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	j := &Job{
		cfg:      cfg,
		settings: settings,
		uniqueID: uniqueID,
		logDir:   logDir,
		debugLog: debugLog,
		testDir:  settings.TestDir,
		status:   status.JobRunning,
		out:      output.New(stdout, stderr),
		logger:   newLogger(logFile, stderr, cfg.LogLevel, cfg.LogFormat),
		logFile:  logFile,
	}
	j.logger.Debug("Job created.", "id", uniqueID, "logdir", logDir)
	return j, nil
}

// shortID returns the log-directory form of a job id.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ID returns the job's unique identifier.
func (j *Job) ID() string { return j.uniqueID }

// LogDir returns the job's log directory.
func (j *Job) LogDir() string { return j.logDir }

// DebugLog returns the path of the job's debug log file.
func (j *Job) DebugLog() string { return j.debugLog }

// TestDir returns the root directory searched for discoverable tests.
func (j *Job) TestDir() string { return j.testDir }

// Status returns the job's lifecycle status.
func (j *Job) Status() string { return j.status }

// Output returns the job's console output manager.
func (j *Job) Output() *output.Manager { return j.out }

// Close releases the job's debug log. The job must not be used afterwards.
func (j *Job) Close() error {
	return j.logFile.Close()
}
