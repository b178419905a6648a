package job

import (
	"fmt"
	"strings"
)

// Error is a recognized job-level failure: a structured error raised
// deliberately by policy, carrying the terminal status the job should record
// and a human-readable description. The classifier maps it to JOB_FAIL.
type Error struct {
	// Status is the terminal job status the failure configures.
	Status string
	// Message describes the failure to the user.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// NewError builds a job-level failure with the given target status.
func NewError(status, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

// errorClass returns the bare type name of an error or recovered panic
// value, for failure headers.
func errorClass(v any) string {
	name := fmt.Sprintf("%T", v)
	name = strings.TrimLeft(name, "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
