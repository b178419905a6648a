// Package job implements one end-to-end invocation of the orchestrator: it
// owns the job identity and lifecycle status, expands identifiers into
// parameter sets, runs every resolved test strictly in order, aggregates the
// failures, and converts the outcome into a process exit code.
//
// The public Run method is the single boundary where failures may escape the
// lower layers. It classifies them into two tiers: a recognized job-level
// failure (a *Error carrying its own target status) produces JOB_FAIL, and
// anything else, including panics, produces CRASH with full diagnostics and a
// bug-report request. Below this boundary failures are data, never escaping
// exceptions: an unresolvable test becomes a missing-test instance and a
// failing test becomes an entry in the failures list.
package job
