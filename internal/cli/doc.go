// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// exposes the run subcommand, which executes a batch of tests, and the list
// subcommand, which shows how each identifier would resolve without running
// anything.
package cli
