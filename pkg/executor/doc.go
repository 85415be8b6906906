// Package executor runs generated installer scripts in a subprocess.
//
// A script is either streamed to a shell interpreter's standard input or, once
// it has been saved to disk with its execute bit set, run directly. Either way
// the caller blocks until the child exits and gets back an ExitStatus that
// distinguishes a normal exit code from a terminating signal.
package executor
