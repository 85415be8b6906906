// Package script renders the two shell scripts behind a wrapper.
//
// The wrapper script replaces the original binary: it exports the configured
// variables and execs the hidden original with the configured arguments put
// in front of the caller's arguments.
//
// The installer script performs the swap, in this order: move the original
// binary to its hidden path, write the wrapper to the original path, make it
// executable. It runs with set -e, so a failed move leaves the original
// untouched and a failure after the move exits non-zero with the original
// hidden and no wrapper in place.
//
// Every rendered script is parsed with a bash parser before it is returned.
package script
