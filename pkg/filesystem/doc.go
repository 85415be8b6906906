// Package filesystem provides the filesystem abstraction used by wrapperize.
//
// All artifact writes go through the FS interface so the lifecycle code can
// run against the real OS or against an in-memory afero filesystem (tests and
// dry runs). Writes that belong together are grouped in a Batch; on the OS
// a batch runs as a single synthfs pipeline that rolls back on failure.
package filesystem
