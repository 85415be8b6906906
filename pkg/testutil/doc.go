// Package testutil provides utilities for testing wrapperize components.
//
// Key components:
//   - File helpers rooted in t.TempDir for tests that need a real filesystem
//   - An in-memory filesystem constructor for orchestrator tests
//   - RunShell / ShellWord, which evaluate generated shell text with an
//     in-process bash interpreter so quoting can be checked without spawning
//     processes
//
// Usage guidelines:
//   - Prefer the in-memory filesystem; only end-to-end tests touch disk
//   - All test data should be defined inline, not in external files
package testutil
