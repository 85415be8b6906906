// Package wrapper wraps a binary: it replaces the binary with a script that
// re-executes the original with extra arguments and environment, and
// optionally registers pacman hooks so the wrapper survives upgrades and is
// cleaned up on removal.
//
// A wrap happens in two steps. Plan resolves and renders every artifact
// without touching the filesystem, failing with ErrAlreadyWrapped when the
// hidden original is already present. Apply writes what the plan persists and
// runs the installer. Create does both.
package wrapper
