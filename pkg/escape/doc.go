// Package escape turns arbitrary strings and paths into text that is safe
// to embed in generated shell scripts and pacman hook files.
//
// Two escaping modes are provided:
//
//   - Backslash mode (Quote, QuoteChars): every occurrence of the quote
//     character(s) gets a backslash in front of it and nothing else changes.
//   - ASCII mode (ASCII): printable ASCII passes through, everything else
//     (control characters, non-ASCII bytes, quotes and backslashes) becomes
//     an escape sequence, so the result is always a single printable line.
//
// The Double and ANSIC helpers wrap those modes in the matching bash quoting
// convention ("..." and $'...'), and Path bundles a filesystem path with its
// pre-computed escaped form so callers never escape a path twice.
//
// Escaping is not idempotent for text that still contains the quote
// character: never escape text that has already been escaped.
package escape
