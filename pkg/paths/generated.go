package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/wrapperize/pkg/errors"
	"github.com/arthur-debert/wrapperize/pkg/escape"
)

// Generated is the derived identity of a wrap operation.
type Generated struct {
	// Wrapped is the original binary location. After wrapping it holds the shim.
	Wrapped escape.Path
	// Unwrapped is where the original binary is kept: same directory,
	// filename ".{filename}-unwrapped".
	Unwrapped escape.Path
	// WrappedFilename is the bare filename every artifact name is keyed on.
	WrappedFilename string
}

// UnwrappedFilename returns the hidden filename for a binary filename.
func UnwrappedFilename(filename string) string {
	return "." + filename + "-unwrapped"
}

// Resolve derives the Generated paths for the binary at path. It does not
// touch the filesystem.
func Resolve(path string) (*Generated, error) {
	if strings.ContainsAny(path, "\n\r") {
		return nil, errors.Newf(errors.ErrInvalidPath, "path %q contains a line break", path)
	}

	filename := filename(path)
	if filename == "" {
		return nil, errors.Newf(errors.ErrInvalidPath, "invalid path provided: `%s` has no file name", path)
	}

	unwrapped := filepath.Join(filepath.Dir(path), UnwrappedFilename(filename))

	return &Generated{
		Wrapped:         escape.NewPath(path),
		Unwrapped:       escape.NewPath(unwrapped),
		WrappedFilename: filename,
	}, nil
}

// filename returns the final component of path, or "" when there is none
// (empty path, root, or a trailing "." / ".." component).
func filename(path string) string {
	if path == "" || strings.HasSuffix(path, string(filepath.Separator)) {
		return ""
	}

	base := filepath.Base(path)
	switch base {
	case ".", "..", string(filepath.Separator):
		return ""
	}
	return base
}
