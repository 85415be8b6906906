package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
)

// Batch is an ordered list of directory and file creations applied to a
// filesystem in one call to FS.Apply.
type Batch struct {
	entries []batchEntry
}

type batchEntry struct {
	path    string
	content []byte
	mode    fs.FileMode
	dir     bool
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// MkdirAll adds path and any missing parents.
func (b *Batch) MkdirAll(path string, mode fs.FileMode) *Batch {
	b.entries = append(b.entries, batchEntry{path: filepath.Clean(path), mode: mode, dir: true})
	return b
}

// WriteFile adds a file write. The file ends up with exactly mode,
// regardless of the process umask.
func (b *Batch) WriteFile(path string, content []byte, mode fs.FileMode) *Batch {
	b.entries = append(b.entries, batchEntry{path: filepath.Clean(path), content: content, mode: mode})
	return b
}

// Paths returns every path in the batch in insertion order.
func (b *Batch) Paths() []string {
	out := make([]string, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e.path)
	}
	return out
}

// Len returns the number of entries.
func (b *Batch) Len() int {
	return len(b.entries)
}

// replay applies the batch one entry at a time through fsys.
func (b *Batch) replay(fsys FS) error {
	for _, e := range b.entries {
		if e.dir {
			if err := fsys.MkdirAll(e.path, e.mode); err != nil {
				return pathError("mkdir", e.path, err)
			}
			continue
		}
		if err := fsys.WriteFile(e.path, e.content, e.mode); err != nil {
			return pathError("write", e.path, err)
		}
		if err := fsys.Chmod(e.path, e.mode); err != nil {
			return pathError("chmod", e.path, err)
		}
	}
	return nil
}

// missingDirs expands every directory entry into the chain of ancestors
// that do not exist yet, outermost first, and drops directories that
// already exist.
func (b *Batch) missingDirs(fsys FS) ([]batchEntry, error) {
	out := make([]batchEntry, 0, len(b.entries))
	planned := make(map[string]bool)
	for _, e := range b.entries {
		if !e.dir {
			out = append(out, e)
			continue
		}

		var chain []string
		for dir := e.path; !planned[dir]; dir = filepath.Dir(dir) {
			exists, err := Exists(fsys, dir)
			if err != nil {
				return nil, pathError("stat", dir, err)
			}
			if exists {
				break
			}
			chain = append(chain, dir)
			if parent := filepath.Dir(dir); parent == dir {
				break
			}
		}
		for i := len(chain) - 1; i >= 0; i-- {
			planned[chain[i]] = true
			out = append(out, batchEntry{path: chain[i], mode: e.mode, dir: true})
		}
	}
	return out, nil
}

func pathError(op, path string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) && pe.Path == path {
		return err
	}
	return &fs.PathError{Op: op, Path: path, Err: err}
}

// FailedPath returns the path named by an error from FS.Apply, or "" when
// err does not name one.
func FailedPath(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Path
	}
	return ""
}
