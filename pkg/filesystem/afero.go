package filesystem

import (
	"context"
	"errors"
	"io/fs"

	sfs "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/spf13/afero"
)

// FS is the filesystem interface required for wrapperize operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error

	// Apply creates every entry of b. Errors name the failing path.
	Apply(ctx context.Context, b *Batch) error
}

// aferoFS implements FS using afero. When synth is set, batches go through
// a synthfs pipeline on the same files instead of being replayed.
type aferoFS struct {
	fs    afero.Fs
	synth sfs.FullFileSystem
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) FS {
	return &aferoFS{fs: fs}
}

// NewOS creates a filesystem backed by the operating system
func NewOS() FS {
	return &aferoFS{fs: afero.NewOsFs(), synth: newSynthOS()}
}

// NewReadOnlyOS creates an OS-backed filesystem that rejects every write.
// Dry runs use it so planning can read the real system but never change it.
func NewReadOnlyOS() FS {
	return NewAferoFS(afero.NewReadOnlyFs(afero.NewOsFs()))
}

// NewMemory creates an empty in-memory filesystem
func NewMemory() FS {
	return NewAferoFS(afero.NewMemMapFs())
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) Chmod(name string, mode fs.FileMode) error {
	return a.fs.Chmod(name, mode)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	return a.fs.Rename(oldpath, newpath)
}

func (a *aferoFS) Apply(ctx context.Context, b *Batch) error {
	if a.synth == nil {
		return b.replay(a)
	}
	return b.runSynth(ctx, a.synth, a)
}

// Exists reports whether name exists. Errors other than "not exist" are
// returned so callers can tell a missing file from an unreadable one.
func Exists(fsys FS, name string) (bool, error) {
	_, err := fsys.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
