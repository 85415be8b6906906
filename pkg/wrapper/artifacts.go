package wrapper

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/wrapperize/pkg/errors"
	"github.com/arthur-debert/wrapperize/pkg/escape"
	"github.com/arthur-debert/wrapperize/pkg/filesystem"
	"github.com/arthur-debert/wrapperize/pkg/hook"
	"github.com/arthur-debert/wrapperize/pkg/paths"
)

// ArtifactKind names the role of a file created by a wrap.
type ArtifactKind string

const (
	KindWrapper     ArtifactKind = "wrapper"
	KindHidden      ArtifactKind = "hidden binary"
	KindInstaller   ArtifactKind = "installer script"
	KindInstallHook ArtifactKind = "install hook"
	KindRemovalHook ArtifactKind = "removal hook"
)

// Artifact is one file created by a wrap.
type Artifact struct {
	Kind ArtifactKind
	Path escape.Path
}

func hookKind(action hook.TriggerAction) ArtifactKind {
	if action == hook.Removal {
		return KindRemovalHook
	}
	return KindInstallHook
}

// Artifacts lists every file a wrap with hooks produces: the wrapper first,
// then the files the removal hook deletes, in the same order.
func (w *Wrapperizer) Artifacts(gen *paths.Generated) []Artifact {
	layout := w.opts.Layout
	artifacts := []Artifact{{Kind: KindWrapper, Path: gen.Wrapped}}
	for _, action := range hook.TriggerActions {
		artifacts = append(artifacts, Artifact{
			Kind: hookKind(action),
			Path: escape.NewPath(layout.Path(gen.WrappedFilename, action)),
		})
	}
	return append(artifacts,
		Artifact{Kind: KindInstaller, Path: escape.NewPath(layout.InstallScriptPath(gen.WrappedFilename))},
		Artifact{Kind: KindHidden, Path: gen.Unwrapped},
	)
}

// ArtifactStatus reports whether an artifact is on disk.
type ArtifactStatus struct {
	Kind    ArtifactKind `yaml:"kind"`
	Path    string       `yaml:"path"`
	Present bool         `yaml:"present"`
}

// Status describes the wrap state of one binary.
type Status struct {
	Binary string `yaml:"binary"`
	// Wrapped is true when the hidden original exists.
	Wrapped   bool             `yaml:"wrapped"`
	Hooks     bool             `yaml:"hooks"`
	Artifacts []ArtifactStatus `yaml:"artifacts"`
}

// Status inspects every artifact of gen.
func (w *Wrapperizer) Status(gen *paths.Generated) (*Status, error) {
	st := &Status{Binary: gen.Wrapped.Original, Hooks: true}
	for _, a := range w.Artifacts(gen) {
		present, err := filesystem.Exists(w.fs, a.Path.Original)
		if err != nil {
			return nil, errors.IO(a.Path.Original, err, "failed to inspect "+string(a.Kind))
		}

		switch a.Kind {
		case KindHidden:
			st.Wrapped = present
		case KindInstallHook, KindRemovalHook:
			st.Hooks = st.Hooks && present
		}
		st.Artifacts = append(st.Artifacts, ArtifactStatus{Kind: a.Kind, Path: a.Path.Original, Present: present})
	}
	return st, nil
}

// Unwrap moves the hidden original back over the wrapper and removes the
// hooks and saved installer. It fails with ErrNotWrapped when there is no
// hidden original.
func (w *Wrapperizer) Unwrap(gen *paths.Generated) error {
	hidden := gen.Unwrapped.Original
	exists, err := filesystem.Exists(w.fs, hidden)
	if err != nil {
		return errors.IO(hidden, err, "failed to check for the hidden binary")
	}
	if !exists {
		return errors.Newf(errors.ErrNotWrapped, "`%s` is not wrapped: `%s` does not exist", gen.Wrapped, gen.Unwrapped).
			WithDetail(errors.DetailPath, hidden)
	}

	if err := w.fs.Rename(hidden, gen.Wrapped.Original); err != nil {
		return errors.IO(hidden, err, "failed to restore the original binary")
	}
	w.logger.Info().Str("binary", gen.Wrapped.Original).Msg("Restored original binary")

	for _, a := range w.Artifacts(gen) {
		if a.Kind == KindWrapper || a.Kind == KindHidden {
			continue
		}
		err := w.fs.Remove(a.Path.Original)
		if stderrors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return errors.IO(a.Path.Original, err, "failed to remove "+string(a.Kind))
		}
		w.logger.Debug().Str("path", a.Path.Original).Str("kind", string(a.Kind)).Msg("Removed artifact")
	}
	return nil
}
