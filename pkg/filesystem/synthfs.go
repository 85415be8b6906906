package filesystem

import (
	"context"
	"fmt"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	sfs "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/wrapperize/pkg/logging"
)

// newSynthOS returns a synthfs view of the real filesystem that accepts
// absolute paths.
func newSynthOS() sfs.FullFileSystem {
	return synthfs.NewPathAwareFileSystem(sfs.NewOSFileSystem("/"), "/").WithAbsolutePaths()
}

// runSynth applies the batch as a single synthfs pipeline on target. The
// pipeline rolls back the entries it created when a later one fails.
// Modes are then forced through fsys so they do not depend on the umask.
func (b *Batch) runSynth(ctx context.Context, target sfs.FullFileSystem, fsys FS) error {
	entries, err := b.missingDirs(fsys)
	if err != nil {
		return err
	}

	s := synthfs.New()
	ops := make([]synthfs.Operation, 0, len(entries))
	byID := make(map[synthfs.OperationID]string, len(entries))
	for i, e := range entries {
		var op synthfs.Operation
		if e.dir {
			op = s.CreateDirWithID(fmt.Sprintf("mkdir_%d", i), e.path, e.mode)
		} else {
			op = s.CreateFileWithID(fmt.Sprintf("write_%d", i), e.path, e.content, e.mode)
		}
		ops = append(ops, op)
		byID[op.ID()] = e.path
	}
	if len(ops) == 0 {
		return nil
	}

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = true

	logging.GetLogger("filesystem").Debug().
		Int("operationCount", len(ops)).
		Msg("Applying filesystem batch")
	result, err := synthfs.RunWithOptions(ctx, target, options, ops...)
	if err != nil {
		return pathError("apply", failedOperationPath(result, byID, entries), err)
	}

	for _, e := range entries {
		if e.dir {
			continue
		}
		if err := fsys.Chmod(e.path, e.mode); err != nil {
			return pathError("chmod", e.path, err)
		}
	}
	return nil
}

// failedOperationPath finds the path of the first failed operation in
// result, falling back to the first entry.
func failedOperationPath(result *synthfs.Result, byID map[synthfs.OperationID]string, entries []batchEntry) string {
	if result != nil {
		for _, r := range result.GetOperations() {
			opResult, ok := r.(synthfs.OperationResult)
			if !ok {
				continue
			}
			if opResult.Status == synthfs.StatusFailure || opResult.Status == synthfs.StatusValidation {
				if path, found := byID[opResult.OperationID]; found {
					return path
				}
			}
		}
	}
	return entries[0].path
}
