package relocate

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"mvvid/internal/fileutil"
	"mvvid/internal/services"
)

// MoveOne copies entry into destDir and removes the original once the copy
// completed. An existing destDir/<name> is never touched: the entry is
// skipped with an ErrCollision record. A failed copy leaves the source in
// place and removes only the partial destination it created. Copied bytes are
// mirrored to progress when non-nil.
func MoveOne(entry Entry, destDir string, progress io.Writer) MoveRecord {
	dest := filepath.Join(destDir, entry.Name)
	rec := MoveRecord{Entry: entry, Destination: dest}

	if _, err := os.Lstat(dest); err == nil {
		return skipped(rec)
	} else if !errors.Is(err, fs.ErrNotExist) {
		rec.Outcome = OutcomeFailed
		rec.Err = services.Wrap(services.ErrFilesystem, "move", entry.Name, "inspect destination", err)
		return rec
	}

	var (
		n   int64
		err error
	)
	if entry.IsDir {
		n, err = fileutil.CopyTree(entry.Path, dest, progress)
	} else {
		n, err = fileutil.CopyFile(entry.Path, dest, progress)
	}
	rec.Bytes = n
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			rec.Bytes = 0
			return skipped(rec)
		}
		rec.Outcome = OutcomeFailed
		rec.Err = services.Wrap(services.ErrFilesystem, "move", entry.Name, "copy into library", err)
		return rec
	}

	if entry.IsDir {
		err = os.RemoveAll(entry.Path)
	} else {
		err = os.Remove(entry.Path)
	}
	if err != nil {
		rec.Outcome = OutcomeFailed
		rec.Err = services.Wrap(services.ErrFilesystem, "move", entry.Name, "remove original after copy", err)
		return rec
	}

	rec.Outcome = OutcomeMoved
	return rec
}

func skipped(rec MoveRecord) MoveRecord {
	rec.Outcome = OutcomeSkippedExists
	rec.Err = services.Wrap(services.ErrCollision, "move", rec.Entry.Name, "already exists in library", nil)
	return rec
}
