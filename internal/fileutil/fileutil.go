package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyFile streams src to a newly created dst with SHA256 + size integrity
// verification. dst is opened with O_EXCL, so an existing destination yields
// an error matching fs.ErrExist and is left untouched. Mode bits and the
// modification time of src are applied to dst. On any failure after dst was
// created, dst is removed. Copied bytes are mirrored to progress when it is
// non-nil.
func CopyFile(src, dst string, progress io.Writer) (int64, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}
	if !srcInfo.Mode().IsRegular() {
		return 0, fmt.Errorf("copy %s: not a regular file", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, srcInfo.Mode().Perm())
	if err != nil {
		return 0, err
	}
	written, err := copyVerified(out, in, srcInfo.Size(), progress)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err == nil {
		err = applyMetadata(dst, srcInfo)
	}
	if err != nil {
		_ = os.Remove(dst)
		return written, err
	}
	return written, nil
}

func copyVerified(out io.Writer, in io.Reader, srcSize int64, progress io.Writer) (int64, error) {
	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	writers := []io.Writer{out, dstHasher}
	if progress != nil {
		writers = append(writers, progress)
	}

	written, err := io.Copy(io.MultiWriter(writers...), tee)
	if err != nil {
		return written, err
	}
	if written != srcSize {
		return written, fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		return written, errors.New("copy hash mismatch: file corrupted during copy")
	}
	return written, nil
}

// CopyTree recursively copies the directory src to dst. dst itself is created
// with Mkdir, so an existing destination yields an error matching fs.ErrExist
// and nothing is written. Nested symlinks are recreated as symlinks rather
// than followed. If the copy fails after dst was created, the partial tree is
// removed.
func CopyTree(src, dst string, progress io.Writer) (int64, error) {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}
	if !srcInfo.IsDir() {
		return 0, fmt.Errorf("copy %s: not a directory", src)
	}
	if err := os.Mkdir(dst, srcInfo.Mode().Perm()|0o700); err != nil {
		return 0, err
	}

	written, err := copyDirContents(src, dst, progress)
	if err == nil {
		err = applyMetadata(dst, srcInfo)
	}
	if err != nil {
		_ = os.RemoveAll(dst)
		return written, err
	}
	return written, nil
}

func copyDirContents(src, dst string, progress io.Writer) (int64, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())
		info, err := os.Lstat(from)
		if err != nil {
			return total, err
		}
		switch mode := info.Mode(); {
		case mode&fs.ModeSymlink != 0:
			target, err := os.Readlink(from)
			if err != nil {
				return total, err
			}
			if err := os.Symlink(target, to); err != nil {
				return total, err
			}
		case mode.IsDir():
			if err := os.Mkdir(to, mode.Perm()|0o700); err != nil {
				return total, err
			}
			n, err := copyDirContents(from, to, progress)
			total += n
			if err != nil {
				return total, err
			}
			if err := applyMetadata(to, info); err != nil {
				return total, err
			}
		case mode.IsRegular():
			n, err := CopyFile(from, to, progress)
			total += n
			if err != nil {
				return total, err
			}
		default:
			return total, fmt.Errorf("copy %s: unsupported file type %s", from, mode.Type())
		}
	}
	return total, nil
}

// applyMetadata sets permission bits explicitly (creation honours umask) and
// carries over the modification time.
func applyMetadata(path string, info os.FileInfo) error {
	if err := os.Chmod(path, info.Mode().Perm()); err != nil {
		return err
	}
	mtime := info.ModTime()
	return os.Chtimes(path, mtime, mtime)
}

// Size returns the size of a file, or the total size of the regular files
// beneath a directory. Symlinks are not followed.
func Size(path string) (int64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return info.Size(), nil
	}
	var total int64
	err = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		total += fi.Size()
		return nil
	})
	return total, err
}
