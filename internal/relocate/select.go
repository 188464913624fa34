package relocate

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"mvvid/internal/fileutil"
	"mvvid/internal/services"
)

// DefaultPattern selects every entry.
const DefaultPattern = "*"

// UnknownSize marks an entry whose size could not be computed. The copy
// itself reports any unreadable content.
const UnknownSize int64 = -1

// DirLister lists the immediate children of a directory.
type DirLister func(dir string) ([]fs.DirEntry, error)

// SelectSources lists dir's immediate children whose names match the
// shell-style pattern, ordered by name. Symlinks and special files are never
// selected. An empty result is not an error.
func SelectSources(dir, pattern string) ([]Entry, error) {
	return selectSources(os.ReadDir, dir, pattern)
}

func selectSources(list DirLister, dir, pattern string) ([]Entry, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "select", "compile pattern", pattern, err)
	}

	children, err := list(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "select", "list", dir, err)
	}

	entries := make([]Entry, 0, len(children))
	for _, child := range children {
		mode := child.Type()
		if mode&fs.ModeSymlink != 0 || !(mode.IsDir() || mode.IsRegular()) {
			continue
		}
		if !matcher.Match(child.Name()) {
			continue
		}
		path := filepath.Join(dir, child.Name())
		size, err := fileutil.Size(path)
		if err != nil {
			size = UnknownSize
		}
		entries = append(entries, Entry{
			Name:  child.Name(),
			Path:  path,
			IsDir: mode.IsDir(),
			Size:  size,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}
