package install

import (
	"errors"
	"io/fs"
	"sort"
)

// listAssetDir returns the children of a bundled directory sorted by name.
// Asset providers differ in what they can do: one that cannot enumerate a
// directory yields no children rather than an error, so the rest of the
// install still runs. Other failures, such as a missing directory, are
// returned.
func listAssetDir(fsys fs.FS, name string) ([]fs.DirEntry, error) {
	if rd, ok := fsys.(fs.ReadDirFS); ok {
		entries, err := rd.ReadDir(name)
		if err != nil {
			return unsupportedAsEmpty(err)
		}
		return sortEntries(entries), nil
	}

	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	dir, ok := f.(fs.ReadDirFile)
	if !ok {
		return nil, nil
	}
	entries, err := dir.ReadDir(-1)
	if err != nil {
		return unsupportedAsEmpty(err)
	}
	return sortEntries(entries), nil
}

func unsupportedAsEmpty(err error) ([]fs.DirEntry, error) {
	if errors.Is(err, errors.ErrUnsupported) {
		return nil, nil
	}
	return nil, err
}

func sortEntries(entries []fs.DirEntry) []fs.DirEntry {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries
}
