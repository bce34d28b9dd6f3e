// Package catalog lists the assets multi-agent-kit manages in a target
// repository and how each one is installed.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/conn-castle/multi-agent-kit/internal/messages"
)

// Kind selects how the installer treats an entry.
type Kind string

const (
	// KindFile copies a single file when it is missing.
	KindFile Kind = "file"
	// KindTree mirrors a directory, deciding per leaf file.
	KindTree Kind = "tree"
	// KindGuardedDir creates a scratch directory with an optional ignore guard.
	KindGuardedDir Kind = "guarded-dir"
	// KindMergeable merges a fragment into a user-owned file between markers.
	KindMergeable Kind = "mergeable"
)

// Entry maps a bundled asset to its installed destination.
type Entry struct {
	// Name is the logical top-level name reported by Missing.
	Name string
	// Source is the slash-separated path inside the bundled asset tree.
	Source string
	// Dest is the destination path relative to the target root.
	Dest string
	Kind Kind
}

var entries = []Entry{
	{Name: ".agents", Source: ".agents", Dest: ".agents", Kind: KindTree},
	{Name: "agents", Source: "agents", Dest: "agents", Kind: KindGuardedDir},
	{Name: ".claude", Source: ".claude", Dest: ".claude", Kind: KindTree},
	{Name: ".codex", Source: ".codex", Dest: ".codex", Kind: KindTree},
	{Name: "AGENTS.md", Source: "AGENTS.md", Dest: "AGENTS.md", Kind: KindFile},
	{Name: ".tmux.conf", Source: ".tmux.conf", Dest: ".tmux.conf", Kind: KindFile},
	{Name: ".envrc", Source: ".envrc", Dest: ".envrc", Kind: KindMergeable},
}

// Entries returns the catalog in install order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Names returns the top-level destination names in catalog order.
func Names() []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	return names
}

// Statter is the filesystem capability Missing needs.
type Statter interface {
	Stat(name string) (os.FileInfo, error)
}

// Missing reports, in catalog order, the entries whose destination does not
// exist under targetDir. It only checks existence.
func Missing(sys Statter, targetDir string, list []Entry) ([]string, error) {
	var missing []string
	for _, entry := range list {
		dest := filepath.Join(targetDir, filepath.FromSlash(entry.Dest))
		if _, err := sys.Stat(dest); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				missing = append(missing, entry.Name)
				continue
			}
			return nil, fmt.Errorf(messages.InstallFailedStatFmt, dest, err)
		}
	}
	return missing, nil
}
