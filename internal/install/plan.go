package install

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/afero"

	"github.com/conn-castle/multi-agent-kit/internal/messages"
)

// DefaultDiffMaxLines is the default maximum number of diff lines shown per file.
const DefaultDiffMaxLines = 40

// ChangeAction describes what an install would do to a path.
type ChangeAction string

const (
	ChangeCreate ChangeAction = "create"
	ChangeUpdate ChangeAction = "update"
	ChangeRemove ChangeAction = "remove"
)

// Change is one planned filesystem effect with a user-facing diff preview.
type Change struct {
	// Path is slash-separated and relative to the target root.
	Path        string
	Action      ChangeAction
	UnifiedDiff string
	Truncated   bool
}

// PlanOptions configures Plan.
type PlanOptions struct {
	Options
	// Base is the filesystem the plan reads from; nil means the OS filesystem.
	// It is never written.
	Base afero.Fs
	// DiffMaxLines caps each diff preview; values <= 0 use DefaultDiffMaxLines.
	DiffMaxLines int
}

// Plan runs the installer against a copy-on-write overlay of the target and
// reports what EnsureAssets would change, without modifying the target.
// opts.System is ignored; reads go to opts.Base.
func Plan(targetDir string, opts PlanOptions) ([]Change, error) {
	root, err := filepath.Abs(targetDir)
	if err != nil {
		return nil, fmt.Errorf(messages.InstallRootStatFmt, targetDir, err)
	}
	base := opts.Base
	if base == nil {
		base = afero.NewOsFs()
	}
	overlay := &planSystem{
		AferoSystem: AferoSystem{Fs: afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(base), afero.NewMemMapFs())},
		removed:     make(map[string]struct{}),
	}

	installOpts := opts.Options
	installOpts.System = overlay
	inst, err := New(root, installOpts)
	if err != nil {
		return nil, err
	}
	written, err := inst.EnsureAssets()
	if err != nil {
		return nil, err
	}

	limit := normalizeDiffMaxLines(opts.DiffMaxLines)
	changes := make([]Change, 0, len(written)+len(overlay.order))
	seen := make(map[string]struct{}, len(written))
	for _, path := range written {
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		change, err := buildChange(base, overlay, root, path, limit)
		if err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}
	for _, path := range overlay.order {
		before, err := afero.ReadFile(base, path)
		if err != nil {
			return nil, fmt.Errorf(messages.InstallPlanBaseFailedFmt, path, err)
		}
		rel := relSlash(root, path)
		diff, truncated := renderTruncatedUnifiedDiff(rel, rel, string(before), "", limit)
		changes = append(changes, Change{Path: rel, Action: ChangeRemove, UnifiedDiff: diff, Truncated: truncated})
	}
	return changes, nil
}

func buildChange(base afero.Fs, overlay *planSystem, root string, path string, limit int) (Change, error) {
	rel := relSlash(root, path)
	after, err := overlay.ReadFile(path)
	if err != nil {
		return Change{}, fmt.Errorf(messages.InstallFailedReadFmt, path, err)
	}
	action := ChangeUpdate
	before, err := afero.ReadFile(base, path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Change{}, fmt.Errorf(messages.InstallPlanBaseFailedFmt, path, err)
		}
		action = ChangeCreate
		before = nil
	}
	fromName := rel
	if action == ChangeCreate {
		fromName = "/dev/null"
	}
	diff, truncated := renderTruncatedUnifiedDiff(fromName, rel, string(before), string(after), limit)
	return Change{Path: rel, Action: action, UnifiedDiff: diff, Truncated: truncated}, nil
}

// planSystem records removals instead of applying them. Removing a file that
// only exists in the read-only base layer is not supported by the overlay.
type planSystem struct {
	AferoSystem
	removed map[string]struct{}
	order   []string
}

func (p *planSystem) Stat(name string) (os.FileInfo, error) {
	if _, ok := p.removed[filepath.Clean(name)]; ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return p.AferoSystem.Stat(name)
}

func (p *planSystem) ReadFile(name string) ([]byte, error) {
	if _, ok := p.removed[filepath.Clean(name)]; ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return p.AferoSystem.ReadFile(name)
}

func (p *planSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	delete(p.removed, filepath.Clean(filename))
	return p.AferoSystem.WriteFileAtomic(filename, data, perm)
}

func (p *planSystem) Remove(name string) error {
	clean := filepath.Clean(name)
	if _, ok := p.removed[clean]; ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	p.removed[clean] = struct{}{}
	p.order = append(p.order, clean)
	return nil
}

func relSlash(root string, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func normalizeDiffMaxLines(value int) int {
	if value <= 0 {
		return DefaultDiffMaxLines
	}
	return value
}

func renderTruncatedUnifiedDiff(fromName string, toName string, fromContent string, toContent string, maxLines int) (string, bool) {
	limit := normalizeDiffMaxLines(maxLines)
	diff := udiff.Unified(fromName, toName, fromContent, toContent)
	lines := splitDiffLines(diff)
	if len(lines) <= limit {
		return ensureTrailingNewline(strings.Join(lines, "\n")), false
	}
	truncated := lines[:limit]
	truncated = append(truncated, fmt.Sprintf(messages.InstallPlanTruncatedFmt, limit))
	return ensureTrailingNewline(strings.Join(truncated, "\n")), true
}

func splitDiffLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func ensureTrailingNewline(content string) string {
	if content == "" {
		return ""
	}
	if strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
