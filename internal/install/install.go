package install

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/multi-agent-kit/internal/catalog"
	"github.com/conn-castle/multi-agent-kit/internal/messages"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644

	// scratchGuardName is the guard file written inside the scratch directory.
	scratchGuardName    = ".gitignore"
	scratchGuardContent = "# Ignore all agent worktrees\n*\n!.gitignore\n"
)

// Options controls installer behavior.
type Options struct {
	// Force rewrites existing destinations even when they are present.
	Force bool
	// CreateScratchGuard writes an ignore guard into the scratch directory.
	// When false, a guard left by an earlier run is removed.
	CreateScratchGuard bool
	// Assets is the bundled template tree. Required.
	Assets fs.FS
	// Entries overrides the catalog; nil means catalog.Entries().
	Entries []catalog.Entry
	// System defaults to RealSystem.
	System System
	// Logger receives debug events; nil discards them.
	Logger *log.Logger
}

// Installer writes the bundled assets into one target directory.
type Installer struct {
	root         string
	force        bool
	scratchGuard bool
	assets       fs.FS
	entries      []catalog.Entry
	sys          System
	logger       *log.Logger
	written      []string
}

// New returns an Installer bound to root, which must be an existing directory.
func New(root string, opts Options) (*Installer, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf(messages.InstallRootRequired)
	}
	if opts.Assets == nil {
		return nil, fmt.Errorf(messages.InstallAssetsRequired)
	}
	sys := opts.System
	if sys == nil {
		sys = RealSystem{}
	}
	entries := opts.Entries
	if entries == nil {
		entries = catalog.Entries()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	root = filepath.Clean(root)
	info, err := sys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf(messages.InstallRootStatFmt, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(messages.InstallRootNotDirFmt, root)
	}

	return &Installer{
		root:         root,
		force:        opts.Force,
		scratchGuard: opts.CreateScratchGuard,
		assets:       opts.Assets,
		entries:      entries,
		sys:          sys,
		logger:       logger,
	}, nil
}

// Root returns the target directory.
func (inst *Installer) Root() string {
	return inst.root
}

// Missing reports the catalog entries whose destination is absent.
func (inst *Installer) Missing() ([]string, error) {
	return catalog.Missing(inst.sys, inst.root, inst.entries)
}

// MissingAssets reports, in catalog order, which default catalog entries do not
// exist under targetDir on the OS filesystem.
func MissingAssets(targetDir string) ([]string, error) {
	return catalog.Missing(RealSystem{}, targetDir, catalog.Entries())
}

// EnsureAssets installs every catalog entry and reconciles the root .gitignore.
// It returns the paths it created or overwrote, in the order first written.
// Every step is idempotent, so a failed run can simply be repeated.
func (inst *Installer) EnsureAssets() ([]string, error) {
	inst.written = nil
	steps := []func() error{
		inst.installEntries,
		inst.reconcileGitignore,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return inst.result(), err
		}
	}
	return inst.result(), nil
}

func (inst *Installer) result() []string {
	out := make([]string, len(inst.written))
	copy(out, inst.written)
	return out
}

func (inst *Installer) installEntries() error {
	for _, entry := range inst.entries {
		dest := filepath.Join(inst.root, filepath.FromSlash(entry.Dest))
		var err error
		switch entry.Kind {
		case catalog.KindFile:
			err = inst.copyFile(entry.Source, dest)
		case catalog.KindTree:
			err = inst.copyTree(entry.Source, dest)
		case catalog.KindGuardedDir:
			err = inst.ensureScratchDir(dest)
		case catalog.KindMergeable:
			err = inst.mergeFragment(entry.Source, dest)
		default:
			err = fmt.Errorf(messages.InstallUnknownKindFmt, entry.Kind, entry.Name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// copyFile writes the bundled file src to dest unless dest exists and force is
// off. Shell scripts are marked executable.
func (inst *Installer) copyFile(src string, dest string) error {
	info, err := inst.sys.Stat(dest)
	switch {
	case err == nil && !inst.force:
		return nil
	case err == nil && info.IsDir():
		return fmt.Errorf(messages.InstallDestIsDirFmt, dest)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf(messages.InstallFailedStatFmt, dest, err)
	}

	data, err := fs.ReadFile(inst.assets, src)
	if err != nil {
		return fmt.Errorf(messages.InstallFailedReadAssetFmt, src, err)
	}
	if err := inst.mkdir(filepath.Dir(dest)); err != nil {
		return err
	}
	if err := inst.writeFile(dest, data, filePerm); err != nil {
		return err
	}
	if isScript(dest) {
		return inst.markExecutable(dest)
	}
	return nil
}

// copyTree mirrors the bundled directory src into dest. The directory itself is
// always created; each leaf follows the copyFile rule.
func (inst *Installer) copyTree(src string, dest string) error {
	if err := inst.mkdir(dest); err != nil {
		return err
	}
	children, err := listAssetDir(inst.assets, src)
	if err != nil {
		return fmt.Errorf(messages.InstallFailedListAssetFmt, src, err)
	}
	for _, child := range children {
		childSrc := path.Join(src, child.Name())
		childDest := filepath.Join(dest, child.Name())
		if child.IsDir() {
			err = inst.copyTree(childSrc, childDest)
		} else {
			err = inst.copyFile(childSrc, childDest)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (inst *Installer) ensureScratchDir(dir string) error {
	if err := inst.mkdir(dir); err != nil {
		return err
	}
	guard := filepath.Join(dir, scratchGuardName)
	exists, err := inst.exists(guard)
	if err != nil {
		return err
	}
	if inst.scratchGuard {
		if exists && !inst.force {
			return nil
		}
		return inst.writeFile(guard, []byte(scratchGuardContent), filePerm)
	}
	if !exists {
		return nil
	}
	// Guards from runs that opted in are removed once the option is off.
	if err := inst.sys.Remove(guard); err != nil {
		return fmt.Errorf(messages.InstallFailedRemoveFmt, guard, err)
	}
	inst.logger.Debug("removed scratch guard", "path", inst.rel(guard))
	return nil
}

// mergeFragment installs the bundled fragment src into the user-owned file dest
// inside EnvrcMarkers, leaving everything outside the markers alone.
func (inst *Installer) mergeFragment(src string, dest string) error {
	fragment, err := fs.ReadFile(inst.assets, src)
	if err != nil {
		return fmt.Errorf(messages.InstallFailedReadAssetFmt, src, err)
	}
	wrapped := EnvrcMarkers.Wrap(string(fragment))

	existingBytes, err := inst.sys.ReadFile(dest)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf(messages.InstallFailedReadFmt, dest, err)
		}
		if err := inst.mkdir(filepath.Dir(dest)); err != nil {
			return err
		}
		return inst.writeFile(dest, []byte(wrapped), filePerm)
	}

	existing := string(existingBytes)
	if EnvrcMarkers.HasRegion(existing) {
		if !inst.force {
			return nil
		}
		updated, _ := ReplaceRegion(existing, EnvrcMarkers, wrapped)
		return inst.writeFile(dest, []byte(updated), inst.modeOf(dest))
	}

	merged := wrapped
	if existing != "" {
		if !strings.HasSuffix(existing, "\n") {
			existing += "\n"
		}
		merged = existing + "\n" + wrapped
	}
	return inst.writeFile(dest, []byte(merged), inst.modeOf(dest))
}

func (inst *Installer) exists(name string) (bool, error) {
	_, err := inst.sys.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf(messages.InstallFailedStatFmt, name, err)
}

func (inst *Installer) mkdir(dir string) error {
	if err := inst.sys.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf(messages.InstallCreateDirFailedFmt, dir, err)
	}
	return nil
}

// writeFile writes data and records path as written.
func (inst *Installer) writeFile(path string, data []byte, perm fs.FileMode) error {
	if err := inst.sys.WriteFileAtomic(path, data, perm); err != nil {
		return fmt.Errorf(messages.InstallFailedWriteFmt, path, err)
	}
	inst.written = append(inst.written, path)
	inst.logger.Debug("wrote asset", "path", inst.rel(path))
	return nil
}

func (inst *Installer) markExecutable(path string) error {
	info, err := inst.sys.Stat(path)
	if err != nil {
		return fmt.Errorf(messages.InstallFailedStatFmt, path, err)
	}
	if err := inst.sys.Chmod(path, info.Mode().Perm()|0o111); err != nil {
		return fmt.Errorf(messages.InstallFailedChmodFmt, path, err)
	}
	return nil
}

// modeOf keeps the permissions of a user-owned file across rewrites.
func (inst *Installer) modeOf(path string) fs.FileMode {
	info, err := inst.sys.Stat(path)
	if err != nil {
		return filePerm
	}
	return info.Mode().Perm()
}

func (inst *Installer) rel(path string) string {
	rel, err := filepath.Rel(inst.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func isScript(path string) bool {
	return filepath.Ext(path) == ".sh"
}
