package install

import (
	"os"

	"github.com/spf13/afero"

	"github.com/conn-castle/multi-agent-kit/internal/fsutil"
)

// System abstracts the target-side filesystem operations the installer needs.
// Bundled assets are read through an fs.FS instead; System only ever touches
// the target repository.
type System interface {
	Stat(name string) (os.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
	Chmod(name string, mode os.FileMode) error
	Remove(name string) error
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// WriteFileAtomic writes data to a file atomically by writing to a temp file and renaming.
func (RealSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(filename, data, perm)
}

// Chmod changes the mode of the named file.
func (RealSystem) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(name, mode)
}

// Remove removes the named file or empty directory.
func (RealSystem) Remove(name string) error {
	return os.Remove(name)
}

// AferoSystem implements System on top of an afero filesystem. Plan uses it
// with a copy-on-write overlay; tests use it with an in-memory filesystem.
type AferoSystem struct {
	Fs afero.Fs
}

// Stat returns a FileInfo describing the named file.
func (a AferoSystem) Stat(name string) (os.FileInfo, error) {
	return a.Fs.Stat(name)
}

// ReadFile reads the named file and returns the contents.
func (a AferoSystem) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(a.Fs, name)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (a AferoSystem) MkdirAll(path string, perm os.FileMode) error {
	return a.Fs.MkdirAll(path, perm)
}

// WriteFileAtomic writes data to the named file. afero has no rename-based
// atomic write, so the mode is applied explicitly after the write to match
// RealSystem when the file already existed.
func (a AferoSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	if err := afero.WriteFile(a.Fs, filename, data, perm); err != nil {
		return err
	}
	return a.Fs.Chmod(filename, perm)
}

// Chmod changes the mode of the named file.
func (a AferoSystem) Chmod(name string, mode os.FileMode) error {
	return a.Fs.Chmod(name, mode)
}

// Remove removes the named file or empty directory.
func (a AferoSystem) Remove(name string) error {
	return a.Fs.Remove(name)
}
