// Package profiles reads the tmux layout profiles installed at
// .agents/config.yml.
package profiles

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conn-castle/multi-agent-kit/internal/messages"
)

// Agent is one pane in a layout.
type Agent struct {
	Name    string `yaml:"name"`
	Command string `yaml:"command"`
}

// Profile is a named tmux layout.
type Profile struct {
	Description string  `yaml:"description"`
	Agents      []Agent `yaml:"agents"`
	Layout      string  `yaml:"layout"`
}

// File is the parsed profile file.
type File struct {
	Session  string             `yaml:"session"`
	Profiles map[string]Profile `yaml:"profiles"`

	source string
}

// Load parses the profile file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf(messages.ProfilesReadFailedFmt, path, err)
	}
	return Parse(data, path)
}

// Parse decodes profile YAML; source names it in errors.
func Parse(data []byte, source string) (File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf(messages.ProfilesParseFailedFmt, source, err)
	}
	file.source = source
	return file, nil
}

// Has reports whether name is a defined profile.
func (f File) Has(name string) bool {
	_, ok := f.Profiles[name]
	return ok
}

// Names returns the profile names sorted.
func (f File) Names() []string {
	names := make([]string, 0, len(f.Profiles))
	for name := range f.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Require returns an error unless name is a defined profile.
func (f File) Require(name string) error {
	if len(f.Profiles) == 0 {
		return fmt.Errorf(messages.ProfilesNoProfilesFmt, f.source)
	}
	if f.Has(name) {
		return nil
	}
	return fmt.Errorf(messages.ProfilesUnknownProfileFmt, name, strings.Join(f.Names(), ", "))
}
