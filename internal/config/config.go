// Package config resolves multi-agent-kit settings from the user config file,
// the repository config file, and the environment, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/multi-agent-kit/internal/messages"
)

// ErrConfigValidation wraps invalid values, as opposed to read or syntax errors.
var ErrConfigValidation = errors.New("config validation failed")

// CommitMode controls whether init commits the installed assets.
type CommitMode string

const (
	CommitAsk    CommitMode = "ask"
	CommitAlways CommitMode = "always"
	CommitNever  CommitMode = "never"
)

const (
	// DefaultProfile is the layout profile used when none is configured.
	DefaultProfile = "profile1"
	// DefaultCommitMessage is used when committing installed assets.
	DefaultCommitMessage = "Add Multi-Agent Workflow Kit assets"

	// EnvProfile and EnvCommit override the file settings.
	EnvProfile = "MAW_PROFILE"
	EnvCommit  = "MAW_COMMIT"

	// ProjectFileName is the per-repository config file at the repo root.
	ProjectFileName = ".maw.toml"
)

// Settings are the resolved values.
type Settings struct {
	Profile       string
	ScratchGuard  bool
	Commit        CommitMode
	CommitMessage string
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Profile:       DefaultProfile,
		Commit:        CommitAsk,
		CommitMessage: DefaultCommitMessage,
	}
}

// fileConfig is one config file; unset keys leave the lower layer in place.
type fileConfig struct {
	Profile       *string `toml:"profile"`
	ScratchGuard  *bool   `toml:"scratch_guard"`
	Commit        *string `toml:"commit"`
	CommitMessage *string `toml:"commit_message"`
}

// Paths locates the config layers. Empty paths are skipped.
type Paths struct {
	User    string
	Project string
}

// DefaultPaths returns the user config under the home directory and the
// project config under root.
func DefaultPaths(root string) (Paths, error) {
	home, err := homedir.Dir()
	if err != nil {
		return Paths{}, fmt.Errorf(messages.ConfigResolveHomeFailedFmt, err)
	}
	return Paths{
		User:    filepath.Join(home, ".config", "multi-agent-kit", "config.toml"),
		Project: filepath.Join(root, ProjectFileName),
	}, nil
}

// ExpandPath resolves a leading ~ in a user-supplied path.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveHomeFailedFmt, err)
	}
	return expanded, nil
}

// Load layers defaults, the user file, the project file, and the environment.
// Missing files are skipped. A nil getenv uses os.Getenv.
func Load(paths Paths, getenv func(string) string) (Settings, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	settings := Defaults()
	for _, path := range []string{paths.User, paths.Project} {
		if path == "" {
			continue
		}
		layer, err := readFile(path)
		if err != nil {
			return Settings{}, err
		}
		if layer == nil {
			continue
		}
		if err := layer.apply(&settings, path); err != nil {
			return Settings{}, err
		}
	}
	if value := strings.TrimSpace(getenv(EnvProfile)); value != "" {
		settings.Profile = value
	}
	if value := strings.TrimSpace(getenv(EnvCommit)); value != "" {
		mode, err := ParseCommitMode(value, EnvCommit)
		if err != nil {
			return Settings{}, err
		}
		settings.Commit = mode
	}
	return settings, nil
}

// ParseCommitMode validates a commit mode; source names where it came from.
func ParseCommitMode(value string, source string) (CommitMode, error) {
	mode := CommitMode(strings.ToLower(strings.TrimSpace(value)))
	switch mode {
	case CommitAsk, CommitAlways, CommitNever:
		return mode, nil
	}
	return "", fmt.Errorf("%w: "+messages.ConfigInvalidCommitFmt, ErrConfigValidation, value, source)
}

func readFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.ConfigReadFailedFmt, path, err)
	}
	var cfg fileConfig
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigParseFailedFmt, path, err)
	}
	return &cfg, nil
}

func (c *fileConfig) apply(settings *Settings, source string) error {
	if c.Profile != nil && strings.TrimSpace(*c.Profile) != "" {
		settings.Profile = strings.TrimSpace(*c.Profile)
	}
	if c.ScratchGuard != nil {
		settings.ScratchGuard = *c.ScratchGuard
	}
	if c.Commit != nil {
		mode, err := ParseCommitMode(*c.Commit, source)
		if err != nil {
			return err
		}
		settings.Commit = mode
	}
	if c.CommitMessage != nil && strings.TrimSpace(*c.CommitMessage) != "" {
		settings.CommitMessage = *c.CommitMessage
	}
	return nil
}
