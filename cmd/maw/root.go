package main

import (
	"io/fs"
	"os"
	osexec "os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/conn-castle/multi-agent-kit/internal/assets"
	"github.com/conn-castle/multi-agent-kit/internal/bootstrap"
	"github.com/conn-castle/multi-agent-kit/internal/config"
	"github.com/conn-castle/multi-agent-kit/internal/exec"
	"github.com/conn-castle/multi-agent-kit/internal/logging"
	"github.com/conn-castle/multi-agent-kit/internal/messages"
	"github.com/conn-castle/multi-agent-kit/internal/terminal"
)

// Seams replaced in tests.
var (
	getwd                                  = os.Getwd
	isTerminal                             = terminal.IsInteractive
	lookPath    bootstrap.LookPathFunc     = osexec.LookPath
	newRunner                              = func() exec.CommandRunner { return exec.NewRealRunner() }
	bundled                                = func() fs.FS { return assets.FS() }
	configPaths                            = config.DefaultPaths
	getenv                                 = os.Getenv
	confirm     func(string) (bool, error) = huhConfirm
)

// rootState carries the persistent flags to subcommands.
type rootState struct {
	verbose bool
	logger  *log.Logger
}

func (s *rootState) log() *log.Logger {
	if s.logger == nil {
		return logging.Discard()
	}
	return s.logger
}

func newRootCmd() *cobra.Command {
	state := &rootState{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			state.logger = logging.New(cmd.ErrOrStderr(), state.verbose)
		},
	}
	cmd.PersistentFlags().BoolVarP(&state.verbose, "verbose", "v", false, messages.RootFlagVerbose)

	cmd.AddCommand(
		newInitCmd(state),
		newInstallCmd(state),
		newPlanCmd(state),
		newStatusCmd(state),
	)
	return cmd
}

// resolveTarget returns the absolute target directory, defaulting to the
// working directory.
func resolveTarget(flag string) (string, error) {
	target := strings.TrimSpace(flag)
	if target == "" {
		return getwd()
	}
	expanded, err := config.ExpandPath(target)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}

// loadSettings reads the layered config for root.
func loadSettings(root string) (config.Settings, error) {
	paths, err := configPaths(root)
	if err != nil {
		return config.Settings{}, err
	}
	return config.Load(paths, getenv)
}
