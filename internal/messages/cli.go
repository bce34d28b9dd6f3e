package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "maw"
	// RootShort is the short description for the root command.
	RootShort       = "Bootstrap the Multi-Agent Workflow Kit in a repository"
	RootFlagVerbose = "Enable debug logging"
	RootFlagTarget  = "Target repository directory (defaults to the current directory)"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// Interrupted is printed when the process is stopped by a signal.
	Interrupted = "Interrupted"

	// InitUse is the init command usage.
	InitUse   = "init [profile]"
	InitShort = "Install the kit if needed, run setup, and start the tmux session"

	InitFlagPrefix       = "Optional session suffix passed to .agents/start-agents.sh"
	InitFlagDetach       = "Start the tmux session detached"
	InitFlagSkipSetup    = "Skip .agents/setup.sh (assumes agents are already provisioned)"
	InitFlagSetupOnly    = "Run setup and exit without starting tmux"
	InitFlagForce        = "Overwrite kit files that already exist"
	InitFlagScratchGuard = "Write agents/.gitignore so agent worktrees stay untracked"
	InitFlagYes          = "Commit installed files without asking"
	InitFlagNoCommit     = "Never commit installed files"
	InitFlagNoGitInit    = "Fail instead of running git init outside a repository"

	InitCreatedRepoFmt        = "Initialized git repository in %s\n"
	InitCommitPrompt          = "Commit the installed Multi-Agent Workflow Kit files?"
	InitCommitSkippedNoPrompt = "Warning: installed files were not committed; re-run with --yes to commit them\n"
	InitCommittedFmt          = "Committed %d file(s): %s\n"
	InitCommitAllIgnored      = "Nothing to commit: every installed file is ignored by git\n"

	// InstallUse is the install command name.
	InstallUse   = "install"
	InstallShort = "Install missing kit files without running setup"

	// PlanUse is the plan command name.
	PlanUse          = "plan"
	PlanShort        = "Show what install would change without writing anything"
	PlanFlagDiffLine = "Maximum diff lines shown per file"

	// StatusUse is the status command name.
	StatusUse      = "status"
	StatusShort    = "List kit files and whether they are present"
	StatusHeadName = "ASSET"
	StatusHeadKind = "KIND"
	StatusHeadStat = "STATUS"
	StatusPresent  = "present"
	StatusMissing  = "missing"

	// PromptYesDefaultFmt formats yes/no prompts with yes as default.
	PromptYesDefaultFmt   = "%s [Y/n]: "
	PromptNoDefaultFmt    = "%s [y/N]: "
	PromptInvalidResponse = "invalid response %q"
	PromptRetryYesNo      = "Please enter y or n."
)
