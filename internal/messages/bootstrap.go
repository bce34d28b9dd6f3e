package messages

// Bootstrap messages for tool checks, git, and script hand-off.
const (
	BootstrapMissingBinariesFmt      = "missing required command(s): %s"
	BootstrapNotRepoFmt              = "%s is not inside a git repository; re-run without --no-git-init to create one"
	BootstrapGitInitFailedFmt        = "git init failed in %s: %s"
	BootstrapGitAddFailedFmt         = "git add failed: %s"
	BootstrapGitCommitFailedFmt      = "git commit failed: %s"
	BootstrapGitCheckIgnoreFailedFmt = "git check-ignore failed: %s"
	BootstrapGitRunFailedFmt         = "failed to run git %s: %w"
	BootstrapScriptNotFoundFmt       = "script not found: %s"
	BootstrapScriptFailedFmt         = "command failed: %s"
	BootstrapScriptRunFailedFmt      = "failed to run %s: %w"
	BootstrapSkipAndSetupOnly        = "--setup-only already implies running setup; do not combine with --skip-setup"
	BootstrapProfileRequired         = "layout profile is required"
	BootstrapRelPathFailedFmt        = "failed to resolve %s relative to %s: %w"
	BootstrapCommitOutsideRepoFmt    = "path %s is outside the repository root %s"
)
