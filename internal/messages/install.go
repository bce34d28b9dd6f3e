package messages

// Install messages.
const (
	// InstallRootRequired indicates the target directory is required for install.
	InstallRootRequired = "target directory is required"
	// InstallAssetsRequired indicates the bundled asset provider is required.
	InstallAssetsRequired     = "bundled asset provider is required"
	InstallRootNotDirFmt      = "target %s is not a directory"
	InstallRootStatFmt        = "failed to stat target %s: %w"
	InstallFailedStatFmt      = "failed to stat %s: %w"
	InstallFailedReadFmt      = "failed to read %s: %w"
	InstallFailedWriteFmt     = "failed to write %s: %w"
	InstallFailedChmodFmt     = "failed to mark %s executable: %w"
	InstallFailedRemoveFmt    = "failed to remove %s: %w"
	InstallCreateDirFailedFmt = "failed to create directory %s: %w"
	InstallFailedReadAssetFmt = "failed to read bundled asset %s: %w"
	InstallFailedListAssetFmt = "failed to list bundled directory %s: %w"
	InstallUnknownKindFmt     = "unknown asset kind %q for %s"
	InstallAssetIsDirFmt      = "bundled asset %s is a directory; expected a file"
	InstallDestIsDirFmt       = "destination %s is a directory; expected a file"
	InstallPlanBaseFailedFmt  = "failed to read current content of %s: %w"
	InstallPlanTruncatedFmt   = "... (truncated to %d lines; rerun with --diff-lines <n> to see more)"

	// InstallWrittenHeader introduces the list of written paths.
	InstallWrittenHeader = "Installed Multi-Agent Workflow Kit files:"
	InstallNothingToDo   = "All Multi-Agent Workflow Kit files are already present."
	InstallPathLineFmt   = "  - %s\n"
	InstallPlanHeader    = "Planned changes:"
	InstallPlanLineFmt   = "  %-6s %s\n"
	InstallPlanEmpty     = "No changes planned."
)
