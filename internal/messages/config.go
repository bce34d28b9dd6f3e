package messages

// Config and profile messages.
const (
	ConfigReadFailedFmt        = "failed to read config %s: %w"
	ConfigParseFailedFmt       = "failed to parse config %s: %w"
	ConfigInvalidCommitFmt     = "invalid commit mode %q in %s (expected ask, always, or never)"
	ConfigResolveHomeFailedFmt = "resolve home dir: %w"
	ProfilesReadFailedFmt      = "failed to read layout profiles %s: %w"
	ProfilesParseFailedFmt     = "failed to parse layout profiles %s: %w"
	ProfilesUnknownProfileFmt  = "unknown layout profile %q (available: %s)"
	ProfilesNoProfilesFmt      = "no layout profiles defined in %s"
)
