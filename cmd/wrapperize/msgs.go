package wrapperize

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Wrap a binary with extra arguments and environment, kept across pacman upgrades"
	MsgUnwrapShort     = "Restore the original binary and remove the wrapper's hooks"
	MsgStatusShort     = "Show which wrapper files exist for a binary"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Status messages
	MsgVersionFormat = "wrapperize version %s\n  commit: %s\n  built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Print every file that would be written without changing anything"
	MsgFlagConfig   = "Configuration file (default $XDG_CONFIG_HOME/wrapperize/config.toml)"
	MsgFlagHooksDir = "Directory pacman hooks are written to"
	MsgFlagArg      = "Argument to pass to the binary before the caller's arguments (repeatable)"
	MsgFlagEnv      = "Environment variable NAME=VALUE to export (repeatable)"
	MsgFlagNoHooks  = "Do not save the installer or register pacman hooks"
	MsgFlagEnvNames = "Variable name policy: strict or relaxed"
	MsgFlagQuoting  = "Value quoting in the wrapper: ansi-c or double"
	MsgFlagFormat   = "Output format: text or yaml"
	MsgFlagDefaults = "Print the annotated default configuration"

	// Error messages
	MsgErrNoInjection = "nothing to wrap with: give at least one --arg or --env"
	MsgErrNotAbsolute = "path `%s` must be absolute"
	MsgErrNotFound    = "path `%s` does not exist"
	MsgErrNotRegular  = "path `%s` is not a regular file"
	MsgErrNoCommand   = "no binary given"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/unwrap-long.txt
	msgUnwrapLongRaw string
	MsgUnwrapLong    = strings.TrimSpace(msgUnwrapLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
