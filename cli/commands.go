package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

// Commands is the top-level CLI: beanfmt has a single operation, so there
// are no subcommands to dispatch between.
type Commands struct {
	Globals
	FormatCmd
}
