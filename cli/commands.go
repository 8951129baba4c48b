package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Check   CheckCmd   `cmd:"" help:"Run the journal entry testing battery over a journal and its trial balances."`
	Inspect InspectCmd `cmd:"" help:"Show what a journal or trial balance file contains."`
	Web     WebCmd     `cmd:"" help:"Serve the battery report over HTTP, re-running when the input files change."`
}
