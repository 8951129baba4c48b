package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/auditkit/jet/telemetry"
	"github.com/auditkit/jet/web"
)

type WebCmd struct {
	analysisFlags `embed:""`

	Port  int  `help:"Port to listen on." default:"8179"`
	Watch bool `help:"Re-run the procedures when an input file changes." default:"true" negatable:""`
}

func (cmd *WebCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx := context.Background()

	if globals.Telemetry {
		collector := telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)
	}

	params, err := cmd.params()
	if err != nil {
		return err
	}

	server := web.NewWithVersion(cmd.Port, cmd.files(), params, Version, CommitSHA)
	server.WatchEnabled = cmd.Watch

	printInfof(ctx.Stdout, "Starting server on %s:%d", server.Host, server.Port)
	if cmd.Watch {
		printInfof(ctx.Stdout, "Watching input files for changes")
	}

	if err := server.Start(runCtx); err != nil {
		printError(ctx.Stderr, fmt.Sprintf("Server error: %v", err))
		return NewCommandError(1)
	}
	return nil
}

func (cmd *WebCmd) files() web.Files {
	return web.Files{Journal: cmd.Journal, Prior: cmd.Prior, Current: cmd.Current}
}
