package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"ezshop/internal/config"
	"ezshop/internal/exitcode"
	"ezshop/internal/logging"
	"ezshop/internal/service"
	"ezshop/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UIRunner starts the interactive UI. cfg.Logger() writes to the log file
// rather than the terminal.
type UIRunner func(ctx context.Context, svc service.Service, cfg *config.Config) error

func defaultUIRunner(ctx context.Context, svc service.Service, cfg *config.Config) error {
	return tui.Run(ctx, svc, cfg.Logger())
}

// UICmd opens the interactive terminal UI.
type UICmd struct {
	runner UIRunner
}

// SetRunner replaces the UI runner (for testing).
func (c *UICmd) SetRunner(r UIRunner) {
	c.runner = r
}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return []string{"tui"} }
func (c *UICmd) Synopsis() string  { return "Open the interactive shopping list UI" }
func (c *UICmd) Usage() string     { return "ezshop ui" }
func (c *UICmd) NeedsStore() bool  { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	run := c.runner
	if run == nil {
		run = defaultUIRunner
	}

	if err := cfg.EnsureDir(); err != nil {
		return fail(errOut, err)
	}
	log, closeLog, err := logging.NewFile(cfg.LogLevel(), cfg.LogPath())
	if err != nil {
		return fail(errOut, err)
	}
	defer closeLog()
	uiCfg := *cfg
	uiCfg.Log = log

	cfg.Logger().Debug("ui started", zap.String("log", cfg.LogPath()))
	if err := run(ctx, svc, &uiCfg); err != nil {
		return fail(errOut, err)
	}
	return exitcode.Success
}
