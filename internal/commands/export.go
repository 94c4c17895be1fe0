package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"ezshop/internal/backend/googletasks"
	"ezshop/internal/config"
	"ezshop/internal/exitcode"
	"ezshop/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// Exporter pushes a list to a remote service.
type Exporter interface {
	ExportList(ctx context.Context, list service.List, items []service.Item) (googletasks.ExportResult, error)
}

// ExporterFactory creates an Exporter from config.
type ExporterFactory func(ctx context.Context, cfg *config.Config) (Exporter, error)

// ExportCmd implements the export command.
type ExportCmd struct {
	newExporter ExporterFactory
}

// SetExporterFactory replaces the Google Tasks exporter (for testing).
func (c *ExportCmd) SetExporterFactory(f ExporterFactory) {
	c.newExporter = f
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Copy a list to Google Tasks" }
func (c *ExportCmd) Usage() string     { return "ezshop export <list-name>" }
func (c *ExportCmd) NeedsStore() bool  { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	list, err := svc.ResolveList(ctx, name)
	if err != nil {
		return fail(errOut, err)
	}
	items, err := svc.ListItems(ctx, list.ID)
	if err != nil {
		return fail(errOut, err)
	}

	newExporter := c.newExporter
	if newExporter == nil {
		if !cfg.HasOAuthClient() {
			fmt.Fprintf(errOut, "error: %s not found in %s\n", config.OAuthClientFile, cfg.Dir)
			return exitcode.AuthError
		}
		if !cfg.HasToken() {
			fmt.Fprintln(errOut, "error: not logged in (run: ezshop login)")
			return exitcode.AuthError
		}
		newExporter = googleExporter
	}

	exp, err := newExporter(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}

	res, err := exp.ExportList(ctx, list, items)
	if err != nil {
		fmt.Fprintf(errOut, "error: remote error: %v\n", err)
		return exitcode.RemoteError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "exported %d items to %s\n", res.Tasks, res.Title)
	}
	return exitcode.Success
}

func googleExporter(ctx context.Context, cfg *config.Config) (Exporter, error) {
	return googletasks.New(ctx, cfg)
}
