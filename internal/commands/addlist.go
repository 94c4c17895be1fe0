package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"ezshop/internal/config"
	"ezshop/internal/exitcode"
	"ezshop/internal/service"
)

func init() {
	Register(&AddListCmd{})
	Register(&RenameCmd{})
}

// AddListCmd implements the addlist command.
type AddListCmd struct{}

func (c *AddListCmd) Name() string      { return "addlist" }
func (c *AddListCmd) Aliases() []string { return []string{"createlist"} }
func (c *AddListCmd) Synopsis() string  { return "Create a new list" }
func (c *AddListCmd) Usage() string     { return "ezshop addlist [common flags] <list-name>" }
func (c *AddListCmd) NeedsStore() bool  { return true }

func (c *AddListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	if _, err := svc.CreateList(ctx, name); err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}

// RenameCmd implements the rename command.
type RenameCmd struct {
	to string
}

// SetTo sets the new name (for testing).
func (c *RenameCmd) SetTo(name string) {
	c.to = name
}

func (c *RenameCmd) Name() string      { return "rename" }
func (c *RenameCmd) Aliases() []string { return nil }
func (c *RenameCmd) Synopsis() string  { return "Rename a list" }
func (c *RenameCmd) Usage() string     { return "ezshop rename --to <new-name> <list-name>" }
func (c *RenameCmd) NeedsStore() bool  { return true }

func (c *RenameCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.to, "to", "", "")
}

func (c *RenameCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}
	if strings.TrimSpace(c.to) == "" {
		fmt.Fprintln(errOut, "error: new name required (use --to)")
		return exitcode.UserError
	}

	list, err := svc.ResolveList(ctx, name)
	if err != nil {
		return fail(errOut, err)
	}
	if err := svc.RenameList(ctx, list.ID, c.to); err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}
