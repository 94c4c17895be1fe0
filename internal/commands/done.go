package commands

import (
	"context"
	"flag"
	"io"

	"ezshop/internal/config"
	"ezshop/internal/exitcode"
	"ezshop/internal/service"
)

func init() {
	Register(&DoneCmd{})
	Register(&ToggleCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *DoneCmd) SetListName(name string) {
	c.listName = name
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark an item purchased" }
func (c *DoneCmd) Usage() string     { return "ezshop done [--list <list-name>] <ref>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runMark(ctx, cfg, svc, c.listName, args, func(bool) bool { return true }, out, errOut)
}

// ToggleCmd flips an item between purchased and open.
type ToggleCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *ToggleCmd) SetListName(name string) {
	c.listName = name
}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return nil }
func (c *ToggleCmd) Synopsis() string  { return "Toggle an item between purchased and open" }
func (c *ToggleCmd) Usage() string     { return "ezshop toggle [--list <list-name>] <ref>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runMark(ctx, cfg, svc, c.listName, args, func(p bool) bool { return !p }, out, errOut)
}

// runMark is the shared implementation for done and toggle.
func runMark(ctx context.Context, cfg *config.Config, svc service.Service, listName string, args []string, next func(bool) bool, out, errOut io.Writer) int {
	list, item, code := lookupItem(ctx, svc, listName, args, errOut)
	if code != exitcode.Success {
		return code
	}

	item.Purchased = next(item.Purchased)
	if err := svc.UpdateItem(ctx, list.ID, item); err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}
