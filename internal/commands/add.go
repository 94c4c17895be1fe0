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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	listName string
	qty      string
	unit     string
}

// SetListName sets the list name (for testing).
func (c *AddCmd) SetListName(name string) {
	c.listName = name
}

// SetQuantity sets quantity and unit (for testing).
func (c *AddCmd) SetQuantity(qty, unit string) {
	c.qty = qty
	c.unit = unit
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Add an item to a list" }
func (c *AddCmd) Usage() string {
	return "ezshop add [--list <list-name>] [--qty <n>] [--unit <unit>] <name...>"
}
func (c *AddCmd) NeedsStore() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.StringVar(&c.qty, "qty", "", "")
	fs.StringVar(&c.qty, "q", "", "")
	fs.StringVar(&c.unit, "unit", "", "")
	fs.StringVar(&c.unit, "u", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: item name required")
		return exitcode.UserError
	}

	// Validate before touching the store so a bad quantity never resolves lists.
	item, err := service.ValidateItem(service.Item{Name: name, Quantity: c.qty, Unit: c.unit})
	if err != nil {
		return fail(errOut, err)
	}

	var list service.List
	if c.listName != "" {
		list, err = svc.ResolveList(ctx, c.listName)
	} else {
		list, err = onlyList(ctx, svc)
	}
	if err != nil {
		return fail(errOut, err)
	}

	if _, err := svc.AddItem(ctx, list.ID, item); err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}
