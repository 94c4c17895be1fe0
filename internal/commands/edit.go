package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ezshop/internal/config"
	"ezshop/internal/exitcode"
	"ezshop/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Only the given flags change the item.
type EditCmd struct {
	listName string
	name     optionalString
	qty      optionalString
	unit     optionalString
}

// SetListName sets the list name (for testing).
func (c *EditCmd) SetListName(name string) {
	c.listName = name
}

// SetFields sets the fields to change (for testing). nil leaves a field alone.
func (c *EditCmd) SetFields(name, qty, unit *string) {
	for _, f := range []struct {
		dst *optionalString
		src *string
	}{{&c.name, name}, {&c.qty, qty}, {&c.unit, unit}} {
		if f.src != nil {
			_ = f.dst.Set(*f.src)
		}
	}
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change an item's name, quantity or unit" }
func (c *EditCmd) Usage() string {
	return "ezshop edit [--list <list-name>] [--name <name>] [--qty <n>] [--unit <unit>] <ref>"
}
func (c *EditCmd) NeedsStore() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.name, c.qty, c.unit = optionalString{}, optionalString{}, optionalString{}
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.Var(&c.name, "name", "")
	fs.Var(&c.qty, "qty", "")
	fs.Var(&c.qty, "q", "")
	fs.Var(&c.unit, "unit", "")
	fs.Var(&c.unit, "u", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !c.name.set && !c.qty.set && !c.unit.set {
		fmt.Fprintln(errOut, "error: nothing to change (use --name, --qty or --unit)")
		return exitcode.UserError
	}

	list, item, code := lookupItem(ctx, svc, c.listName, args, errOut)
	if code != exitcode.Success {
		return code
	}

	if c.name.set {
		item.Name = c.name.value
	}
	if c.qty.set {
		item.Quantity = c.qty.value
	}
	if c.unit.set {
		item.Unit = c.unit.value
	}

	if err := svc.UpdateItem(ctx, list.ID, item); err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}
