package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"ezshop/internal/config"
	"ezshop/internal/exitcode"
	"ezshop/internal/output"
	"ezshop/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `ezshop` (no args) and `ezshop list <list-name>`.
type ListCmd struct {
	open bool
}

// SetOpenOnly hides purchased items (for testing).
func (c *ListCmd) SetOpenOnly(open bool) {
	c.open = open
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "Show lists and their items" }
func (c *ListCmd) Usage() string     { return "ezshop list [--open] [<list-name>]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.open, "open", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return c.listAll(ctx, cfg, svc, out, errOut)
	}
	return c.listOne(ctx, svc, strings.Join(args, " "), out, errOut)
}

// listAll prints every list with its items (ezshop with no args).
func (c *ListCmd) listAll(ctx context.Context, cfg *config.Config, svc service.Service, out, errOut io.Writer) int {
	lists, err := svc.ListLists(ctx)
	if err != nil {
		return fail(errOut, err)
	}

	if len(lists) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no lists found")
		}
		return exitcode.Success
	}

	for i, list := range lists {
		letter := letterFor(i)
		if letter == 0 {
			fmt.Fprintln(errOut, "error: too many lists (max 26)")
			return exitcode.UserError
		}

		items, err := svc.ListItems(ctx, list.ID)
		if err != nil {
			fmt.Fprintf(errOut, "error: storage error: failed to read list: %s: %v\n", list.Name, err)
			return exitcode.StorageError
		}

		output.FormatListHeader(out, letter, list)
		for j, item := range items {
			if c.open && item.Purchased {
				continue
			}
			output.FormatItemIndented(out, letter, j+1, item)
		}
	}

	return exitcode.Success
}

// listOne prints a single list (ezshop list <name>).
func (c *ListCmd) listOne(ctx context.Context, svc service.Service, listName string, out, errOut io.Writer) int {
	listName = strings.TrimSpace(listName)
	if listName == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	list, err := svc.ResolveList(ctx, listName)
	if err != nil {
		return fail(errOut, err)
	}

	items, err := svc.ListItems(ctx, list.ID)
	if err != nil {
		return fail(errOut, err)
	}

	output.FormatListHeader(out, 0, list)
	for i, item := range items {
		if c.open && item.Purchased {
			continue
		}
		output.FormatItem(out, i+1, item)
	}

	return exitcode.Success
}
