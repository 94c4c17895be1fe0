package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ezshop/internal/config"
	"ezshop/internal/exitcode"
	"ezshop/internal/output"
	"ezshop/internal/service"
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print all lists with their letters and progress" }
func (c *ListsCmd) Usage() string     { return "ezshop lists [common flags]" }
func (c *ListsCmd) NeedsStore() bool  { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	lists, err := svc.ListLists(ctx)
	if err != nil {
		return fail(errOut, err)
	}

	for i, list := range lists {
		letter := letterFor(i)
		if letter == 0 {
			letter = ' '
		}
		output.FormatListName(out, letter, list)
	}

	if len(lists) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no lists found")
	}
	return exitcode.Success
}
