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
	Register(&DoctorCmd{})
}

// DoctorCmd reports items left behind by deleted lists.
type DoctorCmd struct {
	fix bool
}

// SetFix sets the fix flag (for testing).
func (c *DoctorCmd) SetFix(fix bool) {
	c.fix = fix
}

func (c *DoctorCmd) Name() string      { return "doctor" }
func (c *DoctorCmd) Aliases() []string { return nil }
func (c *DoctorCmd) Synopsis() string  { return "Find (and with --fix remove) items of deleted lists" }
func (c *DoctorCmd) Usage() string     { return "ezshop doctor [--fix]" }
func (c *DoctorCmd) NeedsStore() bool  { return true }

func (c *DoctorCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.fix, "fix", false, "")
}

func (c *DoctorCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	orphans, err := svc.OrphanedLedgers(ctx)
	if err != nil {
		return fail(errOut, err)
	}

	if len(orphans) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no problems found")
		}
		return exitcode.Success
	}

	for _, id := range orphans {
		items, err := svc.ListItems(ctx, id)
		if err != nil {
			return fail(errOut, err)
		}
		if !c.fix {
			fmt.Fprintf(out, "orphaned items: %s (%d)\n", service.ItemsKey(id), len(items))
			continue
		}
		if err := svc.DropLedger(ctx, id); err != nil {
			return fail(errOut, err)
		}
		fmt.Fprintf(out, "removed: %s (%d)\n", service.ItemsKey(id), len(items))
	}

	if !c.fix {
		fmt.Fprintln(errOut, "run: ezshop doctor --fix")
		return exitcode.UserError
	}
	return exitcode.Success
}
