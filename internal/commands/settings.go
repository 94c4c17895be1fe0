package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"ezshop/internal/config"
	"ezshop/internal/exitcode"
	"ezshop/internal/i18n"
	"ezshop/internal/service"
	"ezshop/internal/settings"
)

func init() {
	Register(&ThemeCmd{})
	Register(&LangCmd{})
	Register(&SettingsCmd{})
}

// ThemeCmd shows or changes the theme.
type ThemeCmd struct{}

func (c *ThemeCmd) Name() string      { return "theme" }
func (c *ThemeCmd) Aliases() []string { return nil }
func (c *ThemeCmd) Synopsis() string  { return "Show or set the theme" }
func (c *ThemeCmd) Usage() string     { return "ezshop theme [light|dark|toggle]" }
func (c *ThemeCmd) NeedsStore() bool  { return true }

func (c *ThemeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ThemeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	st, err := svc.LoadSettings(ctx)
	if err != nil {
		return fail(errOut, err)
	}

	if len(args) == 0 {
		fmt.Fprintln(out, st.Theme)
		return exitcode.Success
	}

	arg := strings.ToLower(strings.TrimSpace(args[0]))
	if arg == "toggle" {
		st.Theme = st.Theme.Toggle()
	} else {
		theme, err := settings.ParseTheme(arg)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		st.Theme = theme
	}

	if err := svc.SaveSettings(ctx, st); err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}

// LangCmd shows or changes the language.
type LangCmd struct{}

func (c *LangCmd) Name() string      { return "lang" }
func (c *LangCmd) Aliases() []string { return []string{"language"} }
func (c *LangCmd) Synopsis() string  { return "Show or set the language" }
func (c *LangCmd) Usage() string     { return "ezshop lang [<tag>]" }
func (c *LangCmd) NeedsStore() bool  { return true }

func (c *LangCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LangCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	st, err := svc.LoadSettings(ctx)
	if err != nil {
		return fail(errOut, err)
	}

	if len(args) == 0 {
		fmt.Fprintln(out, st.Language)
		if !cfg.Quiet {
			fmt.Fprintf(out, "available: %s\n", strings.Join(i18n.Names(), ", "))
		}
		return exitcode.Success
	}

	tag, err := settings.ParseLanguage(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	st.Language = tag

	if err := svc.SaveSettings(ctx, st); err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}

// SettingsCmd prints all settings.
type SettingsCmd struct{}

func (c *SettingsCmd) Name() string      { return "settings" }
func (c *SettingsCmd) Aliases() []string { return nil }
func (c *SettingsCmd) Synopsis() string  { return "Print settings" }
func (c *SettingsCmd) Usage() string     { return "ezshop settings" }
func (c *SettingsCmd) NeedsStore() bool  { return true }

func (c *SettingsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SettingsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	st, err := svc.LoadSettings(ctx)
	if err != nil {
		return fail(errOut, err)
	}
	fmt.Fprintf(out, "theme: %s\n", st.Theme)
	fmt.Fprintf(out, "language: %s (%s)\n", st.Language, i18n.Match(st.Language))
	fmt.Fprintf(out, "storage: %s %s\n", cfg.File.Storage.Backend, cfg.StoragePath())
	return exitcode.Success
}
