package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"ezshop/internal/i18n"
	"ezshop/internal/output"
	"ezshop/internal/service"
	"ezshop/internal/settings"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	switch m.screen {
	case screenList:
		m.viewList(&b)
	case screenSettings:
		m.viewSettings(&b)
	default:
		m.viewHome(&b)
	}
	if m.form != formNone {
		b.WriteString("\n")
		b.WriteString(m.viewForm())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.error.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render(m.help()))
	return m.styles.app.Render(b.String())
}

func (m Model) t(key string) string {
	return i18n.T(m.settings.Language, key)
}

func (m Model) viewHome(b *strings.Builder) {
	b.WriteString(m.styles.title.Render(m.t(i18n.HomeTitle)))
	b.WriteString("\n\n")
	for i, l := range m.lists {
		done, total := service.Counts(l.Items)
		line := padRight(l.Name, service.MaxListNameLen) + "  " + output.ProgressBar(done, total, output.BarWidth)
		b.WriteString(m.row(i == m.cursor, line))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render(m.t(i18n.HomeNewListButton)))
	b.WriteString("\n")
}

func (m Model) viewList(b *strings.Builder) {
	b.WriteString(m.styles.title.Render(m.current.Name))
	done, total := service.Counts(service.Summarize(m.items))
	b.WriteString("  ")
	b.WriteString(output.ProgressBar(done, total, output.BarWidth))
	b.WriteString("\n\n")
	for i, it := range m.items {
		check := "[ ]"
		label := it.Label()
		if it.Purchased {
			check = "[x]"
			label = m.styles.done.Render(label)
		}
		b.WriteString(m.row(i == m.itemCursor, check+" "+label))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render(m.t(i18n.ListAddItemButton)))
	b.WriteString("\n")
}

func (m Model) viewSettings(b *strings.Builder) {
	b.WriteString(m.styles.title.Render(m.t(i18n.SettingsTitle)))
	b.WriteString("\n\n")
	dark := "off"
	if m.settings.Theme == settings.Dark {
		dark = "on"
	}
	fmt.Fprintf(b, "%s: %s\n", m.t(i18n.SettingsDarkMode), dark)
	fmt.Fprintf(b, "%s: %s\n", m.t(i18n.SettingsLanguage), i18n.Match(m.settings.Language))
}

func (m Model) viewForm() string {
	var title, submit, cancel string
	switch m.form {
	case formAddList:
		title, submit, cancel = m.t(i18n.HomeAddList), m.t(i18n.HomeAddListButton), m.t(i18n.HomeCancelButton)
	case formRenameList:
		title, submit, cancel = m.t(i18n.HomeEditList), m.t(i18n.HomeRenameButton), m.t(i18n.HomeCancelButton)
	case formAddItem:
		title, submit, cancel = m.t(i18n.ListAddItem), m.t(i18n.ListSaveButton), m.t(i18n.ListCancelButton)
	case formEditItem:
		title, submit, cancel = m.t(i18n.ListEditItem), m.t(i18n.ListSaveButton), m.t(i18n.ListCancelButton)
	}
	var b strings.Builder
	b.WriteString(m.styles.title.Render(title))
	b.WriteString("\n")
	for _, f := range m.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	b.WriteString(m.styles.muted.Render(fmt.Sprintf("enter %s · esc %s", submit, cancel)))
	return m.styles.input.Render(b.String())
}

// padRight pads s with spaces to w terminal cells.
func padRight(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

func (m Model) row(selected bool, line string) string {
	if selected {
		return m.styles.selected.Render("> "+line) + "\n"
	}
	return "  " + line + "\n"
}

func (m Model) help() string {
	var bindings []key.Binding
	switch {
	case m.form != formNone:
		bindings = []key.Binding{m.keys.Submit, m.keys.Next, m.keys.Cancel}
	case m.screen == screenList:
		bindings = []key.Binding{m.keys.Toggle, m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Back}
	case m.screen == screenSettings:
		bindings = []key.Binding{m.keys.Theme, m.keys.Language, m.keys.Back}
	default:
		bindings = []key.Binding{m.keys.Open, m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Settings, m.keys.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
