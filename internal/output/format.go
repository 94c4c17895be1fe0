// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"ezshop/internal/service"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"

	// BarWidth is the width of progress bars in list headers.
	BarWidth = 10
)

// FormatItem formats an item line.
// Format: "{N:>4}  [x] {NAME} ({QTY} {UNIT})\n"
func FormatItem(w io.Writer, num int, item service.Item) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, checkbox(item.Purchased), ItemLabel(item))
}

// FormatItemIndented formats an item line inside a list section of the
// overview, prefixed with the list letter.
// Format: "    {L}{N:<3} [x] {NAME}\n"
func FormatItemIndented(w io.Writer, letter rune, num int, item service.Item) {
	ref := fmt.Sprintf("%c%d", letter, num)
	fmt.Fprintf(w, "    %-4s %s %s\n", ref, checkbox(item.Purchased), ItemLabel(item))
}

// FormatListHeader formats a list section header with its progress.
// letter is omitted when zero.
func FormatListHeader(w io.Writer, letter rune, list service.List) {
	title := normalizeTitle(list.Name)
	if letter != 0 {
		title = fmt.Sprintf("[%c] %s", letter, title)
	}
	done, total := service.Counts(list.Items)
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintf(w, "%s  %s  %d/%d\n", title, ProgressBar(done, total, BarWidth), done, total)
	fmt.Fprintln(w, ListSeparator)
}

// FormatListName formats a list line for the lists command.
// Format: "{L}  {NAME}  {DONE}/{TOTAL}\n"
func FormatListName(w io.Writer, letter rune, list service.List) {
	done, total := service.Counts(list.Items)
	fmt.Fprintf(w, "%c  %s  %d/%d\n", letter, normalizeTitle(list.Name), done, total)
}

// ItemLabel renders an item's name with its quantity and unit.
// "Milk (2 l)", "Milk (2)", "Milk".
func ItemLabel(item service.Item) string {
	item.Name = normalizeTitle(item.Name)
	return item.Label()
}

// ProgressBar renders done/total as a bar of the given width followed by a
// percentage. An empty list renders as 0%.
func ProgressBar(done, total, width int) string {
	if width < 5 {
		width = 5
	}
	if total <= 0 {
		return fmt.Sprintf("%s %3d%%", strings.Repeat("░", width), 0)
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3d%%", bar, done*100/total)
}

func checkbox(purchased bool) string {
	if purchased {
		return "[x]"
	}
	return "[ ]"
}

// normalizeTitle replaces newlines with spaces; blank titles become "(untitled)".
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
