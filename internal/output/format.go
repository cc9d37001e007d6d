// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskflow/internal/service"
)

// statusGlyph maps a task status to its checkbox marker.
func statusGlyph(s service.Status) byte {
	switch s {
	case service.StatusInProgress:
		return '~'
	case service.StatusCompleted:
		return 'x'
	default:
		return ' '
	}
}

// FormatTask formats a task line.
// Format: "{N:>4}  [{G}] {PRIORITY:<6}  {TITLE}\n" where G is the status
// glyph (space, ~ or x).
func FormatTask(w io.Writer, num int, task service.Task) {
	title := normalizeText(task.Title)
	fmt.Fprintf(w, "%4d  [%c] %-6s  %s\n", num, statusGlyph(task.Status), task.Priority, title)
}

// FormatTaskDetail formats a task with its description on a second line.
func FormatTaskDetail(w io.Writer, num int, task service.Task) {
	FormatTask(w, num, task)
	if desc := normalizeText(task.Description); desc != "" {
		fmt.Fprintf(w, "      %s\n", desc)
	}
}

// FormatUser formats a user profile line.
func FormatUser(w io.Writer, user service.User) {
	fmt.Fprintf(w, "%s <%s>\n", user.Name, user.Email)
}

// FormatStats formats the aggregate stats panel.
func FormatStats(w io.Writer, stats service.Stats) {
	fmt.Fprintf(w, "total tasks: %d\n", stats.TotalTasks)
	fmt.Fprintln(w, "by status:")
	for _, s := range service.Statuses {
		fmt.Fprintf(w, "  %-12s %d\n", s, stats.TasksByStatus[s])
	}
	fmt.Fprintln(w, "by priority:")
	for _, p := range service.Priorities {
		fmt.Fprintf(w, "  %-12s %d\n", p, stats.TasksByPriority[p])
	}
	fmt.Fprintf(w, "completion rate: %.1f%%\n", stats.CompletionRate)
}

// normalizeText normalizes task text for single-line display.
// - Empty or whitespace-only text becomes ""
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return text
}
