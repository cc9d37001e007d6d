package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/session"
	"taskflow/internal/store"
	"taskflow/internal/view"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskflow` (no args) and `taskflow list` with filters.
type ListCmd struct {
	search   string
	status   string
	priority string
	detail   bool
}

// SetFilters sets the filter criteria (for testing).
func (c *ListCmd) SetFilters(search, status, priority string) {
	c.search = search
	c.status = status
	c.priority = priority
}

// SetDetail enables detail output (for testing).
func (c *ListCmd) SetDetail(detail bool) {
	c.detail = detail
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return nil }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskflow list [--search <term>] [--status <status>|all] [--priority <priority>|all] [--detail]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.status, "status", view.All, "")
	fs.StringVar(&c.priority, "priority", view.All, "")
	fs.BoolVar(&c.detail, "detail", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if err := st.Load(ctx); err != nil {
		return fail(errOut, err)
	}

	filter := view.Filter{Search: c.search, Status: c.status, Priority: c.priority}
	visible := view.Project(st.Tasks(), filter)

	if len(visible) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	// Numbers refer to positions in the unfiltered collection so a
	// filtered listing still yields usable task references.
	index := make(map[string]int)
	for i, t := range st.Tasks() {
		index[t.ID] = i + 1
	}

	for _, task := range visible {
		if c.detail {
			output.FormatTaskDetail(out, index[task.ID], task)
		} else {
			output.FormatTask(out, index[task.ID], task)
		}
	}
	return exitcode.Success
}
