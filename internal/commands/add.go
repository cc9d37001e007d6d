package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
	"taskflow/internal/session"
	"taskflow/internal/store"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	priority    string
	status      string
}

// SetFields sets the draft fields (for testing).
func (c *AddCmd) SetFields(description, priority, status string) {
	c.description = description
	c.priority = priority
	c.status = status
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskflow add [--desc <text>] [--priority <p>] [--status <s>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.priority, "priority", string(service.PriorityMedium), "")
	fs.StringVar(&c.priority, "p", string(service.PriorityMedium), "")
	fs.StringVar(&c.status, "status", string(service.StatusNotStarted), "")
	fs.StringVar(&c.status, "s", string(service.StatusNotStarted), "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, st *store.Store, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	draft := service.TaskDraft{
		Title:       title,
		Description: c.description,
		Priority:    service.Priority(c.priority),
		Status:      service.Status(c.status),
	}

	created, err := st.Create(ctx, draft)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created %s\n", created.ID)
	}
	return exitcode.Success
}
