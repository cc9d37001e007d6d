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
	Register(&EditCmd{})
}

// EditCmd implements the edit command. The remote contract replaces the
// whole task, so unset flags are filled from the current task before the
// full snapshot is sent.
type EditCmd struct {
	title       string
	description string
	priority    string
	status      string
}

// SetFields sets the replacement fields (for testing).
func (c *EditCmd) SetFields(title, description, priority, status string) {
	c.title = title
	c.description = description
	c.priority = priority
	c.status = status
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "taskflow edit [--title <t>] [--desc <text>] [--priority <p>] [--status <s>] <ref>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, st *store.Store, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		if err == ErrTaskRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	if c.title == "" && c.description == "" && c.priority == "" && c.status == "" {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	if err := st.Load(ctx); err != nil {
		return fail(errOut, err)
	}

	task, err := findTaskByNumber(st, num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	draft := replacementDraft(task, c.title, c.description, c.priority, c.status)
	updated, err := st.Update(ctx, task.ID, draft)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "updated %s\n", updated.ID)
	}
	return exitcode.Success
}

// replacementDraft builds the complete snapshot sent to the server: changed
// fields from the flags, everything else resent from the current task. The
// contract is replace, not merge; dropping a field here would erase it.
func replacementDraft(task service.Task, title, description, priority, status string) service.TaskDraft {
	draft := service.TaskDraft{
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
	}
	if strings.TrimSpace(title) != "" {
		draft.Title = title
	}
	if strings.TrimSpace(description) != "" {
		draft.Description = description
	}
	if priority != "" {
		draft.Priority = service.Priority(priority)
	}
	if status != "" {
		draft.Status = service.Status(status)
	}
	return draft
}
