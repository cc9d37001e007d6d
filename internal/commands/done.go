package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
	"taskflow/internal/session"
	"taskflow/internal/store"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command: a full-snapshot update with the
// status set to completed. Only the affected entry is replaced locally; the
// collection is never reloaded for a single field change.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "taskflow done <ref>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, st *store.Store, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		if err == ErrTaskRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
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

	draft := service.TaskDraft{
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      service.StatusCompleted,
	}
	if _, err := st.Update(ctx, task.ID, draft); err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
