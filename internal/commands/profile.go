package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/session"
	"taskflow/internal/store"
)

func init() {
	Register(&ProfileCmd{})
}

// ProfileCmd updates the user profile.
type ProfileCmd struct {
	name string
}

// SetName sets the new display name (for testing).
func (c *ProfileCmd) SetName(name string) {
	c.name = name
}

func (c *ProfileCmd) Name() string      { return "profile" }
func (c *ProfileCmd) Aliases() []string { return nil }
func (c *ProfileCmd) Synopsis() string  { return "Update the user profile" }
func (c *ProfileCmd) Usage() string     { return "taskflow profile --name <name>" }
func (c *ProfileCmd) NeedsAuth() bool   { return true }

func (c *ProfileCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.name, "n", "", "")
}

func (c *ProfileCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, st *store.Store, args []string, out, errOut io.Writer) int {
	if strings.TrimSpace(c.name) == "" {
		fmt.Fprintln(errOut, "error: name required")
		return exitcode.UserError
	}

	user, err := sess.UpdateProfile(ctx, c.name)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatUser(out, user)
	}
	return exitcode.Success
}
