package commands

import (
	"context"
	"errors"
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
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with the TaskFlow server" }
func (c *LoginCmd) Usage() string     { return "taskflow login [common flags] <email> <password>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: email and password required")
		return exitcode.UserError
	}
	email, password := args[0], args[1]

	if err := sess.Login(ctx, email, password); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(errOut, "error: %s\n", verr)
			return exitcode.UserError
		}
		// Rejected credentials and transport failures alike leave the
		// session anonymous.
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		if user, ok := sess.User(); ok {
			fmt.Fprintf(out, "logged in as %s\n", user.Email)
		} else {
			fmt.Fprintln(out, "ok")
		}
	}
	return exitcode.Success
}
