package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/session"
	"taskflow/internal/store"
)

func init() {
	Register(&ResetPasswordCmd{})
}

// ResetPasswordCmd implements the reset-password command. Without -token it
// requests a reset link for an email address; with -token it completes the
// reset with a new password.
type ResetPasswordCmd struct {
	token string
}

// SetToken sets the reset token (for testing).
func (c *ResetPasswordCmd) SetToken(token string) {
	c.token = token
}

func (c *ResetPasswordCmd) Name() string      { return "reset-password" }
func (c *ResetPasswordCmd) Aliases() []string { return nil }
func (c *ResetPasswordCmd) Synopsis() string  { return "Request or complete a password reset" }
func (c *ResetPasswordCmd) Usage() string {
	return "taskflow reset-password <email> | taskflow reset-password --token <token> <new-password>"
}
func (c *ResetPasswordCmd) NeedsAuth() bool { return false }

func (c *ResetPasswordCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.token, "token", "", "")
	fs.StringVar(&c.token, "t", "", "")
}

func (c *ResetPasswordCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		if c.token == "" {
			fmt.Fprintln(errOut, "error: email required")
		} else {
			fmt.Fprintln(errOut, "error: new password required")
		}
		return exitcode.UserError
	}

	var (
		msg string
		err error
	)
	if c.token == "" {
		msg, err = sess.RequestPasswordReset(ctx, args[0])
	} else {
		msg, err = sess.CompletePasswordReset(ctx, c.token, args[0])
	}
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, msg)
	}
	return exitcode.Success
}
