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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskflow help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, st *store.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskflow                                            List all tasks
  taskflow list [common flags] [--search <term>] [--status <s>] [--priority <p>] [--detail]
  taskflow add [common flags] [--desc <text>] [--priority <p>] [--status <s>] <title...>
  taskflow edit [common flags] [--title <t>] [--desc <text>] [--priority <p>] [--status <s>] <ref>
  taskflow done [common flags] <ref>
  taskflow rm [common flags] <ref>
  taskflow stats [common flags]
  taskflow register [common flags] <name> <email> <password>
  taskflow login [common flags] <email> <password>
  taskflow logout [common flags]
  taskflow reset-password [common flags] <email>
  taskflow reset-password [common flags] --token <token> <new-password>
  taskflow whoami [common flags]
  taskflow profile [common flags] --name <name>
  taskflow help
  taskflow version

Statuses:   not-started, in-progress, completed (filter wildcard: all)
Priorities: low, medium, high (filter wildcard: all)

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
