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
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd prints the server-computed aggregate snapshot.
type StatsCmd struct{}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Show task statistics" }
func (c *StatsCmd) Usage() string     { return "taskflow stats [common flags]" }
func (c *StatsCmd) NeedsAuth() bool   { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, st *store.Store, args []string, out, errOut io.Writer) int {
	if err := st.Load(ctx); err != nil {
		return fail(errOut, err)
	}

	stats, ok := st.Stats()
	if !ok {
		fmt.Fprintln(errOut, "error: stats unavailable")
		return exitcode.BackendError
	}

	output.FormatStats(out, stats)
	return exitcode.Success
}
