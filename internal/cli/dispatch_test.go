package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"golang.org/x/oauth2"

	"taskflow/internal/cli"
	"taskflow/internal/commands"
	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/service"
	"taskflow/internal/testutil"
)

// runDispatch runs the dispatcher against the default registry with a fake
// backend, using dir as the config directory.
func runDispatch(t *testing.T, fake *testutil.FakeAPI, dir string, args []string) (stdout, stderr string, code int) {
	t.Helper()

	factory := func(ctx context.Context, cfg *config.Config) (service.API, error) {
		return fake, nil
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, factory)

	full := append([]string{}, args...)
	if len(full) > 0 {
		// Common flags go after the command name.
		full = append([]string{full[0], "-config", dir}, full[1:]...)
	}

	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), full, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// saveCredential persists a token so auth-gated commands find a session to
// restore.
func saveCredential(t *testing.T, dir string) {
	t.Helper()
	cfg := &config.Config{Dir: dir}
	if err := cfg.SaveToken(&oauth2.Token{AccessToken: "fake-token", TokenType: "Bearer"}); err != nil {
		t.Fatal(err)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, stderr, code := runDispatch(t, testutil.NewFakeAPI(), t.TempDir(), []string{"bogus"})

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "unknown command: bogus") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestFlagBeforeCommand(t *testing.T) {
	_, stderr, code := runDispatch(t, testutil.NewFakeAPI(), t.TempDir(), []string{"-quiet", "version"})

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "unknown command") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestUnknownFlag(t *testing.T) {
	_, stderr, code := runDispatch(t, testutil.NewFakeAPI(), t.TempDir(), []string{"version", "-bogus"})

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "unknown flag: bogus") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestVersionThroughDispatcher(t *testing.T) {
	stdout, _, code := runDispatch(t, testutil.NewFakeAPI(), t.TempDir(), []string{"version"})

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "taskflow "+commands.Version+"\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestAuthGateWithoutCredential(t *testing.T) {
	_, stderr, code := runDispatch(t, testutil.NewFakeAPI(), t.TempDir(), []string{"list"})

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "not logged in (run: taskflow login)") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestAuthGateWithCredential(t *testing.T) {
	dir := t.TempDir()
	saveCredential(t, dir)

	fake := testutil.NewFakeAPI()
	fake.AddTask("Buy groceries", "milk", service.PriorityHigh, service.StatusNotStarted)

	stdout, stderr, code := runDispatch(t, fake, dir, []string{"list"})

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr: %q)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stdout, "Buy groceries") {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestStaleCredentialIsDiscarded(t *testing.T) {
	dir := t.TempDir()
	saveCredential(t, dir)

	fake := testutil.NewFakeAPI()
	fake.ProfileErr = testutil.ErrUnauthorized

	_, stderr, code := runDispatch(t, fake, dir, []string{"whoami"})

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "not logged in") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	cfg := &config.Config{Dir: dir}
	if cfg.HasToken() {
		t.Error("stale credential not discarded during restore")
	}
}

func TestCommandAlias(t *testing.T) {
	dir := t.TempDir()
	saveCredential(t, dir)

	fake := testutil.NewFakeAPI()
	_, stderr, code := runDispatch(t, fake, dir, []string{"create", "-d", "milk", "Buy", "groceries"})

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr: %q)", exitcode.Success, code, stderr)
	}
	if !fake.MatchesTitle("Buy groceries") {
		t.Error("alias did not reach the add command")
	}
}

func TestDebugPrintsNavigationSignals(t *testing.T) {
	_, stderr, code := runDispatch(t, testutil.NewFakeAPI(), t.TempDir(), []string{"login", "-debug", "test@example.com", "password"})

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr: %q)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stderr, "navigate: dashboard") {
		t.Errorf("expected navigation signal in debug output, got %q", stderr)
	}
}
