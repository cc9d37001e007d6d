package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestDefaultConfigDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	want := filepath.Join("/tmp/xdg", AppName)
	if got := DefaultConfigDir(); got != want {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := &Config{Dir: t.TempDir()}

	if cfg.HasToken() {
		t.Fatal("fresh dir reports a token")
	}

	tok := &oauth2.Token{AccessToken: "abc123", TokenType: "Bearer"}
	if err := cfg.SaveToken(tok); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}
	if !cfg.HasToken() {
		t.Fatal("HasToken false after save")
	}

	info, err := os.Stat(cfg.TokenPath())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("credential file mode %o, want 0600", perm)
	}

	loaded, err := cfg.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken failed: %v", err)
	}
	if loaded.AccessToken != "abc123" || loaded.TokenType != "Bearer" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestRemoveTokenIdempotent(t *testing.T) {
	cfg := &Config{Dir: t.TempDir()}

	if err := cfg.SaveToken(&oauth2.Token{AccessToken: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := cfg.RemoveToken(); err != nil {
		t.Fatalf("RemoveToken failed: %v", err)
	}
	if cfg.HasToken() {
		t.Fatal("token still present after remove")
	}
	// Removing again must not error.
	if err := cfg.RemoveToken(); err != nil {
		t.Errorf("second RemoveToken errored: %v", err)
	}
}

func TestLoadSettings(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg := &Config{Dir: t.TempDir()}
		s, err := cfg.LoadSettings()
		if err != nil {
			t.Fatalf("LoadSettings failed: %v", err)
		}
		if s.BaseURL != DefaultBaseURL || s.RequestTimeout != DefaultRequestTimeout {
			t.Errorf("unexpected defaults: %+v", s)
		}
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg := &Config{Dir: t.TempDir()}
		content := "base_url: https://tasks.example.com/api\nrequest_timeout: 30s\n"
		if err := os.WriteFile(cfg.SettingsPath(), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		s, err := cfg.LoadSettings()
		if err != nil {
			t.Fatalf("LoadSettings failed: %v", err)
		}
		if s.BaseURL != "https://tasks.example.com/api" {
			t.Errorf("base_url not applied: %q", s.BaseURL)
		}
		if s.RequestTimeout != 30*time.Second {
			t.Errorf("request_timeout not applied: %v", s.RequestTimeout)
		}
	})

	t.Run("partial file keeps remaining defaults", func(t *testing.T) {
		cfg := &Config{Dir: t.TempDir()}
		if err := os.WriteFile(cfg.SettingsPath(), []byte("base_url: https://x.example\n"), 0644); err != nil {
			t.Fatal(err)
		}
		s, err := cfg.LoadSettings()
		if err != nil {
			t.Fatalf("LoadSettings failed: %v", err)
		}
		if s.RequestTimeout != DefaultRequestTimeout {
			t.Errorf("timeout default lost: %v", s.RequestTimeout)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		cfg := &Config{Dir: t.TempDir()}
		if err := os.WriteFile(cfg.SettingsPath(), []byte("base_url: [unclosed\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := cfg.LoadSettings(); err == nil {
			t.Fatal("expected error for malformed settings")
		}
	})
}
