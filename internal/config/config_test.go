package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Player != "mpv" {
		t.Errorf("default player = %q, want mpv", cfg.Player)
	}
	if cfg.Quality != "best" {
		t.Errorf("default quality = %q, want best", cfg.Quality)
	}
	if cfg.UserAgent == "" {
		t.Error("default user agent should be set")
	}
	if !cfg.History {
		t.Error("default history should be true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"invalid player", func(c *Config) { c.Player = "notepad" }, true},
		{"invalid quality", func(c *Config) { c.Quality = "4k" }, true},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
		{"huge timeout", func(c *Config) { c.Timeout = 3600 }, true},
		{"bad referer", func(c *Config) { c.Referer = "javascript:alert(1)" }, true},
		{"header injection", func(c *Config) { c.Headers = map[string]string{"X-A": "1\r\nX-B: 2"} }, true},
		{"header name with colon", func(c *Config) { c.Headers = map[string]string{"X:A": "1"} }, true},
		{"valid vlc", func(c *Config) { c.Player = "vlc" }, false},
		{"valid 720", func(c *Config) { c.Quality = "720" }, false},
		{"valid 1080p", func(c *Config) { c.Quality = "1080p" }, false},
		{"valid worst", func(c *Config) { c.Quality = "worst" }, false},
		{"valid referer", func(c *Config) { c.Referer = "https://player.example.com/" }, false},
		{"valid header", func(c *Config) { c.Headers = map[string]string{"Origin": "https://player.example.com"} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	dir := filepath.Join(tmpDir, "hlsx")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	content := `
player = "vlc"
quality = "720"
referer = "https://player.example.com/"
timeout = 10
history = false

[headers]
Origin = "https://player.example.com"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Player != "vlc" {
		t.Errorf("player = %q, want vlc", cfg.Player)
	}
	if cfg.Quality != "720" {
		t.Errorf("quality = %q, want 720", cfg.Quality)
	}
	if cfg.History {
		t.Error("history should be false")
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", cfg.RequestTimeout())
	}

	headers := cfg.RequestHeaders()
	if headers["Origin"] != "https://player.example.com" {
		t.Errorf("Origin header = %q", headers["Origin"])
	}
	if headers["Referer"] != "https://player.example.com/" {
		t.Errorf("Referer header = %q", headers["Referer"])
	}
	if headers["User-Agent"] == "" {
		t.Error("User-Agent should keep its default")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	os.MkdirAll(filepath.Join(tmpDir, "hlsx"), 0755)
	os.WriteFile(filepath.Join(tmpDir, "hlsx", "config.toml"), []byte(`player = "winamp"`), 0644)

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject unsupported player")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}
	if cfg.Player != "mpv" {
		t.Errorf("missing file should return defaults, got player = %q", cfg.Player)
	}
}

func TestExpandDownloadDir(t *testing.T) {
	cfg := Default()
	cfg.DownloadDir = "/tmp/test-downloads"

	dir, err := cfg.ExpandDownloadDir()
	if err != nil {
		t.Fatalf("ExpandDownloadDir() error: %v", err)
	}
	if dir != "/tmp/test-downloads" {
		t.Errorf("got %q, want /tmp/test-downloads", dir)
	}
}

func TestHistoryPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)

	path, err := HistoryPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(tmpDir, "hlsx", "history.db"); path != want {
		t.Errorf("HistoryPath() = %q, want %q", path, want)
	}
}
