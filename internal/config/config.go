// Package config handles TOML-based configuration loading and validation.
// TOML is parsed as data only; nothing in the file is executed.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"hlsx/internal/httputil"
)

// Config holds all application configuration.
type Config struct {
	Player      string            `toml:"player"`
	Quality     string            `toml:"quality"`
	UserAgent   string            `toml:"user_agent"`
	Referer     string            `toml:"referer"`
	Headers     map[string]string `toml:"headers"`
	Timeout     int               `toml:"timeout"` // seconds
	History     bool              `toml:"history"`
	DownloadDir string            `toml:"download_dir"`
	Debug       bool              `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Player:      "mpv",
		Quality:     "best",
		UserAgent:   httputil.DefaultUserAgent,
		Timeout:     30,
		History:     true,
		DownloadDir: "~/Videos/hlsx",
		Debug:       false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hlsx"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "hlsx"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

var validQualities = map[string]bool{
	"best": true, "worst": true,
	"4320": true, "2160": true, "1440": true, "1080": true, "720": true, "480": true, "360": true,
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	validPlayers := map[string]bool{
		"mpv": true, "vlc": true, "iina": true, "celluloid": true,
	}
	if !validPlayers[strings.ToLower(c.Player)] {
		return fmt.Errorf("unsupported player %q (valid: mpv, vlc, iina, celluloid)", c.Player)
	}

	if !validQualities[strings.TrimSuffix(strings.ToLower(c.Quality), "p")] {
		return fmt.Errorf("unsupported quality %q (valid: best, worst, 4320, 2160, 1440, 1080, 720, 480, 360)", c.Quality)
	}

	if c.Timeout < 1 || c.Timeout > 300 {
		return fmt.Errorf("timeout %d out of range (1-300 seconds)", c.Timeout)
	}

	if c.Referer != "" {
		if err := httputil.ValidateURL(c.Referer); err != nil {
			return fmt.Errorf("invalid referer: %w", err)
		}
	}

	for k, v := range c.Headers {
		if k == "" || strings.ContainsAny(k, " :\r\n") || strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("invalid header %q", k)
		}
	}

	return nil
}

// RequestHeaders returns the headers every playlist request carries.
func (c *Config) RequestHeaders() map[string]string {
	headers := make(map[string]string, len(c.Headers)+2)
	for k, v := range c.Headers {
		headers[k] = v
	}
	if c.UserAgent != "" {
		headers["User-Agent"] = c.UserAgent
	}
	if c.Referer != "" {
		headers["Referer"] = c.Referer
	}
	return headers
}

// RequestTimeout returns the configured timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// ExpandDownloadDir resolves ~ in the download directory path.
func (c *Config) ExpandDownloadDir() (string, error) {
	dir := c.DownloadDir
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}

// HistoryPath returns the path to the history database.
func HistoryPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "hlsx", "history.db"), nil
}
