// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"hlsx/internal/config"
	"hlsx/internal/extract"
	"hlsx/internal/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagDownload  bool
	flagOutput    string
	flagQuality   string
	flagPlayer    string
	flagSelect    bool
	flagContinue  bool
	flagFormat    string
	flagHeaders   []string
	flagReferer   string
	flagUserAgent string
	flagTimeout   int
	flagDebug     bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

// logger is built in loadConfig once the debug setting is known.
var logger = zerolog.Nop()

var rootCmd = &cobra.Command{
	Use:   "hlsx [playlist-url]",
	Short: "Play, inspect and download HLS streams from the terminal",
	Long: `hlsx resolves an HLS playlist URL to a playable stream.
Master playlists are expanded into their quality variants; the chosen variant
is played with mpv/vlc or downloaded with ffmpeg, with the same request
headers used for the playlist.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: loadConfig,
	RunE:              playRun,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagQuality, "quality", "q", "", "Video quality: best | worst | 360 | 480 | 720 | 1080 | 1440 | 2160")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Media player: mpv | vlc | iina | celluloid")
	rootCmd.PersistentFlags().StringArrayVarP(&flagHeaders, "header", "H", nil, `Extra request header "Name: value" (repeatable)`)
	rootCmd.PersistentFlags().StringVarP(&flagReferer, "referer", "r", "", "Referer header for playlist and media requests")
	rootCmd.PersistentFlags().StringVarP(&flagUserAgent, "user-agent", "A", "", "User-Agent header for playlist and media requests")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "Request timeout in seconds")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", formatText, "Output format: text | json | yaml")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.Flags().BoolVarP(&flagDownload, "download", "d", false, "Download with ffmpeg instead of playing")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Download directory (default: download_dir from config)")
	rootCmd.Flags().BoolVarP(&flagSelect, "select", "s", false, "Pick the quality interactively")
	rootCmd.Flags().BoolVarP(&flagContinue, "continue", "c", false, "Auto-resume from history")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(qualitiesCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := applyFlags(cfg); err != nil {
		return err
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !validFormats[flagFormat] {
		return fmt.Errorf("unsupported format %q (valid: text, json, yaml)", flagFormat)
	}

	logger = newLogger(cfg.Debug)
	return nil
}

// applyFlags copies explicitly set CLI flags over c.
func applyFlags(c *config.Config) error {
	if flagPlayer != "" {
		c.Player = flagPlayer
	}
	if flagQuality != "" {
		c.Quality = flagQuality
	}
	if flagReferer != "" {
		c.Referer = flagReferer
	}
	if flagUserAgent != "" {
		c.UserAgent = flagUserAgent
	}
	if flagTimeout != 0 {
		c.Timeout = flagTimeout
	}
	if flagDebug {
		c.Debug = true
	}

	headers, err := parseHeaders(flagHeaders)
	if err != nil {
		return err
	}
	if len(headers) > 0 && c.Headers == nil {
		c.Headers = make(map[string]string, len(headers))
	}
	for k, v := range headers {
		c.Headers[k] = v
	}
	return nil
}

// parseHeaders parses repeated "Name: value" flags.
func parseHeaders(raw []string) (map[string]string, error) {
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q (want \"Name: value\")", h)
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Str("app", "hlsx").
		Logger()
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...any) {
	logger.Debug().Msgf(format, args...)
}

// newExtractor builds an extractor from the loaded configuration.
func newExtractor() *extract.Extractor {
	fetcher := httputil.NewFetcher(httputil.NewClient(cfg.RequestTimeout()), logger)
	return extract.New(fetcher, cfg.RequestHeaders(), logger)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// Skip config loading so version works with a broken config file.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hlsx %s\n", Version)
	},
}
