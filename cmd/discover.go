package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hlsx/internal/discover"
	"hlsx/internal/httputil"
	"hlsx/internal/ui"
)

var discoverCmd = &cobra.Command{
	Use:   "discover <page-url>",
	Short: "Find HLS playlists referenced by a web page",
	Args:  cobra.ExactArgs(1),
	RunE:  discoverRun,
}

var flagPlay bool

func init() {
	discoverCmd.Flags().BoolVarP(&flagPlay, "play", "p", false, "Pick a discovered playlist and play it")
}

func discoverRun(cmd *cobra.Command, args []string) error {
	pageURL := args[0]
	fetcher := httputil.NewFetcher(httputil.NewClient(cfg.RequestTimeout()), logger)

	body, err := fetcher.Fetch(cmd.Context(), pageURL, cfg.RequestHeaders())
	if err != nil {
		return fmt.Errorf("fetching page: %w", err)
	}

	playlists, err := discover.Playlists(bytes.NewReader(body), pageURL)
	if err != nil {
		return err
	}
	debugf("discovered %d playlists on %s", len(playlists), pageURL)

	if flagPlay {
		if len(playlists) == 0 {
			return fmt.Errorf("no playlists found on %s", pageURL)
		}
		idx, err := ui.Select("Playlist", playlists)
		if err != nil {
			return err
		}
		// The embedding page is the referer unless one is configured.
		if cfg.Referer == "" {
			cfg.Referer = pageURL
		}
		return playFlow(cmd.Context(), cmd.OutOrStdout(), playlists[idx], httputil.TitleFromURL(pageURL), 0)
	}

	return writeOutput(cmd.OutOrStdout(), flagFormat, playlists, func(w io.Writer) error {
		if len(playlists) == 0 {
			_, err := fmt.Fprintln(w, "No playlists found.")
			return err
		}
		for _, p := range playlists {
			if _, err := fmt.Fprintln(w, p); err != nil {
				return err
			}
		}
		return nil
	})
}
