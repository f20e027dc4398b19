package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hlsx/internal/download"
	"hlsx/internal/extract"
	"hlsx/internal/history"
	"hlsx/internal/hls"
	"hlsx/internal/httputil"
	"hlsx/internal/media"
	"hlsx/internal/player"
	"hlsx/internal/ui"
)

// streamOutput is the machine-readable form of a resolved stream.
type streamOutput struct {
	Title     string            `json:"title" yaml:"title"`
	URL       string            `json:"url" yaml:"url"`
	Quality   string            `json:"quality" yaml:"quality"`
	Bandwidth int               `json:"bandwidth,omitempty" yaml:"bandwidth,omitempty"`
	Headers   map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// playRun is the default command: hlsx <playlist-url>
func playRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	return playFlow(cmd.Context(), cmd.OutOrStdout(), args[0], httputil.TitleFromURL(args[0]), 0)
}

// playFlow resolves playlistURL to a stream and plays or downloads it.
// startPos > 0 resumes from that position.
func playFlow(ctx context.Context, out io.Writer, playlistURL, title string, startPos float64) error {
	ext := newExtractor()

	stream, err := pickStream(ctx, ext, playlistURL)
	if err != nil {
		return err
	}
	debugf("stream URL: %s (%s)", stream.URL, stream.Quality)

	if flagFormat != formatText {
		return writeOutput(out, flagFormat, streamOutput{
			Title:     title,
			URL:       stream.URL,
			Quality:   stream.Quality,
			Bandwidth: stream.Bandwidth,
			Headers:   stream.Headers,
		}, nil)
	}

	if flagDownload {
		dir := flagOutput
		if dir == "" {
			dir, err = cfg.ExpandDownloadDir()
			if err != nil {
				return fmt.Errorf("resolving download dir: %w", err)
			}
		}
		outputPath, err := download.Download(ctx, stream, title, dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Downloaded: %s\n", outputPath)
		return nil
	}

	var store *history.Store
	if cfg.History {
		store, err = history.OpenDefault()
		if err != nil {
			logger.Warn().Err(err).Msg("history unavailable")
		} else {
			defer store.Close()
		}
	}

	if startPos == 0 && flagContinue && store != nil {
		if entry, ok, err := store.Find(ctx, playlistURL); err == nil && ok {
			startPos = entry.Position
			debugf("resuming from position: %.0fs", startPos)
		}
	}

	p := player.New(cfg.Player)
	if !p.Available() {
		return fmt.Errorf("player %q not found in PATH", cfg.Player)
	}

	lastPos, err := p.Play(stream, title, startPos)
	if err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}

	if store != nil {
		entry := media.HistoryEntry{
			URL:       playlistURL,
			Title:     title,
			StreamURL: stream.URL,
			Quality:   stream.Quality,
			Position:  lastPos,
			Duration:  streamDuration(ctx, ext, stream.URL),
		}
		if err := store.Save(ctx, entry); err != nil {
			debugf("saving history failed: %v", err)
		}
	}

	return nil
}

// pickStream resolves the stream by configured preference, or lets the
// user choose when --select is set and there is more than one variant.
func pickStream(ctx context.Context, ext *extract.Extractor, playlistURL string) (*media.Stream, error) {
	if !flagSelect {
		return ext.Resolve(ctx, playlistURL, cfg.Quality, nil)
	}

	qualities, err := ext.Qualities(ctx, playlistURL, nil)
	if err != nil {
		return nil, err
	}

	idx := 0
	if len(qualities) > 1 {
		items := make([]string, len(qualities))
		for i, q := range qualities {
			items[i] = q.Title
		}
		idx, err = ui.Select("Quality", items)
		if err != nil {
			return nil, err
		}
	}

	q := qualities[idx]
	return &media.Stream{
		URL:       q.URL,
		Headers:   ext.Headers(nil),
		Quality:   strings.TrimSuffix(q.Title, hls.BestMarker),
		Bandwidth: q.Bandwidth,
	}, nil
}

// streamDuration returns the total duration of a VOD media playlist, or 0
// for live streams and on any error.
func streamDuration(ctx context.Context, ext *extract.Extractor, streamURL string) float64 {
	p, err := ext.Playlist(ctx, streamURL, nil)
	if err != nil || p.IsLive {
		return 0
	}
	return p.TotalDuration()
}
