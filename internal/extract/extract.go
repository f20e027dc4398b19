// Package extract turns a playlist URL into a playable stream: it fetches
// the playlist, parses it and picks a variant for the player.
package extract

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"hlsx/internal/hls"
	"hlsx/internal/httputil"
	"hlsx/internal/media"
)

// Boundary errors. Both come from the fetch/decode step, never from parsing.
var (
	ErrInvalidURL     = httputil.ErrInvalidURL
	ErrInvalidContent = httputil.ErrInvalidContent
)

// Fetcher retrieves the raw bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error)
}

// Extractor resolves playlist URLs. It holds no per-request state and is
// safe for concurrent use.
type Extractor struct {
	fetcher Fetcher
	headers map[string]string
	logger  zerolog.Logger
}

// New creates an Extractor. headers are sent with every request unless a
// call overrides them.
func New(fetcher Fetcher, headers map[string]string, logger zerolog.Logger) *Extractor {
	return &Extractor{
		fetcher: fetcher,
		headers: maps.Clone(headers),
		logger:  logger,
	}
}

// Headers merges per-call overrides over the extractor's default headers.
// Empty override values remove the default.
func (e *Extractor) Headers(overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(e.headers)+len(overrides))
	for k, v := range e.headers {
		if v != "" {
			merged[k] = v
		}
	}
	for k, v := range overrides {
		for existing := range merged {
			if strings.EqualFold(existing, k) {
				delete(merged, existing)
			}
		}
		if v != "" {
			merged[k] = v
		}
	}
	return merged
}

// FetchText downloads a playlist and decodes it as UTF-8 text.
func (e *Extractor) FetchText(ctx context.Context, playlistURL string, overrides map[string]string) (string, error) {
	body, err := e.fetcher.Fetch(ctx, playlistURL, e.Headers(overrides))
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", playlistURL, err)
	}
	if !utf8.Valid(body) {
		return "", fmt.Errorf("%w: %s is not UTF-8 text", ErrInvalidContent, playlistURL)
	}
	return strings.TrimPrefix(string(body), "\uFEFF"), nil
}

// Playlist fetches and parses a playlist.
func (e *Extractor) Playlist(ctx context.Context, playlistURL string, overrides map[string]string) (hls.Playlist, error) {
	text, err := e.FetchText(ctx, playlistURL, overrides)
	if err != nil {
		return hls.Playlist{}, err
	}
	return hls.Parse(text, playlistURL), nil
}

// Qualities fetches a playlist and lists its variants, best first. A media
// playlist yields the single "Default" entry pointing back at playlistURL.
func (e *Extractor) Qualities(ctx context.Context, playlistURL string, overrides map[string]string) ([]hls.StreamQuality, error) {
	text, err := e.FetchText(ctx, playlistURL, overrides)
	if err != nil {
		return nil, err
	}
	qualities := hls.ExtractQualities(text, playlistURL)
	e.logger.Debug().Str("url", playlistURL).Int("variants", len(qualities)).Msg("extracted qualities")
	return qualities, nil
}

// ResolveBestStreamURL returns the URL of the highest-bandwidth variant of
// playlistURL. A media playlist resolves to itself. Any error falls back to
// returning playlistURL unchanged.
func (e *Extractor) ResolveBestStreamURL(ctx context.Context, playlistURL string, overrides map[string]string) string {
	qualities, err := e.Qualities(ctx, playlistURL, overrides)
	if err != nil {
		e.logger.Warn().Err(err).Str("url", playlistURL).Msg("falling back to original playlist URL")
		return playlistURL
	}
	best, ok := hls.SelectQuality(qualities, hls.PreferBest)
	if !ok {
		return playlistURL
	}
	return best.URL
}

// Resolve picks the variant matching preference (see hls.SelectQuality)
// and returns it with the headers the player must use. Unlike
// ResolveBestStreamURL, fetch errors are returned.
func (e *Extractor) Resolve(ctx context.Context, playlistURL, preference string, overrides map[string]string) (*media.Stream, error) {
	qualities, err := e.Qualities(ctx, playlistURL, overrides)
	if err != nil {
		return nil, err
	}

	q, ok := hls.SelectQuality(qualities, preference)
	if !ok {
		return nil, fmt.Errorf("no variants in %s", playlistURL)
	}
	e.logger.Debug().Str("preference", preference).Str("url", q.URL).Int("bandwidth", q.Bandwidth).Msg("selected variant")

	return &media.Stream{
		URL:       q.URL,
		Headers:   e.Headers(overrides),
		Quality:   strings.TrimSuffix(q.Title, hls.BestMarker),
		Bandwidth: q.Bandwidth,
	}, nil
}
