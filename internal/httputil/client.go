// Package httputil provides a security-hardened HTTP client for fetching
// playlists, plus path sanitization helpers for downloads.
package httputil

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultUserAgent is sent when the caller supplies no User-Agent header.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/121.0"

// maxPlaylistSize caps how much of a response body is read.
const maxPlaylistSize = 10 * 1024 * 1024

var (
	// ErrInvalidURL is returned when a playlist URL cannot be used for a request.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrInvalidContent is returned when fetched bytes are not UTF-8 text.
	ErrInvalidContent = errors.New("invalid content")
)

// StatusError reports a non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// NewClient creates a hardened HTTP client with secure defaults.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			ForceAttemptHTTP2:   true,
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			DisableCompression:  false,
			MaxIdleConnsPerHost: 5,
		},
	}
}

// Fetcher retrieves raw response bodies over HTTP.
type Fetcher struct {
	client *http.Client
	logger zerolog.Logger
}

// NewFetcher wraps client. A nil client gets NewClient's defaults.
func NewFetcher(client *http.Client, logger zerolog.Logger) *Fetcher {
	if client == nil {
		client = NewClient(0)
	}
	return &Fetcher{client: client, logger: logger}
}

// Fetch performs a GET request with the given headers and returns the body.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrInvalidURL, err)
	}

	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "application/vnd.apple.mpegurl,application/x-mpegURL,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	f.logger.Debug().Str("url", rawURL).Msg("fetching")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	f.logger.Debug().Str("url", rawURL).Int("status", resp.StatusCode).Msg("fetched")

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPlaylistSize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return body, nil
}
