// Package probe fetches and parses every variant of a master playlist
// concurrently and summarises each one.
package probe

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"hlsx/internal/hls"
)

// DefaultConcurrency bounds simultaneous variant fetches.
const DefaultConcurrency = 4

// PlaylistFetcher fetches and parses a media playlist.
type PlaylistFetcher interface {
	Playlist(ctx context.Context, playlistURL string, overrides map[string]string) (hls.Playlist, error)
}

// Result summarises one probed variant.
type Result struct {
	Quality        hls.StreamQuality `json:"quality" yaml:"quality"`
	Segments       int               `json:"segments" yaml:"segments"`
	Duration       float64           `json:"duration" yaml:"duration"`
	TargetDuration *float64          `json:"target_duration,omitempty" yaml:"target_duration,omitempty"`
	IsLive         bool              `json:"is_live" yaml:"is_live"`
	Error          string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// Prober runs variant probes with bounded concurrency.
type Prober struct {
	fetcher     PlaylistFetcher
	concurrency int
	progress    io.Writer
}

// New creates a Prober. concurrency < 1 uses DefaultConcurrency.
func New(fetcher PlaylistFetcher, concurrency int) *Prober {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Prober{fetcher: fetcher, concurrency: concurrency, progress: io.Discard}
}

// WithProgress renders a progress bar to w while probing.
func (p *Prober) WithProgress(w io.Writer) *Prober {
	p.progress = w
	return p
}

// Probe fetches every quality's playlist. Results keep the order of
// qualities; a failed fetch is reported in Result.Error and does not stop
// the others. Variants not started before ctx is done record ctx's error.
func (p *Prober) Probe(ctx context.Context, qualities []hls.StreamQuality, overrides map[string]string) []Result {
	results := make([]Result, len(qualities))

	bar := progressbar.NewOptions(len(qualities),
		progressbar.OptionSetWriter(p.progress),
		progressbar.OptionSetDescription("Probing variants"),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	defer bar.Finish()

	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup

	for i, q := range qualities {
		results[i].Quality = q

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			results[i].Error = ctx.Err().Error()
			continue
		}

		wg.Add(1)
		go func(i int, q hls.StreamQuality) {
			defer wg.Done()
			defer func() { <-sem }()

			probeOne(ctx, p.fetcher, q, overrides, &results[i])
			bar.Add(1)
		}(i, q)
	}

	wg.Wait()
	return results
}

func probeOne(ctx context.Context, fetcher PlaylistFetcher, q hls.StreamQuality, overrides map[string]string, r *Result) {
	playlist, err := fetcher.Playlist(ctx, q.URL, overrides)
	if err != nil {
		r.Error = err.Error()
		return
	}
	r.Segments = len(playlist.Segments)
	r.Duration = playlist.TotalDuration()
	r.TargetDuration = playlist.TargetDuration
	r.IsLive = playlist.IsLive
}
