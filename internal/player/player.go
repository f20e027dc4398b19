// Package player launches external media players for a resolved stream.
// Every invocation uses exec.Command with an explicit argument slice, so
// URLs and header values never pass through a shell.
package player

import (
	"sort"
	"strings"

	"hlsx/internal/media"
)

// Player is the interface for media player implementations.
type Player interface {
	// Play starts playback of a stream. Returns the last playback position.
	Play(stream *media.Stream, title string, startPos float64) (float64, error)

	// Name returns the player name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// New creates a player by name.
func New(name string) Player {
	switch strings.ToLower(name) {
	case "mpv":
		return &MPV{}
	case "vlc":
		return &VLC{}
	case "iina", "celluloid":
		return &Generic{name: strings.ToLower(name)}
	default:
		return &MPV{}
	}
}

// splitHeaders separates User-Agent and Referer, which players take as
// dedicated options, from the remaining headers. extra is sorted by name
// so argument lists are stable.
func splitHeaders(headers map[string]string) (userAgent, referer string, extra []string) {
	for k, v := range headers {
		switch {
		case strings.EqualFold(k, "User-Agent"):
			userAgent = v
		case strings.EqualFold(k, "Referer"):
			referer = v
		default:
			extra = append(extra, k+": "+v)
		}
	}
	sort.Strings(extra)
	return userAgent, referer, extra
}

// mpvArgs builds the mpv-compatible argument list shared by mpv, iina and celluloid.
func mpvArgs(stream *media.Stream, title string, startPos float64) []string {
	args := []string{
		stream.URL,
		"--force-media-title=" + title,
	}

	ua, referer, extra := splitHeaders(stream.Headers)
	if ua != "" {
		args = append(args, "--user-agent="+ua)
	}
	if referer != "" {
		args = append(args, "--referrer="+referer)
	}
	if len(extra) > 0 {
		// mpv splits this list on commas, so escape them inside values.
		escaped := make([]string, len(extra))
		for i, h := range extra {
			escaped[i] = strings.ReplaceAll(h, ",", `\,`)
		}
		args = append(args, "--http-header-fields="+strings.Join(escaped, ","))
	}

	if startPos > 0 {
		args = append(args, "--start=+"+formatSeconds(startPos))
	}

	return args
}
