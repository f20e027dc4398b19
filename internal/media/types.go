// Package media defines shared types for the hlsx application.
package media

import (
	"strings"
	"time"
)

// Stream is a resolved, playable stream handed to a player or downloader.
type Stream struct {
	URL       string            // Absolute media playlist (or direct media) URL
	Headers   map[string]string // Request headers the stream must be fetched with
	Quality   string            // Human-readable quality label, e.g. "1080p (FHD)"
	Bandwidth int               // Declared bandwidth in bits/sec, 0 if unknown
}

// Header returns the value of a header, matching the name case-insensitively.
func (s *Stream) Header(name string) string {
	for k, v := range s.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// HistoryEntry represents a single entry in the play history.
type HistoryEntry struct {
	URL       string    `json:"url" yaml:"url"`                               // Playlist URL the user asked for
	Title     string    `json:"title" yaml:"title"`                           // Display title
	StreamURL string    `json:"stream_url" yaml:"stream_url"`                 // Variant URL that was actually played
	Quality   string    `json:"quality,omitempty" yaml:"quality,omitempty"`   // Quality label of the played variant
	Position  float64   `json:"position" yaml:"position"`                     // Last playback position in seconds
	Duration  float64   `json:"duration,omitempty" yaml:"duration,omitempty"` // Total duration in seconds, 0 if unknown or live
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`                 // Last time the entry was written
}
