// Package validate checks a playlist against a strict HLS decoder and
// compares the result with what the lenient parser extracts.
package validate

import (
	"fmt"
	"math"
	"strings"

	"github.com/grafov/m3u8"

	"hlsx/internal/hls"
)

// Playlist types reported by Check.
const (
	TypeMaster  = "master"
	TypeMedia   = "media"
	TypeUnknown = "unknown"
)

// Strict is the strict decoder's view of a playlist.
type Strict struct {
	Valid          bool    `json:"valid" yaml:"valid"`
	Error          string  `json:"error,omitempty" yaml:"error,omitempty"`
	Type           string  `json:"type" yaml:"type"`
	Version        uint8   `json:"version,omitempty" yaml:"version,omitempty"`
	Variants       int     `json:"variants,omitempty" yaml:"variants,omitempty"`
	Alternatives   int     `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
	Segments       int     `json:"segments,omitempty" yaml:"segments,omitempty"`
	TargetDuration float64 `json:"target_duration,omitempty" yaml:"target_duration,omitempty"`
	MediaSequence  uint64  `json:"media_sequence,omitempty" yaml:"media_sequence,omitempty"`
	Closed         bool    `json:"closed,omitempty" yaml:"closed,omitempty"`
}

// Lenient is the line parser's view of the same playlist.
type Lenient struct {
	Type     string `json:"type" yaml:"type"`
	Variants int    `json:"variants" yaml:"variants"`
	Segments int    `json:"segments" yaml:"segments"`
	IsLive   bool   `json:"is_live" yaml:"is_live"`
}

// Report is the result of checking one playlist.
type Report struct {
	URL      string   `json:"url" yaml:"url"`
	Strict   Strict   `json:"strict" yaml:"strict"`
	Lenient  Lenient  `json:"lenient" yaml:"lenient"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// OK reports whether the playlist passed strict decoding without warnings.
func (r Report) OK() bool {
	return r.Strict.Valid && len(r.Warnings) == 0
}

// Check decodes content strictly and leniently. It never fails; decode
// errors are recorded in the report.
func Check(content, playlistURL string) Report {
	r := Report{
		URL:     playlistURL,
		Strict:  decodeStrict(content),
		Lenient: decodeLenient(content, playlistURL),
	}
	r.Warnings = compare(content, playlistURL, r)
	return r
}

func decodeStrict(content string) Strict {
	s := Strict{Type: TypeUnknown}

	pl, listType, err := m3u8.DecodeFrom(strings.NewReader(content), true)
	if err != nil {
		s.Error = err.Error()
		return s
	}
	s.Valid = true

	switch listType {
	case m3u8.MASTER:
		master := pl.(*m3u8.MasterPlaylist)
		s.Type = TypeMaster
		s.Version = master.Version()
		for _, v := range master.Variants {
			if v == nil {
				continue
			}
			s.Variants++
			for _, alt := range v.Alternatives {
				if alt != nil {
					s.Alternatives++
				}
			}
		}
	case m3u8.MEDIA:
		media := pl.(*m3u8.MediaPlaylist)
		s.Type = TypeMedia
		s.Version = media.Version()
		s.TargetDuration = media.TargetDuration
		s.MediaSequence = media.SeqNo
		s.Closed = media.Closed
		// Segments is a ring buffer with nil padding.
		for _, seg := range media.Segments {
			if seg != nil {
				s.Segments++
			}
		}
	}

	return s
}

func decodeLenient(content, playlistURL string) Lenient {
	if hls.HasVariants(content) {
		qualities := hls.ExtractQualities(content, playlistURL)
		return Lenient{Type: TypeMaster, Variants: len(qualities)}
	}
	p := hls.Parse(content, playlistURL)
	return Lenient{Type: TypeMedia, Segments: len(p.Segments), IsLive: p.IsLive}
}

func compare(content, playlistURL string, r Report) []string {
	var warnings []string

	if !strings.HasPrefix(strings.TrimSpace(content), "#EXTM3U") {
		warnings = append(warnings, "missing #EXTM3U header")
	}

	if !r.Strict.Valid {
		return warnings
	}

	if r.Strict.Type != r.Lenient.Type {
		warnings = append(warnings, fmt.Sprintf("type mismatch: strict %s, lenient %s", r.Strict.Type, r.Lenient.Type))
		return warnings
	}

	switch r.Strict.Type {
	case TypeMaster:
		if r.Strict.Variants != r.Lenient.Variants {
			warnings = append(warnings, fmt.Sprintf("variant count mismatch: strict %d, lenient %d", r.Strict.Variants, r.Lenient.Variants))
		}
	case TypeMedia:
		if r.Strict.Segments != r.Lenient.Segments {
			warnings = append(warnings, fmt.Sprintf("segment count mismatch: strict %d, lenient %d", r.Strict.Segments, r.Lenient.Segments))
		}
		if r.Strict.Closed == r.Lenient.IsLive {
			warnings = append(warnings, "end-of-list disagreement between decoders")
		}
		warnings = append(warnings, durationWarnings(hls.Parse(content, playlistURL))...)
	}

	return warnings
}

// durationWarnings flags segments longer than the rounded target duration.
func durationWarnings(p hls.Playlist) []string {
	if p.TargetDuration == nil {
		return []string{"media playlist has no #EXT-X-TARGETDURATION"}
	}
	limit := math.Round(*p.TargetDuration)

	var warnings []string
	for i, seg := range p.Segments {
		if math.Round(seg.Duration) > limit {
			warnings = append(warnings, fmt.Sprintf("segment %d duration %.3f exceeds target duration %.0f", i, seg.Duration, limit))
		}
	}
	return warnings
}
