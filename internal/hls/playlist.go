// Package hls parses HLS (.m3u8) playlists and ranks the variant streams
// of master playlists. Everything here is pure: no I/O, no shared state.
package hls

// Tag vocabulary recognized by the parser. Matching is case-sensitive.
const (
	tagVersion        = "#EXT-X-VERSION:"
	tagTargetDuration = "#EXT-X-TARGETDURATION:"
	tagMediaSequence  = "#EXT-X-MEDIA-SEQUENCE:"
	tagEndList        = "#EXT-X-ENDLIST"
	tagDiscontinuity  = "#EXT-X-DISCONTINUITY"
	tagSegmentInfo    = "#EXTINF:"
	tagByteRange      = "#EXT-X-BYTERANGE:"
	tagStreamInf      = "#EXT-X-STREAM-INF:"
)

// Playlist is the parsed form of a single playlist document.
// Optional header values are nil when the tag was absent or unparseable.
type Playlist struct {
	Version        *int      `json:"version,omitempty" yaml:"version,omitempty"`
	TargetDuration *float64  `json:"target_duration,omitempty" yaml:"target_duration,omitempty"`
	MediaSequence  *int      `json:"media_sequence,omitempty" yaml:"media_sequence,omitempty"`
	Segments       []Segment `json:"segments" yaml:"segments"`
	IsLive         bool      `json:"is_live" yaml:"is_live"`
	EndList        bool      `json:"end_list" yaml:"end_list"`
}

// IsMainPlaylist reports whether the playlist is treated as a master
// (variant list) playlist. No segment URIs means master.
func (p Playlist) IsMainPlaylist() bool {
	return len(p.Segments) == 0
}

// TotalDuration sums the declared segment durations in seconds.
func (p Playlist) TotalDuration() float64 {
	var total float64
	for _, s := range p.Segments {
		total += s.Duration
	}
	return total
}

// Discontinuities counts segments preceded by a discontinuity marker.
func (p Playlist) Discontinuities() int {
	n := 0
	for _, s := range p.Segments {
		if s.Discontinuity {
			n++
		}
	}
	return n
}

// Segment is one media URI of a media playlist.
type Segment struct {
	Duration      float64 `json:"duration" yaml:"duration"`
	URL           string  `json:"url" yaml:"url"`
	Title         string  `json:"title,omitempty" yaml:"title,omitempty"`
	ByteRange     string  `json:"byte_range,omitempty" yaml:"byte_range,omitempty"`
	Discontinuity bool    `json:"discontinuity,omitempty" yaml:"discontinuity,omitempty"`
}

// StreamQuality is one variant stream of a master playlist.
type StreamQuality struct {
	URL        string `json:"url" yaml:"url"`
	Bandwidth  int    `json:"bandwidth" yaml:"bandwidth"` // bits per second, 0 if unknown
	Resolution string `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	Codecs     string `json:"codecs,omitempty" yaml:"codecs,omitempty"`
	Title      string `json:"title" yaml:"title"`
}
