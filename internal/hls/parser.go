package hls

import (
	"strconv"
	"strings"
)

// pendingSegment collects the tag values that belong to the next segment URI.
type pendingSegment struct {
	duration      float64
	title         string
	byteRange     string
	discontinuity bool
}

// Parse converts playlist text into a Playlist. Relative segment URIs are
// resolved against baseURL. Parse never fails: malformed lines and
// unparseable numbers are skipped or left at their defaults.
func Parse(content, baseURL string) Playlist {
	playlist := Playlist{
		Segments: []Segment{},
		IsLive:   true,
	}

	var pending pendingSegment

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, tagVersion):
			if v, err := strconv.Atoi(line[len(tagVersion):]); err == nil {
				playlist.Version = &v
			}
		case strings.HasPrefix(line, tagTargetDuration):
			if v, err := strconv.ParseFloat(line[len(tagTargetDuration):], 64); err == nil {
				playlist.TargetDuration = &v
			}
		case strings.HasPrefix(line, tagMediaSequence):
			if v, err := strconv.Atoi(line[len(tagMediaSequence):]); err == nil {
				playlist.MediaSequence = &v
			}
		case line == tagEndList:
			playlist.EndList = true
			playlist.IsLive = false
		case line == tagDiscontinuity:
			pending.discontinuity = true
		case strings.HasPrefix(line, tagSegmentInfo):
			pending.duration, pending.title = parseSegmentInfo(line[len(tagSegmentInfo):])
		case strings.HasPrefix(line, tagByteRange):
			pending.byteRange = line[len(tagByteRange):]
		case strings.HasPrefix(line, "#"):
			// Unrecognized tag or comment.
		default:
			playlist.Segments = append(playlist.Segments, Segment{
				Duration:      pending.duration,
				URL:           ResolveURL(line, baseURL),
				Title:         pending.title,
				ByteRange:     pending.byteRange,
				Discontinuity: pending.discontinuity,
			})
			pending = pendingSegment{}
		}
	}

	return playlist
}

// parseSegmentInfo splits an #EXTINF value into duration and title.
// The title is everything after the first comma, further commas included.
func parseSegmentInfo(value string) (float64, string) {
	durationStr, title, _ := strings.Cut(value, ",")
	duration, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64)
	if err != nil {
		duration = 0
	}
	return duration, title
}
