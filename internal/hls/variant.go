package hls

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// BestMarker is appended to the titles of the highest-bandwidth variants.
const BestMarker = " ★"

// DefaultTitle labels the synthetic entry returned for playlists without variants.
const DefaultTitle = "Default"

// ExtractQualities lists the variant streams of a master playlist, sorted by
// bandwidth from highest to lowest. Variants with equal bandwidth keep their
// playlist order. The result is never empty: a playlist with no
// #EXT-X-STREAM-INF tags yields a single "Default" entry pointing at baseURL.
func ExtractQualities(content, baseURL string) []StreamQuality {
	var qualities []StreamQuality
	var pending *StreamQuality

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, tagStreamInf) {
			q := parseStreamInf(line[len(tagStreamInf):])
			pending = &q
			continue
		}

		if strings.HasPrefix(line, "#") || pending == nil {
			continue
		}

		pending.URL = ResolveURL(line, baseURL)
		qualities = append(qualities, *pending)
		pending = nil
	}

	if len(qualities) == 0 {
		return []StreamQuality{{URL: baseURL, Bandwidth: 0, Title: DefaultTitle}}
	}

	slices.SortStableFunc(qualities, func(a, b StreamQuality) int {
		return cmp.Compare(b.Bandwidth, a.Bandwidth)
	})

	for i := range qualities {
		qualities[i].Title = GenerateQualityTitle(qualities[i].Resolution, qualities[i].Bandwidth)
	}

	if best := qualities[0].Bandwidth; best > 0 {
		for i := range qualities {
			if qualities[i].Bandwidth == best {
				qualities[i].Title += BestMarker
			}
		}
	}

	return qualities
}

// HasVariants reports whether content carries at least one #EXT-X-STREAM-INF tag.
func HasVariants(content string) bool {
	for _, raw := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(raw), tagStreamInf) {
			return true
		}
	}
	return false
}

// parseStreamInf reads the attributes of one #EXT-X-STREAM-INF tag.
func parseStreamInf(value string) StreamQuality {
	attrs := parseAttributes(value)

	var q StreamQuality
	if b, err := strconv.Atoi(attrs["BANDWIDTH"]); err == nil && b > 0 {
		q.Bandwidth = b
	}
	q.Resolution = attrs["RESOLUTION"]
	q.Codecs = attrs["CODECS"]
	return q
}

// parseAttributes parses an attribute list like
// BANDWIDTH=1280000,CODECS="avc1.42e00a,mp4a.40.2". Commas inside quoted
// values do not split, and surrounding quotes are stripped.
func parseAttributes(list string) map[string]string {
	attrs := make(map[string]string)

	var parts []string
	var current strings.Builder
	inQuotes := false

	for _, r := range list {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ',' && !inQuotes:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	for _, part := range parts {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		attrs[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"`)
	}

	return attrs
}

// GenerateQualityTitle builds a human-readable label for a variant, such as
// "1080p (FHD)" from its resolution or "5Mbps (FHD)" from its bandwidth.
// Without either it returns "Auto".
func GenerateQualityTitle(resolution string, bandwidth int) string {
	if resolution != "" {
		res := resolution
		if _, height, ok := strings.Cut(resolution, "x"); ok {
			res = height
		}
		height, err := strconv.Atoi(strings.TrimSuffix(res, "p"))
		if err != nil {
			height = 0
		}
		label := qualityTier(height)
		if strings.HasSuffix(res, "p") {
			return fmt.Sprintf("%s (%s)", res, label)
		}
		return fmt.Sprintf("%sp (%s)", res, label)
	}

	if bandwidth > 0 {
		label := qualityTier(EstimateHeight(bandwidth))
		if bandwidth >= 1_000_000 {
			return fmt.Sprintf("%dMbps (%s)", bandwidth/1_000_000, label)
		}
		return fmt.Sprintf("%dKbps (%s)", bandwidth/1_000, label)
	}

	return "Auto"
}

// qualityTier maps a frame height to its marketing tier.
func qualityTier(height int) string {
	switch {
	case height >= 4320:
		return "8K"
	case height >= 2160:
		return "4K"
	case height >= 1440:
		return "2K"
	case height >= 1080:
		return "FHD"
	case height >= 720:
		return "HD"
	case height >= 480:
		return "SD"
	default:
		return "Low"
	}
}

// EstimateHeight guesses a frame height from a variant's bandwidth in bits per second.
func EstimateHeight(bandwidth int) int {
	mbps := float64(bandwidth) / 1_000_000
	switch {
	case mbps >= 25:
		return 4320
	case mbps >= 15:
		return 2160
	case mbps >= 8:
		return 1440
	case mbps >= 5:
		return 1080
	case mbps >= 2.5:
		return 720
	case mbps >= 1:
		return 480
	default:
		return 360
	}
}
