package hls

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("single segment VOD", func(t *testing.T) {
		content := "#EXTM3U\n#EXT-X-VERSION:3\n#EXT-X-TARGETDURATION:10\n#EXTINF:9.009,\nhttps://ex.com/s1.ts\n#EXT-X-ENDLIST"

		p := Parse(content, "https://ex.com/index.m3u8")

		require.NotNil(t, p.Version)
		assert.Equal(t, 3, *p.Version)
		require.NotNil(t, p.TargetDuration)
		assert.Equal(t, 10.0, *p.TargetDuration)
		assert.Nil(t, p.MediaSequence)
		require.Len(t, p.Segments, 1)
		assert.InDelta(t, 9.009, p.Segments[0].Duration, 1e-9)
		assert.Equal(t, "https://ex.com/s1.ts", p.Segments[0].URL)
		assert.False(t, p.IsLive)
		assert.True(t, p.EndList)
		assert.False(t, p.IsMainPlaylist())
	})

	t.Run("empty input", func(t *testing.T) {
		p := Parse("", "https://ex.com/index.m3u8")

		assert.Empty(t, p.Segments)
		assert.True(t, p.IsLive)
		assert.False(t, p.EndList)
		assert.True(t, p.IsMainPlaylist())
		assert.Nil(t, p.Version)
		assert.Nil(t, p.TargetDuration)
	})

	t.Run("media playlist resolves relative segments", func(t *testing.T) {
		p := Parse(testMediaPlaylist, "https://cdn.example.com/vod/movie/index.m3u8")

		require.Len(t, p.Segments, 3)
		assert.False(t, p.IsMainPlaylist())
		require.NotNil(t, p.MediaSequence)
		assert.Equal(t, 0, *p.MediaSequence)
		assert.Equal(t, "https://cdn.example.com/vod/movie/segment0.ts", p.Segments[0].URL)
		assert.Equal(t, "https://cdn.example.com/vod/movie/segment2.ts", p.Segments[2].URL)
		assert.InDelta(t, 21.021, p.TotalDuration(), 1e-9)
	})

	t.Run("live playlist", func(t *testing.T) {
		p := Parse(testLivePlaylist, "https://cdn.example.com/live/index.m3u8")

		assert.True(t, p.IsLive)
		assert.False(t, p.EndList)
		require.NotNil(t, p.MediaSequence)
		assert.Equal(t, 123456, *p.MediaSequence)
		assert.Len(t, p.Segments, 3)
	})

	t.Run("discontinuity byte range and titles", func(t *testing.T) {
		p := Parse(testDiscontinuityPlaylist, "https://ex.com/show/ep1/index.m3u8")

		require.Len(t, p.Segments, 3)

		first := p.Segments[0]
		assert.Equal(t, 6.0, first.Duration)
		assert.Equal(t, "Main content, part 1", first.Title)
		assert.Equal(t, "75232@0", first.ByteRange)
		assert.False(t, first.Discontinuity, "DISCONTINUITY-SEQUENCE is not a discontinuity marker")

		ad := p.Segments[1]
		assert.True(t, ad.Discontinuity)
		assert.Equal(t, "Ad", ad.Title)
		assert.Empty(t, ad.ByteRange)
		assert.Equal(t, "https://ex.com/ads/ad1.ts", ad.URL)

		last := p.Segments[2]
		assert.False(t, last.Discontinuity, "discontinuity applies to one segment only")
		assert.Empty(t, last.Title)
		assert.Equal(t, 1, p.Discontinuities())
	})

	t.Run("malformed numbers degrade to defaults", func(t *testing.T) {
		content := strings.Join([]string{
			"#EXTM3U",
			"#EXT-X-VERSION:three",
			"#EXT-X-TARGETDURATION:",
			"#EXT-X-MEDIA-SEQUENCE:1.5",
			"#EXTINF:abc,Broken",
			"a.ts",
			"#EXTINF:",
			"b.ts",
		}, "\n")

		p := Parse(content, "https://ex.com/")

		assert.Nil(t, p.Version)
		assert.Nil(t, p.TargetDuration)
		assert.Nil(t, p.MediaSequence)
		require.Len(t, p.Segments, 2)
		assert.Equal(t, 0.0, p.Segments[0].Duration)
		assert.Equal(t, "Broken", p.Segments[0].Title)
		assert.Equal(t, 0.0, p.Segments[1].Duration)
	})

	t.Run("tags are case sensitive", func(t *testing.T) {
		p := Parse("#ext-x-endlist\n#ext-x-version:4\n", "https://ex.com/")

		assert.True(t, p.IsLive)
		assert.False(t, p.EndList)
		assert.Nil(t, p.Version)
	})

	t.Run("CRLF and surrounding whitespace", func(t *testing.T) {
		content := "#EXTM3U\r\n  #EXTINF:2.5,Intro  \r\n\r\n   intro.ts   \r\n#EXT-X-ENDLIST\r\n"

		p := Parse(content, "https://ex.com/v/index.m3u8")

		require.Len(t, p.Segments, 1)
		assert.Equal(t, 2.5, p.Segments[0].Duration)
		assert.Equal(t, "Intro", p.Segments[0].Title)
		assert.Equal(t, "https://ex.com/v/intro.ts", p.Segments[0].URL)
		assert.True(t, p.EndList)
	})

	t.Run("segment without EXTINF", func(t *testing.T) {
		p := Parse("#EXTM3U\n#EXT-X-UNKNOWN:1\nbare.ts\n", "https://ex.com/")

		require.Len(t, p.Segments, 1)
		assert.Equal(t, 0.0, p.Segments[0].Duration)
		assert.Equal(t, "https://ex.com/bare.ts", p.Segments[0].URL)
	})
}

func TestParseSegmentCountMatchesURILines(t *testing.T) {
	inputs := []string{testMediaPlaylist, testLivePlaylist, testDiscontinuityPlaylist}

	for _, content := range inputs {
		uriLines := 0
		for _, line := range strings.Split(content, "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "#") {
				uriLines++
			}
		}

		p := Parse(content, "https://ex.com/a/index.m3u8")
		assert.False(t, p.IsMainPlaylist())
		assert.Len(t, p.Segments, uriLines)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	for _, content := range []string{"", testMediaPlaylist, testLivePlaylist, testDiscontinuityPlaylist} {
		first := Parse(content, "https://ex.com/a/index.m3u8")
		second := Parse(content, "https://ex.com/a/index.m3u8")
		assert.Equal(t, first, second)
	}
}

func TestParseSegmentInfo(t *testing.T) {
	tests := []struct {
		value        string
		wantDuration float64
		wantTitle    string
	}{
		{"10.0,", 10.0, ""},
		{"10.0", 10.0, ""},
		{"5.5,Title", 5.5, "Title"},
		{"5.5,A, B, C", 5.5, "A, B, C"},
		{"-1,live", -1, "live"},
		{"nope,x", 0, "x"},
		{"", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			d, title := parseSegmentInfo(tt.value)
			assert.Equal(t, tt.wantDuration, d)
			assert.Equal(t, tt.wantTitle, title)
		})
	}
}
