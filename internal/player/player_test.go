package player

import (
	"slices"
	"testing"

	"hlsx/internal/media"
)

func testStream() *media.Stream {
	return &media.Stream{
		URL: "https://cdn.example.com/hls/720/index.m3u8",
		Headers: map[string]string{
			"User-Agent": "hlsx-test",
			"referer":    "https://site.example.com/",
			"Origin":     "https://site.example.com",
			"X-Token":    "a,b",
		},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"mpv", "mpv"},
		{"VLC", "vlc"},
		{"iina", "iina"},
		{"celluloid", "celluloid"},
		{"unknown", "mpv"},
	}
	for _, tt := range tests {
		if got := New(tt.name).Name(); got != tt.want {
			t.Errorf("New(%q).Name() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMPVArgs(t *testing.T) {
	args := mpvArgs(testStream(), "Movie", 90.4)

	want := []string{
		"https://cdn.example.com/hls/720/index.m3u8",
		"--force-media-title=Movie",
		"--user-agent=hlsx-test",
		"--referrer=https://site.example.com/",
		`--http-header-fields=Origin: https://site.example.com,X-Token: a\,b`,
		"--start=+90",
	}
	if !slices.Equal(args, want) {
		t.Errorf("mpvArgs() =\n%q\nwant\n%q", args, want)
	}
}

func TestMPVArgsNoHeaders(t *testing.T) {
	args := mpvArgs(&media.Stream{URL: "https://ex.com/a.m3u8"}, "A", 0)
	want := []string{"https://ex.com/a.m3u8", "--force-media-title=A"}
	if !slices.Equal(args, want) {
		t.Errorf("mpvArgs() = %q, want %q", args, want)
	}
}

func TestVLCArgs(t *testing.T) {
	args := vlcArgs(testStream(), "Movie", 120)

	want := []string{
		"https://cdn.example.com/hls/720/index.m3u8",
		"--meta-title", "Movie",
		"--play-and-exit",
		"--http-user-agent=hlsx-test",
		"--http-referrer=https://site.example.com/",
		"--start-time=120",
	}
	if !slices.Equal(args, want) {
		t.Errorf("vlcArgs() =\n%q\nwant\n%q", args, want)
	}
}

func TestPositionFromEvent(t *testing.T) {
	tests := []struct {
		line string
		last float64
		want float64
	}{
		{`{"event":"property-change","id":1,"name":"time-pos","data":42.5}`, 0, 42.5},
		{`{"event":"property-change","id":1,"name":"time-pos","data":null}`, 10, 10},
		{`{"event":"property-change","id":1,"name":"pause","data":true}`, 10, 10},
		{`{"request_id":100,"error":"success"}`, 7, 7},
		{`not json`, 3, 3},
	}
	for _, tt := range tests {
		if got := positionFromEvent([]byte(tt.line), tt.last); got != tt.want {
			t.Errorf("positionFromEvent(%s) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
