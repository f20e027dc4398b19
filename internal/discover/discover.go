// Package discover finds HLS playlist references on web pages.
// Pages are parsed as a DOM with goquery instead of grepping raw HTML.
package discover

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hlsx/internal/hls"
)

// scriptPlaylistPattern matches absolute .m3u8 URLs in inline scripts,
// including JSON-escaped slashes and an optional query string.
var scriptPlaylistPattern = regexp.MustCompile(`https?:\\?/\\?/[^\s"'<>]+?\.m3u8(?:\?[^\s"'<>]*)?`)

// attrSelectors lists elements whose attributes may point at a playlist.
var attrSelectors = []struct {
	selector string
	attr     string
}{
	{"video", "src"},
	{"video source", "src"},
	{"source", "src"},
	{"a", "href"},
	{"link", "href"},
	{"iframe", "src"},
	{"[data-src]", "data-src"},
	{"[data-hls]", "data-hls"},
}

// Playlists returns the playlist URLs referenced by an HTML page, resolved
// against pageURL and de-duplicated. Attribute references come first, in
// selector order, followed by URLs found in inline scripts.
func Playlists(r io.Reader, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	seen := make(map[string]bool)
	var found []string
	add := func(raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" || !isPlaylistRef(raw) {
			return
		}
		resolved := hls.ResolveURL(strings.ReplaceAll(raw, `\/`, `/`), pageURL)
		if !seen[resolved] {
			seen[resolved] = true
			found = append(found, resolved)
		}
	}

	for _, sel := range attrSelectors {
		doc.Find(sel.selector).Each(func(_ int, s *goquery.Selection) {
			if v, ok := s.Attr(sel.attr); ok {
				add(v)
			}
		})
	}

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		for _, m := range scriptPlaylistPattern.FindAllString(s.Text(), -1) {
			add(m)
		}
	})

	return found, nil
}

// isPlaylistRef reports whether a reference looks like an HLS playlist.
func isPlaylistRef(ref string) bool {
	path := ref
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return strings.HasSuffix(strings.ToLower(path), ".m3u8")
}
