package hls

import (
	"net/url"
	"strings"
)

// ResolveURL resolves a playlist reference against the playlist's own URL.
//
// Only the two shapes seen in practice are handled: root-relative
// references ("/x/seg.ts") and plain relative names ("seg.ts"), the latter
// placed in the directory of base. Dot segments and query strings are left
// untouched. Anything already starting with "http" is returned as is, and
// an unusable base yields the reference unchanged.
func ResolveURL(reference, base string) string {
	if strings.HasPrefix(reference, "http") {
		return reference
	}

	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return reference
	}

	origin := u.Scheme + "://" + u.Host
	if strings.HasPrefix(reference, "/") {
		return origin + reference
	}

	dir := u.EscapedPath()
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		dir = dir[:i+1]
	} else {
		dir = "/"
	}
	if !strings.HasPrefix(dir, "/") {
		dir = "/" + dir
	}

	return origin + dir + reference
}
