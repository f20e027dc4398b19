package hls

import (
	"strconv"
	"strings"
)

// Quality preferences accepted by SelectQuality besides a plain height.
const (
	PreferBest  = "best"
	PreferWorst = "worst"
)

// Height returns the frame height of the variant, taken from RESOLUTION when
// present and estimated from bandwidth otherwise. Zero means unknown.
func (q StreamQuality) Height() int {
	if q.Resolution != "" {
		res := q.Resolution
		if _, h, ok := strings.Cut(res, "x"); ok {
			res = h
		}
		if h, err := strconv.Atoi(strings.TrimSuffix(res, "p")); err == nil {
			return h
		}
		return 0
	}
	if q.Bandwidth > 0 {
		return EstimateHeight(q.Bandwidth)
	}
	return 0
}

// SelectQuality picks a variant from a list sorted by ExtractQualities.
//
// "best" (or an empty preference) returns the first entry and "worst" the
// last. A height such as "720" returns the first variant of exactly that
// height, else the highest variant below it, else the first entry.
func SelectQuality(qualities []StreamQuality, preference string) (StreamQuality, bool) {
	if len(qualities) == 0 {
		return StreamQuality{}, false
	}

	pref := strings.ToLower(strings.TrimSpace(preference))
	switch pref {
	case "", PreferBest:
		return qualities[0], true
	case PreferWorst:
		return qualities[len(qualities)-1], true
	}

	want, err := strconv.Atoi(strings.TrimSuffix(pref, "p"))
	if err != nil {
		return qualities[0], true
	}

	for _, q := range qualities {
		if q.Height() == want {
			return q, true
		}
	}

	below := -1
	for i, q := range qualities {
		h := q.Height()
		if h == 0 || h > want {
			continue
		}
		if below == -1 || h > qualities[below].Height() {
			below = i
		}
	}
	if below >= 0 {
		return qualities[below], true
	}

	return qualities[0], true
}
