package matching

import (
	"sort"
	"strings"
)

// CuisineRating is one of the user's ratings together with the rated recipe's cuisine
type CuisineRating struct {
	Cuisine string
	Rating  int
}

// AggregateCuisines merges the cuisines of recipes the user liked with the
// user's stored preferred cuisines. Names are lower-cased, de-duplicated and
// returned sorted. An empty result means "no cuisine constraint".
func AggregateCuisines(ratings []CuisineRating, stored []string) []string {
	set := make(map[string]struct{})
	add := func(c string) {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			set[c] = struct{}{}
		}
	}

	for _, r := range ratings {
		if r.Rating >= LikedRatingThreshold {
			add(r.Cuisine)
		}
	}
	for _, c := range stored {
		add(c)
	}

	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
