package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateCuisines(t *testing.T) {
	t.Run("nothing stored", func(t *testing.T) {
		assert.Empty(t, AggregateCuisines(nil, nil))
	})

	t.Run("liked rating and stored preference", func(t *testing.T) {
		got := AggregateCuisines([]CuisineRating{{Cuisine: "thai", Rating: 4}}, []string{"italian"})
		assert.ElementsMatch(t, []string{"thai", "italian"}, got)
	})

	t.Run("low ratings are ignored", func(t *testing.T) {
		got := AggregateCuisines([]CuisineRating{{Cuisine: "thai", Rating: 2}, {Cuisine: "indian", Rating: 3}}, nil)
		assert.Equal(t, []string{"indian"}, got)
	})

	t.Run("duplicates collapse ignoring case", func(t *testing.T) {
		got := AggregateCuisines(
			[]CuisineRating{{Cuisine: "italian", Rating: 5}, {Cuisine: "italian", Rating: 4}},
			[]string{"Italian", " italian ", ""},
		)
		assert.Equal(t, []string{"italian"}, got)
	})
}
