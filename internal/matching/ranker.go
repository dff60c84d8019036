package matching

import (
	"sort"

	"github.com/pageza/pantrymatch/backend/internal/models"
)

// RankByMatch orders candidates by descending match percentage. Ties keep their input order.
func RankByMatch(ranked []RankedRecipe) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fraction > ranked[j].Fraction
	})
}

// RankSuggestions orders records by descending average rating, then by
// descending rating count, and caps the result at SuggestionLimit. Unrated
// recipes sort below every rated one.
func RankSuggestions(records []models.RecipeRecord) []models.RecipeRecord {
	sorted := make([]models.RecipeRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.AverageRating == nil && b.AverageRating != nil:
			return false
		case a.AverageRating != nil && b.AverageRating == nil:
			return true
		case a.AverageRating != nil && *a.AverageRating != *b.AverageRating:
			return *a.AverageRating > *b.AverageRating
		}
		return a.RatingCount > b.RatingCount
	})

	if len(sorted) > SuggestionLimit {
		sorted = sorted[:SuggestionLimit]
	}
	return sorted
}
