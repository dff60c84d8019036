package matching

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/pageza/pantrymatch/backend/internal/models"
)

// SuggestionInput is everything the suggestion passes need, fetched up front
type SuggestionInput struct {
	Records []models.RecipeRecord
	// Dietary is nil when the user has no stored preference.
	Dietary  *DietaryPreferences
	Cuisines []string
	Rated    map[uuid.UUID]struct{}
}

// SuggestionResult is the outcome of Suggest
type SuggestionResult struct {
	Recipes  []models.RecipeRecord
	Fallback bool
}

// ShuffleFunc randomizes the order of n elements, matching rand.Shuffle
type ShuffleFunc func(n int, swap func(i, j int))

// Suggest runs the strict pass and falls back to the relaxed pass only when
// the strict pass found nothing.
func Suggest(in SuggestionInput, shuffle ShuffleFunc) SuggestionResult {
	if strict := StrictPass(in); len(strict) > 0 {
		return SuggestionResult{Recipes: strict}
	}
	return SuggestionResult{Recipes: RelaxedPass(in, shuffle), Fallback: true}
}

// StrictPass filters by dietary preference and aggregated cuisines, drops
// recipes the user already rated, and ranks the rest.
func StrictPass(in SuggestionInput) []models.RecipeRecord {
	candidates := Filter(in.Records, in.Dietary, nil)

	out := make([]models.RecipeRecord, 0, len(candidates))
	for _, rec := range candidates {
		if in.isRated(rec) {
			continue
		}
		if !SkipCuisineFilter(in.Cuisines) && !rec.HasCuisine(in.Cuisines) {
			continue
		}
		out = append(out, rec)
	}
	return RankSuggestions(out)
}

// RelaxedPass admits unrated-by-user recipes that are either in a preferred
// cuisine or rated at least RelaxedRatingThreshold on average. The order is
// random. Dietary preferences still apply.
func RelaxedPass(in SuggestionInput, shuffle ShuffleFunc) []models.RecipeRecord {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}

	candidates := Filter(in.Records, in.Dietary, nil)

	out := make([]models.RecipeRecord, 0, len(candidates))
	for _, rec := range candidates {
		if in.isRated(rec) {
			continue
		}
		wellRated := rec.AverageRating != nil && *rec.AverageRating >= RelaxedRatingThreshold
		if rec.HasCuisine(in.Cuisines) || wellRated {
			out = append(out, rec)
		}
	}

	shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if len(out) > FallbackLimit {
		out = out[:FallbackLimit]
	}
	return out
}

func (in SuggestionInput) isRated(rec models.RecipeRecord) bool {
	_, ok := in.Rated[rec.ID]
	return ok
}
