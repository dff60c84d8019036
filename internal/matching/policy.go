package matching

// LikedRatingThreshold is the lowest rating that counts as the user liking a recipe.
const LikedRatingThreshold = 3

// RelaxedRatingThreshold is the average rating that admits a recipe into the relaxed pass.
const RelaxedRatingThreshold = 3.0

// CandidateThreshold is the match fraction a recipe must strictly exceed.
const CandidateThreshold = 0.30

const (
	// SuggestionLimit caps the strict pass.
	SuggestionLimit = 15
	// FallbackLimit caps the relaxed pass.
	FallbackLimit = 10
)

// ExcludeEmptyRecipe is the policy for recipes without required ingredients:
// they are never scored and never appear in match results.
func ExcludeEmptyRecipe(required []string) bool {
	return len(required) == 0
}

// SkipCuisineFilter is the policy for an empty aggregated cuisine set: the
// strict pass then applies no cuisine constraint at all.
func SkipCuisineFilter(cuisines []string) bool {
	return len(cuisines) == 0
}
