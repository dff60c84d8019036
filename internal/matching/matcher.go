package matching

import (
	"errors"
	"math"
	"sort"

	"github.com/pageza/pantrymatch/backend/internal/models"
)

// ErrNoRequiredIngredients is returned by Match for a recipe with no required ingredients
var ErrNoRequiredIngredients = errors.New("recipe has no required ingredients")

// MatchResult describes how well an on-hand ingredient set covers a recipe
type MatchResult struct {
	Fraction            float64  `json:"-"`
	MatchPercentage     float64  `json:"match_percentage"`
	MatchingIngredients []string `json:"matching_ingredients"`
	MissingIngredients  []string `json:"missing_ingredients"`
	MatchedCount        int      `json:"matched_count"`
	MissingCount        int      `json:"missing_count"`
	TotalIngredients    int      `json:"total_ingredients"`
}

// IsCandidate reports whether the match is strong enough to be returned.
// Exactly 30% is not enough.
func (m MatchResult) IsCandidate() bool {
	return m.Fraction > CandidateThreshold
}

// Match compares the on-hand ingredients against a recipe's required ingredients.
// Both sides are normalized before comparison.
func Match(have, required []string) (MatchResult, error) {
	if ExcludeEmptyRecipe(required) {
		return MatchResult{}, ErrNoRequiredIngredients
	}

	haveSet := make(map[string]struct{}, len(have))
	for _, h := range normalizeSet(have) {
		haveSet[h] = struct{}{}
	}

	req := normalizeSet(required)
	matching := make([]string, 0, len(req))
	missing := make([]string, 0, len(req))
	for _, r := range req {
		if _, ok := haveSet[r]; ok {
			matching = append(matching, r)
		} else {
			missing = append(missing, r)
		}
	}
	sort.Strings(matching)
	sort.Strings(missing)

	fraction := float64(len(matching)) / float64(len(req))
	return MatchResult{
		Fraction:            fraction,
		MatchPercentage:     math.Round(fraction*1000) / 10,
		MatchingIngredients: matching,
		MissingIngredients:  missing,
		MatchedCount:        len(matching),
		MissingCount:        len(missing),
		TotalIngredients:    len(req),
	}, nil
}

// RankedRecipe is a recipe record together with its match against the on-hand set
type RankedRecipe struct {
	models.RecipeRecord
	MatchResult
}

// MatchRecipes scores every record against the on-hand ingredients and
// returns the candidates ranked by match percentage. Records excluded by
// ExcludeEmptyRecipe are returned separately so the caller can report them.
func MatchRecipes(records []models.RecipeRecord, have []string) (ranked []RankedRecipe, skipped []models.RecipeRecord) {
	ranked = make([]RankedRecipe, 0)
	for _, rec := range records {
		result, err := Match(have, rec.IngredientNames())
		if errors.Is(err, ErrNoRequiredIngredients) {
			skipped = append(skipped, rec)
			continue
		}
		if !result.IsCandidate() {
			continue
		}
		ranked = append(ranked, RankedRecipe{RecipeRecord: rec, MatchResult: result})
	}
	RankByMatch(ranked)
	return ranked, skipped
}
