package matching

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantrymatch/backend/internal/models"
)

func TestSuggestStrictPass(t *testing.T) {
	carbonara := rated(withCuisine(record("Carbonara"), models.CuisineItalian), 5, 1)
	lasagna := rated(withCuisine(record("Lasagna"), models.CuisineItalian), 4, 2)
	risotto := rated(withCuisine(record("Risotto"), models.CuisineItalian), 4, 2)
	padThai := rated(withCuisine(record("Pad Thai"), models.CuisineThai), 4, 2)
	curry := rated(withCuisine(record("Green Curry"), models.CuisineThai), 4, 2)

	in := SuggestionInput{
		Records:  []models.RecipeRecord{padThai, carbonara, lasagna, curry, risotto},
		Cuisines: AggregateCuisines([]CuisineRating{{Cuisine: "italian", Rating: 5}}, nil),
		Rated:    map[uuid.UUID]struct{}{carbonara.ID: {}},
	}

	result := Suggest(in, noShuffle)
	assert.False(t, result.Fallback)
	assert.Equal(t, []string{"Lasagna", "Risotto"}, titles(result.Recipes))
}

func TestSuggestSkipsCuisineFilterWhenNoPreferences(t *testing.T) {
	a := rated(withCuisine(record("A"), models.CuisineMexican), 3, 1)
	b := withCuisine(record("B"), models.CuisineIndian)

	result := Suggest(SuggestionInput{Records: []models.RecipeRecord{b, a}}, noShuffle)
	assert.False(t, result.Fallback)
	assert.Equal(t, []string{"A", "B"}, titles(result.Recipes))
}

func TestSuggestCuisineMatchIgnoresCase(t *testing.T) {
	a := withCuisine(record("A"), models.CuisineJapanese)
	result := Suggest(SuggestionInput{Records: []models.RecipeRecord{a}, Cuisines: []string{"JAPANESE"}}, noShuffle)
	assert.Equal(t, []string{"A"}, titles(result.Recipes))
}

func TestSuggestAppliesDietaryPreferences(t *testing.T) {
	veg := withCuisine(record("Veg"), models.CuisineIndian)
	veg.IsVegetarian = true
	meat := withCuisine(record("Meat"), models.CuisineIndian)

	result := Suggest(SuggestionInput{
		Records: []models.RecipeRecord{meat, veg},
		Dietary: &DietaryPreferences{Vegetarian: true},
	}, noShuffle)
	assert.Equal(t, []string{"Veg"}, titles(result.Recipes))
}

func TestSuggestFallsBackWhenStrictPassIsEmpty(t *testing.T) {
	well := rated(withCuisine(record("Well rated"), models.CuisineThai), 3.0, 4)
	poor := rated(withCuisine(record("Poorly rated"), models.CuisineMexican), 2.9, 4)
	unrated := withCuisine(record("Unrated"), models.CuisineChinese)
	alreadyRated := rated(withCuisine(record("Already rated"), models.CuisineThai), 5, 1)

	in := SuggestionInput{
		Records:  []models.RecipeRecord{well, poor, unrated, alreadyRated},
		Cuisines: []string{"japanese", "chinese"},
		Rated:    map[uuid.UUID]struct{}{alreadyRated.ID: {}},
	}

	assert.Empty(t, StrictPass(SuggestionInput{Records: in.Records, Cuisines: []string{"japanese"}}))

	in.Cuisines = []string{"japanese"}
	result := Suggest(in, noShuffle)
	assert.True(t, result.Fallback)
	assert.Equal(t, []string{"Well rated"}, titles(result.Recipes))

	// A preferred cuisine admits unrated recipes into the relaxed pass too.
	relaxed := RelaxedPass(SuggestionInput{
		Records:  in.Records,
		Cuisines: []string{"chinese"},
		Rated:    in.Rated,
	}, noShuffle)
	assert.ElementsMatch(t, []string{"Well rated", "Unrated"}, titles(relaxed))
}

func TestRelaxedPassCapsAndShuffles(t *testing.T) {
	records := make([]models.RecipeRecord, 0, 25)
	for i := 0; i < 25; i++ {
		records = append(records, rated(withCuisine(record(fmt.Sprintf("r%02d", i)), models.CuisineThai), 4, 1))
	}

	shuffled := false
	out := RelaxedPass(SuggestionInput{Records: records}, func(n int, swap func(i, j int)) {
		shuffled = true
		require.Equal(t, 25, n)
		swap(0, n-1)
	})

	assert.True(t, shuffled)
	assert.Len(t, out, FallbackLimit)
	assert.Equal(t, "r24", out[0].Title)
}

func TestSuggestEmptyAfterBothPasses(t *testing.T) {
	only := rated(withCuisine(record("Only"), models.CuisineThai), 5, 1)
	result := Suggest(SuggestionInput{
		Records: []models.RecipeRecord{only},
		Rated:   map[uuid.UUID]struct{}{only.ID: {}},
	}, nil)
	assert.True(t, result.Fallback)
	assert.Empty(t, result.Recipes)
}
