package matching

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantrymatch/backend/internal/models"
)

func TestMatch(t *testing.T) {
	result, err := Match([]string{"tomatoes", "onions"}, []string{"tomato", "onion", "garlic"})
	require.NoError(t, err)

	assert.Equal(t, 66.7, result.MatchPercentage)
	assert.ElementsMatch(t, []string{"tomato", "onion"}, result.MatchingIngredients)
	assert.Equal(t, []string{"garlic"}, result.MissingIngredients)
	assert.Equal(t, 2, result.MatchedCount)
	assert.Equal(t, 1, result.MissingCount)
	assert.Equal(t, 3, result.TotalIngredients)
	assert.True(t, result.IsCandidate())
}

func TestMatchRejectsRecipesWithoutIngredients(t *testing.T) {
	_, err := Match([]string{"tomato"}, nil)
	assert.ErrorIs(t, err, ErrNoRequiredIngredients)

	_, err = Match(nil, []string{})
	assert.ErrorIs(t, err, ErrNoRequiredIngredients)
}

func TestMatchThreshold(t *testing.T) {
	required := make([]string, 10)
	for i := range required {
		required[i] = fmt.Sprintf("ingredient%d", i)
	}

	exact, err := Match(required[:3], required)
	require.NoError(t, err)
	assert.Equal(t, 30.0, exact.MatchPercentage)
	assert.False(t, exact.IsCandidate(), "exactly 30% must be excluded")

	above, err := Match(required[:4], required)
	require.NoError(t, err)
	assert.Equal(t, 40.0, above.MatchPercentage)
	assert.True(t, above.IsCandidate())
}

func TestMatchDeduplicatesAfterNormalization(t *testing.T) {
	result, err := Match([]string{"Tomato"}, []string{"tomato", "Tomatoes"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalIngredients)
	assert.Equal(t, 100.0, result.MatchPercentage)
}

func TestMatchRecipes(t *testing.T) {
	pasta := record("Pasta", "tomato", "onion", "garlic")
	salad := record("Salad", "tomato", "cucumber", "lettuce", "olive oil")
	soup := record("Soup", "tomato")
	empty := record("Mystery")
	bread := record("Bread", "flour", "water", "yeast")

	ranked, skipped := MatchRecipes(
		[]models.RecipeRecord{pasta, salad, soup, empty, bread},
		[]string{"Tomatoes", "Onions", "cucumbers"},
	)

	require.Len(t, skipped, 1)
	assert.Equal(t, "Mystery", skipped[0].Title)

	require.Len(t, ranked, 3)
	assert.Equal(t, "Soup", ranked[0].Title)
	assert.Equal(t, 100.0, ranked[0].MatchPercentage)
	assert.Equal(t, "Pasta", ranked[1].Title)
	assert.Equal(t, 66.7, ranked[1].MatchPercentage)
	assert.Equal(t, "Salad", ranked[2].Title)
	assert.Equal(t, 50.0, ranked[2].MatchPercentage)
}

func TestMatchRecipesEmptyIsNotAnError(t *testing.T) {
	ranked, skipped := MatchRecipes(nil, []string{"tomato"})
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
	assert.Empty(t, skipped)
}
