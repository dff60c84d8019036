package matching

import (
	"github.com/google/uuid"

	"github.com/pageza/pantrymatch/backend/internal/models"
)

func record(title string, ingredients ...string) models.RecipeRecord {
	rec := models.RecipeRecord{Recipe: models.Recipe{ID: uuid.New(), Title: title}}
	for _, name := range ingredients {
		rec.Ingredients = append(rec.Ingredients, models.RecipeIngredient{
			Ingredient: models.Ingredient{Name: name},
		})
	}
	return rec
}

func rated(rec models.RecipeRecord, avg float64, count int64) models.RecipeRecord {
	rec.AverageRating = &avg
	rec.RatingCount = count
	return rec
}

func withCuisine(rec models.RecipeRecord, cuisine models.Cuisine) models.RecipeRecord {
	rec.Cuisine = cuisine
	return rec
}

func intPtr(v int) *int { return &v }

func titles(records []models.RecipeRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

// noShuffle keeps the relaxed pass deterministic in tests.
func noShuffle(int, func(i, j int)) {}
