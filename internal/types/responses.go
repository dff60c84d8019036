package types

import (
	"github.com/google/uuid"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/models"
)

// MatchRequestInfo echoes the inputs of a match request
type MatchRequestInfo struct {
	IngredientsProvided int                          `json:"ingredients_provided"`
	IngredientsList     []string                     `json:"ingredients_list"`
	DietaryPreferences  *matching.DietaryPreferences `json:"dietary_preferences"`
	Filters             *matching.StructuralFilters  `json:"filters"`
}

// MatchIngredientsResponse lists the recipes an ingredient set can make
type MatchIngredientsResponse struct {
	Count       int                     `json:"count"`
	Results     []matching.RankedRecipe `json:"results"`
	RequestInfo MatchRequestInfo        `json:"request_info"`
}

// PreferenceInfo reports what drove a set of suggestions.
// DietaryPreferences is null when the user has no stored preference.
type PreferenceInfo struct {
	PreferredCuisines  []string                     `json:"preferred_cuisines"`
	DietaryPreferences *matching.DietaryPreferences `json:"dietary_preferences"`
}

// SuggestionsResponse is the body of the suggestions endpoint
type SuggestionsResponse struct {
	Results        []models.RecipeRecord `json:"results"`
	PreferenceInfo PreferenceInfo        `json:"preference_info"`
}

// SubstituteInfo is one substitute shown alongside a recipe ingredient
type SubstituteInfo struct {
	Name  string  `json:"name"`
	Ratio float64 `json:"ratio"`
	Notes string  `json:"notes"`
}

// RecipeDetail is a recipe with ratings and the substitutes of its ingredients,
// keyed by ingredient name.
type RecipeDetail struct {
	models.RecipeRecord
	Substitutes map[string][]SubstituteInfo `json:"substitutes"`
}

// RecipeListResponse is a page of recipes
type RecipeListResponse struct {
	Count    int64                 `json:"count"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
	Results  []models.RecipeRecord `json:"results"`
}

// ScannedIngredient is a detected ingredient found in the catalog
type ScannedIngredient struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ScanResponse reports which detected ingredient names exist in the catalog
type ScanResponse struct {
	MatchedIngredients   []ScannedIngredient `json:"matched_ingredients"`
	UnmatchedIngredients []string            `json:"unmatched_ingredients"`
	TotalDetected        int                 `json:"total_detected"`
}

// PreferenceResponse is the caller's stored preferences, or the defaults
type PreferenceResponse struct {
	Vegetarian        bool     `json:"vegetarian"`
	GlutenFree        bool     `json:"gluten_free"`
	PreferredCuisines []string `json:"preferred_cuisines"`
}
