package types

import (
	"github.com/google/uuid"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/models"
)

// RecipeIngredientInput references a catalog ingredient by id, or by name.
// A name that is not in the catalog yet is added to it.
type RecipeIngredientInput struct {
	IngredientID *uuid.UUID `json:"ingredient_id" validate:"required_without=Name"`
	Name         string     `json:"name" validate:"required_without=IngredientID,max=100"`
	Quantity     string     `json:"quantity" validate:"max=50"`
	Unit         string     `json:"unit" validate:"max=20"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title               string                  `json:"title" validate:"required,max=200"`
	Description         string                  `json:"description"`
	Instructions        string                  `json:"instructions" validate:"required"`
	CookingTime         int                     `json:"cooking_time" validate:"required,gt=0"`
	PreparationTime     int                     `json:"preparation_time" validate:"gte=0"`
	TotalTime           *int                    `json:"total_time" validate:"omitempty,gt=0"`
	Servings            int                     `json:"servings" validate:"gte=0"`
	ServingSize         string                  `json:"serving_size" validate:"max=50"`
	CaloriesPerServing  int                     `json:"calories_per_serving" validate:"gte=0"`
	ProteinPerServing   float64                 `json:"protein_per_serving" validate:"gte=0"`
	Difficulty          models.Difficulty       `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Cuisine             models.Cuisine          `json:"cuisine" validate:"required,oneof=italian chinese indian mexican american japanese thai mediterranean"`
	IsVegetarian        bool                    `json:"is_vegetarian"`
	IsGlutenFree        bool                    `json:"is_gluten_free"`
	DietaryRestrictions []string                `json:"dietary_restrictions" validate:"dive,required,max=50"`
	Nutrients           models.Nutrients        `json:"nutrients" validate:"dive,keys,required,max=50,endkeys,gte=0"`
	ImageURL            string                  `json:"image_url" validate:"omitempty,url"`
	IsFeatured          bool                    `json:"is_featured"`
	Ingredients         []RecipeIngredientInput `json:"ingredients" validate:"dive"`
}

// UpdateRecipeRequest is a partial update. Nil fields are left unchanged and
// a non-nil Ingredients replaces the full ingredient list.
type UpdateRecipeRequest struct {
	Title               *string                  `json:"title" validate:"omitempty,min=1,max=200"`
	Description         *string                  `json:"description"`
	Instructions        *string                  `json:"instructions" validate:"omitempty,min=1"`
	CookingTime         *int                     `json:"cooking_time" validate:"omitempty,gt=0"`
	PreparationTime     *int                     `json:"preparation_time" validate:"omitempty,gte=0"`
	TotalTime           *int                     `json:"total_time" validate:"omitempty,gt=0"`
	Servings            *int                     `json:"servings" validate:"omitempty,gt=0"`
	ServingSize         *string                  `json:"serving_size" validate:"omitempty,max=50"`
	CaloriesPerServing  *int                     `json:"calories_per_serving" validate:"omitempty,gte=0"`
	ProteinPerServing   *float64                 `json:"protein_per_serving" validate:"omitempty,gte=0"`
	Difficulty          *models.Difficulty       `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Cuisine             *models.Cuisine          `json:"cuisine" validate:"omitempty,oneof=italian chinese indian mexican american japanese thai mediterranean"`
	IsVegetarian        *bool                    `json:"is_vegetarian"`
	IsGlutenFree        *bool                    `json:"is_gluten_free"`
	DietaryRestrictions *[]string                `json:"dietary_restrictions" validate:"omitempty,dive,required,max=50"`
	Nutrients           *models.Nutrients        `json:"nutrients" validate:"omitempty,dive,keys,required,max=50,endkeys,gte=0"`
	ImageURL            *string                  `json:"image_url" validate:"omitempty,url"`
	IsFeatured          *bool                    `json:"is_featured"`
	Ingredients         *[]RecipeIngredientInput `json:"ingredients" validate:"omitempty,dive"`
}

// MatchIngredientsRequest is the body of the ingredient match endpoint
type MatchIngredientsRequest struct {
	Ingredients        []string                     `json:"ingredients" validate:"dive,required"`
	DietaryPreferences *matching.DietaryPreferences `json:"dietary_preferences"`
	Filters            *matching.StructuralFilters  `json:"filters"`
}

// IngredientRequest creates or renames a catalog ingredient
type IngredientRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

// SubstitutionRequest records that SubstituteID can stand in for an ingredient
type SubstitutionRequest struct {
	SubstituteID uuid.UUID `json:"substitute_id" validate:"required"`
	Ratio        float64   `json:"ratio" validate:"gte=0"`
	Notes        string    `json:"notes" validate:"max=500"`
}

// PreferenceRequest is a partial update of the caller's preferences
type PreferenceRequest struct {
	Vegetarian        *bool    `json:"vegetarian"`
	GlutenFree        *bool    `json:"gluten_free"`
	PreferredCuisines []string `json:"preferred_cuisines" validate:"omitempty,dive,required,max=50"`
}

// CreateRatingRequest rates a recipe. Ratings outside 1-5 are rejected, not clamped.
type CreateRatingRequest struct {
	RecipeID uuid.UUID `json:"recipe_id" validate:"required"`
	Rating   int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string    `json:"comment" validate:"max=2000"`
}

// UpdateRatingRequest changes the score or comment of an existing rating
type UpdateRatingRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}
