package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/models"
)

// RecordSource provides the bulk recipe snapshot used by matching and suggestions
type RecordSource interface {
	FetchRecords(ctx context.Context) ([]models.RecipeRecord, error)
}

// PreferenceSource provides a user's stored preference, nil when absent
type PreferenceSource interface {
	FindPreference(ctx context.Context, userID uuid.UUID) (*models.UserPreference, error)
}

// RatingSource provides what the suggestion engine needs to know about a user's ratings
type RatingSource interface {
	CuisineRatings(ctx context.Context, userID uuid.UUID) ([]matching.CuisineRating, error)
	RatedRecipeIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
}

// IngredientLookup resolves ingredient names against the catalog
type IngredientLookup interface {
	FindByNames(ctx context.Context, names []string) (map[string]models.Ingredient, error)
}
