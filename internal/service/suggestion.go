package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/metrics"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

// SuggestionService produces personalized recipe suggestions
type SuggestionService struct {
	recipes     RecordSource
	preferences PreferenceSource
	ratings     RatingSource
	shuffle     matching.ShuffleFunc
	log         *zap.Logger
}

// NewSuggestionService creates a new SuggestionService instance. A nil
// shuffle randomizes the relaxed fallback with math/rand.
func NewSuggestionService(recipes RecordSource, preferences PreferenceSource, ratings RatingSource, shuffle matching.ShuffleFunc, log *zap.Logger) *SuggestionService {
	return &SuggestionService{
		recipes:     recipes,
		preferences: preferences,
		ratings:     ratings,
		shuffle:     shuffle,
		log:         log,
	}
}

// Suggest fetches everything up front and runs the strict pass, falling back
// to the relaxed pass when it is empty. Any read failure aborts the whole
// computation.
func (s *SuggestionService) Suggest(ctx context.Context, userID uuid.UUID) (*types.SuggestionsResponse, error) {
	pref, err := s.preferences.FindPreference(ctx, userID)
	if err != nil {
		return nil, err
	}
	cuisineRatings, err := s.ratings.CuisineRatings(ctx, userID)
	if err != nil {
		return nil, err
	}
	rated, err := s.ratings.RatedRecipeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	records, err := s.recipes.FetchRecords(ctx)
	if err != nil {
		return nil, err
	}

	var (
		dietary *matching.DietaryPreferences
		stored  []string
	)
	if pref != nil {
		dietary = &matching.DietaryPreferences{Vegetarian: pref.Vegetarian, GlutenFree: pref.GlutenFree}
		stored = pref.PreferredCuisines
	}
	cuisines := matching.AggregateCuisines(cuisineRatings, stored)

	result := matching.Suggest(matching.SuggestionInput{
		Records:  records,
		Dietary:  dietary,
		Cuisines: cuisines,
		Rated:    rated,
	}, s.shuffle)

	metrics.RecordSuggestion(result.Fallback)
	s.log.Debug("computed suggestions",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(result.Recipes)),
		zap.Bool("fallback", result.Fallback),
		zap.Strings("cuisines", cuisines),
	)

	return &types.SuggestionsResponse{
		Results: result.Recipes,
		PreferenceInfo: types.PreferenceInfo{
			PreferredCuisines:  cuisines,
			DietaryPreferences: dietary,
		},
	}, nil
}
