package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/metrics"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

// MatchService finds the recipes an on-hand ingredient set can make
type MatchService struct {
	recipes RecordSource
	log     *zap.Logger
}

// NewMatchService creates a new MatchService instance
func NewMatchService(recipes RecordSource, log *zap.Logger) *MatchService {
	return &MatchService{recipes: recipes, log: log}
}

// MatchIngredients filters the catalog by the request's dietary preferences
// and structural filters, then ranks the recipes that cover more than 30% of
// their required ingredients.
func (s *MatchService) MatchIngredients(ctx context.Context, req *types.MatchIngredientsRequest) (*types.MatchIngredientsResponse, error) {
	records, err := s.recipes.FetchRecords(ctx)
	if err != nil {
		return nil, err
	}

	candidates := matching.Filter(records, req.DietaryPreferences, req.Filters)
	ranked, skipped := matching.MatchRecipes(candidates, req.Ingredients)

	for _, rec := range skipped {
		s.log.Warn("skipping recipe without required ingredients",
			zap.String("recipe_id", rec.ID.String()),
			zap.String("title", rec.Title),
		)
	}
	metrics.RecordMatch(len(ranked), len(skipped))

	have := req.Ingredients
	if have == nil {
		have = []string{}
	}

	return &types.MatchIngredientsResponse{
		Count:   len(ranked),
		Results: ranked,
		RequestInfo: types.MatchRequestInfo{
			IngredientsProvided: len(have),
			IngredientsList:     have,
			DietaryPreferences:  req.DietaryPreferences,
			Filters:             req.Filters,
		},
	}, nil
}
