package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/models"
	"github.com/pageza/pantrymatch/backend/internal/service"
	"github.com/pageza/pantrymatch/backend/internal/testhelpers"
)

type testServices struct {
	db          *gorm.DB
	recipes     *service.RecipeService
	ingredients *service.IngredientService
	preferences *service.PreferenceService
	ratings     *service.RatingService
}

func setupServices(t *testing.T) testServices {
	t.Helper()
	db := testhelpers.SetupSQLiteDatabase(t)
	log := zap.NewNop()
	return testServices{
		db:          db,
		recipes:     service.NewRecipeService(db, log),
		ingredients: service.NewIngredientService(db, log),
		preferences: service.NewPreferenceService(db),
		ratings:     service.NewRatingService(db),
	}
}

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func titles(records []models.RecipeRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

// mockRecordSource is a testify mock of service.RecordSource
type mockRecordSource struct {
	mock.Mock
}

func (m *mockRecordSource) FetchRecords(ctx context.Context) ([]models.RecipeRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]models.RecipeRecord)
	return records, args.Error(1)
}

// mockPreferenceSource is a testify mock of service.PreferenceSource
type mockPreferenceSource struct {
	mock.Mock
}

func (m *mockPreferenceSource) FindPreference(ctx context.Context, userID uuid.UUID) (*models.UserPreference, error) {
	args := m.Called(ctx, userID)
	pref, _ := args.Get(0).(*models.UserPreference)
	return pref, args.Error(1)
}

// mockRatingSource is a testify mock of service.RatingSource
type mockRatingSource struct {
	mock.Mock
}

func (m *mockRatingSource) CuisineRatings(ctx context.Context, userID uuid.UUID) ([]matching.CuisineRating, error) {
	args := m.Called(ctx, userID)
	ratings, _ := args.Get(0).([]matching.CuisineRating)
	return ratings, args.Error(1)
}

func (m *mockRatingSource) RatedRecipeIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	args := m.Called(ctx, userID)
	ids, _ := args.Get(0).(map[uuid.UUID]struct{})
	return ids, args.Error(1)
}
