package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pageza/pantrymatch/backend/internal/models"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

// PreferenceService manages the per-user dietary preferences
type PreferenceService struct {
	db *gorm.DB
}

// NewPreferenceService creates a new PreferenceService instance
func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// FindPreference returns the stored preference of a user, or nil when the
// user never saved one.
func (s *PreferenceService) FindPreference(ctx context.Context, userID uuid.UUID) (*models.UserPreference, error) {
	var pref models.UserPreference
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return &pref, nil
}

// CurrentPreference returns the stored preference or the defaults. Nothing
// is written.
func (s *PreferenceService) CurrentPreference(ctx context.Context, userID uuid.UUID) (*types.PreferenceResponse, error) {
	pref, err := s.FindPreference(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		return &types.PreferenceResponse{PreferredCuisines: []string{}}, nil
	}
	return toPreferenceResponse(pref), nil
}

// UpdatePreference creates the user's preference if needed and applies the
// fields present in req.
func (s *PreferenceService) UpdatePreference(ctx context.Context, userID uuid.UUID, req *types.PreferenceRequest) (*types.PreferenceResponse, error) {
	pref, err := s.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Vegetarian != nil {
		pref.Vegetarian = *req.Vegetarian
	}
	if req.GlutenFree != nil {
		pref.GlutenFree = *req.GlutenFree
	}
	if req.PreferredCuisines != nil {
		cuisines := make([]string, 0, len(req.PreferredCuisines))
		for _, c := range req.PreferredCuisines {
			if c = strings.TrimSpace(c); c != "" {
				cuisines = append(cuisines, c)
			}
		}
		pref.PreferredCuisines = datatypes.JSONSlice[string](cuisines)
	}

	if err := s.db.WithContext(ctx).Save(pref).Error; err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}
	return toPreferenceResponse(pref), nil
}

func (s *PreferenceService) findOrCreate(ctx context.Context, userID uuid.UUID) (*models.UserPreference, error) {
	pref, err := s.FindPreference(ctx, userID)
	if err != nil || pref != nil {
		return pref, err
	}

	pref = &models.UserPreference{UserID: userID}
	err = s.db.WithContext(ctx).Create(pref).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// created concurrently by another request
		return s.FindPreference(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create preferences: %w", err)
	}
	return pref, nil
}

func toPreferenceResponse(p *models.UserPreference) *types.PreferenceResponse {
	cuisines := []string(p.PreferredCuisines)
	if cuisines == nil {
		cuisines = []string{}
	}
	return &types.PreferenceResponse{
		Vegetarian:        p.Vegetarian,
		GlutenFree:        p.GlutenFree,
		PreferredCuisines: cuisines,
	}
}
