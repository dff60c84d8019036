package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/models"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

// RatingService manages users' recipe ratings. Every operation is scoped to
// the calling user.
type RatingService struct {
	db *gorm.DB
}

// NewRatingService creates a new RatingService instance
func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// ListRatings returns the user's ratings, newest first
func (s *RatingService) ListRatings(ctx context.Context, userID uuid.UUID) ([]models.RecipeRating, error) {
	ratings := make([]models.RecipeRating, 0)
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}

// CreateRating rates a recipe. A user can rate each recipe once.
func (s *RatingService) CreateRating(ctx context.Context, userID uuid.UUID, req *types.CreateRatingRequest) (*models.RecipeRating, error) {
	if !validRating(req.Rating) {
		return nil, ErrInvalidRating
	}

	var rating models.RecipeRating
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipes int64
		if err := tx.Model(&models.Recipe{}).Where("id = ?", req.RecipeID).Count(&recipes).Error; err != nil {
			return fmt.Errorf("failed to look up recipe: %w", err)
		}
		if recipes == 0 {
			return ErrRecipeNotFound
		}

		var existing int64
		if err := tx.Model(&models.RecipeRating{}).
			Where("user_id = ? AND recipe_id = ?", userID, req.RecipeID).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check existing rating: %w", err)
		}
		if existing > 0 {
			return ErrDuplicateRating
		}

		rating = models.RecipeRating{
			UserID:   userID,
			RecipeID: req.RecipeID,
			Rating:   req.Rating,
			Comment:  req.Comment,
		}
		if err := tx.Omit("Recipe").Create(&rating).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateRating
			}
			return fmt.Errorf("failed to create rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// UpdateRating changes the score or comment of one of the user's ratings
func (s *RatingService) UpdateRating(ctx context.Context, userID, id uuid.UUID, req *types.UpdateRatingRequest) (*models.RecipeRating, error) {
	rating, err := s.getOwn(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		if !validRating(*req.Rating) {
			return nil, ErrInvalidRating
		}
		rating.Rating = *req.Rating
	}
	if req.Comment != nil {
		rating.Comment = *req.Comment
	}

	if err := s.db.WithContext(ctx).Omit("Recipe").Save(rating).Error; err != nil {
		return nil, fmt.Errorf("failed to update rating: %w", err)
	}
	return rating, nil
}

// DeleteRating removes one of the user's ratings
func (s *RatingService) DeleteRating(ctx context.Context, userID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.RecipeRating{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRatingNotFound
	}
	return nil
}

// CuisineRatings returns each of the user's ratings paired with the cuisine
// of the rated recipe.
func (s *RatingService) CuisineRatings(ctx context.Context, userID uuid.UUID) ([]matching.CuisineRating, error) {
	var rows []matching.CuisineRating
	if err := s.db.WithContext(ctx).Model(&models.RecipeRating{}).
		Select("recipes.cuisine AS cuisine, recipe_ratings.rating AS rating").
		Joins("JOIN recipes ON recipes.id = recipe_ratings.recipe_id").
		Where("recipe_ratings.user_id = ?", userID).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load rated cuisines: %w", err)
	}
	return rows, nil
}

// RatedRecipeIDs returns the ids of every recipe the user has rated
func (s *RatingService) RatedRecipeIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.RecipeRating{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to load rated recipes: %w", err)
	}

	rated := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		rated[id] = struct{}{}
	}
	return rated, nil
}

func (s *RatingService) getOwn(ctx context.Context, userID, id uuid.UUID) (*models.RecipeRating, error) {
	var rating models.RecipeRating
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return &rating, nil
}

func validRating(r int) bool {
	return r >= 1 && r <= 5
}
