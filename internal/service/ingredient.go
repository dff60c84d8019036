package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrymatch/backend/internal/models"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

// IngredientService manages the ingredient catalog and its substitutions
type IngredientService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewIngredientService creates a new IngredientService instance
func NewIngredientService(db *gorm.DB, log *zap.Logger) *IngredientService {
	return &IngredientService{db: db, log: log}
}

// ListIngredients returns catalog ingredients ordered by name, optionally
// restricted to names containing search (case-insensitive).
func (s *IngredientService) ListIngredients(ctx context.Context, search string) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Order("name")
	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	ingredients := make([]models.Ingredient, 0)
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

// GetIngredient retrieves an ingredient with its substitutions
func (s *IngredientService) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).Preload("Substitutions").First(&ingredient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIngredientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}
	return &ingredient, nil
}

// CreateIngredient adds an ingredient. Names are unique ignoring case.
func (s *IngredientService) CreateIngredient(ctx context.Context, req *types.IngredientRequest) (*models.Ingredient, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	ingredient := models.Ingredient{Name: name, ImageURL: req.ImageURL}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIngredient
		}
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return &ingredient, nil
}

// UpdateIngredient renames an ingredient or changes its image
func (s *IngredientService) UpdateIngredient(ctx context.Context, id uuid.UUID, req *types.IngredientRequest) (*models.Ingredient, error) {
	ingredient, err := s.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, id); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(ingredient).Updates(map[string]interface{}{
		"name":      name,
		"image_url": req.ImageURL,
	}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicateIngredient
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}
	ingredient.Name = name
	ingredient.ImageURL = req.ImageURL
	return ingredient, nil
}

// DeleteIngredient removes an ingredient and every substitution that
// mentions it. Ingredients still required by a recipe cannot be deleted.
func (s *IngredientService) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ingredient models.Ingredient
		if err := tx.First(&ingredient, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIngredientNotFound
			}
			return fmt.Errorf("failed to get ingredient: %w", err)
		}

		var uses int64
		if err := tx.Model(&models.RecipeIngredient{}).Where("ingredient_id = ?", id).Count(&uses).Error; err != nil {
			return fmt.Errorf("failed to check ingredient usage: %w", err)
		}
		if uses > 0 {
			return ErrIngredientInUse
		}

		if err := tx.Where("ingredient_id = ? OR substitute_id = ?", id, id).Delete(&models.Substitution{}).Error; err != nil {
			return fmt.Errorf("failed to delete substitutions: %w", err)
		}
		if err := tx.Delete(&ingredient).Error; err != nil {
			return fmt.Errorf("failed to delete ingredient: %w", err)
		}
		return nil
	})
}

// AddSubstitution records that the substitute can stand in for the ingredient.
// A zero ratio is stored as 1.
func (s *IngredientService) AddSubstitution(ctx context.Context, ingredientID uuid.UUID, req *types.SubstitutionRequest) (*models.Substitution, error) {
	if ingredientID == req.SubstituteID {
		return nil, ErrSelfSubstitution
	}

	var found int64
	if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("id IN ?", []uuid.UUID{ingredientID, req.SubstituteID}).
		Count(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to look up ingredients: %w", err)
	}
	if found != 2 {
		return nil, ErrIngredientNotFound
	}

	ratio := req.Ratio
	if ratio == 0 {
		ratio = 1
	}
	sub := models.Substitution{
		IngredientID: ingredientID,
		SubstituteID: req.SubstituteID,
		Ratio:        ratio,
		Notes:        req.Notes,
	}
	if err := s.db.WithContext(ctx).Omit("Substitute").Create(&sub).Error; err != nil {
		return nil, fmt.Errorf("failed to create substitution: %w", err)
	}
	return &sub, nil
}

// FindByNames returns the catalog ingredients whose name equals one of names
// exactly. The result is keyed by the catalog name.
func (s *IngredientService) FindByNames(ctx context.Context, names []string) (map[string]models.Ingredient, error) {
	out := make(map[string]models.Ingredient, len(names))
	if len(names) == 0 {
		return out, nil
	}

	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Where("name IN ?", names).Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to find ingredients by name: %w", err)
	}
	for _, ing := range ingredients {
		out[ing.Name] = ing
	}
	return out, nil
}

func (s *IngredientService) ensureNameFree(ctx context.Context, name string, except uuid.UUID) error {
	query := s.db.WithContext(ctx).Model(&models.Ingredient{}).Where("LOWER(name) = ?", strings.ToLower(name))
	if except != uuid.Nil {
		query = query.Where("id <> ?", except)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check ingredient name: %w", err)
	}
	if count > 0 {
		return ErrDuplicateIngredient
	}
	return nil
}

// findOrCreateIngredient resolves a catalog ingredient by name inside tx,
// adding it when it does not exist yet.
func findOrCreateIngredient(tx *gorm.DB, name string) (models.Ingredient, error) {
	name = strings.TrimSpace(name)
	var ingredient models.Ingredient
	err := tx.Where("LOWER(name) = ?", strings.ToLower(name)).First(&ingredient).Error
	if err == nil {
		return ingredient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ingredient, fmt.Errorf("failed to look up ingredient %q: %w", name, err)
	}

	ingredient = models.Ingredient{Name: name}
	if err := tx.Create(&ingredient).Error; err != nil {
		return ingredient, fmt.Errorf("failed to create ingredient %q: %w", name, err)
	}
	return ingredient, nil
}
