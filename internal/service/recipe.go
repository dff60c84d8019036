package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/pantrymatch/backend/internal/models"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, log *zap.Logger) *RecipeService {
	return &RecipeService{db: db, log: log}
}

// FetchRecords loads every recipe with its required ingredients and rating
// aggregates. It is the single bulk read behind matching and suggestions.
func (s *RecipeService) FetchRecords(ctx context.Context) ([]models.RecipeRecord, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Order("created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	return s.withRatings(ctx, recipes)
}

// ListRecipes returns one page of recipes matching the query, and the total
// number of matching recipes.
func (s *RecipeService) ListRecipes(ctx context.Context, q types.RecipeListQuery) ([]models.RecipeRecord, int64, error) {
	q.Normalize()

	query := s.db.WithContext(ctx).Model(&models.Recipe{})
	if q.Difficulty != "" {
		query = query.Where("recipes.difficulty = ?", strings.ToLower(q.Difficulty))
	}
	if q.Cuisine != "" {
		query = query.Where("recipes.cuisine = ?", strings.ToLower(q.Cuisine))
	}
	if q.IsVegetarian != nil {
		query = query.Where("recipes.is_vegetarian = ?", *q.IsVegetarian)
	}
	if q.IsGlutenFree != nil {
		query = query.Where("recipes.is_gluten_free = ?", *q.IsGlutenFree)
	}
	query = whereRange(query, "recipes.cooking_time", q.CookingTimeGTE, q.CookingTimeLTE)
	query = whereRange(query, "recipes.total_time", q.TotalTimeGTE, q.TotalTimeLTE)
	query = whereRange(query, "recipes.calories_per_serving", q.CaloriesGTE, q.CaloriesLTE)

	search := strings.TrimSpace(q.Search)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(recipes.title) LIKE ? OR LOWER(recipes.description) LIKE ? OR EXISTS ("+
				"SELECT 1 FROM recipe_ingredients ri JOIN ingredients i ON i.id = ri.ingredient_id "+
				"WHERE ri.recipe_id = recipes.id AND LOWER(i.name) LIKE ?)",
			like, like, like,
		)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	query = s.applyOrdering(query, q.Ordering, search)

	var recipes []models.Recipe
	if err := query.
		Select("recipes.*").
		Preload("Ingredients.Ingredient").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&recipes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
	}

	records, err := s.withRatings(ctx, recipes)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func whereRange(query *gorm.DB, column string, gte, lte *int) *gorm.DB {
	if gte != nil {
		query = query.Where(column+" >= ?", *gte)
	}
	if lte != nil {
		query = query.Where(column+" <= ?", *lte)
	}
	return query
}

var orderColumns = map[string]string{
	"cooking_time":         "recipes.cooking_time",
	"calories_per_serving": "recipes.calories_per_serving",
	"created_at":           "recipes.created_at",
}

// applyOrdering sorts by the requested field. Without one, a postgres search
// is ordered by embedding distance and everything else by newest first.
// Unrated recipes count as 0 when ordering by average rating.
func (s *RecipeService) applyOrdering(query *gorm.DB, ordering, search string) *gorm.DB {
	if ordering == "" {
		if search != "" && s.db.Dialector.Name() == "postgres" {
			return query.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "recipes.embedding <-> ?", Vars: []interface{}{models.EmbedText(search)}},
			})
		}
		ordering = "-created_at"
	}

	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")

	var column string
	if field == "average_rating" {
		query = query.Joins("LEFT JOIN (SELECT recipe_id, AVG(rating) AS avg_rating FROM recipe_ratings GROUP BY recipe_id) ra ON ra.recipe_id = recipes.id")
		column = "COALESCE(ra.avg_rating, 0)"
	} else if c, ok := orderColumns[field]; ok {
		column = c
	} else {
		column, desc = "recipes.created_at", true
	}

	if desc {
		column += " DESC"
	}
	return query.Order(column + ", recipes.id")
}

type ratingAggregate struct {
	RecipeID uuid.UUID
	Average  float64
	Count    int64
}

// withRatings attaches the average rating and rating count of each recipe
func (s *RecipeService) withRatings(ctx context.Context, recipes []models.Recipe) ([]models.RecipeRecord, error) {
	records := make([]models.RecipeRecord, len(recipes))
	if len(recipes) == 0 {
		return records, nil
	}

	ids := make([]uuid.UUID, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}

	var aggregates []ratingAggregate
	if err := s.db.WithContext(ctx).Model(&models.RecipeRating{}).
		Select("recipe_id, AVG(rating) AS average, COUNT(*) AS count").
		Where("recipe_id IN ?", ids).
		Group("recipe_id").
		Scan(&aggregates).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	byRecipe := make(map[uuid.UUID]ratingAggregate, len(aggregates))
	for _, a := range aggregates {
		byRecipe[a.RecipeID] = a
	}

	for i, r := range recipes {
		records[i] = models.RecipeRecord{Recipe: r}
		if a, ok := byRecipe[r.ID]; ok && a.Count > 0 {
			avg := a.Average
			records[i].AverageRating = &avg
			records[i].RatingCount = a.Count
		}
	}
	return records, nil
}

// GetRecipe retrieves a recipe with its ratings and ingredient substitutes
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*types.RecipeDetail, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Preload("Ingredients.Ingredient").First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	records, err := s.withRatings(ctx, []models.Recipe{recipe})
	if err != nil {
		return nil, err
	}

	substitutes, err := s.substitutesFor(ctx, recipe.Ingredients)
	if err != nil {
		return nil, err
	}

	return &types.RecipeDetail{RecipeRecord: records[0], Substitutes: substitutes}, nil
}

func (s *RecipeService) substitutesFor(ctx context.Context, items []models.RecipeIngredient) (map[string][]types.SubstituteInfo, error) {
	out := make(map[string][]types.SubstituteInfo)
	if len(items) == 0 {
		return out, nil
	}

	names := make(map[uuid.UUID]string, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, ri := range items {
		names[ri.IngredientID] = ri.Ingredient.Name
		ids = append(ids, ri.IngredientID)
	}

	var subs []models.Substitution
	if err := s.db.WithContext(ctx).
		Preload("Substitute").
		Where("ingredient_id IN ?", ids).
		Order("created_at").
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to load substitutions: %w", err)
	}

	for _, sub := range subs {
		name := names[sub.IngredientID]
		out[name] = append(out[name], types.SubstituteInfo{
			Name:  sub.Substitute.Name,
			Ratio: sub.Ratio,
			Notes: sub.Notes,
		})
	}
	return out, nil
}

// CreateRecipe creates a recipe and links its required ingredients.
// Ingredients given by name are added to the catalog when missing.
func (s *RecipeService) CreateRecipe(ctx context.Context, req *types.CreateRecipeRequest) (*types.RecipeDetail, error) {
	recipe := models.Recipe{
		Title:               strings.TrimSpace(req.Title),
		Description:         req.Description,
		Instructions:        req.Instructions,
		CookingTime:         req.CookingTime,
		PreparationTime:     req.PreparationTime,
		Servings:            req.Servings,
		ServingSize:         req.ServingSize,
		CaloriesPerServing:  req.CaloriesPerServing,
		ProteinPerServing:   req.ProteinPerServing,
		Difficulty:          req.Difficulty,
		Cuisine:             req.Cuisine,
		IsVegetarian:        req.IsVegetarian,
		IsGlutenFree:        req.IsGlutenFree,
		DietaryRestrictions: datatypes.JSONSlice[string](req.DietaryRestrictions),
		Nutrients:           datatypes.NewJSONType(req.Nutrients),
		ImageURL:            req.ImageURL,
		IsFeatured:          req.IsFeatured,
	}
	if req.TotalTime != nil {
		recipe.TotalTime = *req.TotalTime
	}
	if recipe.Difficulty == "" {
		recipe.Difficulty = models.DifficultyMedium
	}
	if recipe.Servings == 0 {
		recipe.Servings = 4
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		if err := replaceIngredients(tx, recipe.ID, req.Ingredients); err != nil {
			return err
		}
		return refreshEmbedding(tx, recipe.ID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("recipe created", zap.String("recipe_id", recipe.ID.String()), zap.String("title", recipe.Title))
	return s.GetRecipe(ctx, recipe.ID)
}

// UpdateRecipe applies a partial update. A non-nil ingredient list replaces
// the recipe's ingredients.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*types.RecipeDetail, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return fmt.Errorf("failed to get recipe: %w", err)
		}

		applyRecipeUpdate(&recipe, req)
		if err := tx.Omit(clause.Associations).Save(&recipe).Error; err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}

		if req.Ingredients != nil {
			if err := replaceIngredients(tx, recipe.ID, *req.Ingredients); err != nil {
				return err
			}
		}
		return refreshEmbedding(tx, recipe.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, id)
}

func applyRecipeUpdate(r *models.Recipe, req *types.UpdateRecipeRequest) {
	if req.Title != nil {
		r.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		r.Description = *req.Description
	}
	if req.Instructions != nil {
		r.Instructions = *req.Instructions
	}
	if req.CookingTime != nil {
		r.CookingTime = *req.CookingTime
	}
	if req.PreparationTime != nil {
		r.PreparationTime = *req.PreparationTime
	}
	if req.TotalTime != nil {
		r.TotalTime = *req.TotalTime
	}
	if req.Servings != nil {
		r.Servings = *req.Servings
	}
	if req.ServingSize != nil {
		r.ServingSize = *req.ServingSize
	}
	if req.CaloriesPerServing != nil {
		r.CaloriesPerServing = *req.CaloriesPerServing
	}
	if req.ProteinPerServing != nil {
		r.ProteinPerServing = *req.ProteinPerServing
	}
	if req.Difficulty != nil {
		r.Difficulty = *req.Difficulty
	}
	if req.Cuisine != nil {
		r.Cuisine = *req.Cuisine
	}
	if req.IsVegetarian != nil {
		r.IsVegetarian = *req.IsVegetarian
	}
	if req.IsGlutenFree != nil {
		r.IsGlutenFree = *req.IsGlutenFree
	}
	if req.DietaryRestrictions != nil {
		r.DietaryRestrictions = datatypes.JSONSlice[string](*req.DietaryRestrictions)
	}
	if req.Nutrients != nil {
		r.Nutrients = datatypes.NewJSONType(*req.Nutrients)
	}
	if req.ImageURL != nil {
		r.ImageURL = *req.ImageURL
	}
	if req.IsFeatured != nil {
		r.IsFeatured = *req.IsFeatured
	}
}

// refreshEmbedding recomputes the stored embedding once the recipe's
// ingredients are linked, so ingredient names count towards search.
func refreshEmbedding(tx *gorm.DB, recipeID uuid.UUID) error {
	var recipe models.Recipe
	if err := tx.Preload("Ingredients.Ingredient").First(&recipe, "id = ?", recipeID).Error; err != nil {
		return fmt.Errorf("failed to load recipe for embedding: %w", err)
	}
	err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).
		UpdateColumn("embedding", models.EmbedText(recipe.EmbeddingText())).Error
	if err != nil {
		return fmt.Errorf("failed to update recipe embedding: %w", err)
	}
	return nil
}

// replaceIngredients swaps the recipe's ingredient list for items
func replaceIngredients(tx *gorm.DB, recipeID uuid.UUID, items []types.RecipeIngredientInput) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return fmt.Errorf("failed to clear recipe ingredients: %w", err)
	}

	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		var ingredient models.Ingredient
		if item.IngredientID != nil {
			if err := tx.First(&ingredient, "id = ?", *item.IngredientID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrIngredientNotFound
				}
				return fmt.Errorf("failed to get ingredient: %w", err)
			}
		} else {
			var err error
			if ingredient, err = findOrCreateIngredient(tx, item.Name); err != nil {
				return err
			}
		}

		if _, dup := seen[ingredient.ID]; dup {
			return ErrDuplicateRecipeItem
		}
		seen[ingredient.ID] = struct{}{}

		ri := models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ingredient.ID,
			Quantity:     item.Quantity,
			Unit:         item.Unit,
		}
		if err := tx.Omit("Ingredient").Create(&ri).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateRecipeItem
			}
			return fmt.Errorf("failed to link ingredient: %w", err)
		}
	}
	return nil
}

// DeleteRecipe deletes a recipe together with its ingredient links and ratings
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return fmt.Errorf("failed to get recipe: %w", err)
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeRating{}).Error; err != nil {
			return fmt.Errorf("failed to delete ratings: %w", err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to delete recipe ingredients: %w", err)
		}
		if err := tx.Delete(&recipe).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}

// SetImageURL stores the public URL of the recipe image
func (s *RecipeService) SetImageURL(ctx context.Context, id uuid.UUID, url string) error {
	result := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Update("image_url", url)
	if result.Error != nil {
		return fmt.Errorf("failed to set recipe image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// Exists reports whether a recipe with the given id exists
func (s *RecipeService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up recipe: %w", err)
	}
	return count > 0, nil
}
