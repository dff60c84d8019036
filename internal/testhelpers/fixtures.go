package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/pantrymatch/backend/internal/models"
)

// RecipeFixture describes a recipe to insert. Ingredient names are found or
// created in the catalog.
type RecipeFixture struct {
	Title        string
	Cuisine      models.Cuisine
	Difficulty   models.Difficulty
	CookingTime  int
	IsVegetarian bool
	IsGlutenFree bool
	Ingredients  []string
}

// CreateIngredient finds or creates a catalog ingredient by name
func CreateIngredient(t *testing.T, db *gorm.DB, name string) models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{Name: name}
	if err := db.Where(models.Ingredient{Name: name}).FirstOrCreate(&ingredient).Error; err != nil {
		t.Fatalf("failed to create ingredient %q: %v", name, err)
	}
	return ingredient
}

// CreateRecipe inserts a recipe together with its required ingredients
func CreateRecipe(t *testing.T, db *gorm.DB, f RecipeFixture) models.Recipe {
	t.Helper()

	if f.CookingTime == 0 {
		f.CookingTime = 30
	}
	if f.Cuisine == "" {
		f.Cuisine = models.CuisineItalian
	}

	recipe := models.Recipe{
		Title:        f.Title,
		Description:  f.Title + " description",
		Instructions: "Cook it.",
		CookingTime:  f.CookingTime,
		Difficulty:   f.Difficulty,
		Cuisine:      f.Cuisine,
		IsVegetarian: f.IsVegetarian,
		IsGlutenFree: f.IsGlutenFree,
	}
	if err := db.Omit("Ingredients").Create(&recipe).Error; err != nil {
		t.Fatalf("failed to create recipe %q: %v", f.Title, err)
	}

	for _, name := range f.Ingredients {
		ingredient := CreateIngredient(t, db, name)
		ri := models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: ingredient.ID, Quantity: "1"}
		if err := db.Omit("Ingredient").Create(&ri).Error; err != nil {
			t.Fatalf("failed to link ingredient %q: %v", name, err)
		}
		ri.Ingredient = ingredient
		recipe.Ingredients = append(recipe.Ingredients, ri)
	}
	return recipe
}

// CreateRating stores a rating from userID for recipeID
func CreateRating(t *testing.T, db *gorm.DB, userID, recipeID uuid.UUID, rating int) models.RecipeRating {
	t.Helper()
	r := models.RecipeRating{UserID: userID, RecipeID: recipeID, Rating: rating}
	if err := db.Omit("Recipe").Create(&r).Error; err != nil {
		t.Fatalf("failed to create rating: %v", err)
	}
	return r
}
