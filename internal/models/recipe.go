package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Difficulty of preparing a recipe
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Cuisine is one of the fixed set of supported cuisines
type Cuisine string

const (
	CuisineItalian       Cuisine = "italian"
	CuisineChinese       Cuisine = "chinese"
	CuisineIndian        Cuisine = "indian"
	CuisineMexican       Cuisine = "mexican"
	CuisineAmerican      Cuisine = "american"
	CuisineJapanese      Cuisine = "japanese"
	CuisineThai          Cuisine = "thai"
	CuisineMediterranean Cuisine = "mediterranean"
)

// Nutrients maps a nutrient name (e.g. "fiber") to its amount per serving.
type Nutrients map[string]float64

type Recipe struct {
	ID                  uuid.UUID                     `gorm:"type:varchar(36);primarykey" json:"id"`
	Title               string                        `gorm:"size:200;not null" json:"title"`
	Description         string                        `gorm:"type:text" json:"description"`
	Instructions        string                        `gorm:"type:text" json:"instructions"`
	CookingTime         int                           `gorm:"not null" json:"cooking_time"`
	PreparationTime     int                           `json:"preparation_time"`
	TotalTime           int                           `gorm:"index" json:"total_time"`
	Servings            int                           `gorm:"not null;default:4" json:"servings"`
	ServingSize         string                        `gorm:"size:50" json:"serving_size"`
	CaloriesPerServing  int                           `json:"calories_per_serving"`
	ProteinPerServing   float64                       `json:"protein_per_serving"`
	Difficulty          Difficulty                    `gorm:"size:10;not null;default:'medium'" json:"difficulty"`
	Cuisine             Cuisine                       `gorm:"size:20;index" json:"cuisine"`
	IsVegetarian        bool                          `json:"is_vegetarian"`
	IsGlutenFree        bool                          `json:"is_gluten_free"`
	DietaryRestrictions datatypes.JSONSlice[string]   `gorm:"not null;default:'[]'" json:"dietary_restrictions"`
	Nutrients           datatypes.JSONType[Nutrients] `gorm:"not null;default:'{}'" json:"nutrients"`
	ImageURL            string                        `gorm:"size:255" json:"image_url"`
	IsFeatured          bool                          `json:"is_featured"`
	Embedding           pgvector.Vector               `gorm:"type:vector(32)" json:"-"`
	Ingredients         []RecipeIngredient            `gorm:"foreignKey:RecipeID" json:"ingredients"`
	CreatedAt           time.Time                     `json:"created_at"`
	UpdatedAt           time.Time                     `json:"updated_at"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns the id and derives total_time when the caller left it unset.
// total_time is never recomputed on later saves.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.TotalTime == 0 {
		r.TotalTime = r.PreparationTime + r.CookingTime
	}
	return nil
}

func (r *Recipe) BeforeSave(tx *gorm.DB) error {
	if r.DietaryRestrictions == nil {
		r.DietaryRestrictions = datatypes.JSONSlice[string]{}
	}
	if r.Nutrients.Data() == nil {
		r.Nutrients = datatypes.NewJSONType(Nutrients{})
	}
	r.Embedding = EmbedText(r.EmbeddingText())
	return nil
}

// IngredientNames returns the names of the recipe's required ingredients.
// Ingredients must have been preloaded with their Ingredient.
func (r *Recipe) IngredientNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		names = append(names, ri.Ingredient.Name)
	}
	return names
}

// RecipeIngredient joins a recipe to a required ingredient with its quantity
type RecipeIngredient struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primarykey"`
	RecipeID     uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredient"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID"`
	Quantity     string     `gorm:"size:50"`
	Unit         string     `gorm:"size:20"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// recipeIngredientJSON is the API shape of a RecipeIngredient
type recipeIngredientJSON struct {
	Ingredient     uuid.UUID `json:"ingredient"`
	IngredientName string    `json:"ingredient_name"`
	Quantity       string    `json:"quantity"`
	Unit           string    `json:"unit"`
}

func (ri RecipeIngredient) MarshalJSON() ([]byte, error) {
	return json.Marshal(recipeIngredientJSON{
		Ingredient:     ri.IngredientID,
		IngredientName: ri.Ingredient.Name,
		Quantity:       ri.Quantity,
		Unit:           ri.Unit,
	})
}

func (ri *RecipeIngredient) UnmarshalJSON(data []byte) error {
	var v recipeIngredientJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	ri.IngredientID = v.Ingredient
	ri.Ingredient = Ingredient{ID: v.Ingredient, Name: v.IngredientName}
	ri.Quantity = v.Quantity
	ri.Unit = v.Unit
	return nil
}

// RecipeRecord is a recipe enriched with its rating aggregates.
// AverageRating is nil when the recipe has no ratings.
type RecipeRecord struct {
	Recipe
	AverageRating *float64 `json:"average_rating"`
	RatingCount   int64    `json:"rating_count"`
}

// HasCuisine reports whether the recipe cuisine matches any of the given names, ignoring case
func (r RecipeRecord) HasCuisine(cuisines []string) bool {
	for _, c := range cuisines {
		if strings.EqualFold(string(r.Cuisine), c) {
			return true
		}
	}
	return false
}
