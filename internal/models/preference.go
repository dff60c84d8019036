package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserPreference holds a user's explicit dietary flags and preferred cuisines.
// There is at most one per user.
type UserPreference struct {
	ID                uuid.UUID                   `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID            uuid.UUID                   `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Vegetarian        bool                        `json:"vegetarian"`
	GlutenFree        bool                        `json:"gluten_free"`
	PreferredCuisines datatypes.JSONSlice[string] `gorm:"not null;default:'[]'" json:"preferred_cuisines"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}

func (p *UserPreference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *UserPreference) BeforeSave(tx *gorm.DB) error {
	if p.PreferredCuisines == nil {
		p.PreferredCuisines = datatypes.JSONSlice[string]{}
	}
	return nil
}

// RecipeRating is a user's 1-5 rating of a recipe. Unique per (user, recipe).
type RecipeRating struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_recipe_rating" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_recipe_rating;index" json:"recipe_id"`
	Recipe    Recipe    `gorm:"foreignKey:RecipeID" json:"-"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RecipeRating) TableName() string {
	return "recipe_ratings"
}

func (r *RecipeRating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
