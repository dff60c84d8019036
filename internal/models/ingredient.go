package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a catalog entry referenced by recipes through RecipeIngredient
type Ingredient struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	Name          string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	ImageURL      string         `gorm:"size:255" json:"image_url"`
	Substitutions []Substitution `gorm:"foreignKey:IngredientID" json:"substitutions,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Substitution is a directed ingredient -> substitute relation used for display only
type Substitution struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	IngredientID uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"ingredient_id"`
	SubstituteID uuid.UUID  `gorm:"type:varchar(36);not null" json:"substitute_id"`
	Substitute   Ingredient `gorm:"foreignKey:SubstituteID" json:"-"`
	Ratio        float64    `gorm:"not null;default:1" json:"ratio"`
	Notes        string     `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (Substitution) TableName() string {
	return "ingredient_substitutions"
}

func (s *Substitution) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
