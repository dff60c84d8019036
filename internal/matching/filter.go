package matching

import (
	"strings"

	"github.com/pageza/pantrymatch/backend/internal/models"
)

// DietaryPreferences restricts recipes by dietary flag. A false flag places no constraint.
type DietaryPreferences struct {
	Vegetarian bool `json:"vegetarian"`
	GlutenFree bool `json:"gluten_free"`
}

// TimeRange is an inclusive range in minutes. Either bound may be omitted.
type TimeRange struct {
	Min *int `json:"min,omitempty" validate:"omitempty,gte=0"`
	Max *int `json:"max,omitempty" validate:"omitempty,gte=0"`
}

// Contains reports whether minutes lies within the range
func (t TimeRange) Contains(minutes int) bool {
	if t.Min != nil && minutes < *t.Min {
		return false
	}
	if t.Max != nil && minutes > *t.Max {
		return false
	}
	return true
}

// StructuralFilters are non-ingredient recipe predicates
type StructuralFilters struct {
	Difficulty  string     `json:"difficulty,omitempty"`
	CookingTime *TimeRange `json:"cooking_time,omitempty"`
}

// Filter keeps the records that satisfy every supplied predicate. Nil
// arguments and unset predicates impose no constraint.
func Filter(records []models.RecipeRecord, prefs *DietaryPreferences, filters *StructuralFilters) []models.RecipeRecord {
	out := make([]models.RecipeRecord, 0, len(records))
	for _, rec := range records {
		if prefs != nil && !prefs.allows(rec) {
			continue
		}
		if filters != nil && !filters.allows(rec) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func (p DietaryPreferences) allows(rec models.RecipeRecord) bool {
	if p.Vegetarian && !rec.IsVegetarian {
		return false
	}
	if p.GlutenFree && !rec.IsGlutenFree {
		return false
	}
	return true
}

func (f StructuralFilters) allows(rec models.RecipeRecord) bool {
	if f.Difficulty != "" && !strings.EqualFold(string(rec.Difficulty), f.Difficulty) {
		return false
	}
	if f.CookingTime != nil && !f.CookingTime.Contains(rec.CookingTime) {
		return false
	}
	return true
}
