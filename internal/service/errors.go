package service

import "errors"

var (
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrDuplicateIngredient = errors.New("an ingredient with this name already exists")
	ErrIngredientInUse     = errors.New("ingredient is used by one or more recipes")
	ErrSelfSubstitution    = errors.New("an ingredient cannot substitute itself")
	ErrDuplicateRecipeItem = errors.New("recipe lists the same ingredient more than once")
	ErrRatingNotFound      = errors.New("rating not found")
	ErrDuplicateRating     = errors.New("you have already rated this recipe")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrInvalidToken        = errors.New("invalid token")
	ErrExtractionFailed    = errors.New("ingredient extraction failed")
)
