package types

// RecipeListQuery holds the query parameters of the recipe list endpoint.
// Range bounds are inclusive.
type RecipeListQuery struct {
	Difficulty     string `form:"difficulty" json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Cuisine        string `form:"cuisine" json:"cuisine" validate:"omitempty,oneof=italian chinese indian mexican american japanese thai mediterranean"`
	IsVegetarian   *bool  `form:"is_vegetarian" json:"is_vegetarian"`
	IsGlutenFree   *bool  `form:"is_gluten_free" json:"is_gluten_free"`
	CookingTimeLTE *int   `form:"cooking_time_lte" json:"cooking_time_lte" validate:"omitempty,gte=0"`
	CookingTimeGTE *int   `form:"cooking_time_gte" json:"cooking_time_gte" validate:"omitempty,gte=0"`
	TotalTimeLTE   *int   `form:"total_time_lte" json:"total_time_lte" validate:"omitempty,gte=0"`
	TotalTimeGTE   *int   `form:"total_time_gte" json:"total_time_gte" validate:"omitempty,gte=0"`
	CaloriesLTE    *int   `form:"calories_lte" json:"calories_lte" validate:"omitempty,gte=0"`
	CaloriesGTE    *int   `form:"calories_gte" json:"calories_gte" validate:"omitempty,gte=0"`
	Search         string `form:"search" json:"search" validate:"max=200"`
	Ordering       string `form:"ordering" json:"ordering" validate:"omitempty,oneof=average_rating -average_rating cooking_time -cooking_time calories_per_serving -calories_per_serving created_at -created_at"`
	Page           int    `form:"page" json:"page" validate:"omitempty,gte=1"`
	PageSize       int    `form:"page_size" json:"page_size" validate:"omitempty,gte=1,lte=100"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize fills in the default page and page size
func (q *RecipeListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
}
