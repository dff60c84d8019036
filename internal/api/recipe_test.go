package api

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantrymatch/backend/internal/models"
	"github.com/pageza/pantrymatch/backend/internal/testhelpers"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

func validRecipeBody() map[string]interface{} {
	return map[string]interface{}{
		"title":            "Tomato Pasta",
		"instructions":     "Boil pasta. Add sauce.",
		"cooking_time":     20,
		"preparation_time": 10,
		"cuisine":          "italian",
		"is_vegetarian":    true,
		"nutrients":        map[string]float64{"fat": 12.5},
		"ingredients": []map[string]interface{}{
			{"name": "Pasta", "quantity": "200", "unit": "g"},
			{"name": "Tomato", "quantity": "3"},
		},
	}
}

func TestCreateRecipe(t *testing.T) {
	a := setupAPI(t)

	w := a.do(t, http.MethodPost, "/api/v1/recipes", validRecipeBody(), a.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var recipe types.RecipeDetail
	decode(t, w, &recipe)
	assert.NotEqual(t, uuid.Nil, recipe.ID)
	assert.Equal(t, "Tomato Pasta", recipe.Title)
	assert.Equal(t, models.DifficultyMedium, recipe.Difficulty)
	assert.Equal(t, 4, recipe.Servings)
	assert.Equal(t, 30, recipe.TotalTime)
	assert.ElementsMatch(t, []string{"Pasta", "Tomato"}, recipe.IngredientNames())
	assert.Nil(t, recipe.AverageRating)
	assert.Contains(t, w.Body.String(), `"ingredient_name":"Pasta"`)
}

func TestCreateRecipe_RequiresAuth(t *testing.T) {
	a := setupAPI(t)

	w := a.do(t, http.MethodPost, "/api/v1/recipes", validRecipeBody(), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
}

func TestCreateRecipe_ValidationErrors(t *testing.T) {
	a := setupAPI(t)
	existing := testhelpers.CreateIngredient(t, a.db, "Salt")

	tests := []struct {
		name      string
		mutate    func(body map[string]interface{})
		wantField string
	}{
		{
			name:      "unknown cuisine",
			mutate:    func(b map[string]interface{}) { b["cuisine"] = "martian" },
			wantField: "cuisine",
		},
		{
			name:      "dietary restrictions not a list",
			mutate:    func(b map[string]interface{}) { b["dietary_restrictions"] = "vegan" },
			wantField: "dietary_restrictions",
		},
		{
			name:      "negative nutrient",
			mutate:    func(b map[string]interface{}) { b["nutrients"] = map[string]float64{"fat": -1} },
			wantField: "nutrients[fat]",
		},
		{
			name: "same ingredient twice",
			mutate: func(b map[string]interface{}) {
				b["ingredients"] = []map[string]interface{}{
					{"ingredient_id": existing.ID},
					{"name": "salt"},
				}
			},
			wantField: "ingredients",
		},
		{
			name: "unknown ingredient id",
			mutate: func(b map[string]interface{}) {
				b["ingredients"] = []map[string]interface{}{{"ingredient_id": uuid.New()}}
			},
			wantField: "ingredients",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validRecipeBody()
			tt.mutate(body)

			w := a.do(t, http.MethodPost, "/api/v1/recipes", body, a.token)

			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
			assert.Contains(t, w.Body.String(), `"field":"`+tt.wantField+`"`)
		})
	}
}

func TestCreateRecipe_EmptyBody(t *testing.T) {
	a := setupAPI(t)

	w := a.do(t, http.MethodPost, "/api/v1/recipes", nil, a.token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestGetRecipe(t *testing.T) {
	a := setupAPI(t)
	recipe := testhelpers.CreateRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Risotto", Ingredients: []string{"rice", "butter"}})
	testhelpers.CreateRating(t, a.db, uuid.New(), recipe.ID, 4)
	testhelpers.CreateRating(t, a.db, uuid.New(), recipe.ID, 5)

	t.Run("found", func(t *testing.T) {
		w := a.do(t, http.MethodGet, "/api/v1/recipes/"+recipe.ID.String(), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var detail types.RecipeDetail
		decode(t, w, &detail)
		assert.Equal(t, "Risotto", detail.Title)
		require.NotNil(t, detail.AverageRating)
		assert.InDelta(t, 4.5, *detail.AverageRating, 0.001)
		assert.Equal(t, int64(2), detail.RatingCount)
		assert.NotNil(t, detail.Substitutes)
	})

	t.Run("missing", func(t *testing.T) {
		w := a.do(t, http.MethodGet, "/api/v1/recipes/"+uuid.NewString(), nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(t, w))
	})

	t.Run("malformed id", func(t *testing.T) {
		w := a.do(t, http.MethodGet, "/api/v1/recipes/not-a-uuid", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListRecipes(t *testing.T) {
	a := setupAPI(t)
	testhelpers.CreateRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Pad Thai", Cuisine: models.CuisineThai, CookingTime: 25, Ingredients: []string{"noodles", "peanuts"}})
	testhelpers.CreateRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Margherita", Cuisine: models.CuisineItalian, CookingTime: 15, IsVegetarian: true, Ingredients: []string{"dough", "tomato"}})
	testhelpers.CreateRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Lasagna", Cuisine: models.CuisineItalian, CookingTime: 60, Ingredients: []string{"pasta", "beef"}})

	list := func(t *testing.T, query string) types.RecipeListResponse {
		t.Helper()
		w := a.do(t, http.MethodGet, "/api/v1/recipes"+query, nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp types.RecipeListResponse
		decode(t, w, &resp)
		return resp
	}
	titlesOf := func(resp types.RecipeListResponse) []string {
		out := make([]string, len(resp.Results))
		for i, r := range resp.Results {
			out[i] = r.Title
		}
		return out
	}

	t.Run("cuisine and ordering", func(t *testing.T) {
		resp := list(t, "?cuisine=italian&ordering=cooking_time")
		assert.Equal(t, int64(2), resp.Count)
		assert.Equal(t, []string{"Margherita", "Lasagna"}, titlesOf(resp))
	})

	t.Run("range and flag", func(t *testing.T) {
		resp := list(t, "?cooking_time_lte=30&is_vegetarian=false&ordering=-cooking_time")
		assert.Equal(t, []string{"Pad Thai"}, titlesOf(resp))
	})

	t.Run("search by ingredient name", func(t *testing.T) {
		resp := list(t, "?search=PEANUT")
		assert.Equal(t, []string{"Pad Thai"}, titlesOf(resp))
	})

	t.Run("pagination", func(t *testing.T) {
		resp := list(t, "?ordering=cooking_time&page=2&page_size=2")
		assert.Equal(t, int64(3), resp.Count)
		assert.Equal(t, 2, resp.Page)
		assert.Equal(t, 2, resp.PageSize)
		assert.Equal(t, []string{"Lasagna"}, titlesOf(resp))
	})

	t.Run("defaults", func(t *testing.T) {
		resp := list(t, "")
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, types.DefaultPageSize, resp.PageSize)
		assert.Len(t, resp.Results, 3)
	})

	t.Run("invalid ordering", func(t *testing.T) {
		w := a.do(t, http.MethodGet, "/api/v1/recipes?ordering=title", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("page size above max", func(t *testing.T) {
		w := a.do(t, http.MethodGet, "/api/v1/recipes?page_size=500", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateAndDeleteRecipe(t *testing.T) {
	a := setupAPI(t)
	recipe := testhelpers.CreateRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Soup", Ingredients: []string{"water"}})
	path := "/api/v1/recipes/" + recipe.ID.String()

	w := a.do(t, http.MethodPut, path, map[string]interface{}{
		"title":       "Tomato Soup",
		"ingredients": []map[string]interface{}{{"name": "tomato"}, {"name": "water"}},
	}, a.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated types.RecipeDetail
	decode(t, w, &updated)
	assert.Equal(t, "Tomato Soup", updated.Title)
	assert.Equal(t, recipe.CookingTime, updated.CookingTime)
	assert.ElementsMatch(t, []string{"tomato", "water"}, updated.IngredientNames())

	w = a.do(t, http.MethodDelete, path, nil, a.token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(t, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(t, http.MethodDelete, path, nil, a.token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMatchIngredients(t *testing.T) {
	a := setupAPI(t)
	testhelpers.CreateRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Omelette", Difficulty: models.DifficultyEasy, CookingTime: 10, Ingredients: []string{"eggs", "butter"}})
	testhelpers.CreateRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Cake", Difficulty: models.DifficultyHard, CookingTime: 60, Ingredients: []string{"eggs", "flour", "sugar", "butter"}})
	testhelpers.CreateRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Salad", CookingTime: 5, Ingredients: []string{"lettuce"}})

	t.Run("ranked by match percentage", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/api/v1/recipes/match_ingredients", map[string]interface{}{
			"ingredients": []string{"Egg", "butter"},
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp types.MatchIngredientsResponse
		decode(t, w, &resp)
		require.Equal(t, 2, resp.Count)
		assert.Equal(t, "Omelette", resp.Results[0].Title)
		assert.InDelta(t, 100, resp.Results[0].MatchPercentage, 0.01)
		assert.Equal(t, "Cake", resp.Results[1].Title)
		assert.InDelta(t, 50, resp.Results[1].MatchPercentage, 0.01)
		assert.Equal(t, []string{"flour", "sugar"}, resp.Results[1].MissingIngredients)
		assert.Equal(t, 2, resp.RequestInfo.IngredientsProvided)
		assert.Equal(t, []string{"Egg", "butter"}, resp.RequestInfo.IngredientsList)
	})

	t.Run("structural filters", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/api/v1/recipes/match_ingredients", map[string]interface{}{
			"ingredients": []string{"eggs", "butter"},
			"filters":     map[string]interface{}{"difficulty": "hard", "cooking_time": map[string]int{"min": 30}},
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp types.MatchIngredientsResponse
		decode(t, w, &resp)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "Cake", resp.Results[0].Title)
	})

	t.Run("empty ingredient list is an empty result", func(t *testing.T) {
		for _, body := range []map[string]interface{}{{"ingredients": []string{}}, {}} {
			w := a.do(t, http.MethodPost, "/api/v1/recipes/match_ingredients", body, "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp map[string]interface{}
			decode(t, w, &resp)
			assert.EqualValues(t, 0, resp["count"])
			assert.Equal(t, []interface{}{}, resp["results"])
			assert.Equal(t, []interface{}{}, resp["request_info"].(map[string]interface{})["ingredients_list"])
		}
	})

	t.Run("blank ingredient name rejected", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/api/v1/recipes/match_ingredients", map[string]interface{}{
			"ingredients": []string{"eggs", ""},
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	})
}

func TestSuggestions(t *testing.T) {
	a := setupAPI(t)
	carbonara := testhelpers.CreateRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Carbonara", Cuisine: models.CuisineItalian, Ingredients: []string{"pasta"}})
	testhelpers.CreateRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Pizza", Cuisine: models.CuisineItalian, IsVegetarian: true, Ingredients: []string{"dough"}})
	testhelpers.CreateRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Green Curry", Cuisine: models.CuisineThai, IsVegetarian: true, Ingredients: []string{"curry paste"}})
	testhelpers.CreateRating(t, a.db, a.userID, carbonara.ID, 5)

	t.Run("requires auth", func(t *testing.T) {
		w := a.do(t, http.MethodGet, "/api/v1/recipes/suggestions", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("preferred and highly rated cuisines", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/api/v1/preferences", map[string]interface{}{
			"vegetarian":         true,
			"preferred_cuisines": []string{"Thai"},
		}, a.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = a.do(t, http.MethodGet, "/api/v1/recipes/suggestions", nil, a.token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp types.SuggestionsResponse
		decode(t, w, &resp)
		titles := make([]string, len(resp.Results))
		for i, r := range resp.Results {
			titles[i] = r.Title
		}
		assert.ElementsMatch(t, []string{"Pizza", "Green Curry"}, titles)
		assert.ElementsMatch(t, []string{"thai", "italian"}, resp.PreferenceInfo.PreferredCuisines)
		require.NotNil(t, resp.PreferenceInfo.DietaryPreferences)
		assert.True(t, resp.PreferenceInfo.DietaryPreferences.Vegetarian)
	})
}

func TestUploadRecipeImage(t *testing.T) {
	a := setupAPI(t)
	recipe := testhelpers.CreateRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Bread", Ingredients: []string{"flour"}})
	path := "/api/v1/recipes/" + recipe.ID.String() + "/image"

	t.Run("stores image and sets url", func(t *testing.T) {
		a.putter.On("PutObject", mock.Anything, mock.Anything).Return(&s3.PutObjectOutput{}, nil).Once()

		w := a.upload(t, path, pngImage)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body struct {
			ImageURL string `json:"image_url"`
		}
		decode(t, w, &body)
		assert.True(t, strings.HasPrefix(body.ImageURL, "https://recipes-bucket.s3.amazonaws.com/recipe-images/"+recipe.ID.String()+"/"))

		var stored models.Recipe
		require.NoError(t, a.db.First(&stored, "id = ?", recipe.ID).Error)
		assert.Equal(t, body.ImageURL, stored.ImageURL)
	})

	t.Run("missing image", func(t *testing.T) {
		w := a.upload(t, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"image"`)
	})

	t.Run("not an image", func(t *testing.T) {
		w := a.upload(t, path, []byte("plain text"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		a.putter.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied")).Once()

		w := a.upload(t, path, pngImage)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "UPSTREAM_ERROR", errorCode(t, w))
	})

	t.Run("unknown recipe", func(t *testing.T) {
		w := a.upload(t, "/api/v1/recipes/"+uuid.NewString()+"/image", pngImage)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
