package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/apperror"
	"github.com/pageza/pantrymatch/backend/internal/service"
	"github.com/pageza/pantrymatch/backend/internal/types"
	"github.com/pageza/pantrymatch/backend/internal/validation"
)

// RecipeHandler serves the recipe catalog, ingredient matching and suggestions
type RecipeHandler struct {
	handler
	recipes     *service.RecipeService
	matches     *service.MatchService
	suggestions *service.SuggestionService
	images      *service.ImageService
}

// NewRecipeHandler creates a RecipeHandler. Image uploads are disabled when
// images is nil.
func NewRecipeHandler(
	recipes *service.RecipeService,
	matches *service.MatchService,
	suggestions *service.SuggestionService,
	images *service.ImageService,
	log *zap.Logger,
	debug bool,
) *RecipeHandler {
	return &RecipeHandler{
		handler:     handler{log: log, debug: debug},
		recipes:     recipes,
		matches:     matches,
		suggestions: suggestions,
		images:      images,
	}
}

// RegisterRoutes mounts the recipe routes on router. auth guards every
// route that changes data or depends on the caller.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("/match_ingredients", h.MatchIngredients)
		recipes.GET("/suggestions", auth, h.Suggestions)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", auth, h.CreateRecipe)
		recipes.PUT("/:id", auth, h.UpdateRecipe)
		recipes.DELETE("/:id", auth, h.DeleteRecipe)
		if h.images != nil {
			recipes.POST("/:id/image", auth, h.UploadImage)
		}
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var q types.RecipeListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.fail(c, validation.FromError(err))
		return
	}
	if err := validation.ValidateStruct(&q); err != nil {
		h.fail(c, err)
		return
	}
	q.Normalize()

	records, total, err := h.recipes.ListRecipes(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, types.RecipeListResponse{
		Count:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
		Results:  records,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, ingredientRefError(err))
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req types.UpdateRecipeRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, ingredientRefError(err))
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage stores the multipart "image" in object storage and points the
// recipe's image_url at it.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	exists, err := h.recipes.Exists(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !exists {
		h.fail(c, service.ErrRecipeNotFound)
		return
	}

	data, err := readImage(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	url, err := h.images.UploadRecipeImage(ctx, id, data)
	if err != nil {
		h.fail(c, apperror.Upstream("Failed to upload image", err))
		return
	}
	if err := h.recipes.SetImageURL(ctx, id, url); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

func (h *RecipeHandler) MatchIngredients(c *gin.Context) {
	var req types.MatchIngredientsRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	resp, err := h.matches.MatchIngredients(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipeHandler) Suggestions(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp, err := h.suggestions.Suggest(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ingredientRefError reports an unknown ingredient_id in a recipe body as
// a validation error rather than a missing resource.
func ingredientRefError(err error) error {
	if errors.Is(err, service.ErrIngredientNotFound) {
		return apperror.Validation("Request validation failed", apperror.FieldError{
			Field:   "ingredients",
			Message: "ingredients references an unknown ingredient_id",
		})
	}
	return err
}
