package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/service"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

// IngredientHandler serves the ingredient catalog, substitutions and image scans
type IngredientHandler struct {
	handler
	ingredients *service.IngredientService
	scans       *service.ScanService
}

// NewIngredientHandler creates an IngredientHandler. The scan route is not
// mounted when scans is nil.
func NewIngredientHandler(ingredients *service.IngredientService, scans *service.ScanService, log *zap.Logger, debug bool) *IngredientHandler {
	return &IngredientHandler{
		handler:     handler{log: log, debug: debug},
		ingredients: ingredients,
		scans:       scans,
	}
}

// RegisterRoutes mounts the ingredient routes. scanLimit runs after auth on
// the scan route and may be nil.
func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc, scanLimit gin.HandlerFunc) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
		ingredients.POST("", auth, h.CreateIngredient)
		ingredients.PUT("/:id", auth, h.UpdateIngredient)
		ingredients.DELETE("/:id", auth, h.DeleteIngredient)
		ingredients.POST("/:id/substitutions", auth, h.AddSubstitution)

		if h.scans != nil {
			scan := []gin.HandlerFunc{auth}
			if scanLimit != nil {
				scan = append(scan, scanLimit)
			}
			ingredients.POST("/scan", append(scan, h.ScanImage)...)
		}
	}
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.ingredients.ListIngredients(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	ingredient, err := h.ingredients.GetIngredient(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	var req types.IngredientRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	ingredient, err := h.ingredients.CreateIngredient(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

func (h *IngredientHandler) UpdateIngredient(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req types.IngredientRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	ingredient, err := h.ingredients.UpdateIngredient(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.ingredients.DeleteIngredient(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *IngredientHandler) AddSubstitution(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req types.SubstitutionRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	sub, err := h.ingredients.AddSubstitution(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// ScanImage detects ingredients in the multipart "image" and reports which
// of them are in the catalog.
func (h *IngredientHandler) ScanImage(c *gin.Context) {
	data, err := readImage(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp, err := h.scans.ScanImage(c.Request.Context(), data)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
