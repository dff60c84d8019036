package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/service"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

// RatingHandler serves the caller's recipe ratings
type RatingHandler struct {
	handler
	ratings *service.RatingService
}

func NewRatingHandler(ratings *service.RatingService, log *zap.Logger, debug bool) *RatingHandler {
	return &RatingHandler{handler: handler{log: log, debug: debug}, ratings: ratings}
}

func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	ratings := router.Group("/ratings", auth)
	{
		ratings.GET("", h.ListRatings)
		ratings.POST("", h.CreateRating)
		ratings.PUT("/:id", h.UpdateRating)
		ratings.DELETE("/:id", h.DeleteRating)
	}
}

func (h *RatingHandler) ListRatings(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	ratings, err := h.ratings.ListRatings(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

func (h *RatingHandler) CreateRating(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var req types.CreateRatingRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	rating, err := h.ratings.CreateRating(c.Request.Context(), userID, &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rating)
}

func (h *RatingHandler) UpdateRating(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req types.UpdateRatingRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	rating, err := h.ratings.UpdateRating(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

func (h *RatingHandler) DeleteRating(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.ratings.DeleteRating(c.Request.Context(), userID, id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
