package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/service"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

// PreferenceHandler serves the caller's dietary and cuisine preferences
type PreferenceHandler struct {
	handler
	preferences *service.PreferenceService
}

func NewPreferenceHandler(preferences *service.PreferenceService, log *zap.Logger, debug bool) *PreferenceHandler {
	return &PreferenceHandler{handler: handler{log: log, debug: debug}, preferences: preferences}
}

func (h *PreferenceHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	preferences := router.Group("/preferences", auth)
	{
		preferences.GET("/current", h.GetCurrent)
		preferences.POST("", h.Update)
	}
}

// GetCurrent returns the stored preferences, or the defaults when the
// caller has none. Nothing is written.
func (h *PreferenceHandler) GetCurrent(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	pref, err := h.preferences.CurrentPreference(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pref)
}

func (h *PreferenceHandler) Update(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var req types.PreferenceRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	pref, err := h.preferences.UpdatePreference(c.Request.Context(), userID, &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pref)
}
