// Package api contains the gin handlers of the HTTP API.
package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/apperror"
	"github.com/pageza/pantrymatch/backend/internal/middleware"
	"github.com/pageza/pantrymatch/backend/internal/service"
	"github.com/pageza/pantrymatch/backend/internal/validation"
	"github.com/pageza/pantrymatch/backend/internal/vision"
)

// handler holds what every resource handler needs to report errors
type handler struct {
	log   *zap.Logger
	debug bool
}

// fail maps err to an API error and writes it
func (h handler) fail(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	middleware.AbortWithError(c, appErr, h.debug)
}

func toAppError(err error) *apperror.Error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		return apperror.NotFound("Recipe not found")
	case errors.Is(err, service.ErrIngredientNotFound):
		return apperror.NotFound("Ingredient not found")
	case errors.Is(err, service.ErrRatingNotFound):
		return apperror.NotFound("Rating not found")
	case errors.Is(err, service.ErrDuplicateIngredient):
		return apperror.Conflict("An ingredient with this name already exists", err)
	case errors.Is(err, service.ErrDuplicateRating):
		return apperror.Conflict("You have already rated this recipe", err)
	case errors.Is(err, service.ErrIngredientInUse):
		return apperror.Conflict("Ingredient is used by one or more recipes", err)
	case errors.Is(err, service.ErrSelfSubstitution):
		return apperror.Validation("Request validation failed", apperror.FieldError{Field: "substitute_id", Message: service.ErrSelfSubstitution.Error()})
	case errors.Is(err, service.ErrDuplicateRecipeItem):
		return apperror.Validation("Request validation failed", apperror.FieldError{Field: "ingredients", Message: service.ErrDuplicateRecipeItem.Error()})
	case errors.Is(err, service.ErrInvalidRating):
		return apperror.Validation("Request validation failed", apperror.FieldError{Field: "rating", Message: service.ErrInvalidRating.Error()})
	case errors.Is(err, vision.ErrInvalidImage):
		return apperror.Validation("Invalid image", apperror.FieldError{Field: "image", Message: err.Error()})
	case errors.Is(err, vision.ErrNoIngredientsDetected):
		return apperror.Unprocessable("No ingredients detected in the image", err)
	case errors.Is(err, service.ErrExtractionFailed):
		return apperror.Upstream("Ingredient extraction failed", err)
	default:
		return apperror.Internal(err)
	}
}

// bindJSON decodes and validates the request body into req
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.Validation("Request body is required")
		}
		return validation.FromError(err)
	}
	return validation.ValidateStruct(req)
}

// pathID parses the named path parameter as a UUID
func pathID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid id", apperror.FieldError{Field: name, Message: name + " must be a valid UUID"})
	}
	return id, nil
}

// currentUser returns the id set by the auth middleware
func currentUser(c *gin.Context) (uuid.UUID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, apperror.Unauthorized("user not authenticated")
	}
	return id, nil
}

// readImage reads and validates the multipart "image" field
func readImage(c *gin.Context) ([]byte, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return nil, apperror.Validation("Request validation failed", apperror.FieldError{Field: "image", Message: "image is required"})
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, vision.MaxImageSize+1))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := vision.ValidateImage(data); err != nil {
		return nil, err
	}
	return data, nil
}
