// Package vision extracts ingredient names from photos through an
// OpenAI-compatible vision model.
package vision

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// MaxImageSize is the largest accepted upload, in bytes
const MaxImageSize = 4 << 20

var (
	// ErrNoIngredientsDetected means the model answered but named no ingredients
	ErrNoIngredientsDetected = errors.New("no ingredients detected in the image")
	// ErrInvalidImage means the upload is empty, too large, or not a JPEG or PNG
	ErrInvalidImage = errors.New("invalid image")
)

// Extractor returns the ingredient names visible in an image.
// Names are trimmed and lower-cased.
type Extractor interface {
	Extract(ctx context.Context, image []byte) ([]string, error)
}

// ValidateImage checks the size and format of an uploaded image
func ValidateImage(image []byte) error {
	if len(image) == 0 {
		return errors.Join(ErrInvalidImage, errors.New("image is empty"))
	}
	if len(image) > MaxImageSize {
		return errors.Join(ErrInvalidImage, errors.New("image size exceeds 4MB limit"))
	}
	switch ct := http.DetectContentType(image); ct {
	case "image/jpeg", "image/png":
		return nil
	default:
		return errors.Join(ErrInvalidImage, errors.New("unsupported image format: "+ct))
	}
}

// ParseIngredients splits a comma-separated model answer into ingredient names
func ParseIngredients(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
