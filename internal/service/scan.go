package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/internal/types"
	"github.com/pageza/pantrymatch/backend/internal/vision"
)

// ScanService detects ingredients in a photo and looks them up in the catalog
type ScanService struct {
	extractor   vision.Extractor
	ingredients IngredientLookup
	log         *zap.Logger
}

// NewScanService creates a new ScanService instance
func NewScanService(extractor vision.Extractor, ingredients IngredientLookup, log *zap.Logger) *ScanService {
	return &ScanService{extractor: extractor, ingredients: ingredients, log: log}
}

// ScanImage extracts ingredient names from image and splits them into
// catalog matches (exact name) and unmatched names.
// Extraction errors are joined with ErrExtractionFailed and keep their cause.
func (s *ScanService) ScanImage(ctx context.Context, image []byte) (*types.ScanResponse, error) {
	names, err := s.extractor.Extract(ctx, image)
	if err != nil {
		return nil, errors.Join(ErrExtractionFailed, err)
	}

	found, err := s.ingredients.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}

	resp := &types.ScanResponse{
		MatchedIngredients:   make([]types.ScannedIngredient, 0, len(names)),
		UnmatchedIngredients: make([]string, 0),
		TotalDetected:        len(names),
	}
	for _, name := range names {
		if ing, ok := found[name]; ok {
			resp.MatchedIngredients = append(resp.MatchedIngredients, types.ScannedIngredient{ID: ing.ID, Name: ing.Name})
		} else {
			resp.UnmatchedIngredients = append(resp.UnmatchedIngredients, name)
		}
	}

	s.log.Info("scanned ingredient image",
		zap.Int("detected", resp.TotalDetected),
		zap.Int("matched", len(resp.MatchedIngredients)),
	)
	return resp, nil
}
