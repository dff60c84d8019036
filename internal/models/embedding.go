package models

import (
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	pgvector "github.com/pgvector/pgvector-go"
)

// EmbeddingDims is the width of the recipe embedding column
const EmbeddingDims = 32

// EmbedText hashes the lower-cased words of text into an EmbeddingDims
// bag-of-words vector scaled to unit length. Word order does not matter.
// Text without letters or digits embeds as the zero vector.
func EmbedText(text string) pgvector.Vector {
	vec := make([]float32, EmbeddingDims)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		vec[xxhash.Sum64String(w)%EmbeddingDims]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return pgvector.NewVector(vec)
}

// EmbeddingText is the text a recipe is embedded from: its title,
// description and cuisine, plus the names of any loaded ingredients.
func (r *Recipe) EmbeddingText() string {
	parts := []string{r.Title, r.Description, string(r.Cuisine)}
	return strings.Join(append(parts, r.IngredientNames()...), " ")
}
