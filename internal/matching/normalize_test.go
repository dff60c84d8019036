package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tomatoes", "tomato"},
		{"Onion Pieces", "onion"},
		{"garlic piece", "garlic"},
		{"", ""},
		{"rice", "rice"},
		{"peas", "pea"},
		{"ONIONS", "onion"},
		{"  basil  ", "basil"},
		// Trailing space hides the plural suffix.
		{"tomatoes ", "tomatoes"},
		{"onions piece", "onion"},
		// Known simplification kept on purpose.
		{"bus", "bu"},
		// Only one suffix is stripped.
		{"glasses", "glass"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIsIdempotentForSingularWords(t *testing.T) {
	for _, word := range []string{"rice", "tomato", "garlic", "flour"} {
		assert.Equal(t, word, Normalize(Normalize(word)))
	}
}
