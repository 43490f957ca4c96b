// internal/keyword/matcher_test.go
package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher_Match(t *testing.T) {
	matcher := NewMatcher(nil)

	tests := []struct {
		name     string
		business string
		want     bool
	}{
		{"plain keyword", "Sakura Sushi Bar", true},
		{"uppercase upstream name", "TOKYO RAMEN HOUSE LLC", true},
		{"keyword mid-word position", "OSUSHI 2 INC", true},
		{"multi-word keyword", "Brooklyn Sake Bar", true},
		{"multi-word keyword with extra spaces", "BROOKLYN  SAKE   BAR", true},
		{"punctuation around keyword", "IZAKAYA-JU, LLC.", true},
		{"no keyword", "Joe's Pizza", false},
		{"near miss", "SUSHMA INDIAN GRILL", false},
		{"empty name", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matcher.Match(tt.business))
		})
	}
}

func TestNewMatcher_CustomTerms(t *testing.T) {
	matcher := NewMatcher([]string{"Kaiten", "  ", "SAKE  BAR"})

	assert.True(t, matcher.Match("KAITEN ZUSHI"))
	assert.True(t, matcher.Match("downtown sake bar"))
	// default list must not leak in when overridden
	assert.False(t, matcher.Match("Sakura Sushi"))
}
