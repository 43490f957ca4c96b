// internal/keyword/matcher.go
package keyword

import "strings"

// DefaultTerms is the built-in Japanese-cuisine keyword list. Matching is
// case-insensitive substring containment over a whitespace-normalized name.
var DefaultTerms = []string{
	"sushi",
	"ramen",
	"izakaya",
	"japanese",
	"japan",
	"hibachi",
	"teppanyaki",
	"yakitori",
	"yakiniku",
	"tonkatsu",
	"tempura",
	"udon",
	"soba",
	"donburi",
	"bento",
	"omakase",
	"kaiseki",
	"robata",
	"sake bar",
	"sakaba",
	"shabu",
	"sukiyaki",
	"onigiri",
	"gyoza",
	"katsu",
	"teriyaki",
}

// Matcher answers whether a business name looks like a Japanese restaurant.
type Matcher struct {
	terms []string
}

// NewMatcher builds a matcher from terms, falling back to DefaultTerms when
// the list is empty. Terms are normalized once at construction.
func NewMatcher(terms []string) *Matcher {
	if len(terms) == 0 {
		terms = DefaultTerms
	}
	normalized := make([]string, 0, len(terms))
	for _, t := range terms {
		t = normalize(t)
		if t != "" {
			normalized = append(normalized, t)
		}
	}
	return &Matcher{terms: normalized}
}

// Match reports whether name contains any cuisine keyword. An empty or
// missing name never matches and never errors.
func (m *Matcher) Match(name string) bool {
	if name == "" {
		return false
	}
	name = normalize(name)
	for _, term := range m.terms {
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
