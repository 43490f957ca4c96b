// internal/geo/geo.go
package geo

import (
	"strings"

	stderrors "sla-tracker/internal/common/errors"
)

// Filter is a named geography and the upstream county values it covers.
// Filters are static, built once at init and never mutated.
type Filter struct {
	Name     string
	Counties []string
	Borough  bool
}

// boroughCounties maps each NYC borough to the county the upstream data
// files it under.
var boroughCounties = map[string]string{
	"manhattan":     "New York",
	"brooklyn":      "Kings",
	"queens":        "Queens",
	"bronx":         "Bronx",
	"staten island": "Richmond",
}

// countyBoroughs is the reverse mapping, keyed by normalized county.
var countyBoroughs = map[string]string{}

// nyCounties is the full NY State county enumeration.
var nyCounties = []string{
	"Albany", "Allegany", "Bronx", "Broome", "Cattaraugus", "Cayuga",
	"Chautauqua", "Chemung", "Chenango", "Clinton", "Columbia", "Cortland",
	"Delaware", "Dutchess", "Erie", "Essex", "Franklin", "Fulton", "Genesee",
	"Greene", "Hamilton", "Herkimer", "Jefferson", "Kings", "Lewis",
	"Livingston", "Madison", "Monroe", "Montgomery", "Nassau", "New York",
	"Niagara", "Oneida", "Onondaga", "Ontario", "Orange", "Orleans", "Oswego",
	"Otsego", "Putnam", "Queens", "Rensselaer", "Richmond", "Rockland",
	"Saratoga", "Schenectady", "Schoharie", "Schuyler", "Seneca",
	"St. Lawrence", "Steuben", "Suffolk", "Sullivan", "Tioga", "Tompkins",
	"Ulster", "Warren", "Washington", "Wayne", "Westchester", "Wyoming",
	"Yates",
}

var (
	boroughFilters = map[string]*Filter{}
	countyFilters  = map[string]*Filter{}
	boroughOrder   = []string{"manhattan", "brooklyn", "queens", "bronx", "staten island"}
)

func init() {
	for name, county := range boroughCounties {
		boroughFilters[normalize(name)] = &Filter{
			Name:     name,
			Counties: []string{county},
			Borough:  true,
		}
		countyBoroughs[normalize(county)] = name
	}
	for _, county := range nyCounties {
		countyFilters[normalize(county)] = &Filter{
			Name:     county,
			Counties: []string{county},
		}
	}
}

// Resolve maps a free-text county or NYC borough name to its Filter.
// Borough names win over county names where they collide.
func Resolve(name string) (*Filter, error) {
	key := normalize(name)
	if f, ok := boroughFilters[key]; ok {
		return f, nil
	}
	if f, ok := countyFilters[key]; ok {
		return f, nil
	}
	return nil, stderrors.NewGeographyNotFoundError(strings.TrimSpace(name))
}

// ResolveBorough is Resolve constrained to the five NYC borough names.
func ResolveBorough(name string) (*Filter, error) {
	if f, ok := boroughFilters[normalize(name)]; ok {
		return f, nil
	}
	return nil, stderrors.NewGeographyNotFoundError(strings.TrimSpace(name))
}

// Boroughs returns the five canonical borough names in display order.
func Boroughs() []string {
	out := make([]string, len(boroughOrder))
	copy(out, boroughOrder)
	return out
}

// NYC returns a filter covering all five borough counties.
func NYC() *Filter {
	counties := make([]string, 0, len(boroughOrder))
	for _, b := range boroughOrder {
		counties = append(counties, boroughCounties[b])
	}
	return &Filter{Name: "nyc", Counties: counties}
}

// BoroughForCounty maps an upstream county value back to its borough name.
func BoroughForCounty(county string) (string, bool) {
	b, ok := countyBoroughs[normalize(county)]
	return b, ok
}

// Matches reports whether a record's county field falls inside the filter.
func (f *Filter) Matches(county string) bool {
	key := normalize(county)
	for _, c := range f.Counties {
		if normalize(c) == key {
			return true
		}
	}
	return false
}

// normalize lowers the name and strips whitespace, hyphens, periods and a
// trailing "county", so "Staten-Island" and "ST LAWRENCE COUNTY" resolve.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, " county")
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '\t', '-', '.':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
