// internal/geo/geo_test.go
package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "sla-tracker/internal/common/errors"
)

func TestResolve_Boroughs(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantCounty string
	}{
		{"manhattan", "manhattan", "New York"},
		{"mixed case", "Brooklyn", "Kings"},
		{"upper with whitespace", "  QUEENS  ", "Queens"},
		{"bronx", "bronx", "Bronx"},
		{"staten island", "staten island", "Richmond"},
		{"staten-island hyphenated", "staten-island", "Richmond"},
		{"statenisland collapsed", "statenisland", "Richmond"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Resolve(tt.input)
			require.NoError(t, err)
			assert.True(t, f.Borough)
			assert.Equal(t, []string{tt.wantCounty}, f.Counties)
		})
	}
}

func TestResolve_Counties(t *testing.T) {
	f, err := Resolve("westchester")
	require.NoError(t, err)
	assert.False(t, f.Borough)
	assert.Equal(t, "Westchester", f.Name)

	f, err = Resolve("St. Lawrence")
	require.NoError(t, err)
	assert.Equal(t, "St. Lawrence", f.Name)

	f, err = Resolve("ERIE COUNTY")
	require.NoError(t, err)
	assert.Equal(t, "Erie", f.Name)
}

func TestResolve_NotFound(t *testing.T) {
	_, err := Resolve("unknownplace")
	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeGeographyNotFound, stderrors.CodeOf(err))

	_, err = Resolve("")
	require.Error(t, err)
}

func TestResolveBorough_RejectsCounties(t *testing.T) {
	_, err := ResolveBorough("westchester")
	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeGeographyNotFound, stderrors.CodeOf(err))

	f, err := ResolveBorough("Staten-Island")
	require.NoError(t, err)
	assert.Equal(t, "staten island", f.Name)
}

func TestFilter_Matches(t *testing.T) {
	manhattan, err := Resolve("manhattan")
	require.NoError(t, err)

	assert.True(t, manhattan.Matches("New York"))
	assert.True(t, manhattan.Matches("NEW YORK"))
	assert.False(t, manhattan.Matches("Kings"))
	assert.False(t, manhattan.Matches(""))
}

func TestNYC(t *testing.T) {
	nyc := NYC()
	assert.ElementsMatch(t, []string{"New York", "Kings", "Queens", "Bronx", "Richmond"}, nyc.Counties)
	assert.True(t, nyc.Matches("KINGS"))
	assert.False(t, nyc.Matches("Nassau"))
}

func TestBoroughForCounty(t *testing.T) {
	b, ok := BoroughForCounty("NEW YORK")
	assert.True(t, ok)
	assert.Equal(t, "manhattan", b)

	b, ok = BoroughForCounty("Richmond")
	assert.True(t, ok)
	assert.Equal(t, "staten island", b)

	_, ok = BoroughForCounty("Albany")
	assert.False(t, ok)
}
