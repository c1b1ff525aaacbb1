package utils

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr string
	}{
		{name: "stop id", id: "M_GLD"},
		{name: "pattern id", id: "X28:0"},
		{name: "hyphens and dots", id: "stop-12.a"},
		{name: "spaces and punctuation", id: "Stop 12 (North)"},
		{name: "apostrophe", id: "Gare de l'Est"},
		{name: "non-ascii letters", id: "Zürich HB"},
		{name: "empty", id: "", wantErr: "id cannot be empty"},
		{name: "too long", id: strings.Repeat("a", 101), wantErr: "id too long (max 100 characters)"},
		{name: "script tag", id: "M_GLD<script>", wantErr: "id contains invalid characters"},
		{name: "sql injection", id: "M_GLD'; DROP TABLE stops; --", wantErr: "id contains invalid characters"},
		{name: "block comment", id: "M_GLD/**/", wantErr: "id contains invalid characters"},
		{name: "control character", id: "M_GLD\n", wantErr: "id contains invalid characters"},
		{name: "long multibyte id within limit", id: strings.Repeat("é", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{name: "empty", query: ""},
		{name: "two words", query: "gold souq"},
		{name: "slash in name", query: "Burj Khalifa/Dubai Mall"},
		{name: "too long", query: strings.Repeat("a", 201), wantErr: true},
		{name: "html", query: "<b>gold</b>", wantErr: true},
		{name: "sql comment", query: "gold; --", wantErr: true},
		{name: "block comment", query: "gold /* x */", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.query)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCoordinates(t *testing.T) {
	assert.NoError(t, ValidateLatitude(25.27))
	assert.NoError(t, ValidateLatitude(-90))
	assert.Error(t, ValidateLatitude(90.1))

	assert.NoError(t, ValidateLongitude(55.3))
	assert.NoError(t, ValidateLongitude(180))
	assert.Error(t, ValidateLongitude(-180.5))

	assert.Error(t, ValidateLatitude(math.NaN()))
	assert.Error(t, ValidateLongitude(math.NaN()))
	assert.Error(t, ValidateLatitude(math.Inf(1)))
	assert.Error(t, ValidateLongitude(math.Inf(-1)))
}

func TestValidateRadius(t *testing.T) {
	assert.NoError(t, ValidateRadius(0))
	assert.NoError(t, ValidateRadius(10000))
	assert.EqualError(t, ValidateRadius(10000.1), "radius too large (max 10000 meters)")
	assert.EqualError(t, ValidateRadius(-1), "radius must be non-negative")
	assert.EqualError(t, ValidateRadius(math.NaN()), "radius must be a finite number")
	assert.EqualError(t, ValidateRadius(math.Inf(1)), "radius must be a finite number")
}

func TestValidateLocationParams(t *testing.T) {
	assert.Empty(t, ValidateLocationParams(25.27, 55.3, 500))

	fieldErrors := ValidateLocationParams(91, 181, 20000)
	assert.Len(t, fieldErrors, 3)
	assert.Contains(t, fieldErrors, "lat")
	assert.Contains(t, fieldErrors, "lon")
	assert.Contains(t, fieldErrors, "radius")
}

func TestValidateAndSanitizeQuery(t *testing.T) {
	q, err := ValidateAndSanitizeQuery("  gold souq ")
	assert.NoError(t, err)
	assert.Equal(t, "gold souq", q)

	_, err = ValidateAndSanitizeQuery("<script>alert(1)</script>")
	assert.Error(t, err)
}
