package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRadius(t *testing.T) {
	for _, r := range AllowedRadii {
		assert.True(t, SearchParams{RadiusKm: r}.ValidRadius(), "radius %d", r)
	}
	for _, r := range []int{0, -1, 2, 7, 15, 100} {
		assert.False(t, SearchParams{RadiusKm: r}.ValidRadius(), "radius %d", r)
	}
}

func TestRadiusMeters(t *testing.T) {
	assert.Equal(t, 5000, SearchParams{RadiusKm: 5}.RadiusMeters())
	assert.Equal(t, 50000, SearchParams{RadiusKm: 50}.RadiusMeters())
}

func TestCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		location string
		wantLat  float64
		wantLng  float64
		wantOK   bool
	}{
		{"plain pair", "45.76,4.84", 45.76, 4.84, true},
		{"negative coords", "-33.87,151.21", -33.87, 151.21, true},
		{"space disqualifies", "45.76, 4.84", 0, 0, false},
		{"city name", "Lyon", 0, 0, false},
		{"city with comma and space", "Lyon, France", 0, 0, false},
		{"non-numeric pair", "north,south", 0, 0, false},
		{"empty", "", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lng, ok := SearchParams{Location: tt.location}.Coordinates()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantLat, lat, 0.0001)
				assert.InDelta(t, tt.wantLng, lng, 0.0001)
			}
		})
	}
}
