package model

import (
	"strconv"
	"strings"
)

// PotentialCategory buckets a lead's potential score.
type PotentialCategory string

const (
	PotentialLow    PotentialCategory = "low"
	PotentialMedium PotentialCategory = "medium"
	PotentialHigh   PotentialCategory = "high"
)

// Lead represents one discovered business, normalized and scored.
// ID and DateAdded are set at creation and never change; everything else is
// editable. HasWebsite is derived from Website at creation but the two are
// not kept consistent after an edit.
type Lead struct {
	ID           string `json:"id"`
	BusinessName string `json:"businessName"`
	Address      string `json:"address"`
	Category     string `json:"category"`
	Phone        string `json:"phone,omitempty"`
	Website      string `json:"website,omitempty"`
	Email        string `json:"email,omitempty"`
	// EmailInferred marks Email as synthesized from the website domain
	// rather than returned by the provider.
	EmailInferred     bool              `json:"emailInferred,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	Rating            *float64          `json:"rating,omitempty"`
	HasWebsite        bool              `json:"hasWebsite"`
	DateAdded         string            `json:"dateAdded"`
	PotentialScore    *int              `json:"potentialScore,omitempty"`
	PotentialCategory PotentialCategory `json:"potentialCategory,omitempty"`
}

// SearchParams describes one business search.
type SearchParams struct {
	Query    string `json:"query"`
	Location string `json:"location"`
	RadiusKm int    `json:"radius"`
}

// AllowedRadii are the supported search radii in kilometers.
var AllowedRadii = []int{1, 5, 10, 20, 50}

// ValidRadius reports whether the radius is one of the supported values.
func (p SearchParams) ValidRadius() bool {
	for _, r := range AllowedRadii {
		if p.RadiusKm == r {
			return true
		}
	}
	return false
}

// RadiusMeters converts the radius to meters, as the provider expects.
func (p SearchParams) RadiusMeters() int {
	return p.RadiusKm * 1000
}

// Coordinates parses Location as a bare "lat,lng" pair. A location counts as
// coordinates when it contains a comma and no spaces.
func (p SearchParams) Coordinates() (lat, lng float64, ok bool) {
	loc := p.Location
	if !strings.Contains(loc, ",") || strings.Contains(loc, " ") {
		return 0, 0, false
	}
	parts := strings.SplitN(loc, ",", 2)
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lng, true
}
