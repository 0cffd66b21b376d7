// Package scorer computes the potential score that ranks a discovered
// business as a sales target. The model is a fixed additive point scheme:
// the dominant signal is a missing website, refined by rating, review
// volume, and business type.
package scorer

import (
	"strings"

	"github.com/lead-mapper/leadmapper-cli/internal/model"
)

// Fallback values applied when a place's details could not be fetched. The
// item still becomes a lead, just a degraded one.
const (
	FallbackScore    = 50
	FallbackCategory = model.PotentialMedium
)

// Signals are the place attributes the score is derived from.
type Signals struct {
	HasWebsite  bool
	Rating      *float64 // nil when the place has no rating at all
	ReviewCount int
	Categories  []string
}

// highPotentialTypes are business types that tend to need a web presence:
// food and hospitality, retail, personal care, professional services,
// education.
var highPotentialTypes = map[string]struct{}{
	"restaurant":         {},
	"cafe":               {},
	"bar":                {},
	"hotel":              {},
	"lodging":            {},
	"store":              {},
	"retail":             {},
	"beauty_salon":       {},
	"hair_care":          {},
	"spa":                {},
	"gym":                {},
	"health":             {},
	"real_estate_agency": {},
	"lawyer":             {},
	"doctor":             {},
	"dentist":            {},
	"physiotherapist":    {},
	"school":             {},
	"university":         {},
}

// Score computes the 0-100 potential score for the given signals.
func Score(s Signals) int {
	score := 0

	// Missing website is the strongest signal.
	if !s.HasWebsite {
		score += 50
	}

	// Rating tier. An absent rating is itself a medium-potential signal,
	// distinct from a low rating.
	switch {
	case s.Rating == nil:
		score += 10
	case *s.Rating >= 4.5:
		score += 20
	case *s.Rating >= 4.0:
		score += 15
	case *s.Rating >= 3.5:
		score += 10
	case *s.Rating >= 3.0:
		score += 5
	}

	// Review volume tier.
	switch {
	case s.ReviewCount >= 100:
		score += 20
	case s.ReviewCount >= 50:
		score += 15
	case s.ReviewCount >= 20:
		score += 10
	case s.ReviewCount >= 5:
		score += 5
	}

	// Business type: counted once no matter how many tags match.
	for _, t := range s.Categories {
		if _, ok := highPotentialTypes[strings.ToLower(t)]; ok {
			score += 10
			break
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

// Categorize maps a score to its potential bucket. The mapping is total and
// monotonic: >=70 high, >=40 medium, otherwise low.
func Categorize(score int) model.PotentialCategory {
	switch {
	case score >= 70:
		return model.PotentialHigh
	case score >= 40:
		return model.PotentialMedium
	default:
		return model.PotentialLow
	}
}
