package normalize

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lead-mapper/leadmapper-cli/internal/model"
	"github.com/lead-mapper/leadmapper-cli/pkg/places"
)

func ptrFloat64(v float64) *float64 { return &v }

func TestSynthesizeEmail(t *testing.T) {
	tests := []struct {
		name       string
		website    string
		wantDomain string
		wantOK     bool
	}{
		{"https with www", "https://www.acme-bakery.com", "acme-bakery.com", true},
		{"http no www", "http://acme.fr", "acme.fr", true},
		{"path stripped", "https://www.acme.com/contact/us", "acme.com", true},
		{"scheme case-insensitive", "HTTPS://www.acme.io", "acme.io", true},
		{"bare domain", "acme.net", "acme.net", true},
		{"no website", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, ok := SynthesizeEmail(tt.website)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Empty(t, email)
				return
			}

			at := strings.IndexByte(email, '@')
			require.Positive(t, at, "email %q has no @", email)
			assert.Equal(t, tt.wantDomain, email[at+1:])
			assert.Contains(t, emailPrefixes, email[:at])
		})
	}
}

func TestLead(t *testing.T) {
	stub := places.Result{
		PlaceID:          "p1",
		Name:             "Stub Name",
		FormattedAddress: "stub address",
		Rating:           ptrFloat64(3.0),
		Types:            []string{"restaurant", "food"},
	}
	det := &places.Details{
		Name:                 "Chez Marcel",
		FormattedAddress:     "12 Rue de la Paix, Lyon",
		FormattedPhoneNumber: "+33 4 78 00 00 00",
		Website:              "https://www.chezmarcel.fr",
		Rating:               ptrFloat64(4.6),
		Types:                []string{"restaurant"},
		UserRatingsTotal:     150,
	}

	lead := Lead(stub, det)

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "Chez Marcel", lead.BusinessName)
	assert.Equal(t, "12 Rue de la Paix, Lyon", lead.Address)
	assert.Equal(t, "restaurant", lead.Category)
	assert.Equal(t, "+33 4 78 00 00 00", lead.Phone)
	assert.True(t, lead.HasWebsite)
	require.NotNil(t, lead.Rating)
	assert.InDelta(t, 4.6, *lead.Rating, 0.001)

	// website present + 4.6 rating + 150 reviews + restaurant = 0+20+20+10
	require.NotNil(t, lead.PotentialScore)
	assert.Equal(t, 50, *lead.PotentialScore)
	assert.Equal(t, model.PotentialMedium, lead.PotentialCategory)

	// Synthesized email is flagged as inferred.
	require.NotEmpty(t, lead.Email)
	assert.True(t, lead.EmailInferred)
	assert.True(t, strings.HasSuffix(lead.Email, "@chezmarcel.fr"), "email %q", lead.Email)

	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), lead.DateAdded)
}

func TestLeadFallsBackToStubFields(t *testing.T) {
	stub := places.Result{
		PlaceID:          "p2",
		Name:             "Stub Only",
		FormattedAddress: "1 Main St",
		Rating:           ptrFloat64(4.1),
		Types:            []string{"store"},
	}
	det := &places.Details{UserRatingsTotal: 3}

	lead := Lead(stub, det)

	assert.Equal(t, "Stub Only", lead.BusinessName)
	assert.Equal(t, "1 Main St", lead.Address)
	require.NotNil(t, lead.Rating)
	assert.InDelta(t, 4.1, *lead.Rating, 0.001)
	assert.False(t, lead.HasWebsite)
	assert.Empty(t, lead.Email)
	assert.False(t, lead.EmailInferred)
}

func TestFallbackLead(t *testing.T) {
	stub := places.Result{
		PlaceID:          "p3",
		Name:             "Degraded Diner",
		FormattedAddress: "99 Elm St",
		Types:            []string{"restaurant"},
	}

	lead := FallbackLead(stub)

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "Degraded Diner", lead.BusinessName)
	assert.Equal(t, "99 Elm St", lead.Address)
	assert.Equal(t, "restaurant", lead.Category)
	assert.False(t, lead.HasWebsite)
	assert.Empty(t, lead.Phone)
	assert.Empty(t, lead.Website)
	assert.Empty(t, lead.Email)
	require.NotNil(t, lead.PotentialScore)
	assert.Equal(t, 50, *lead.PotentialScore)
	assert.Equal(t, model.PotentialMedium, lead.PotentialCategory)
}

func TestPrimaryCategory(t *testing.T) {
	assert.Equal(t, "cafe", primaryCategory([]string{"cafe", "food"}))
	assert.Equal(t, "Business", primaryCategory(nil))
	assert.Equal(t, "Business", primaryCategory([]string{""}))
}
