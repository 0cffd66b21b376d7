// Package normalize converts raw place records into scored leads.
package normalize

import (
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lead-mapper/leadmapper-cli/internal/model"
	"github.com/lead-mapper/leadmapper-cli/internal/scorer"
	"github.com/lead-mapper/leadmapper-cli/pkg/places"
)

// emailPrefixes are the generic mailbox names used when synthesizing a
// contact address from a website domain.
var emailPrefixes = []string{"contact", "info", "hello", "bonjour", "service"}

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

// Lead builds a fully scored lead from a search stub and its details.
func Lead(stub places.Result, det *places.Details) model.Lead {
	name := det.Name
	if name == "" {
		name = stub.Name
	}
	address := det.FormattedAddress
	if address == "" {
		address = stub.FormattedAddress
	}
	rating := det.Rating
	if rating == nil {
		rating = stub.Rating
	}

	hasWebsite := det.Website != ""
	score := scorer.Score(scorer.Signals{
		HasWebsite:  hasWebsite,
		Rating:      det.Rating,
		ReviewCount: det.UserRatingsTotal,
		Categories:  det.Types,
	})
	category := scorer.Categorize(score)

	lead := model.Lead{
		ID:                uuid.New().String(),
		BusinessName:      name,
		Address:           address,
		Category:          primaryCategory(stub.Types),
		Phone:             det.FormattedPhoneNumber,
		Website:           det.Website,
		Rating:            rating,
		HasWebsite:        hasWebsite,
		DateAdded:         today(),
		PotentialScore:    &score,
		PotentialCategory: category,
	}

	// The provider never returns email addresses. When the place has a
	// website we synthesize a plausible generic mailbox from its domain and
	// flag it as inferred, never as extracted data.
	if email, ok := SynthesizeEmail(det.Website); ok {
		lead.Email = email
		lead.EmailInferred = true
	}
	return lead
}

// FallbackLead builds the degraded lead emitted when a place's details could
// not be fetched: fixed medium potential, no website, no contact fields.
func FallbackLead(stub places.Result) model.Lead {
	score := scorer.FallbackScore
	return model.Lead{
		ID:                uuid.New().String(),
		BusinessName:      stub.Name,
		Address:           stub.FormattedAddress,
		Category:          primaryCategory(stub.Types),
		Rating:            stub.Rating,
		HasWebsite:        false,
		DateAdded:         today(),
		PotentialScore:    &score,
		PotentialCategory: scorer.FallbackCategory,
	}
}

// SynthesizeEmail derives a generic contact address from a website URL by
// stripping the scheme and a leading www., then prefixing the domain with a
// randomly chosen mailbox name. Returns false when there is no website.
func SynthesizeEmail(website string) (string, bool) {
	if website == "" {
		return "", false
	}

	domain := schemeRe.ReplaceAllString(website, "")
	domain = strings.TrimPrefix(domain, "www.")
	if i := strings.IndexByte(domain, '/'); i >= 0 {
		domain = domain[:i]
	}
	if domain == "" {
		return "", false
	}

	prefix := emailPrefixes[rand.Intn(len(emailPrefixes))]
	return prefix + "@" + domain, true
}

func primaryCategory(types []string) string {
	if len(types) > 0 && types[0] != "" {
		return types[0]
	}
	return "Business"
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}
