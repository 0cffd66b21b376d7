package places

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// Demo is an offline Client that fabricates plausible results, for trying
// the tool without a provider API key. Roughly 40% of generated places have
// no website. Safe for concurrent use; detail fetches run in parallel.
type Demo struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewDemo creates a demo client. The seed fixes the generated data, which
// keeps test runs reproducible.
func NewDemo(seed int64) *Demo {
	return &Demo{rng: rand.New(rand.NewSource(seed))}
}

var (
	demoNamePrefixes = []string{
		"Royal", "Elite", "Premium", "Golden", "Silver",
		"Diamond", "Classic", "Modern", "Urban", "Coastal",
	}
	demoNameSuffixes = []string{
		"Solutions", "Services", "Group", "Co.", "Associates", "Partners",
	}
	demoStreets = []string{
		"Main St", "Oak Ave", "Maple Rd", "Park Blvd", "Washington St", "Broadway", "Market St",
	}
	demoTypes = []string{
		"restaurant", "cafe", "store", "beauty_salon", "gym",
		"lawyer", "real_estate_agency", "plumber", "electrician",
	}
)

func (d *Demo) TextSearch(ctx context.Context, req TextSearchRequest) (*SearchResponse, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if strings.TrimSpace(req.Query) == "" {
		return &SearchResponse{Status: StatusZeroResults}, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// Location fragment for fabricated addresses. A plain-text query looks
	// like "coffee in Lyon"; take the part after " in " when present.
	area := "Springfield"
	if _, after, found := strings.Cut(req.Query, " in "); found && after != "" {
		area = after
	}

	n := 5 + d.rng.Intn(16)
	results := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		placeType := demoTypes[d.rng.Intn(len(demoTypes))]
		name := d.businessName(placeType)
		var rating *float64
		if d.rng.Float64() < 0.9 {
			r := float64(d.rng.Intn(31)+20) / 10 // 2.0 to 5.0
			rating = &r
		}
		results = append(results, Result{
			PlaceID:          fmt.Sprintf("demo-%04d", d.rng.Intn(10000)),
			Name:             name,
			FormattedAddress: fmt.Sprintf("%d %s, %s", d.rng.Intn(999)+1, demoStreets[d.rng.Intn(len(demoStreets))], area),
			Rating:           rating,
			Types:            []string{placeType},
		})
	}
	return &SearchResponse{Status: StatusOK, Results: results}, nil
}

func (d *Demo) Details(ctx context.Context, placeID string) (*Details, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	placeType := demoTypes[d.rng.Intn(len(demoTypes))]
	name := d.businessName(placeType)
	det := &Details{
		PlaceID:              placeID,
		Name:                 name,
		FormattedAddress:     fmt.Sprintf("%d %s, Springfield", d.rng.Intn(999)+1, demoStreets[d.rng.Intn(len(demoStreets))]),
		FormattedPhoneNumber: fmt.Sprintf("+1 (%d) %d-%d", d.rng.Intn(900)+100, d.rng.Intn(900)+100, d.rng.Intn(9000)+1000),
		Types:                []string{placeType},
		UserRatingsTotal:     d.rng.Intn(200),
	}
	if d.rng.Float64() < 0.9 {
		r := float64(d.rng.Intn(31)+20) / 10
		det.Rating = &r
	}
	if d.rng.Float64() > 0.4 {
		domain := strings.ToLower(strings.ReplaceAll(name, " ", ""))
		domain = strings.Map(func(r rune) rune {
			if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, domain)
		if len(domain) > 15 {
			domain = domain[:15]
		}
		det.Website = "https://www." + domain + ".com"
	}
	return det, nil
}

func (d *Demo) businessName(placeType string) string {
	base := strings.ReplaceAll(placeType, "_", " ")
	base = strings.Title(base) //nolint:staticcheck // ASCII input only
	if d.rng.Float64() > 0.5 {
		return demoNamePrefixes[d.rng.Intn(len(demoNamePrefixes))] + " " + base
	}
	return base + " " + demoNameSuffixes[d.rng.Intn(len(demoNameSuffixes))]
}
