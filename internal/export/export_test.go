package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lead-mapper/leadmapper-cli/internal/model"
)

func ptrFloat64(v float64) *float64 { return &v }

func fullLead() model.Lead {
	return model.Lead{
		ID:                "id-1",
		BusinessName:      "Chez Marcel",
		Address:           "12 Rue de la Paix, Lyon",
		Phone:             "+33 4 78 00 00 00",
		Website:           "https://www.chezmarcel.fr",
		Email:             "contact@chezmarcel.fr",
		EmailInferred:     true,
		Category:          "restaurant",
		Rating:            ptrFloat64(4.6),
		HasWebsite:        true,
		Notes:             "spoke to owner",
		DateAdded:         "2026-09-01",
		PotentialScore:    ptrInt(50),
		PotentialCategory: model.PotentialMedium,
	}
}

func ptrInt(v int) *int { return &v }

func TestMarshalCSVHeaderAndRow(t *testing.T) {
	data, err := MarshalCSV([]model.Lead{fullLead()})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t,
		"businessName,address,phone,website,email,emailInferred,category,rating,hasWebsite,notes,dateAdded,potentialCategory",
		lines[0])
	// The address contains a comma, so it gets quoted.
	assert.Equal(t,
		`Chez Marcel,"12 Rue de la Paix, Lyon",+33 4 78 00 00 00,https://www.chezmarcel.fr,contact@chezmarcel.fr,true,restaurant,4.6,true,spoke to owner,2026-09-01,medium`,
		lines[1])
}

func TestMarshalCSVEscapesQuotes(t *testing.T) {
	lead := fullLead()
	lead.Notes = `Met with "Bob"`

	data, err := MarshalCSV([]model.Lead{lead})
	require.NoError(t, err)

	assert.Contains(t, string(data), `"Met with ""Bob"""`)
}

func TestMarshalCSVMissingFieldsAreEmpty(t *testing.T) {
	lead := model.Lead{
		ID:           "id-2",
		BusinessName: "Bare Minimum",
		Address:      "1 Main St",
		Category:     "store",
		DateAdded:    "2026-09-01",
	}

	data, err := MarshalCSV([]model.Lead{lead})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	// phone, website, email empty; rating empty; no placeholders in CSV.
	assert.Equal(t, "Bare Minimum,1 Main St,,,,false,store,,false,,2026-09-01,", lines[1])
}

func TestMarshalCSVExcludesInternalColumns(t *testing.T) {
	data, err := MarshalCSV([]model.Lead{fullLead()})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "id-1")
	header := strings.SplitN(string(data), "\n", 2)[0]
	assert.NotContains(t, header, "potentialScore")
}

func TestMarshalTextPlaceholders(t *testing.T) {
	lead := model.Lead{
		ID:                "id-3",
		BusinessName:      "No Contact Diner",
		Address:           "99 Elm St",
		Category:          "restaurant",
		DateAdded:         "2026-09-01",
		PotentialCategory: model.PotentialHigh,
	}

	got := MarshalText([]model.Lead{lead})

	// Unlike CSV, missing fields render as readable placeholders.
	assert.Contains(t, got, "No Contact Diner\n")
	assert.Contains(t, got, "Phone: N/A\n")
	assert.Contains(t, got, "Email: N/A\n")
	assert.Contains(t, got, "Website: None\n")
	assert.Contains(t, got, "Rating: N/A\n")
	assert.Contains(t, got, "Potential: high\n")
	assert.True(t, strings.HasSuffix(got, textDivider))
}

func TestMarshalTextMarksInferredEmail(t *testing.T) {
	got := MarshalText([]model.Lead{fullLead()})
	assert.Contains(t, got, "Email: contact@chezmarcel.fr (inferred)\n")

	lead := fullLead()
	lead.EmailInferred = false
	got = MarshalText([]model.Lead{lead})
	assert.Contains(t, got, "Email: contact@chezmarcel.fr\n")
	assert.NotContains(t, got, "(inferred)")
}

func TestMarshalTextBlocksSeparated(t *testing.T) {
	a := fullLead()
	b := fullLead()
	b.BusinessName = "Second Place"

	got := MarshalText([]model.Lead{a, b})

	blocks := strings.Split(got, textDivider)
	// Two blocks plus the trailing empty segment after the final divider.
	require.Len(t, blocks, 3)
	assert.Contains(t, blocks[0], "Chez Marcel")
	assert.Contains(t, blocks[1], "Second Place")
}

func TestMarshalTextEmpty(t *testing.T) {
	assert.Empty(t, MarshalText(nil))
}
