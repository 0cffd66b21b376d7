package export

import (
	"strings"

	"github.com/lead-mapper/leadmapper-cli/internal/model"
)

const textDivider = "------------------------"

// MarshalText renders the leads as human-readable blocks separated by a
// divider line. Unlike CSV, missing fields render as "N/A"/"None"
// placeholders: this output is meant to be read, not parsed.
func MarshalText(leads []model.Lead) string {
	blocks := make([]string, 0, len(leads))
	for _, l := range leads {
		var b strings.Builder
		b.WriteString(l.BusinessName + "\n")
		b.WriteString("Address: " + l.Address + "\n")
		b.WriteString("Phone: " + orPlaceholder(l.Phone, "N/A") + "\n")
		b.WriteString("Email: " + emailLine(l) + "\n")
		b.WriteString("Website: " + orPlaceholder(l.Website, "None") + "\n")
		b.WriteString("Rating: " + orPlaceholder(formatRating(l.Rating), "N/A") + "\n")
		b.WriteString("Category: " + l.Category + "\n")
		b.WriteString("Potential: " + orPlaceholder(string(l.PotentialCategory), "N/A") + "\n")
		b.WriteString(textDivider)
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// emailLine labels synthesized addresses so they are never mistaken for
// provider data.
func emailLine(l model.Lead) string {
	if l.Email == "" {
		return "N/A"
	}
	if l.EmailInferred {
		return l.Email + " (inferred)"
	}
	return l.Email
}

func orPlaceholder(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}
