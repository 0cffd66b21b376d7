// Package export serializes a lead list for machine (CSV, XLSX) and human
// (plain text) consumption.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/lead-mapper/leadmapper-cli/internal/model"
)

// header is the fixed CSV/XLSX column set. The internal id and raw score are
// deliberately excluded.
var header = []string{
	"businessName", "address", "phone", "website", "email", "emailInferred",
	"category", "rating", "hasWebsite", "notes", "dateAdded", "potentialCategory",
}

// MarshalCSV renders the leads as CSV: one header row plus one row per lead.
// Missing fields render as empty strings; fields containing commas or quotes
// get standard CSV quoting with internal quotes doubled.
func MarshalCSV(leads []model.Lead) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, eris.Wrap(err, "export: write csv header")
	}
	for _, l := range leads {
		if err := w.Write(row(l)); err != nil {
			return nil, eris.Wrap(err, "export: write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, eris.Wrap(err, "export: flush csv")
	}
	return buf.Bytes(), nil
}

func row(l model.Lead) []string {
	return []string{
		l.BusinessName,
		l.Address,
		l.Phone,
		l.Website,
		l.Email,
		strconv.FormatBool(l.EmailInferred),
		l.Category,
		formatRating(l.Rating),
		strconv.FormatBool(l.HasWebsite),
		l.Notes,
		l.DateAdded,
		string(l.PotentialCategory),
	}
}

func formatRating(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}
