package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/lead-mapper/leadmapper-cli/internal/model"
)

// WriteXLSX renders the leads as a single-sheet XLSX workbook with the same
// column set as the CSV export.
func WriteXLSX(leads []model.Lead, w io.Writer) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add xlsx sheet")
	}

	hr := sheet.AddRow()
	for _, h := range header {
		hr.AddCell().Value = h
	}

	for _, l := range leads {
		r := sheet.AddRow()
		r.AddCell().Value = l.BusinessName
		r.AddCell().Value = l.Address
		r.AddCell().Value = l.Phone
		r.AddCell().Value = l.Website
		r.AddCell().Value = l.Email
		r.AddCell().SetBool(l.EmailInferred)
		r.AddCell().Value = l.Category
		if l.Rating != nil {
			r.AddCell().SetFloat(*l.Rating)
		} else {
			r.AddCell()
		}
		r.AddCell().SetBool(l.HasWebsite)
		r.AddCell().Value = l.Notes
		r.AddCell().Value = l.DateAdded
		r.AddCell().Value = string(l.PotentialCategory)
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}
