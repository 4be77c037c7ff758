package export

import (
	"io"
	"time"

	"github.com/andrebq/faculty/roster"
	"github.com/phpdave11/gofpdf"
)

const (
	rowHeight = 7
	// widths are the xlsx widths scaled to fill a landscape A4 page
	mmPerWidthUnit = 2.4
)

func WritePDF(w io.Writer, rows []roster.ExportRow) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Lecture Reports", false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Lecture Reports")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, "Generated at "+time.Now().UTC().Format(time.RFC1123))
	pdf.Ln(10)

	header := func() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(230, 230, 230)
		for _, c := range columns {
			pdf.CellFormat(c.width*mmPerWidthUnit, rowHeight, c.header, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(rowHeight)
		pdf.SetFont("Helvetica", "", 10)
	}
	header()
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range rows {
		if pdf.GetY()+rowHeight > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		for _, c := range columns {
			width := c.width * mmPerWidthUnit
			pdf.CellFormat(width, rowHeight, fit(pdf, tr(c.valueOf(row)), width-2), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(rowHeight)
	}
	return pdf.Output(w)
}

// fit shortens s until it fits in width, marking the cut with "...".
// s is already translated to a single byte encoding.
func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
