// Package export renders lecture reports as spreadsheets or pdf documents.
package export

import (
	"fmt"
	"io"

	"github.com/andrebq/faculty/roster"
)

type (
	Format string

	column struct {
		header string
		width  float64
	}
)

const (
	XLSX = Format("xlsx")
	PDF  = Format("pdf")
)

var (
	columns = []column{
		{"ID", 10},
		{"Course", 25},
		{"Topic", 25},
		{"Comments", 30},
		{"Lecturer Name", 25},
	}
)

// ParseFormat defaults to XLSX when s is empty.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", XLSX:
		return XLSX, nil
	case PDF:
		return PDF, nil
	}
	return "", fmt.Errorf("export: unknown format %q, expecting xlsx or pdf", s)
}

func (f Format) ContentType() string {
	if f == PDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (f Format) Filename(base string) string {
	return fmt.Sprintf("%v.%v", base, f)
}

func Write(w io.Writer, f Format, rows []roster.ExportRow) error {
	switch f {
	case PDF:
		return WritePDF(w, rows)
	default:
		return WriteXLSX(w, rows)
	}
}

func (c column) valueOf(row roster.ExportRow) string {
	switch c.header {
	case "ID":
		return fmt.Sprint(row.ID)
	case "Course":
		return row.Course
	case "Topic":
		return row.Topic
	case "Comments":
		return row.Comments
	}
	return row.LecturerName
}
