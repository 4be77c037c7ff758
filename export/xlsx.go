package export

import (
	"fmt"
	"io"

	"github.com/andrebq/faculty/roster"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName = "Reports"
)

func WriteXLSX(w io.Writer, rows []roster.ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()
	err := f.SetSheetName("Sheet1", sheetName)
	if err != nil {
		return fmt.Errorf("unable to name sheet, cause %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("unable to create header style, cause %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c.header
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		err = f.SetColWidth(sheetName, name, name, c.width)
		if err != nil {
			return fmt.Errorf("unable to set width of column %v, cause %w", name, err)
		}
	}
	err = f.SetSheetRow(sheetName, "A1", &header)
	if err != nil {
		return fmt.Errorf("unable to write header, cause %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	err = f.SetCellStyle(sheetName, "A1", last, bold)
	if err != nil {
		return fmt.Errorf("unable to style header, cause %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row.ID, row.Course, row.Topic, row.Comments, row.LecturerName}
		err = f.SetSheetRow(sheetName, cell, &values)
		if err != nil {
			return fmt.Errorf("unable to write report %v, cause %w", row.ID, err)
		}
	}
	return f.Write(w)
}
