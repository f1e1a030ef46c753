package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"discosync/internal"
)

func ExportRowsToXLSX(rows []internal.Row, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"release_id", "master_id", "artist", "title", "date_added",
		"variant", "format", "release_date", "country", "label",
		"catno", "genres", "styles",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.ReleaseID)
		set(2, masterIDCell(row.MasterID))
		set(3, row.Artist)
		set(4, row.Title)
		set(5, row.DateAdded)
		set(6, row.Variant)
		set(7, row.Format)
		set(8, row.ReleaseDate)
		set(9, row.Country)
		set(10, row.Label)
		set(11, row.Catno)
		set(12, row.Genres)
		set(13, row.Styles)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func masterIDCell(v int) any {
	if v == 0 {
		return ""
	}
	return v
}
