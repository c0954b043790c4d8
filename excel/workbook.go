// Package excel renders the prepared election tables as a styled workbook.
package excel

import (
	"github.com/xuri/excelize/v2"

	"kastelo.dev/resultados"
)

const (
	SheetGeneral = "Datos generales"
	SheetResults = "Resultados"
	SheetSeats   = "Escaños"
)

// WorkbookXLSX returns a workbook with the general data, the long-format
// results and a seats pivot built from the results labelled seatsLabel.
func WorkbookXLSX(general *resultados.GeneralData, results resultados.Results, seatsLabel string) ([]byte, error) {
	xlsx := excelize.NewFile()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "kastelo.dev/resultados",
		DocSecurity: 2,
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	writeFrame(xlsx, sheet, general)
	_ = xlsx.SetSheetName(sheet, SheetGeneral)

	for _, s := range []string{SheetResults, SheetSeats} {
		if _, err := xlsx.NewSheet(s); err != nil {
			return nil, err
		}
	}
	writeFrame(xlsx, SheetResults, results)
	writeSeats(xlsx, SheetSeats, results, seatsLabel)

	xlsx.SetActiveSheet(0)

	// Increase size of window
	for i := range xlsx.WorkBook.BookViews.WorkBookView {
		xlsx.WorkBook.BookViews.WorkBookView[i].XWindow = "1000"
		xlsx.WorkBook.BookViews.WorkBookView[i].YWindow = "1000"
		xlsx.WorkBook.BookViews.WorkBookView[i].WindowWidth = 25000
		xlsx.WorkBook.BookViews.WorkBookView[i].WindowHeight = 25000 / 3 * 2
	}

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFrame(xlsx *excelize.File, sheet string, f resultados.Frame) {
	cols := f.Columns()
	if len(cols) == 0 {
		return
	}
	last := len(cols)

	_ = xlsx.SetColWidth(sheet, colName(1), colName(last), 16)

	for c, col := range cols {
		_ = xlsx.SetCellValue(sheet, cell(c+1, 1), col.Name)
	}
	style, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), thinBorder("bottom")))
	_ = xlsx.SetCellStyle(sheet, cell(1, 1), cell(last, 1), style)

	_ = xlsx.SetPanes(sheet, &excelize.Panes{
		ActivePane:  "bottomLeft",
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
	})

	for i := 0; i < f.Len(); i++ {
		for c, v := range f.Row(i) {
			_ = xlsx.SetCellValue(sheet, cell(c+1, i+2), v)
		}
	}
	if f.Len() == 0 {
		return
	}

	number, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), customNumberFormat()))
	for c, col := range cols {
		if col.Kind == resultados.Number {
			_ = xlsx.SetCellStyle(sheet, cell(c+1, 2), cell(c+1, f.Len()+1), number)
		}
	}
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func colName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}
