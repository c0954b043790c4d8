package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"kastelo.dev/resultados"
)

// seats is the pivot of seat results: provinces down, parties across, both
// in order of first appearance.
type seats struct {
	provinces []string
	parties   []string
	values    map[string]map[string]float64
	totals    map[string]float64
}

func pivotSeats(results resultados.Results, label string) *seats {
	s := &seats{
		values: make(map[string]map[string]float64),
		totals: make(map[string]float64),
	}
	seenParty := make(map[string]bool)
	for _, r := range results {
		if r.Result != label {
			continue
		}
		row, ok := s.values[r.Provincia]
		if !ok {
			row = make(map[string]float64)
			s.values[r.Provincia] = row
			s.provinces = append(s.provinces, r.Provincia)
		}
		if !seenParty[r.Party] {
			seenParty[r.Party] = true
			s.parties = append(s.parties, r.Party)
		}
		row[r.Party] += r.Value
		s.totals[r.Party] += r.Value
	}

	// Parties without any seat only widen the sheet.
	parties := s.parties[:0]
	for _, p := range s.parties {
		if s.totals[p] != 0 {
			parties = append(parties, p)
		}
	}
	s.parties = parties
	return s
}

func writeSeats(xlsx *excelize.File, sheet string, results resultados.Results, label string) {
	s := pivotSeats(results, label)
	totalCol := len(s.parties) + 2
	lastRow := len(s.provinces) + 2

	_ = xlsx.SetColWidth(sheet, "A", "A", 24)
	_ = xlsx.SetColWidth(sheet, colName(2), colName(totalCol), 10)

	_ = xlsx.SetCellValue(sheet, cell(1, 1), "provincia")
	for i, p := range s.parties {
		_ = xlsx.SetCellValue(sheet, cell(i+2, 1), p)
	}
	_ = xlsx.SetCellValue(sheet, cell(totalCol, 1), "Total")
	style, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), thinBorder("bottom"), textAlignment("right")))
	_ = xlsx.SetCellStyle(sheet, cell(1, 1), cell(totalCol, 1), style)

	_ = xlsx.SetPanes(sheet, &excelize.Panes{
		ActivePane:  "bottomRight",
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
	})
	if len(s.provinces) == 0 {
		return
	}

	for r, prov := range s.provinces {
		row := r + 2
		_ = xlsx.SetCellValue(sheet, cell(1, row), prov)
		for i, p := range s.parties {
			if v := s.values[prov][p]; v != 0 {
				_ = xlsx.SetCellValue(sheet, cell(i+2, row), v)
			}
		}
		_ = xlsx.SetCellFormula(sheet, cell(totalCol, row), fmt.Sprintf("SUM(%s:%s)", cell(2, row), cell(totalCol-1, row)))
	}

	_ = xlsx.SetCellValue(sheet, cell(1, lastRow), "Total")
	for c := 2; c <= totalCol; c++ {
		_ = xlsx.SetCellFormula(sheet, cell(c, lastRow), fmt.Sprintf("SUM(%s:%s)", cell(c, 2), cell(c, lastRow-1)))
	}

	style, _ = xlsx.NewStyle(mergeStyles(defaultStyle(), fontBoldItalic(), customNumberFormat()))
	_ = xlsx.SetCellStyle(sheet, cell(totalCol, 2), cell(totalCol, lastRow-1), style)
	style, _ = xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), customNumberFormat(), thickBorder("top")))
	_ = xlsx.SetCellStyle(sheet, cell(1, lastRow), cell(totalCol, lastRow), style)
}
