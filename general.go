package resultados

import (
	"fmt"
	"strings"
)

const (
	colCommunity    = "comunidad"
	colProvince     = "provincia"
	colProvinceCode = "código de provincia"
	colSeats        = "diputados"

	// seatsField is the second-level header of every per-party seats
	// column, matched exactly.
	seatsField = "Diputados"
)

// ExtractGeneralData returns the province statistics found before the first
// per-party column, plus the total number of seats per province.
func ExtractGeneralData(sheet *Sheet, layout Layout, opts SaveOptions) (*GeneralData, error) {
	boundary, err := layout.boundary()
	if err != nil {
		return nil, err
	}
	if len(sheet.Labels) < boundary {
		return nil, fmt.Errorf("general data needs %d columns, sheet has %d: %w",
			boundary, len(sheet.Labels), ErrMissingColumn)
	}

	data := &GeneralData{
		Cols: make([]Column, boundary),
		Rows: make([][]any, len(sheet.Rows)),
	}
	for i, l := range sheet.Labels[:boundary] {
		data.Cols[i] = Column{Name: fieldName(l.Field), Kind: Text}
	}
	for r := range data.Rows {
		data.Rows[r] = make([]any, boundary, boundary+1)
	}

	for c, col := range data.Cols {
		switch col.Name {
		case colCommunity:
			data.fill(c, sheet, strings.TrimSpace)
		case colProvince:
			data.fill(c, sheet, CleanProvince)
		case colProvinceCode:
			data.Cols[c].Kind = Int8
			for r, row := range sheet.Rows {
				code, ok := parseInt8(row[c])
				if !ok {
					return nil, fmt.Errorf("row %d: %q: %w", r+1, row[c], ErrProvinceCode)
				}
				data.Rows[r][c] = code
			}
		default:
			data.fillInferred(c, sheet)
		}
	}
	for _, name := range []string{colCommunity, colProvince, colProvinceCode} {
		if data.Index(name) < 0 {
			return nil, fmt.Errorf("general data %q: %w", name, ErrMissingColumn)
		}
	}

	seats, err := sumSeats(sheet)
	if err != nil {
		return nil, err
	}
	// A general field already named diputados is replaced, not duplicated.
	sc := data.Index(colSeats)
	if sc < 0 {
		sc = len(data.Cols)
		data.Cols = append(data.Cols, Column{Name: colSeats})
		for r := range data.Rows {
			data.Rows[r] = append(data.Rows[r], nil)
		}
	}
	data.Cols[sc].Kind = Number
	for r := range data.Rows {
		data.Rows[r][sc] = seats[r]
	}

	if err := opts.save("general_data.parquet", data); err != nil {
		return nil, fmt.Errorf("save general data: %w", err)
	}
	return data, nil
}

func (g *GeneralData) fill(c int, sheet *Sheet, clean func(string) string) {
	for r, row := range sheet.Rows {
		g.Rows[r][c] = clean(row[c])
	}
}

// fillInferred stores the column as numbers when every cell parses as one,
// as text otherwise.
func (g *GeneralData) fillInferred(c int, sheet *Sheet) {
	nums := make([]float64, len(sheet.Rows))
	for r, row := range sheet.Rows {
		v, ok := parseNumber(row[c])
		if !ok {
			g.fill(c, sheet, func(s string) string { return s })
			return
		}
		nums[r] = v
	}
	g.Cols[c].Kind = Number
	for r, v := range nums {
		g.Rows[r][c] = v
	}
}

// sumSeats adds up, per row, every column whose field label is exactly
// "Diputados", without trimming. A general field with that label counts too.
// Without such columns every total is zero.
func sumSeats(sheet *Sheet) ([]float64, error) {
	totals := make([]float64, len(sheet.Rows))
	for c, l := range sheet.Labels {
		if l.Field != seatsField {
			continue
		}
		for r, row := range sheet.Rows {
			v, ok := parseNumber(row[c])
			if !ok {
				return nil, fmt.Errorf("%s row %d (%s): %q: %w", l.Group, r+1, l.Field, row[c], ErrValue)
			}
			totals[r] += v
		}
	}
	return totals, nil
}
