package resultados

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Layout describes where things are in the source spreadsheet. Rows are
// 1-based spreadsheet rows, columns are spreadsheet letters.
type Layout struct {
	Sheet             string
	HeaderRows        [2]int
	Rows              int
	FirstResultColumn string
	ProvinceColumn    string
}

// DefaultLayout matches the province results workbook published for the
// November 2019 general election.
func DefaultLayout() Layout {
	return Layout{
		HeaderRows:        [2]int{5, 6},
		Rows:              52,
		FirstResultColumn: "Q",
		ProvinceColumn:    "C",
	}
}

func (l Layout) Validate() error {
	if l.HeaderRows[0] < 1 || l.HeaderRows[1] <= l.HeaderRows[0] {
		return fmt.Errorf("header rows %v: must be positive and increasing", l.HeaderRows)
	}
	if l.Rows < 1 {
		return fmt.Errorf("row count %d: must be positive", l.Rows)
	}
	if _, err := l.boundary(); err != nil {
		return err
	}
	if _, err := l.provinceIndex(); err != nil {
		return err
	}
	return nil
}

// boundary is the zero-based index of the first per-party column.
func (l Layout) boundary() (int, error) {
	n, err := excelize.ColumnNameToNumber(l.FirstResultColumn)
	if err != nil {
		return 0, fmt.Errorf("first result column: %w", err)
	}
	return n - 1, nil
}

func (l Layout) provinceIndex() (int, error) {
	n, err := excelize.ColumnNameToNumber(l.ProvinceColumn)
	if err != nil {
		return 0, fmt.Errorf("province column: %w", err)
	}
	return n - 1, nil
}
