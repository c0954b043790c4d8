package resultados

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load reads the results workbook at path.
func Load(path string, layout Layout) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return load(f, layout)
}

// LoadReader reads the results workbook from r.
func LoadReader(r io.Reader, layout Layout) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return load(f, layout)
}

func load(f *excelize.File, layout Layout) (*Sheet, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	name := layout.Sheet
	if name == "" {
		name = f.GetSheetName(0)
	}
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}

	groupRow, fieldRow := layout.HeaderRows[0]-1, layout.HeaderRows[1]-1
	if len(rows) <= fieldRow {
		return nil, fmt.Errorf("sheet %q has %d rows, header expected at rows %d-%d: %w",
			name, len(rows), groupRow+1, fieldRow+1, ErrHeader)
	}

	labels := headerLabels(rows[groupRow], rows[fieldRow])
	if len(labels) == 0 {
		return nil, fmt.Errorf("sheet %q: empty header: %w", name, ErrHeader)
	}

	first := fieldRow + 1
	if len(rows) < first+layout.Rows {
		return nil, fmt.Errorf("sheet %q has %d data rows, want %d: %w",
			name, len(rows)-first, layout.Rows, ErrShortSheet)
	}

	sheet := &Sheet{Labels: labels}
	for _, row := range rows[first : first+layout.Rows] {
		cells := make([]string, len(labels))
		copy(cells, row)
		sheet.Rows = append(sheet.Rows, cells)
	}
	return sheet, nil
}

// headerLabels combines the two header rows. A party header is a merged cell
// spanning its votes and seats columns, which only carries the value in its
// first cell, so groups are carried forward over blank cells. Labels keep
// the text as written in the sheet.
func headerLabels(groups, fields []string) []Label {
	n := len(fields)
	if len(groups) > n {
		n = len(groups)
	}

	labels := make([]Label, n)
	group := ""
	for i := range labels {
		if i < len(groups) {
			if strings.TrimSpace(groups[i]) != "" {
				group = groups[i]
			}
		}
		labels[i].Group = group
		if i < len(fields) {
			labels[i].Field = fields[i]
		}
	}
	return labels
}
