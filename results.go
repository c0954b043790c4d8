package resultados

import (
	"fmt"
)

// ExtractResults unpivots the per-party columns into one row per province,
// party and result type. Rows follow column order, then sheet row order.
func ExtractResults(sheet *Sheet, layout Layout, opts SaveOptions) (Results, error) {
	boundary, err := layout.boundary()
	if err != nil {
		return nil, err
	}
	prov, err := layout.provinceIndex()
	if err != nil {
		return nil, err
	}
	if prov >= len(sheet.Labels) {
		return nil, fmt.Errorf("province column %s: %w", layout.ProvinceColumn, ErrMissingColumn)
	}

	provinces := make([]string, len(sheet.Rows))
	for r, row := range sheet.Rows {
		provinces[r] = CleanProvince(row[prov])
	}

	var results Results
	for c := boundary; c < len(sheet.Labels); c++ {
		l := sheet.Labels[c]
		kind := lower(l.Field)
		for r, row := range sheet.Rows {
			v, ok := parseNumber(row[c])
			if !ok {
				return nil, fmt.Errorf("%s row %d (%s): %q: %w", l.Group, r+1, l.Field, row[c], ErrValue)
			}
			results = append(results, Result{
				Provincia: provinces[r],
				Party:     l.Group,
				Result:    kind,
				Value:     v,
			})
		}
	}

	if err := opts.save("results_by_province.parquet", results); err != nil {
		return nil, fmt.Errorf("save results: %w", err)
	}
	return results, nil
}
