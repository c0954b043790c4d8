package snapshot

import (
	"encoding/csv"
	"io"

	"github.com/gocarina/gocsv"

	"kastelo.dev/resultados"
)

// WriteCSV writes f as CSV with a header line.
func WriteCSV(w io.Writer, f resultados.Frame) error {
	if res, ok := f.(resultados.Results); ok {
		return gocsv.Marshal(res, w)
	}

	cw := csv.NewWriter(w)
	cols := f.Columns()
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < f.Len(); i++ {
		row := f.Row(i)
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = formatValue(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
