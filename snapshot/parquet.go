package snapshot

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"kastelo.dev/resultados"
)

// WriteParquet writes f to a Snappy-compressed Parquet file at path.
func WriteParquet(path string, f resultados.Frame) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	pw, err := writer.NewCSVWriter(parquetSchema(f.Columns()), fw, 1)
	if err != nil {
		fw.Close()
		return fmt.Errorf("parquet writer %s: %w", path, err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := 0; i < f.Len(); i++ {
		row := f.Row(i)
		rec := make([]*string, len(row))
		for j, v := range row {
			s := formatValue(v)
			rec[j] = &s
		}
		if err := pw.WriteString(rec); err != nil {
			fw.Close()
			return fmt.Errorf("write %s row %d: %w", path, i, err)
		}
	}

	var errs error
	if err := pw.WriteStop(); err != nil {
		errs = errors.Join(errs, fmt.Errorf("stop writer %s: %w", path, err))
	}
	if err := fw.Close(); err != nil {
		errs = errors.Join(errs, fmt.Errorf("close %s: %w", path, err))
	}
	return errs
}

func parquetSchema(cols []resultados.Column) []string {
	md := make([]string, len(cols))
	for i, c := range cols {
		name := parquetName(c.Name, i)
		switch c.Kind {
		case resultados.Int8:
			md[i] = fmt.Sprintf("name=%s, type=INT32, convertedtype=INT_8", name)
		case resultados.Number:
			md[i] = fmt.Sprintf("name=%s, type=DOUBLE", name)
		default:
			md[i] = fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8", name)
		}
	}
	return md
}

// parquetName makes a column name safe for the metadata tag syntax and
// folds it to ASCII.
func parquetName(s string, i int) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	s = strings.NewReplacer(" ", "_", ",", "_", "=", "_", ".", "_", ";", "_").Replace(s)
	if s == "" {
		s = fmt.Sprintf("column_%d", i)
	}
	return s
}
