// Package snapshot writes extracted tables to files.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"kastelo.dev/resultados"
)

type Format string

const (
	FormatParquet Format = "parquet"
	FormatCSV     Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatParquet:
		return FormatParquet, nil
	case FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown snapshot format %q", s)
	}
}

// Dir saves tables as files in a local directory, creating it when needed.
// The file extension always follows the format, so "general_data.parquet"
// is written as "general_data.csv" by a CSV Dir.
type Dir struct {
	Path   string
	Format Format
}

func (d Dir) Save(filename string, f resultados.Frame) error {
	if _, err := os.Stat(d.Path); os.IsNotExist(err) {
		if err := os.MkdirAll(d.Path, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", d.Path, err)
		}
	}

	name := d.File(filename)
	switch d.format() {
	case FormatParquet:
		return WriteParquet(name, f)
	case FormatCSV:
		fd, err := os.Create(name)
		if err != nil {
			return err
		}
		if err := WriteCSV(fd, f); err != nil {
			fd.Close()
			return fmt.Errorf("write %s: %w", name, err)
		}
		return fd.Close()
	default:
		return fmt.Errorf("unknown snapshot format %q", d.Format)
	}
}

// File returns the path Save writes filename to.
func (d Dir) File(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return filepath.Join(d.Path, base+"."+string(d.format()))
}

func (d Dir) format() Format {
	if d.Format == "" {
		return FormatParquet
	}
	return d.Format
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int8:
		return strconv.Itoa(int(v))
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
