package resultados

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CleanProvince trims the name and drops the alternate co-official name
// that follows a " / ", so "Alicante / Alacant " becomes "Alicante".
func CleanProvince(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, " / "); i >= 0 {
		s = s[:i]
	}
	return s
}

func lower(s string) string {
	return cases.Lower(language.Spanish).String(s)
}

// fieldName turns a header label such as "Nombre de Provincia" into the
// column name "provincia".
func fieldName(s string) string {
	return strings.ReplaceAll(lower(strings.TrimSpace(s)), "nombre de ", "")
}

// parseNumber parses a raw cell value. Blank cells count as zero.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseInt8 accepts integral values in the int8 range, also when the cell
// stores them as floats ("28.0").
func parseInt8(s string) (int8, bool) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 8); err == nil {
		return int8(v), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) || f < -128 || f > 127 {
		return 0, false
	}
	return int8(f), true
}
