// Package resultados reshapes the province-level results spreadsheet of a
// Spanish general election into a general-data table and a long-format
// table of votes and seats per province and party.
package resultados // import "kastelo.dev/resultados"

import "errors"

var (
	ErrHeader        = errors.New("header row missing")
	ErrShortSheet    = errors.New("not enough data rows")
	ErrMissingColumn = errors.New("column missing")
	ErrProvinceCode  = errors.New("invalid province code")
	ErrValue         = errors.New("invalid numeric value")
)

// Label is the two-level header of a sheet column, as written in the sheet.
type Label struct {
	Group string
	Field string
}

// Sheet is the loaded spreadsheet. Every row has exactly len(Labels) cells.
type Sheet struct {
	Labels []Label
	Rows   [][]string
}

type Kind int

const (
	Text Kind = iota
	Int8
	Number
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Int8:
		return "int8"
	case Number:
		return "number"
	default:
		return "unknown"
	}
}

type Column struct {
	Name string
	Kind Kind
}

// Frame is the tabular shape consumed by every sink. Row values are string,
// int8 or float64 according to the column kind.
type Frame interface {
	Columns() []Column
	Len() int
	Row(i int) []any
}

// Saver persists an extracted table under the given file name.
type Saver interface {
	Save(filename string, f Frame) error
}

// SaveOptions controls the optional persistence of an extracted table. The
// zero value does not save anything.
type SaveOptions struct {
	Saver    Saver
	Filename string
}

func (o SaveOptions) save(defaultName string, f Frame) error {
	if o.Saver == nil {
		return nil
	}
	name := o.Filename
	if name == "" {
		name = defaultName
	}
	return o.Saver.Save(name, f)
}

// GeneralData holds one row of aggregate statistics per province.
type GeneralData struct {
	Cols []Column
	Rows [][]any
}

func (g *GeneralData) Columns() []Column { return g.Cols }
func (g *GeneralData) Len() int          { return len(g.Rows) }
func (g *GeneralData) Row(i int) []any   { return g.Rows[i] }

// Index returns the position of the named column, or -1.
func (g *GeneralData) Index(name string) int {
	for i, c := range g.Cols {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Result is one (province, party, result type) observation.
type Result struct {
	Provincia string  `csv:"provincia"`
	Party     string  `csv:"party"`
	Result    string  `csv:"result"`
	Value     float64 `csv:"value"`
}

type Results []Result

var resultColumns = []Column{
	{"provincia", Text},
	{"party", Text},
	{"result", Text},
	{"value", Number},
}

func (r Results) Columns() []Column { return resultColumns }
func (r Results) Len() int          { return len(r) }
func (r Results) Row(i int) []any {
	return []any{r[i].Provincia, r[i].Party, r[i].Result, r[i].Value}
}
