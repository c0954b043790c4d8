package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kastelo.dev/resultados"
)

func testTables() (*resultados.GeneralData, resultados.Results) {
	general := &resultados.GeneralData{
		Cols: []resultados.Column{
			{Name: "código de provincia", Kind: resultados.Int8},
			{Name: "provincia", Kind: resultados.Text},
			{Name: "diputados", Kind: resultados.Number},
		},
		Rows: [][]any{
			{int8(4), "Almería", 6.0},
			{int8(3), "Alicante", 12.0},
		},
	}
	results := resultados.Results{
		{Provincia: "Almería", Party: "PP", Result: "votos", Value: 91000},
		{Provincia: "Alicante", Party: "PP", Result: "votos", Value: 260000},
		{Provincia: "Almería", Party: "PP", Result: "diputados", Value: 2},
		{Provincia: "Alicante", Party: "PP", Result: "diputados", Value: 4},
		{Provincia: "Almería", Party: "PSOE", Result: "diputados", Value: 4},
		{Provincia: "Alicante", Party: "PSOE", Result: "diputados", Value: 8},
		{Provincia: "Almería", Party: "PACMA", Result: "diputados", Value: 0},
		{Provincia: "Alicante", Party: "PACMA", Result: "diputados", Value: 0},
	}
	return general, results
}

func TestWorkbookXLSX(t *testing.T) {
	general, results := testTables()
	bs, err := WorkbookXLSX(general, results, "diputados")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(bs))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetGeneral, SheetResults, SheetSeats}, f.GetSheetList())

	v, err := f.GetCellValue(SheetGeneral, "B1")
	require.NoError(t, err)
	assert.Equal(t, "provincia", v)
	v, err = f.GetCellValue(SheetGeneral, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Alicante", v)

	rows, err := f.GetRows(SheetResults)
	require.NoError(t, err)
	assert.Len(t, rows, 9)
	assert.Equal(t, []string{"provincia", "party", "result", "value"}, rows[0])
}

func TestWorkbookSeatsPivot(t *testing.T) {
	general, results := testTables()
	bs, err := WorkbookXLSX(general, results, "diputados")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(bs))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetSeats)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	// PACMA has no seats anywhere and is left out.
	assert.Equal(t, []string{"provincia", "PP", "PSOE", "Total"}, rows[0])
	assert.Equal(t, "Almería", rows[1][0])
	assert.Equal(t, "Alicante", rows[2][0])

	formula, err := f.GetCellFormula(SheetSeats, "D2")
	require.NoError(t, err)
	assert.Equal(t, "SUM(B2:C2)", formula)
	formula, err = f.GetCellFormula(SheetSeats, "B4")
	require.NoError(t, err)
	assert.Equal(t, "SUM(B2:B3)", formula)
}

func TestPivotSeats(t *testing.T) {
	_, results := testTables()
	s := pivotSeats(results, "diputados")

	assert.Equal(t, []string{"Almería", "Alicante"}, s.provinces)
	assert.Equal(t, []string{"PP", "PSOE"}, s.parties)
	assert.Equal(t, 8.0, s.values["Alicante"]["PSOE"])
	assert.Equal(t, 6.0, s.totals["PP"])
}
