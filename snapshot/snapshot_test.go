package snapshot

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"

	"kastelo.dev/resultados"
)

func testGeneral() *resultados.GeneralData {
	return &resultados.GeneralData{
		Cols: []resultados.Column{
			{Name: "comunidad", Kind: resultados.Text},
			{Name: "código de provincia", Kind: resultados.Int8},
			{Name: "provincia", Kind: resultados.Text},
			{Name: "población", Kind: resultados.Number},
			{Name: "diputados", Kind: resultados.Number},
		},
		Rows: [][]any{
			{"Andalucía", int8(4), "Almería", 716820.0, 6.0},
			{"Comunitat Valenciana", int8(3), "Alicante", 1858683.0, 12.0},
		},
	}
}

func testResults() resultados.Results {
	return resultados.Results{
		{Provincia: "Almería", Party: "PP", Result: "votos", Value: 91000},
		{Provincia: "Alicante", Party: "PP", Result: "votos", Value: 260000},
		{Provincia: "Almería", Party: "PP", Result: "diputados", Value: 2},
		{Provincia: "Alicante", Party: "PP", Result: "diputados", Value: 4},
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in  string
		out Format
		ok  bool
	}{
		{"", FormatParquet, true},
		{"parquet", FormatParquet, true},
		{" CSV ", FormatCSV, true},
		{"pickle", "", false},
	}
	for _, tc := range cases {
		f, err := ParseFormat(tc.in)
		if tc.ok {
			assert.NoError(t, err, tc.in)
			assert.Equal(t, tc.out, f, tc.in)
		} else {
			assert.Error(t, err, tc.in)
		}
	}
}

func TestDirFile(t *testing.T) {
	d := Dir{Path: "out", Format: FormatCSV}
	assert.Equal(t, filepath.Join("out", "general_data.csv"), d.File("general_data.parquet"))

	d = Dir{Path: "out"}
	assert.Equal(t, filepath.Join("out", "results.parquet"), d.File("results"))
}

func TestWriteCSVGeneral(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testGeneral()))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"comunidad", "código de provincia", "provincia", "población", "diputados"}, recs[0])
	assert.Equal(t, []string{"Comunitat Valenciana", "3", "Alicante", "1858683", "12"}, recs[2])
}

func TestWriteCSVResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testResults()))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 5)
	assert.Equal(t, []string{"provincia", "party", "result", "value"}, recs[0])
	assert.Equal(t, []string{"Almería", "PP", "votos"}, recs[1][:3])
}

func TestDirSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "output")
	d := Dir{Path: dir, Format: FormatCSV}

	require.NoError(t, d.Save("results_by_province.parquet", testResults()))

	bs, err := os.ReadFile(filepath.Join(dir, "results_by_province.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(bs), "provincia,party,result,value"))
}

func TestDirSaveParquet(t *testing.T) {
	dir := t.TempDir()
	d := Dir{Path: dir, Format: FormatParquet}

	require.NoError(t, d.Save("general_data.parquet", testGeneral()))
	require.NoError(t, d.Save("results_by_province.parquet", testResults()))

	for _, name := range []string{"general_data.parquet", "results_by_province.parquet"} {
		bs, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		require.Greater(t, len(bs), 8, name)
		assert.Equal(t, "PAR1", string(bs[:4]), name)
		assert.Equal(t, "PAR1", string(bs[len(bs)-4:]), name)
	}
}

func TestWriteParquetReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "general_data.parquet")
	require.NoError(t, WriteParquet(path, testGeneral()))

	fr, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fr.Close()
	pr, err := reader.NewParquetColumnReader(fr, 1)
	require.NoError(t, err)
	defer pr.ReadStop()
	require.EqualValues(t, 2, pr.GetNumRows())

	// SchemaElements[0] is the root
	code := pr.SchemaHandler.SchemaElements[2]
	assert.Equal(t, "codigo_de_provincia", code.GetName())
	assert.Equal(t, parquet.ConvertedType_INT_8, code.GetConvertedType())

	cases := []struct {
		index int64
		want  []any
	}{
		{1, []any{int32(4), int32(3)}},
		{2, []any{"Almería", "Alicante"}},
		{3, []any{716820.0, 1858683.0}},
		{4, []any{6.0, 12.0}},
	}
	for _, tc := range cases {
		values, _, _, err := pr.ReadColumnByIndex(tc.index, 2)
		require.NoError(t, err, tc.index)
		assert.Equal(t, tc.want, values, tc.index)
	}
}

func TestParquetSchema(t *testing.T) {
	md := parquetSchema(testGeneral().Columns())
	assert.Equal(t, []string{
		"name=comunidad, type=BYTE_ARRAY, convertedtype=UTF8",
		"name=codigo_de_provincia, type=INT32, convertedtype=INT_8",
		"name=provincia, type=BYTE_ARRAY, convertedtype=UTF8",
		"name=poblacion, type=DOUBLE",
		"name=diputados, type=DOUBLE",
	}, md)
}
