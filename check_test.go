package resultados

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractTestTables(t *testing.T) (*GeneralData, Results) {
	t.Helper()
	sheet := loadTestSheet(t)
	general, err := ExtractGeneralData(sheet, testLayout, SaveOptions{})
	require.NoError(t, err)
	results, err := ExtractResults(sheet, testLayout, SaveOptions{})
	require.NoError(t, err)
	return general, results
}

func TestCheckConsistent(t *testing.T) {
	general, results := extractTestTables(t)

	rep, err := Check(general, results, DefaultCheckOptions())
	require.NoError(t, err)
	assert.True(t, rep.OK(), "%+v", rep)
	assert.Equal(t, 2, rep.Provinces)
	assert.Equal(t, 18.0, rep.Seats)
	assert.Empty(t, rep.Diff)
	assert.Empty(t, rep.Notes)
}

func TestCheckProvinceMismatch(t *testing.T) {
	general, results := extractTestTables(t)
	for i := range results {
		if results[i].Provincia == "Almería" {
			results[i].Provincia = "Almeria"
		}
	}

	rep, err := Check(general, results, DefaultCheckOptions())
	require.NoError(t, err)
	assert.False(t, rep.OK())
	assert.Contains(t, rep.Diff, "-Almería")
	assert.Contains(t, rep.Diff, "+Almeria")
}

func TestCheckValueMismatch(t *testing.T) {
	general, results := extractTestTables(t)
	results[2].Value = 6 // Alicante, PP, diputados
	results[0].Value = 599

	rep, err := Check(general, results, DefaultCheckOptions())
	require.NoError(t, err)
	assert.False(t, rep.OK())
	assert.Empty(t, rep.Diff)
	assert.Equal(t, []Mismatch{
		{Province: "Alicante", Measure: "diputados", General: 12, Results: 11},
		{Province: "Alicante", Measure: "votos a candidaturas", General: 1000, Results: 999},
	}, rep.Mismatches)
	assert.True(t, strings.HasPrefix(rep.Mismatches[0].String(), "Alicante: diputados 12"))
}

func TestCheckMissingColumns(t *testing.T) {
	general, results := extractTestTables(t)
	opts := DefaultCheckOptions()
	opts.VotesTotalColumn = "votos válidos"

	rep, err := Check(general, results, opts)
	require.NoError(t, err)
	assert.True(t, rep.OK())
	assert.Len(t, rep.Notes, 1)

	general.Cols = general.Cols[:1]
	_, err = Check(general, results, opts)
	assert.ErrorIs(t, err, ErrMissingColumn)
}
