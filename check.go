package resultados

import (
	"fmt"
	"strings"

	diffpatch "github.com/sourcegraph/go-diff-patch"
)

type CheckOptions struct {
	VotesLabel       string
	SeatsLabel       string
	VotesTotalColumn string
}

func DefaultCheckOptions() CheckOptions {
	return CheckOptions{
		VotesLabel:       "votos",
		SeatsLabel:       "diputados",
		VotesTotalColumn: "votos a candidaturas",
	}
}

// Mismatch is a province whose general figure disagrees with the sum of its
// long-format results.
type Mismatch struct {
	Province string
	Measure  string
	General  float64
	Results  float64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s %v in general data, %v in results", m.Province, m.Measure, m.General, m.Results)
}

type Report struct {
	Provinces  int
	Seats      float64
	Diff       string
	Mismatches []Mismatch
	Notes      []string
}

func (r *Report) OK() bool {
	return r.Diff == "" && len(r.Mismatches) == 0
}

// Check compares both tables: the province names must be the same set, the
// derived seats must equal the summed seat results, and the summed vote
// results must equal the votes cast for candidacies.
func Check(general *GeneralData, results Results, opts CheckOptions) (*Report, error) {
	provCol := general.Index(colProvince)
	if provCol < 0 {
		return nil, fmt.Errorf("general data %q: %w", colProvince, ErrMissingColumn)
	}

	byResult := make(map[string]*tally)
	all := newTally()
	for _, res := range results {
		t, ok := byResult[res.Result]
		if !ok {
			t = newTally()
			byResult[res.Result] = t
		}
		t.add(res.Provincia, res.Value)
		all.add(res.Provincia, 0)
	}

	generalNames := newTally()
	for _, row := range general.Rows {
		generalNames.add(row[provCol].(string), 0)
	}

	rep := &Report{Provinces: len(generalNames.provinces)}
	if seats, ok := byResult[opts.SeatsLabel]; ok {
		rep.Seats = seats.total
	}
	want := strings.Join(generalNames.names(), "\n") + "\n"
	got := strings.Join(all.names(), "\n") + "\n"
	if want != got {
		rep.Diff = diffpatch.GeneratePatch("provincias", want, got)
	}

	measures := []struct {
		column string
		label  string
	}{
		{colSeats, opts.SeatsLabel},
		{opts.VotesTotalColumn, opts.VotesLabel},
	}
	for _, m := range measures {
		c := general.Index(m.column)
		if c < 0 || general.Cols[c].Kind != Number {
			rep.Notes = append(rep.Notes, fmt.Sprintf("no numeric %q column in general data, skipped", m.column))
			continue
		}
		sums, ok := byResult[m.label]
		if !ok {
			sums = newTally()
		}
		for _, row := range general.Rows {
			prov := row[provCol].(string)
			if g, r := row[c].(float64), sums.provinces[prov]; g != r {
				rep.Mismatches = append(rep.Mismatches, Mismatch{
					Province: prov,
					Measure:  m.column,
					General:  g,
					Results:  r,
				})
			}
		}
	}
	return rep, nil
}
