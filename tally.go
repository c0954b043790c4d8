package resultados

import "sort"

// tally accumulates values per province.
type tally struct {
	total     float64
	provinces map[string]float64
}

func newTally() *tally {
	return &tally{
		provinces: make(map[string]float64),
	}
}

func (t *tally) add(province string, v float64) {
	t.total += v
	t.provinces[province] += v
}

func (t *tally) names() []string {
	names := make([]string, 0, len(t.provinces))
	for p := range t.provinces {
		names = append(names, p)
	}
	sort.Strings(names)
	return names
}
