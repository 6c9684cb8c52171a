package preprocess

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"go-ml.dev/pkg/mathscore/tables"
	"go-ml.dev/pkg/zorros"
)

const (
	Median       = "median"
	MostFrequent = "most_frequent"
)

/*
Imputer replaces missing cells by a per-column fill value learned on fit
*/
type Imputer struct {
	Strategy string
	Fill     []string
}

/*
Fit learns fill values for every column of cols (rows x columns)
*/
func (im *Imputer) Fit(cols [][]string) error {
	im.Fill = make([]string, len(cols))
	for j, col := range cols {
		var (
			fill string
			err  error
		)
		switch im.Strategy {
		case Median:
			fill, err = medianOf(col)
		case MostFrequent:
			fill, err = modeOf(col)
		default:
			err = zorros.Errorf("unknown imputation strategy `%v`", im.Strategy)
		}
		if err != nil {
			return err
		}
		im.Fill[j] = fill
	}
	return nil
}

/*
Transform returns copies of the columns with missing cells filled
*/
func (im *Imputer) Transform(cols [][]string) ([][]string, error) {
	if len(cols) != len(im.Fill) {
		return nil, zorros.Errorf("imputer is fitted on %d columns, got %d", len(im.Fill), len(cols))
	}
	r := make([][]string, len(cols))
	for j, col := range cols {
		q := make([]string, len(col))
		for i, s := range col {
			if tables.IsMissing(s) {
				q[i] = im.Fill[j]
			} else {
				q[i] = strings.TrimSpace(s)
			}
		}
		r[j] = q
	}
	return r, nil
}

func medianOf(col []string) (string, error) {
	v := make([]float64, 0, len(col))
	for i, s := range col {
		if tables.IsMissing(s) {
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return "", zorros.Errorf("row %d: `%v` is not a number", i, s)
		}
		v = append(v, x)
	}
	if len(v) == 0 {
		return "", zorros.Errorf("can't compute median of an empty column")
	}
	sort.Float64s(v)
	n := len(v)
	m := v[n/2]
	if n%2 == 0 {
		m = (v[n/2-1] + v[n/2]) / 2
	}
	return strconv.FormatFloat(m, 'g', -1, 64), nil
}

func modeOf(col []string) (string, error) {
	counts := map[string]int{}
	for _, s := range col {
		if !tables.IsMissing(s) {
			counts[strings.TrimSpace(s)]++
		}
	}
	if len(counts) == 0 {
		return "", zorros.Errorf("can't compute mode of an empty column")
	}
	best, bc := "", math.MinInt32
	for s, c := range counts {
		// equal counts resolve to the lexically smallest value
		if c > bc || (c == bc && s < best) {
			best, bc = s, c
		}
	}
	return best, nil
}
