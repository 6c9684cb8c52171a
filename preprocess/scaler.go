package preprocess

import (
	"math"

	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/stat"
)

/*
Scaler standardizes columns to unit variance, centering them when WithMean is set.
Constant columns are left unscaled.
*/
type Scaler struct {
	WithMean bool
	Mean     []float64
	Scale    []float64
}

// Fit learns mean and population standard deviation of every column of rows
func (sc *Scaler) Fit(rows [][]float64) error {
	if len(rows) == 0 {
		return zorros.Errorf("can't fit scaler on empty data")
	}
	p := len(rows[0])
	sc.Mean = make([]float64, p)
	sc.Scale = make([]float64, p)
	col := make([]float64, len(rows))
	n := float64(len(rows))
	for j := 0; j < p; j++ {
		for i, r := range rows {
			col[i] = r[j]
		}
		m, v := stat.MeanVariance(col, nil)
		if len(rows) > 1 {
			v = v * (n - 1) / n
		} else {
			v = 0
		}
		sc.Mean[j] = m
		sc.Scale[j] = 1
		if s := math.Sqrt(v); s > 1e-12 {
			sc.Scale[j] = s
		}
	}
	return nil
}

func (sc *Scaler) Transform(rows [][]float64) ([][]float64, error) {
	r := make([][]float64, len(rows))
	for i, x := range rows {
		if len(x) != len(sc.Scale) {
			return nil, zorros.Errorf("scaler is fitted on %d columns, got %d", len(sc.Scale), len(x))
		}
		q := make([]float64, len(x))
		for j, v := range x {
			if sc.WithMean {
				v -= sc.Mean[j]
			}
			q[j] = v / sc.Scale[j]
		}
		r[i] = q
	}
	return r, nil
}
