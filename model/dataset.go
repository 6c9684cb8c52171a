package model

import (
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

/*
Dataset is a features matrix with its targets
*/
type Dataset struct {
	X mat.Matrix
	Y []float64
}

/*
FromMatrix splits m into features (all but last column) and target (last column)
*/
func FromMatrix(m mat.Matrix) (Dataset, error) {
	r, c := m.Dims()
	if r == 0 || c < 2 {
		return Dataset{}, zorros.Errorf("matrix %dx%d does not have features and target", r, c)
	}
	x := mat.DenseCopyOf(m).Slice(0, r, 0, c-1)
	return Dataset{X: x, Y: mat.Col(nil, c-1, m)}, nil
}

func (d Dataset) Len() int {
	r, _ := d.X.Dims()
	return r
}

func rowsOf(X mat.Matrix) [][]float64 {
	r, _ := X.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, X)
	}
	return rows
}

func checkFit(X mat.Matrix, y []float64) ([][]float64, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, zorros.Errorf("empty train data")
	}
	if r != len(y) {
		return nil, zorros.Errorf("X has %d rows but y has %d values", r, len(y))
	}
	return rowsOf(X), nil
}

func checkPredict(X mat.Matrix, features int) ([][]float64, error) {
	_, c := X.Dims()
	if c != features {
		return nil, zorros.Errorf("model is fitted on %d features, got %d", features, c)
	}
	return rowsOf(X), nil
}
