package model

import (
	"sort"

	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

/*
KNeighbors predicts the mean target of the K nearest train rows (euclidean)
*/
type KNeighbors struct {
	K int

	X [][]float64
	Y []float64
}

func NewKNeighbors() *KNeighbors {
	return &KNeighbors{K: 5}
}

// Fit memorizes train data
func (kn *KNeighbors) Fit(X mat.Matrix, y []float64) error {
	rows, err := checkFit(X, y)
	if err != nil {
		return err
	}
	if kn.K < 1 {
		return zorros.Errorf("k-neighbors: K must be positive, got %d", kn.K)
	}
	kn.X = rows
	kn.Y = append([]float64(nil), y...)
	return nil
}

func (kn *KNeighbors) Predict(X mat.Matrix) ([]float64, error) {
	if kn.X == nil {
		return nil, zorros.Errorf("k-neighbors is not fitted")
	}
	rows, err := checkPredict(X, len(kn.X[0]))
	if err != nil {
		return nil, err
	}
	type neighbour struct {
		d float64
		i int
	}
	k := kn.K
	if k > len(kn.X) {
		k = len(kn.X)
	}
	r := make([]float64, len(rows))
	nb := make([]neighbour, len(kn.X))
	for i, x := range rows {
		for j, q := range kn.X {
			nb[j] = neighbour{euclidSquared(x, q), j}
		}
		sort.SliceStable(nb, func(a, b int) bool { return nb[a].d < nb[b].d })
		s := 0.0
		for _, n := range nb[:k] {
			s += kn.Y[n.i]
		}
		r[i] = s / float64(k)
	}
	return r, nil
}

func euclidSquared(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
