package model

import (
	"math"
	"math/rand"
	"sort"

	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

/*
AdaBoost is the AdaBoost.R2 regressor over shallow trees with the linear loss.
Every estimator is fitted on a weighted bootstrap of the train rows,
prediction is the weighted median of estimators predictions.
*/
type AdaBoost struct {
	NEstimators  int
	LearningRate float64
	MaxDepth     int
	Seed         int64

	Features   int
	Estimators []*Node
	Weights    []float64
}

func NewAdaBoost() *AdaBoost {
	return &AdaBoost{NEstimators: 50, LearningRate: 1, MaxDepth: 3, Seed: DefaultSeed}
}

func (ab *AdaBoost) Fit(X mat.Matrix, y []float64) error {
	rows, err := checkFit(X, y)
	if err != nil {
		return err
	}
	if ab.NEstimators < 1 {
		return zorros.Errorf("adaboost: NEstimators must be positive, got %d", ab.NEstimators)
	}
	if ab.LearningRate <= 0 {
		return zorros.Errorf("adaboost: learning rate must be positive, got %v", ab.LearningRate)
	}
	n := len(rows)
	ab.Features = len(rows[0])
	ab.Estimators = ab.Estimators[:0]
	ab.Weights = ab.Weights[:0]

	rnd := rand.New(rand.NewSource(ab.Seed))
	g := growing{maxDepth: ab.MaxDepth, minSamplesSplit: 2, minSamplesLeaf: 1}
	w := make([]float64, n)
	for i := range w {
		w[i] = 1 / float64(n)
	}
	cdf := make([]float64, n)
	idx := make([]int, n)
	loss := make([]float64, n)

	for m := 0; m < ab.NEstimators; m++ {
		floats.CumSum(cdf, w)
		total := cdf[n-1]
		for i := range idx {
			idx[i] = searchCdf(cdf, rnd.Float64()*total)
		}
		t := grow(rows, y, idx, g, rnd)

		maxErr := 0.0
		for i, x := range rows {
			loss[i] = math.Abs(y[i] - t.predict(x))
			maxErr = math.Max(maxErr, loss[i])
		}
		if maxErr == 0 {
			// perfect fit, nothing to boost anymore
			ab.Estimators = append(ab.Estimators, t)
			ab.Weights = append(ab.Weights, 1)
			break
		}
		avg := 0.0
		for i := range loss {
			loss[i] /= maxErr
			avg += w[i] * loss[i]
		}
		avg /= total
		if avg >= 0.5 {
			if len(ab.Estimators) == 0 {
				ab.Estimators = append(ab.Estimators, t)
				ab.Weights = append(ab.Weights, 1)
			}
			break
		}
		beta := avg / (1 - avg)
		ab.Estimators = append(ab.Estimators, t)
		ab.Weights = append(ab.Weights, ab.LearningRate*math.Log(1/beta))
		for i := range w {
			w[i] *= math.Pow(beta, (1-loss[i])*ab.LearningRate)
		}
		s := floats.Sum(w)
		if s <= 0 {
			break
		}
		floats.Scale(1/s, w)
	}
	return nil
}

func searchCdf(cdf []float64, v float64) int {
	i := sort.SearchFloat64s(cdf, v)
	if i >= len(cdf) {
		i = len(cdf) - 1
	}
	return i
}

func (ab *AdaBoost) Predict(X mat.Matrix) ([]float64, error) {
	if len(ab.Estimators) == 0 {
		return nil, zorros.Errorf("adaboost is not fitted")
	}
	rows, err := checkPredict(X, ab.Features)
	if err != nil {
		return nil, err
	}
	k := len(ab.Estimators)
	half := floats.Sum(ab.Weights) / 2
	p := make([]float64, k)
	order := make([]int, k)
	r := make([]float64, len(rows))
	for i, x := range rows {
		for j, t := range ab.Estimators {
			p[j] = t.predict(x)
			order[j] = j
		}
		sort.SliceStable(order, func(a, b int) bool { return p[order[a]] < p[order[b]] })
		acc := 0.0
		r[i] = p[order[k-1]]
		for _, j := range order {
			acc += ab.Weights[j]
			if acc >= half {
				r[i] = p[j]
				break
			}
		}
	}
	return r, nil
}
