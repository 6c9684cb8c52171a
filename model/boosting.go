package model

import (
	"math/rand"

	"go-ml.dev/pkg/mathscore/fu"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

type boosting struct {
	estimators   int
	learningRate float64
	subsample    float64
	growing
}

/*
boost fits trees on residuals of the squared loss starting from the mean target
*/
func (b boosting) fit(rows [][]float64, y []float64, seed int64) (base float64, trees []*Node, err error) {
	if b.estimators < 1 {
		return 0, nil, zorros.Errorf("boosting: estimators count must be positive, got %d", b.estimators)
	}
	if b.learningRate <= 0 {
		return 0, nil, zorros.Errorf("boosting: learning rate must be positive, got %v", b.learningRate)
	}
	n := len(rows)
	base = fu.Mean(y)
	f := make([]float64, n)
	for i := range f {
		f[i] = base
	}
	resid := make([]float64, n)
	rnd := rand.New(rand.NewSource(seed))
	trees = make([]*Node, 0, b.estimators)
	for m := 0; m < b.estimators; m++ {
		for i := range resid {
			resid[i] = y[i] - f[i]
		}
		idx := sequence(n)
		if b.subsample > 0 && b.subsample < 1 {
			idx = rnd.Perm(n)[:fu.Maxi(1, int(b.subsample*float64(n)))]
		}
		t := grow(rows, resid, idx, b.growing, rnd)
		for i, x := range rows {
			f[i] += b.learningRate * t.predict(x)
		}
		trees = append(trees, t)
	}
	return
}

func boostedPredict(rows [][]float64, base, lr float64, trees []*Node) []float64 {
	r := make([]float64, len(rows))
	for i, x := range rows {
		s := base
		for _, t := range trees {
			s += lr * t.predict(x)
		}
		r[i] = s
	}
	return r
}

/*
GradientBoosting is a least squares gradient boosting of shallow trees
*/
type GradientBoosting struct {
	NEstimators     int
	LearningRate    float64
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	Subsample       float64 // fraction of rows per tree, 0 or 1 => all
	Seed            int64

	Features int
	Init     float64
	Trees    []*Node
}

func NewGradientBoosting() *GradientBoosting {
	return &GradientBoosting{
		NEstimators:     100,
		LearningRate:    0.1,
		MaxDepth:        3,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Subsample:       1,
		Seed:            DefaultSeed,
	}
}

func (gb *GradientBoosting) Fit(X mat.Matrix, y []float64) (err error) {
	rows, err := checkFit(X, y)
	if err != nil {
		return
	}
	gb.Features = len(rows[0])
	gb.Init, gb.Trees, err = boosting{
		estimators:   gb.NEstimators,
		learningRate: gb.LearningRate,
		subsample:    gb.Subsample,
		growing: growing{
			maxDepth:        gb.MaxDepth,
			minSamplesSplit: gb.MinSamplesSplit,
			minSamplesLeaf:  gb.MinSamplesLeaf,
		},
	}.fit(rows, y, gb.Seed)
	return
}

func (gb *GradientBoosting) Predict(X mat.Matrix) ([]float64, error) {
	if len(gb.Trees) == 0 {
		return nil, zorros.Errorf("gradient boosting is not fitted")
	}
	rows, err := checkPredict(X, gb.Features)
	if err != nil {
		return nil, err
	}
	return boostedPredict(rows, gb.Init, gb.LearningRate, gb.Trees), nil
}

/*
XGBoost is a boosting of deeper trees with L2 regularized leaf weights
and a minimal split loss reduction (Gamma)
*/
type XGBoost struct {
	NEstimators    int
	LearningRate   float64
	MaxDepth       int
	Lambda         float64
	Gamma          float64
	MinChildWeight float64
	Subsample      float64
	Seed           int64

	Features int
	Init     float64
	Trees    []*Node
}

func NewXGBoost() *XGBoost {
	return &XGBoost{
		NEstimators:    100,
		LearningRate:   0.3,
		MaxDepth:       6,
		Lambda:         1,
		MinChildWeight: 1,
		Subsample:      1,
		Seed:           DefaultSeed,
	}
}

func (xg *XGBoost) Fit(X mat.Matrix, y []float64) (err error) {
	rows, err := checkFit(X, y)
	if err != nil {
		return
	}
	xg.Features = len(rows[0])
	xg.Init, xg.Trees, err = boosting{
		estimators:   xg.NEstimators,
		learningRate: xg.LearningRate,
		subsample:    xg.Subsample,
		growing: growing{
			maxDepth:       xg.MaxDepth,
			minSamplesLeaf: fu.Maxi(1, int(xg.MinChildWeight)),
			lambda:         xg.Lambda,
			// squared loss structure score has no 1/2 factor here
			minGain: 2 * xg.Gamma,
		},
	}.fit(rows, y, xg.Seed)
	return
}

func (xg *XGBoost) Predict(X mat.Matrix) ([]float64, error) {
	if len(xg.Trees) == 0 {
		return nil, zorros.Errorf("xgboost is not fitted")
	}
	rows, err := checkPredict(X, xg.Features)
	if err != nil {
		return nil, err
	}
	return boostedPredict(rows, xg.Init, xg.LearningRate, xg.Trees), nil
}
