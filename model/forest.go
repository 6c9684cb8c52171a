package model

import (
	"math/rand"
	"runtime"
	"sync"

	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

/*
RandomForest averages regression trees grown on bootstrap samples.
Tree i uses seed Seed+i, so the forest does not depend on goroutines scheduling.
*/
type RandomForest struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     float64 // fraction of features tried per split, 0 => all
	Bootstrap       bool
	Seed            int64

	Features int
	Trees    []*Node
}

func NewRandomForest() *RandomForest {
	return &RandomForest{
		NEstimators:     100,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Bootstrap:       true,
		Seed:            DefaultSeed,
	}
}

func (rf *RandomForest) Fit(X mat.Matrix, y []float64) error {
	rows, err := checkFit(X, y)
	if err != nil {
		return err
	}
	if rf.NEstimators < 1 {
		return zorros.Errorf("random forest: NEstimators must be positive, got %d", rf.NEstimators)
	}
	n := len(rows)
	rf.Features = len(rows[0])
	rf.Trees = make([]*Node, rf.NEstimators)
	g := growing{
		maxDepth:        rf.MaxDepth,
		minSamplesSplit: rf.MinSamplesSplit,
		minSamplesLeaf:  rf.MinSamplesLeaf,
		maxFeatures:     featuresCount(rf.MaxFeatures, rf.Features),
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < runtime.GOMAXPROCS(0); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				rnd := rand.New(rand.NewSource(rf.Seed + int64(k)))
				idx := sequence(n)
				if rf.Bootstrap {
					for i := range idx {
						idx[i] = rnd.Intn(n)
					}
				}
				rf.Trees[k] = grow(rows, y, idx, g, rnd)
			}
		}()
	}
	for k := 0; k < rf.NEstimators; k++ {
		jobs <- k
	}
	close(jobs)
	wg.Wait()
	return nil
}

func (rf *RandomForest) Predict(X mat.Matrix) ([]float64, error) {
	if len(rf.Trees) == 0 {
		return nil, zorros.Errorf("random forest is not fitted")
	}
	rows, err := checkPredict(X, rf.Features)
	if err != nil {
		return nil, err
	}
	r := make([]float64, len(rows))
	for i, x := range rows {
		s := 0.0
		for _, t := range rf.Trees {
			s += t.predict(x)
		}
		r[i] = s / float64(len(rf.Trees))
	}
	return r, nil
}
