package model

import (
	"math/rand"
	"sort"

	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

/*
Node is a regression tree node, Feature < 0 marks a leaf
*/
type Node struct {
	Feature   int
	Threshold float64 // x[Feature] <= Threshold goes left
	Value     float64
	Left      *Node
	Right     *Node
}

func (n *Node) predict(x []float64) float64 {
	for n.Feature >= 0 {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

// Depth returns the longest root to leaf path length
func (n *Node) Depth() int {
	if n == nil || n.Feature < 0 {
		return 0
	}
	l, r := n.Left.Depth(), n.Right.Depth()
	if l > r {
		return l + 1
	}
	return r + 1
}

type growing struct {
	maxDepth        int     // 0 => unlimited
	minSamplesSplit int     // minimum samples to try a split
	minSamplesLeaf  int     // minimum samples in each child
	maxFeatures     int     // features tried per split, 0 => all
	lambda          float64 // L2 regularization of leaf values
	minGain         float64 // minimal split gain
}

type treeGrower struct {
	growing
	x   [][]float64
	y   []float64
	rnd *rand.Rand
}

/*
grow builds a tree on rows picked by idx, duplicates in idx count as separate samples.
Leaf value is sum(y)/(n+lambda), the split maximizes the reduction of the
regularized squared error.
*/
func grow(x [][]float64, y []float64, idx []int, g growing, rnd *rand.Rand) *Node {
	t := &treeGrower{growing: g, x: x, y: y, rnd: rnd}
	if t.minSamplesSplit < 2 {
		t.minSamplesSplit = 2
	}
	if t.minSamplesLeaf < 1 {
		t.minSamplesLeaf = 1
	}
	return t.node(append([]int(nil), idx...), 0)
}

func (t *treeGrower) score(s float64, n int) float64 {
	return s * s / (float64(n) + t.lambda)
}

func (t *treeGrower) node(idx []int, depth int) *Node {
	s := 0.0
	for _, i := range idx {
		s += t.y[i]
	}
	leaf := &Node{Feature: -1, Value: s / (float64(len(idx)) + t.lambda)}
	if len(idx) < t.minSamplesSplit || len(idx) < 2*t.minSamplesLeaf || (t.maxDepth > 0 && depth >= t.maxDepth) {
		return leaf
	}

	p := len(t.x[idx[0]])
	features := make([]int, p)
	for j := range features {
		features[j] = j
	}
	if t.maxFeatures > 0 && t.maxFeatures < p {
		features = t.rnd.Perm(p)[:t.maxFeatures]
	}

	parent := t.score(s, len(idx))
	bestGain, bestFeature, bestThreshold := t.minGain, -1, 0.0
	order := make([]int, len(idx))
	for _, f := range features {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return t.x[order[a]][f] < t.x[order[b]][f] })
		ls := 0.0
		for k := 0; k < len(order)-1; k++ {
			ls += t.y[order[k]]
			nl := k + 1
			v, next := t.x[order[k]][f], t.x[order[k+1]][f]
			if v == next || nl < t.minSamplesLeaf || len(order)-nl < t.minSamplesLeaf {
				continue
			}
			gain := t.score(ls, nl) + t.score(s-ls, len(order)-nl) - parent
			if gain > bestGain+1e-12 {
				bestGain, bestFeature, bestThreshold = gain, f, (v+next)/2
			}
		}
	}
	if bestFeature < 0 {
		return leaf
	}

	var left, right []int
	for _, i := range idx {
		if t.x[i][bestFeature] <= bestThreshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &Node{
		Feature:   bestFeature,
		Threshold: bestThreshold,
		Left:      t.node(left, depth+1),
		Right:     t.node(right, depth+1),
	}
}

/*
DecisionTree is a CART regressor with squared error criterion
*/
type DecisionTree struct {
	MaxDepth        int     // 0 => grow until leaves are pure
	MinSamplesSplit int     // minimum samples to split a node
	MinSamplesLeaf  int     // minimum samples in a leaf
	MaxFeatures     float64 // fraction of features tried per split, 0 => all
	Seed            int64

	Features int
	Root     *Node
}

func NewDecisionTree() *DecisionTree {
	return &DecisionTree{MinSamplesSplit: 2, MinSamplesLeaf: 1, Seed: DefaultSeed}
}

func (dt *DecisionTree) Fit(X mat.Matrix, y []float64) error {
	rows, err := checkFit(X, y)
	if err != nil {
		return err
	}
	dt.Features = len(rows[0])
	dt.Root = grow(rows, y, sequence(len(rows)), growing{
		maxDepth:        dt.MaxDepth,
		minSamplesSplit: dt.MinSamplesSplit,
		minSamplesLeaf:  dt.MinSamplesLeaf,
		maxFeatures:     featuresCount(dt.MaxFeatures, dt.Features),
	}, rand.New(rand.NewSource(dt.Seed)))
	return nil
}

func (dt *DecisionTree) Predict(X mat.Matrix) ([]float64, error) {
	if dt.Root == nil {
		return nil, zorros.Errorf("decision tree is not fitted")
	}
	rows, err := checkPredict(X, dt.Features)
	if err != nil {
		return nil, err
	}
	r := make([]float64, len(rows))
	for i, x := range rows {
		r[i] = dt.Root.predict(x)
	}
	return r, nil
}

func featuresCount(fraction float64, p int) int {
	if fraction <= 0 || fraction >= 1 {
		return 0
	}
	k := int(fraction * float64(p))
	if k < 1 {
		k = 1
	}
	return k
}

func sequence(n int) []int {
	r := make([]int, n)
	for i := range r {
		r[i] = i
	}
	return r
}
