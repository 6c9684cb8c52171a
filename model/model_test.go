package model

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/mathscore/artifact"
	"go-ml.dev/pkg/mathscore/errs"
	"gonum.org/v1/gonum/mat"
	"gotest.tools/assert"
)

func synthetic(n int, noise float64, seed int64) Dataset {
	rnd := rand.New(rand.NewSource(seed))
	x := mat.NewDense(n, 3, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		a, b, c := rnd.Float64(), rnd.Float64(), rnd.Float64()
		x.SetRow(i, []float64{a, b, c})
		y[i] = 3*a - 2*b + 0.5*c + noise*rnd.NormFloat64()
	}
	return Dataset{X: x, Y: y}
}

func Test_R2(t *testing.T) {
	y := []float64{1, 2, 3, 4}
	assert.Assert(t, R2(y, y) == 1)
	assert.Assert(t, R2(y, []float64{2.5, 2.5, 2.5, 2.5}) == 0)
	assert.Assert(t, R2(y, []float64{4, 3, 2, 1}) < 0)
	assert.Assert(t, R2([]float64{2, 2}, []float64{2, 2}) == 1)
	assert.Assert(t, R2([]float64{2, 2}, []float64{2, 3}) == 0)
	assert.Assert(t, math.Abs(Rmse([]float64{0, 0}, []float64{3, 4})-math.Sqrt(12.5)) < 1e-12)
}

func Test_FromMatrix(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 10, 3, 4, 20})
	ds, err := FromMatrix(m)
	assert.NilError(t, err)
	assert.Assert(t, ds.Len() == 2)
	assert.DeepEqual(t, ds.Y, []float64{10, 20})
	assert.DeepEqual(t, mat.Row(nil, 1, ds.X), []float64{3, 4})
	_, err = FromMatrix(mat.NewDense(2, 1, nil))
	assert.Assert(t, err != nil)
}

func Test_Regressors(t *testing.T) {
	train, test := synthetic(300, 0.1, 1), synthetic(100, 0.1, 2)
	for _, c := range DefaultRoster() {
		m, err := New(c.Name, nil)
		assert.NilError(t, err)
		assert.NilError(t, m.Fit(train.X, train.Y), c.Name)
		p, err := m.Predict(test.X)
		assert.NilError(t, err, c.Name)
		assert.Assert(t, len(p) == test.Len())
		r2 := R2(test.Y, p)
		t.Logf("%v: %.4f", c.Name, r2)
		assert.Assert(t, r2 > 0.6, c.Name)
		_, err = m.Predict(mat.NewDense(1, 2, nil))
		assert.Assert(t, err != nil, c.Name)
	}
}

func Test_Unfitted(t *testing.T) {
	for _, c := range DefaultRoster() {
		m, _ := New(c.Name, nil)
		_, err := m.Predict(mat.NewDense(1, 3, nil))
		assert.Assert(t, err != nil, c.Name)
	}
}

func Test_LinearExact(t *testing.T) {
	ds := synthetic(50, 0, 3)
	lr := NewLinearRegression()
	assert.NilError(t, lr.Fit(ds.X, ds.Y))
	assert.Assert(t, math.Abs(lr.Coef[0]-3) < 1e-4)
	assert.Assert(t, math.Abs(lr.Coef[1]+2) < 1e-4)
	assert.Assert(t, math.Abs(lr.Intercept) < 1e-4)
}

func Test_TreeDepth(t *testing.T) {
	ds := synthetic(200, 0.1, 4)
	dt := NewDecisionTree()
	dt.MaxDepth = 3
	assert.NilError(t, dt.Fit(ds.X, ds.Y))
	assert.Assert(t, dt.Root.Depth() <= 3)
}

func Test_ForestDeterministic(t *testing.T) {
	ds := synthetic(200, 0.1, 5)
	predict := func() []float64 {
		rf := NewRandomForest()
		rf.NEstimators = 20
		rf.MaxFeatures = 0.5
		assert.NilError(t, rf.Fit(ds.X, ds.Y))
		p, err := rf.Predict(ds.X)
		assert.NilError(t, err)
		return p
	}
	assert.DeepEqual(t, predict(), predict())
}

func Test_Params(t *testing.T) {
	m, err := New(RandomForestName, Params{"NEstimators": 10, "Bootstrap": 0, "MaxFeatures": 0.3})
	assert.NilError(t, err)
	rf := m.(*RandomForest)
	assert.Assert(t, rf.NEstimators == 10)
	assert.Assert(t, !rf.Bootstrap)
	assert.Assert(t, rf.MaxFeatures == 0.3)
	assert.Assert(t, rf.MinSamplesLeaf == 1)

	_, err = New(RandomForestName, Params{"Unknown": 1})
	assert.Assert(t, err != nil)
	_, err = New("svm", nil)
	assert.Assert(t, err != nil)
	assert.Assert(t, Known(XGBoostName) && !Known("svm"))
}

type recorder struct{ reports []*Report }

func (r *recorder) Record(report *Report) error {
	r.reports = append(r.reports, report)
	return nil
}

func Test_TrainingSelects(t *testing.T) {
	train, test := synthetic(300, 0.1, 6), synthetic(100, 0.1, 7)
	file := filepath.Join(t.TempDir(), "model.gob")
	rec := &recorder{}
	tr := Training{
		Candidates: []Candidate{
			{Name: DecisionTreeName, Params: Params{"MaxDepth": 1}},
			{Name: LinearRegressionName},
			{Name: KNeighborsName},
		},
		Threshold: DefaultThreshold,
		ModelFile: iokit.File(file),
		Recorder:  rec,
		Log:       zerolog.Nop(),
	}
	report, err := tr.Run(train, test)
	assert.NilError(t, err)
	assert.Assert(t, report.RunID != "")
	assert.Assert(t, len(report.Scores) == 3)
	for _, s := range report.Scores {
		assert.Assert(t, s.Test <= report.Score)
	}
	assert.Equal(t, report.Best().Name, LinearRegressionName)
	assert.Assert(t, report.Accepted)
	assert.Assert(t, len(rec.reports) == 1)

	env := &Envelope{}
	assert.NilError(t, artifact.Load(file, env))
	assert.Equal(t, env.Name, LinearRegressionName)
	assert.Assert(t, env.Score == report.Score)
	assert.Assert(t, env.Features == 3)
	p, err := env.Predict(test.X)
	assert.NilError(t, err)
	assert.Assert(t, R2(test.Y, p) == report.Score)
}

func Test_TrainingTieFirst(t *testing.T) {
	train, test := synthetic(100, 0.1, 8), synthetic(50, 0.1, 9)
	report, err := Training{
		Candidates: []Candidate{{Name: LinearRegressionName}, {Name: LinearRegressionName}},
		Log:        zerolog.Nop(),
	}.Run(train, test)
	assert.NilError(t, err)
	assert.Assert(t, report.Scores[0].Test == report.Scores[1].Test)
	assert.Assert(t, report.TheBest == 0)
}

func Test_TrainingRejects(t *testing.T) {
	train, test := synthetic(100, 1, 10), synthetic(50, 1, 11)
	file := filepath.Join(t.TempDir(), "model.gob")
	report, err := Training{
		Candidates: []Candidate{{Name: DecisionTreeName, Params: Params{"MaxDepth": 1}}},
		Threshold:  0.99,
		ModelFile:  iokit.File(file),
		Log:        zerolog.Nop(),
	}.Run(train, test)
	assert.Assert(t, errs.Is(err, errs.NoAcceptableModel))
	assert.Assert(t, report != nil && !report.Accepted)
	_, err = os.Stat(file)
	assert.Assert(t, os.IsNotExist(err))
}

func Test_TrainingZeroThreshold(t *testing.T) {
	// signal variance is close to 1.1, noise variance is 1.69
	train, test := synthetic(300, 1.3, 14), synthetic(200, 1.3, 15)
	file := filepath.Join(t.TempDir(), "model.gob")
	report, err := Training{
		Candidates: []Candidate{{Name: LinearRegressionName}},
		Threshold:  0,
		ModelFile:  iokit.File(file),
		Log:        zerolog.Nop(),
	}.Run(train, test)
	assert.NilError(t, err)
	assert.Assert(t, report.Accepted)
	assert.Assert(t, report.Score > 0 && report.Score < DefaultThreshold)
	assert.Assert(t, report.Best().Rmse > 0)
	env := &Envelope{}
	assert.NilError(t, artifact.Load(file, env))
	assert.Equal(t, env.Name, LinearRegressionName)
}

func Test_TrainingFailure(t *testing.T) {
	train, test := synthetic(50, 0.1, 12), synthetic(20, 0.1, 13)
	_, err := Training{
		Candidates: []Candidate{{Name: GradientBoostingName, Params: Params{"LearningRate": -1}}},
		Log:        zerolog.Nop(),
	}.Run(train, test)
	assert.Assert(t, errs.Is(err, errs.TrainingFailure))
	_, err = Training{
		Candidates: []Candidate{{Name: "svm"}},
		Log:        zerolog.Nop(),
	}.Run(train, test)
	assert.Assert(t, errs.Is(err, errs.TrainingFailure))
}
