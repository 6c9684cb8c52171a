package artifact_test

import (
	"os"
	"path/filepath"
	"testing"

	"go-ml.dev/pkg/mathscore/artifact"
	"go-ml.dev/pkg/mathscore/model"
	"gonum.org/v1/gonum/mat"
	"gotest.tools/assert"
)

type payload struct {
	Name   string
	Values []float64
}

func Test_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "payload.gob")
	assert.Assert(t, !artifact.Exists(path))
	assert.NilError(t, artifact.SaveFile(path, &payload{"a", []float64{1, 2.5}}))
	assert.Assert(t, artifact.Exists(path))
	p := &payload{}
	assert.NilError(t, artifact.Load(path, p))
	assert.DeepEqual(t, p, &payload{"a", []float64{1, 2.5}})

	// overwrite
	assert.NilError(t, artifact.SaveFile(path, &payload{Name: "b"}))
	p = &payload{}
	assert.NilError(t, artifact.Load(path, p))
	assert.Equal(t, p.Name, "b")
}

func Test_LoadMissing(t *testing.T) {
	err := artifact.Load(filepath.Join(t.TempDir(), "none.gob"), &payload{})
	assert.Assert(t, os.IsNotExist(err))
}

func Test_LoadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gob")
	assert.NilError(t, os.WriteFile(path, []byte("definitely not xz"), 0644))
	err := artifact.Load(path, &payload{})
	assert.Assert(t, err != nil && !os.IsNotExist(err))
}

func Test_ModelRoundTrip(t *testing.T) {
	x := mat.NewDense(6, 2, []float64{1, 0, 2, 1, 3, 0, 4, 1, 5, 0, 6, 1})
	y := []float64{1, 3, 3, 5, 5, 7}
	for _, c := range model.DefaultRoster() {
		m, err := model.New(c.Name, model.Params{})
		assert.NilError(t, err)
		if c.Name == model.KNeighborsName {
			assert.NilError(t, model.Params{"K": 2}.Apply(m))
		}
		assert.NilError(t, m.Fit(x, y), c.Name)
		want, err := m.Predict(x)
		assert.NilError(t, err)

		path := filepath.Join(t.TempDir(), c.Name+".gob")
		assert.NilError(t, artifact.SaveFile(path, &model.Envelope{Name: c.Name, Features: 2, Model: m}))
		env := &model.Envelope{}
		assert.NilError(t, artifact.Load(path, env))
		assert.Equal(t, env.Name, c.Name)
		got, err := env.Predict(x)
		assert.NilError(t, err)
		assert.DeepEqual(t, got, want)
	}
}
