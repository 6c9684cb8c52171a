package registry

import (
	"path/filepath"
	"testing"

	"go-ml.dev/pkg/mathscore/model"
	"gotest.tools/assert"
)

func Test_RecordHistory(t *testing.T) {
	reg, err := Open(filepath.Join(t.TempDir(), "db", "runs.db"))
	assert.NilError(t, err)
	defer reg.Close()

	first := &model.Report{
		RunID:    "first",
		Scores:   []model.Score{{Name: "linear_regression", Train: 0.9, Test: 0.88}, {Name: "decision_tree", Train: 1, Test: 0.7}},
		TheBest:  0,
		Score:    0.88,
		Accepted: true,
	}
	second := &model.Report{
		RunID:   "second",
		Scores:  []model.Score{{Name: "decision_tree", Train: 1, Test: 0.3}},
		TheBest: 0,
		Score:   0.3,
	}
	assert.NilError(t, reg.Record(first))
	assert.NilError(t, reg.Record(second))

	h, err := reg.History("first")
	assert.NilError(t, err)
	assert.Assert(t, len(h) == 2)
	assert.Equal(t, h[0].Candidate, "linear_regression")
	assert.Assert(t, h[0].Selected && h[0].Accepted)
	assert.Assert(t, !h[1].Selected && !h[1].Accepted)
	assert.Assert(t, h[1].Train == 1 && h[1].Test == 0.7)

	h, err = reg.History("second")
	assert.NilError(t, err)
	assert.Assert(t, len(h) == 1)
	assert.Assert(t, h[0].Selected && !h[0].Accepted)

	h, err = reg.History("")
	assert.NilError(t, err)
	assert.Assert(t, len(h) == 3)

	// same run can't be recorded twice
	assert.Assert(t, reg.Record(first) != nil)
	h, _ = reg.History("")
	assert.Assert(t, len(h) == 3)
}
