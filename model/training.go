package model

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/mathscore/artifact"
	"go-ml.dev/pkg/mathscore/errs"
	"go-ml.dev/pkg/mathscore/fu"
)

const DefaultThreshold = 0.6

/*
Recorder receives the report of every completed evaluation
*/
type Recorder interface {
	Record(report *Report) error
}

/*
Training fits every candidate, scores it on the test partition and
stores the best one if it reaches the threshold
*/
type Training struct {
	Candidates []Candidate  // evaluated in order, DefaultRoster() if empty
	Threshold  float64      // minimal acceptable test R²
	ModelFile  iokit.Output // file to store selected model
	Recorder   Recorder     // optional
	Log        zerolog.Logger
}

/*
Evaluate fits candidates one by one and reports their scores, nothing is stored
*/
func (t Training) Evaluate(train, test Dataset) (report *Report, models []Regressor, err error) {
	candidates := t.Candidates
	if len(candidates) == 0 {
		candidates = DefaultRoster()
	}
	report = &Report{RunID: uuid.New().String(), TheBest: -1}
	for _, c := range candidates {
		m, e := New(c.Name, c.Params)
		if e != nil {
			return nil, nil, errs.New(errs.TrainingFailure, e)
		}
		s, e := evaluate(c.Name, m, train, test)
		if e != nil {
			t.Log.Error().Err(e).Str("model", c.Name).Msg("candidate failed")
			return nil, nil, errs.New(errs.TrainingFailure, e)
		}
		t.Log.Info().
			Str("model", c.Name).
			Float64("train_r2", s.Train).
			Float64("test_r2", s.Test).
			Float64("test_rmse", s.Rmse).
			Msg("candidate evaluated")
		report.Scores = append(report.Scores, s)
		models = append(models, m)
	}
	tests := make([]float64, len(report.Scores))
	for i, s := range report.Scores {
		tests[i] = s.Test
	}
	report.TheBest = fu.Indmaxd(tests)
	report.Score = tests[report.TheBest]
	report.Accepted = report.Score >= t.Threshold
	return
}

/*
Run evaluates candidates and stores the best one into ModelFile.
If the best score is lower than the threshold, the report is returned with
NoAcceptableModel error and the model file is not touched
*/
func (t Training) Run(train, test Dataset) (report *Report, err error) {
	report, models, err := t.Evaluate(train, test)
	if err != nil {
		return
	}
	best := report.Best()
	if t.Recorder != nil {
		if e := t.Recorder.Record(report); e != nil {
			t.Log.Warn().Err(e).Str("run", report.RunID).Msg("failed to record run")
		}
	}
	if !report.Accepted {
		t.Log.Error().
			Str("model", best.Name).
			Float64("score", best.Test).
			Msg("no model reached the threshold")
		return report, errs.Errorf(errs.NoAcceptableModel,
			"best model %v has score %.5f < %.2f", best.Name, best.Test, t.Threshold)
	}
	t.Log.Info().Str("model", best.Name).Float64("score", best.Test).Msg("best model selected")
	if t.ModelFile != nil {
		env := &Envelope{
			Name:     best.Name,
			Score:    best.Test,
			Features: dims(train),
			Model:    models[report.TheBest],
		}
		if e := artifact.Save(t.ModelFile, env); e != nil {
			return report, errs.New(errs.SerializationFailure, e)
		}
	}
	return
}

func evaluate(name string, m Regressor, train, test Dataset) (s Score, err error) {
	s.Name = name
	if err = m.Fit(train.X, train.Y); err != nil {
		return
	}
	p, err := m.Predict(train.X)
	if err != nil {
		return
	}
	s.Train = R2(train.Y, p)
	if p, err = m.Predict(test.X); err != nil {
		return
	}
	s.Test = R2(test.Y, p)
	s.Rmse = Rmse(test.Y, p)
	return
}

func dims(d Dataset) int {
	_, c := d.X.Dims()
	return c
}
