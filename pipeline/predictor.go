package pipeline

import (
	"sync"

	"github.com/rs/zerolog"
	"go-ml.dev/pkg/mathscore/artifact"
	"go-ml.dev/pkg/mathscore/config"
	"go-ml.dev/pkg/mathscore/errs"
	"go-ml.dev/pkg/mathscore/model"
	"go-ml.dev/pkg/mathscore/preprocess"
	"go-ml.dev/pkg/mathscore/tables"
)

/*
Predictor applies the stored preprocessor and model to new records.
Artifacts are loaded on the first prediction and kept until Reload
*/
type Predictor struct {
	Config *config.Config
	Log    zerolog.Logger

	mu  sync.Mutex
	pre *preprocess.Pipeline
	env *model.Envelope
}

func NewPredictor(cfg *config.Config, log zerolog.Logger) *Predictor {
	return &Predictor{Config: cfg, Log: log.With().Str("component", "predictor").Logger()}
}

// Reload drops loaded artifacts, the next prediction loads them again
func (p *Predictor) Reload() {
	p.mu.Lock()
	p.pre, p.env = nil, nil
	p.mu.Unlock()
}

func (p *Predictor) load() (*preprocess.Pipeline, *model.Envelope, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pre != nil && p.env != nil {
		return p.pre, p.env, nil
	}
	pre := &preprocess.Pipeline{}
	if err := p.read(p.Config.Path(p.Config.Preprocessor), pre); err != nil {
		return nil, nil, err
	}
	env := &model.Envelope{}
	if err := p.read(p.Config.Path(p.Config.Model), env); err != nil {
		return nil, nil, err
	}
	if env.Features != pre.Width() {
		p.Log.Error().
			Int("model_features", env.Features).
			Int("preprocessor_features", pre.Width()).
			Msg("model does not match preprocessor")
		return nil, nil, errs.Errorf(errs.SerializationFailure,
			"model %v expects %d features, preprocessor produces %d", env.Name, env.Features, pre.Width())
	}
	p.Log.Info().Str("model", env.Name).Float64("score", env.Score).Msg("artifacts loaded")
	p.pre, p.env = pre, env
	return pre, env, nil
}

func (p *Predictor) read(path string, v interface{}) error {
	if !artifact.Exists(path) {
		p.Log.Error().Str("path", path).Msg("artifact is not found")
		return errs.Errorf(errs.ArtifactMissing, "artifact %v is not found", path)
	}
	if err := artifact.Load(path, v); err != nil {
		p.Log.Error().Err(err).Str("path", path).Msg("failed to load artifact")
		return errs.New(errs.SerializationFailure, err)
	}
	return nil
}

/*
Predict returns the predicted math score of the record
*/
func (p *Predictor) Predict(r tables.Record) (float64, error) {
	y, err := p.PredictTable(r.Table())
	if err != nil {
		return 0, err
	}
	return y[0], nil
}

/*
PredictTable predicts every row of the table having the feature columns
*/
func (p *Predictor) PredictTable(t *tables.Table) ([]float64, error) {
	pre, env, err := p.load()
	if err != nil {
		return nil, err
	}
	if m := t.Missing(pre.Columns()...); len(m) > 0 {
		p.Log.Error().Strs("columns", m).Msg("input does not have feature columns")
		return nil, errs.Errorf(errs.InvalidData, "input does not have columns %v", m)
	}
	x, err := pre.Transform(t)
	if err != nil {
		p.Log.Error().Err(err).Msg("failed to transform input")
		return nil, errs.New(errs.InvalidData, err)
	}
	y, err := env.Predict(x)
	if err != nil {
		p.Log.Error().Err(err).Msg("failed to predict")
		return nil, errs.New(errs.InvalidData, err)
	}
	return y, nil
}
