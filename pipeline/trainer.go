package pipeline

import (
	"os"

	"github.com/rs/zerolog"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/mathscore/config"
	"go-ml.dev/pkg/mathscore/errs"
	"go-ml.dev/pkg/mathscore/model"
	"gonum.org/v1/gonum/mat"
)

/*
Trainer selects the best model of the configured roster and stores it
*/
type Trainer struct {
	Config   *config.Config
	Recorder model.Recorder // optional run registry
	Log      zerolog.Logger
}

/*
Run returns the test R² of the stored model
*/
func (tr Trainer) Run(train, test *mat.Dense) (float64, error) {
	report, err := tr.Report(train, test)
	if report == nil {
		return 0, err
	}
	return report.Score, err
}

/*
Report evaluates the roster and returns the full report, it's returned
with NoAcceptableModel error as well
*/
func (tr Trainer) Report(train, test *mat.Dense) (*model.Report, error) {
	cfg := tr.Config
	log := tr.Log.With().Str("component", "trainer").Logger()
	trainDs, err := model.FromMatrix(train)
	if err != nil {
		log.Error().Err(err).Msg("bad train matrix")
		return nil, errs.New(errs.InvalidData, err)
	}
	testDs, err := model.FromMatrix(test)
	if err != nil {
		log.Error().Err(err).Msg("bad test matrix")
		return nil, errs.New(errs.InvalidData, err)
	}
	if err = os.MkdirAll(cfg.ArtifactsDir, 0755); err != nil {
		return nil, errs.New(errs.SerializationFailure, err)
	}
	modelPath := cfg.Path(cfg.Model)
	log.Info().
		Int("train", trainDs.Len()).
		Int("test", testDs.Len()).
		Int("candidates", len(cfg.Candidates)).
		Msg("training started")
	report, err := model.Training{
		Candidates: cfg.Candidates,
		Threshold:  cfg.Threshold,
		ModelFile:  iokit.File(modelPath),
		Recorder:   tr.Recorder,
		Log:        log,
	}.Run(trainDs, testDs)
	if err != nil {
		return report, err
	}
	log.Info().Str("path", modelPath).Str("model", report.Best().Name).Msg("model saved")
	return report, nil
}
