/*
Package pipeline implements the stages of the math score model building:
ingestion, transformation, training with model selection, and prediction.
*/
package pipeline

import (
	"github.com/rs/zerolog"
	"go-ml.dev/pkg/mathscore/config"
	"go-ml.dev/pkg/mathscore/model"
	"go-ml.dev/pkg/mathscore/registry"
)

/*
Train runs ingestion, transformation and training one after another
*/
func Train(cfg *config.Config, log zerolog.Logger) (*model.Report, error) {
	trainPath, testPath, _, err := Ingestion{Config: cfg, Log: log}.Run()
	if err != nil {
		return nil, err
	}
	train, test, _, err := Transformation{Config: cfg, Log: log}.Run(trainPath, testPath)
	if err != nil {
		return nil, err
	}
	trainer := Trainer{Config: cfg, Log: log}
	if cfg.Registry != "" {
		reg, e := registry.Open(cfg.Path(cfg.Registry))
		if e != nil {
			log.Warn().Err(e).Msg("run registry is not available")
		} else {
			defer reg.Close()
			trainer.Recorder = reg
		}
	}
	return trainer.Report(train, test)
}
