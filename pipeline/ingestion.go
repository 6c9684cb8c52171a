package pipeline

import (
	"github.com/rs/zerolog"
	"go-ml.dev/pkg/mathscore/config"
	"go-ml.dev/pkg/mathscore/errs"
	"go-ml.dev/pkg/mathscore/tables"
)

/*
Ingestion loads the raw dataset and persists its copy and the train/test partitions
*/
type Ingestion struct {
	Config *config.Config
	Log    zerolog.Logger
}

func (in Ingestion) Run() (trainPath, testPath, rawPath string, err error) {
	cfg := in.Config
	log := in.Log.With().Str("component", "ingestion").Logger()
	log.Info().Str("source", cfg.Source).Msg("ingestion started")

	t, err := tables.ReadFile(cfg.Source)
	if err != nil {
		log.Error().Err(err).Str("source", cfg.Source).Msg("failed to read dataset")
		return "", "", "", errs.New(errs.DataUnavailable, err)
	}
	if m := t.Missing(cfg.Columns()...); len(m) > 0 {
		log.Error().Strs("columns", m).Msg("dataset does not have required columns")
		return "", "", "", errs.Errorf(errs.DataUnavailable, "dataset %v does not have columns %v", cfg.Source, m)
	}
	if t.Len() == 0 {
		log.Error().Msg("dataset is empty")
		return "", "", "", errs.Errorf(errs.DataUnavailable, "dataset %v is empty", cfg.Source)
	}
	log.Info().Int("rows", t.Len()).Int("columns", len(t.Names())).Msg("dataset loaded")

	rawPath = cfg.Path(cfg.Raw)
	if err = t.WriteFile(rawPath); err != nil {
		log.Error().Err(err).Str("path", rawPath).Msg("failed to write raw copy")
		return "", "", "", errs.New(errs.SerializationFailure, err)
	}
	log.Info().Str("path", rawPath).Msg("raw copy written")

	train, test := t.Split(cfg.TestSize, cfg.Seed)
	trainPath, testPath = cfg.Path(cfg.Train), cfg.Path(cfg.Test)
	for _, x := range []struct {
		path string
		t    *tables.Table
	}{{trainPath, train}, {testPath, test}} {
		if err = x.t.WriteFile(x.path); err != nil {
			log.Error().Err(err).Str("path", x.path).Msg("failed to write partition")
			return "", "", "", errs.New(errs.SerializationFailure, err)
		}
		log.Info().Str("path", x.path).Int("rows", x.t.Len()).Msg("partition written")
	}
	log.Info().Msg("ingestion completed")
	return
}
