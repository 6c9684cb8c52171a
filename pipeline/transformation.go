package pipeline

import (
	"math"
	"os"

	"github.com/rs/zerolog"
	"go-ml.dev/pkg/mathscore/artifact"
	"go-ml.dev/pkg/mathscore/config"
	"go-ml.dev/pkg/mathscore/errs"
	"go-ml.dev/pkg/mathscore/preprocess"
	"go-ml.dev/pkg/mathscore/tables"
	"gonum.org/v1/gonum/mat"
)

/*
Transformation fits the preprocessing pipeline on the train partition,
transforms both partitions and persists the fitted pipeline
*/
type Transformation struct {
	Config *config.Config
	Log    zerolog.Logger
}

/*
BuildPipeline returns an unfitted pipeline: numeric branch first, then categorical
*/
func (tr Transformation) BuildPipeline() *preprocess.Pipeline {
	var branches []*preprocess.Branch
	if len(tr.Config.NumericColumns) > 0 {
		branches = append(branches, preprocess.Numeric("num_pipeline", tr.Config.NumericColumns...))
	}
	if len(tr.Config.CategoricalColumns) > 0 {
		branches = append(branches, preprocess.Categorical("cat_pipeline", tr.Config.CategoricalColumns...))
	}
	return preprocess.New(branches...)
}

/*
Run returns transformed train and test partitions, the target is the last column
*/
func (tr Transformation) Run(trainPath, testPath string) (train, test *mat.Dense, preprocessorPath string, err error) {
	cfg := tr.Config
	log := tr.Log.With().Str("component", "transformation").Logger()

	for _, p := range []string{trainPath, testPath} {
		if _, e := os.Stat(p); e != nil {
			log.Error().Err(e).Str("path", p).Msg("partition is not found")
			return nil, nil, "", errs.New(errs.FileNotFound, e)
		}
	}
	trainT, yTrain, err := tr.load(trainPath, log)
	if err != nil {
		return
	}
	testT, yTest, err := tr.load(testPath, log)
	if err != nil {
		return
	}

	pp := tr.BuildPipeline()
	xTrain, e := pp.FitTransform(trainT.Except(cfg.Target))
	if e != nil {
		log.Error().Err(e).Msg("failed to fit preprocessing pipeline")
		return nil, nil, "", errs.New(errs.InvalidData, e)
	}
	xTest, e := pp.Transform(testT.Except(cfg.Target))
	if e != nil {
		log.Error().Err(e).Msg("failed to transform test partition")
		return nil, nil, "", errs.New(errs.InvalidData, e)
	}
	log.Info().Int("features", pp.Width()).Strs("names", pp.Names()).Msg("preprocessing pipeline fitted")

	preprocessorPath = cfg.Path(cfg.Preprocessor)
	if e = artifact.SaveFile(preprocessorPath, pp); e != nil {
		log.Error().Err(e).Str("path", preprocessorPath).Msg("failed to save preprocessor")
		return nil, nil, "", errs.New(errs.SerializationFailure, e)
	}
	log.Info().Str("path", preprocessorPath).Msg("preprocessor saved")
	return withTarget(xTrain, yTrain), withTarget(xTest, yTest), preprocessorPath, nil
}

func (tr Transformation) load(path string, log zerolog.Logger) (*tables.Table, []float64, error) {
	t, err := tables.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to read partition")
		return nil, nil, errs.New(errs.InvalidData, err)
	}
	target := tr.Config.Target
	if !t.Has(target) {
		log.Error().Str("path", path).Str("target", target).Msg("target column is absent")
		return nil, nil, errs.Errorf(errs.InvalidData, "%v does not have target column `%v`", path, target)
	}
	y, err := t.Col(target).Floats()
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("bad target value")
		return nil, nil, errs.New(errs.InvalidData, err)
	}
	for i, v := range y {
		if math.IsNaN(v) {
			return nil, nil, errs.Errorf(errs.InvalidData, "%v: target is missing in row %d", path, i)
		}
	}
	log.Info().Str("path", path).Int("rows", t.Len()).Msg("partition loaded")
	return t, y, nil
}

func withTarget(x *mat.Dense, y []float64) *mat.Dense {
	r, c := x.Dims()
	m := mat.NewDense(r, c+1, nil)
	m.Slice(0, r, 0, c).(*mat.Dense).Copy(x)
	m.SetCol(c, y)
	return m
}
