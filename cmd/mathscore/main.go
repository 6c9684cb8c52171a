package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go-ml.dev/pkg/mathscore/config"
	"go-ml.dev/pkg/mathscore/errs"
	"go-ml.dev/pkg/mathscore/logs"
	"go-ml.dev/pkg/mathscore/pipeline"
	"go-ml.dev/pkg/mathscore/tables"
)

const usage = `usage: mathscore <command> [flags]

commands:
  train     ingest the dataset, fit the preprocessor and select the best model
  predict   predict the math score of one student
`

type common struct {
	config    *string
	artifacts *string
	level     *string
	quiet     *bool
}

func commonFlags(fs *flag.FlagSet) common {
	return common{
		config:    fs.String("config", "", "yaml configuration file"),
		artifacts: fs.String("artifacts", "", "artifacts directory"),
		level:     fs.String("log-level", "info", "log level"),
		quiet:     fs.Bool("quiet", false, "do not print log to the console"),
	}
}

func (c common) setup() (*config.Config, *logs.Sink, error) {
	cfg := config.Default()
	if *c.config != "" {
		var err error
		if cfg, err = config.Load(*c.config); err != nil {
			return nil, nil, err
		}
	}
	if *c.artifacts != "" {
		cfg.ArtifactsDir = *c.artifacts
	}
	level, err := logs.ParseLevel(*c.level)
	if err != nil {
		return nil, nil, err
	}
	var console io.Writer
	if !*c.quiet {
		console = os.Stderr
	}
	sink, err := logs.Open(cfg.LogsDir, level, console)
	if err != nil {
		return nil, nil, err
	}
	return cfg, sink, nil
}

func train(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	c := commonFlags(fs)
	source := fs.String("source", "", "raw dataset csv")
	fs.Parse(args)

	cfg, sink, err := c.setup()
	if err != nil {
		return err
	}
	defer sink.Close()
	if *source != "" {
		cfg.Source = *source
	}
	report, err := pipeline.Train(cfg, sink.Logger)
	if err != nil {
		return err
	}
	log := sink.Named("cli")
	log.Info().Str("run", report.RunID).Str("model", report.Best().Name).Msg("training completed")
	for _, s := range report.Scores {
		fmt.Printf("%-20s train %.4f test %.4f rmse %.4f\n", s.Name, s.Train, s.Test, s.Rmse)
	}
	fmt.Printf("best: %v %.4f\n", report.Best().Name, report.Score)
	return nil
}

func predict(args []string) error {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	c := commonFlags(fs)
	r := tables.Record{}
	fs.StringVar(&r.Gender, "gender", "female", "gender")
	fs.StringVar(&r.RaceEthnicity, "race", "group B", "race/ethnicity group")
	fs.StringVar(&r.ParentalLevelOfEducation, "education", "bachelor's degree", "parental level of education")
	fs.StringVar(&r.Lunch, "lunch", "standard", "lunch")
	fs.StringVar(&r.TestPreparationCourse, "course", "none", "test preparation course")
	fs.Float64Var(&r.ReadingScore, "reading", 72, "reading score")
	fs.Float64Var(&r.WritingScore, "writing", 74, "writing score")
	fs.Parse(args)

	cfg, sink, err := c.setup()
	if err != nil {
		return err
	}
	defer sink.Close()
	v, err := pipeline.NewPredictor(cfg, sink.Logger).Predict(r)
	if err != nil {
		return err
	}
	fmt.Printf("%.2f\n", v)
	return nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "train":
		err = train(os.Args[2:])
	case "predict":
		err = predict(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v failed: %v\n", errs.KindOf(err), err)
		os.Exit(1)
	}
}
