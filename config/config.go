/*
Package config holds the pipeline settings, defaults optionally overlaid by a yaml file
*/
package config

import (
	"io"
	"math"

	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/mathscore/fu"
	"go-ml.dev/pkg/mathscore/model"
	"go-ml.dev/pkg/mathscore/tables"
	"go-ml.dev/pkg/zorros"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Source       string `yaml:"source"`        // raw dataset csv
	ArtifactsDir string `yaml:"artifacts_dir"` // root of artifact names
	LogsDir      string `yaml:"logs_dir"`

	Target             string   `yaml:"target"`
	NumericColumns     []string `yaml:"numeric_columns"`
	CategoricalColumns []string `yaml:"categorical_columns"`

	TestSize   float64           `yaml:"test_size"`
	Seed       int64             `yaml:"seed"`
	Threshold  float64           `yaml:"threshold"`
	Candidates []model.Candidate `yaml:"candidates"`

	Raw          string `yaml:"raw"`
	Train        string `yaml:"train"`
	Test         string `yaml:"test"`
	Preprocessor string `yaml:"preprocessor"`
	Model        string `yaml:"model"`
	Registry     string `yaml:"registry"` // empty disables the run registry
}

const (
	DefaultTestSize = 0.2
	DefaultSource   = "notebook/data/stud.csv"
)

func Default() *Config {
	return &Config{
		Source:       DefaultSource,
		ArtifactsDir: "artifacts",
		LogsDir:      "logs",
		Target:       tables.MathScore,
		NumericColumns: []string{
			tables.WritingScore,
			tables.ReadingScore,
		},
		CategoricalColumns: []string{
			tables.Gender,
			tables.RaceEthnicity,
			tables.ParentalLevelOfEducation,
			tables.Lunch,
			tables.TestPreparationCourse,
		},
		TestSize:     DefaultTestSize,
		Seed:         model.DefaultSeed,
		Threshold:    model.DefaultThreshold,
		Candidates:   model.DefaultRoster(),
		Raw:          "raw.csv",
		Train:        "train.csv",
		Test:         "test.csv",
		Preprocessor: "preprocessor.gob",
		Model:        "model.gob",
		Registry:     "runs.db",
	}
}

/*
Load reads yaml file over the defaults, the keys absent in the file keep default values
*/
func Load(path string) (*Config, error) {
	cfg := Default()
	rd, err := iokit.File(path).Open()
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer rd.Close()
	if err = yaml.NewDecoder(rd).Decode(cfg); err != nil && err != io.EOF {
		return nil, zorros.Wrapf(err, "failed to parse config `%v`: %v", path, err.Error())
	}
	if err = cfg.Validate(); err != nil {
		return nil, zorros.Wrapf(err, "bad config `%v`: %v", path, err.Error())
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TestSize <= 0 || c.TestSize >= 1 {
		return zorros.Errorf("test_size must be in (0,1), got %v", c.TestSize)
	}
	if math.IsNaN(c.Threshold) || c.Threshold > 1 {
		return zorros.Errorf("threshold must be a number not greater than 1, got %v", c.Threshold)
	}
	if c.Target == "" {
		return zorros.Errorf("target column is not specified")
	}
	if len(c.NumericColumns)+len(c.CategoricalColumns) == 0 {
		return zorros.Errorf("no feature columns")
	}
	if len(c.Candidates) == 0 {
		return zorros.Errorf("no candidates")
	}
	for _, x := range c.Candidates {
		if !model.Known(x.Name) {
			return zorros.Errorf("unknown candidate `%v`", x.Name)
		}
	}
	return nil
}

/*
Path resolves the artifact name under ArtifactsDir
*/
func (c *Config) Path(name string) string {
	return fu.ArtifactPath(c.ArtifactsDir, name)
}

/*
Columns returns the configured features and the target
*/
func (c *Config) Columns() []string {
	r := append([]string{}, c.NumericColumns...)
	r = append(r, c.CategoricalColumns...)
	return append(r, c.Target)
}
