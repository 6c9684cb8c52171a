/*
Package model implements the candidate regressors and the training
procedure selecting the best of them by held-out R².
*/
package model

import (
	"reflect"
	"sort"

	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

const DefaultSeed = 42

/*
Regressor is a fit/predict capability, every candidate of the roster implements it
*/
type Regressor interface {
	// Fit trains regressor on features X (samples x features) and targets y
	Fit(X mat.Matrix, y []float64) error
	// Predict returns one prediction per row of X
	Predict(X mat.Matrix) ([]float64, error)
}

/*
Params is a set of hyper-parameters applied to a regressor by field name
*/
type Params map[string]float64

/*
Apply sets exported numeric fields of the regressor pointed by m
*/
func (p Params) Apply(m interface{}) error {
	v := reflect.ValueOf(m)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return zorros.Errorf("can't apply params to %v", v.Type())
	}
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		f := v.Elem().FieldByName(k)
		if !f.IsValid() || !f.CanSet() {
			return zorros.Errorf("model does not have field `%v`", k)
		}
		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f.SetInt(int64(p[k]))
		case reflect.Float32, reflect.Float64:
			f.SetFloat(p[k])
		case reflect.Bool:
			f.SetBool(p[k] != 0)
		default:
			return zorros.Errorf("model field `%v` is not a number", k)
		}
	}
	return nil
}

/*
Candidate names a roster entry and its hyper-parameters
*/
type Candidate struct {
	Name   string `yaml:"name"`
	Params Params `yaml:"params,omitempty"`
}

/*
Score is a candidate evaluation
*/
type Score struct {
	Name  string
	Train float64 // R² on train partition, reported only
	Test  float64 // R² on test partition, drives the selection
	Rmse  float64 // root mean squared error on test partition
}

/*
Report is an ML training report
*/
type Report struct {
	RunID    string
	Scores   []Score // in roster order
	TheBest  int     // index of the best candidate
	Score    float64 // the best test score
	Accepted bool    // the best score reached the threshold
}

// Best returns the selected candidate evaluation
func (r *Report) Best() Score {
	return r.Scores[r.TheBest]
}

/*
Envelope is the persisted form of the selected model
*/
type Envelope struct {
	Name     string
	Score    float64
	Features int
	Model    Regressor
}

func (e *Envelope) Predict(X mat.Matrix) ([]float64, error) {
	if e.Model == nil {
		return nil, zorros.Errorf("model envelope is empty")
	}
	return e.Model.Predict(X)
}
