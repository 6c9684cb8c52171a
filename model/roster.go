package model

import (
	"encoding/gob"

	"go-ml.dev/pkg/zorros"
)

const (
	RandomForestName     = "random_forest"
	DecisionTreeName     = "decision_tree"
	GradientBoostingName = "gradient_boosting"
	LinearRegressionName = "linear_regression"
	KNeighborsName       = "k_neighbors"
	XGBoostName          = "xgboost"
	AdaBoostName         = "adaboost"
)

var factory = map[string]func() Regressor{
	RandomForestName:     func() Regressor { return NewRandomForest() },
	DecisionTreeName:     func() Regressor { return NewDecisionTree() },
	GradientBoostingName: func() Regressor { return NewGradientBoosting() },
	LinearRegressionName: func() Regressor { return NewLinearRegression() },
	KNeighborsName:       func() Regressor { return NewKNeighbors() },
	XGBoostName:          func() Regressor { return NewXGBoost() },
	AdaBoostName:         func() Regressor { return NewAdaBoost() },
}

func init() {
	for _, f := range factory {
		gob.Register(f())
	}
}

/*
DefaultRoster returns candidates in the order they are evaluated
*/
func DefaultRoster() []Candidate {
	return []Candidate{
		{Name: RandomForestName},
		{Name: DecisionTreeName},
		{Name: GradientBoostingName},
		{Name: LinearRegressionName},
		{Name: KNeighborsName},
		{Name: XGBoostName},
		{Name: AdaBoostName},
	}
}

/*
New creates a regressor by its roster name with defaults overridden by params
*/
func New(name string, params Params) (Regressor, error) {
	f, ok := factory[name]
	if !ok {
		return nil, zorros.Errorf("unknown model `%v`", name)
	}
	m := f()
	if err := params.Apply(m); err != nil {
		return nil, zorros.Wrapf(err, "bad params for model `%v`", name)
	}
	return m, nil
}

// Known reports whether name is a roster model name
func Known(name string) bool {
	_, ok := factory[name]
	return ok
}
