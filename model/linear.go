package model

import (
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

/*
LinearRegression is an ordinary least squares regressor with intercept.
Normal equations get a tiny ridge so collinear one-hot columns stay solvable.
*/
type LinearRegression struct {
	Ridge float64

	Intercept float64
	Coef      []float64
}

func NewLinearRegression() *LinearRegression {
	return &LinearRegression{Ridge: 1e-8}
}

func (lr *LinearRegression) Fit(X mat.Matrix, y []float64) error {
	rows, err := checkFit(X, y)
	if err != nil {
		return err
	}
	n, p := len(rows), len(rows[0])
	a := mat.NewDense(n, p+1, nil)
	for i, x := range rows {
		a.Set(i, 0, 1)
		for j, v := range x {
			a.Set(i, j+1, v)
		}
	}
	var ata mat.Dense
	ata.Mul(a.T(), a)
	for j := 1; j <= p; j++ {
		ata.Set(j, j, ata.At(j, j)+lr.Ridge*float64(n))
	}
	var aty mat.VecDense
	aty.MulVec(a.T(), mat.NewVecDense(n, append([]float64(nil), y...)))
	var w mat.VecDense
	if err := w.SolveVec(&ata, &aty); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return zorros.Wrapf(err, "linear regression: %v", err.Error())
		}
	}
	lr.Intercept = w.AtVec(0)
	lr.Coef = make([]float64, p)
	for j := range lr.Coef {
		lr.Coef[j] = w.AtVec(j + 1)
	}
	return nil
}

func (lr *LinearRegression) Predict(X mat.Matrix) ([]float64, error) {
	if lr.Coef == nil {
		return nil, zorros.Errorf("linear regression is not fitted")
	}
	rows, err := checkPredict(X, len(lr.Coef))
	if err != nil {
		return nil, err
	}
	r := make([]float64, len(rows))
	for i, x := range rows {
		s := lr.Intercept
		for j, v := range x {
			s += lr.Coef[j] * v
		}
		r[i] = s
	}
	return r, nil
}
