package model

import (
	"math"

	"go-ml.dev/pkg/mathscore/fu"
)

/*
R2 is the coefficient of determination of yPred against yTrue.
Constant yTrue scores 1 for the exact prediction and 0 otherwise.
*/
func R2(yTrue, yPred []float64) float64 {
	m := fu.Mean(yTrue)
	ssTot, ssRes := 0.0, 0.0
	for i, v := range yTrue {
		d := v - m
		ssTot += d * d
		r := v - yPred[i]
		ssRes += r * r
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

// Rmse is the root mean squared error
func Rmse(yTrue, yPred []float64) float64 {
	return math.Sqrt(fu.Mse(yTrue, yPred))
}
