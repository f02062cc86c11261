package sapling

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

/*
Metrics holds the performance measures derived from a ConfusionMatrix:
  * Recall and Precision per class, in class order
  * F1, the harmonic mean of the macro-averaged precision and recall
  * Accuracy, the proportion of correct predictions
A measure whose denominator is 0 is NaN.
*/
type Metrics struct {
	Recall    []float64
	Precision []float64
	F1        float64
	Accuracy  float64
}

// NewMetrics computes the Metrics of a ConfusionMatrix.
func NewMetrics(cm *ConfusionMatrix) Metrics {
	n := len(cm.Classes())
	m := Metrics{
		Recall:    make([]float64, n),
		Precision: make([]float64, n),
		Accuracy:  cm.Accuracy(),
	}
	for c := 0; c < n; c++ {
		m.Recall[c] = ratio(cm.At(c, c), cm.RowSum(c))
		m.Precision[c] = ratio(cm.At(c, c), cm.ColSum(c))
	}
	p, r := stat.Mean(m.Precision, nil), stat.Mean(m.Recall, nil)
	m.F1 = 2 * p * r / (p + r)
	return m
}

// Accuracy returns the proportion of correct predictions in the matrix.
func (cm *ConfusionMatrix) Accuracy() float64 {
	return ratio(cm.Trace(), cm.Total())
}

func ratio(a, b int) float64 {
	if b == 0 {
		return math.NaN()
	}
	return float64(a) / float64(b)
}
