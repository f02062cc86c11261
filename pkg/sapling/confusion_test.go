package sapling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfusionMatrixRecord(t *testing.T) {
	cm := NewConfusionMatrix(NewClasses(3, 1, 2, 1))
	assert.Equal(t, Classes{1, 2, 3}, cm.Classes())
	require.NoError(t, cm.Record(1, 1))
	require.NoError(t, cm.Record(1, 3))
	require.NoError(t, cm.Record(2, 2))
	assert.ErrorIs(t, cm.Record(4, 1), ErrUnknownClass)
	assert.ErrorIs(t, cm.Record(1, 0), ErrUnknownClass)
	assert.Equal(t, 1, cm.At(0, 0))
	assert.Equal(t, 1, cm.At(0, 2))
	assert.Equal(t, 3, cm.Total())
	assert.Equal(t, 2, cm.Trace())
	assert.Equal(t, 2, cm.RowSum(0))
	assert.Equal(t, 1, cm.ColSum(2))
}

func TestEvaluateConservesSamples(t *testing.T) {
	s := syntheticSet(200, 9)
	classes := ClassesOf(s)
	tree := &Tree{Root: &Branch{Feature: 0, Threshold: 10, Left: &Leaf{1, 1}, Right: &Leaf{4, 1}}}
	cm, err := tree.Evaluate(s, classes)
	require.NoError(t, err)
	assert.Equal(t, s.Count(), cm.Total())
	for i := range classes {
		assert.Equal(t, 50, cm.RowSum(i))
	}
	assert.Equal(t, 0, cm.ColSum(1))
	assert.Equal(t, 0, cm.ColSum(2))
}

func TestEvaluateUnknownLabel(t *testing.T) {
	s := rows(t, []float64{1, 5})
	_, err := Evaluate(&Leaf{Label: 5}, s, Classes{1, 2})
	assert.ErrorIs(t, err, ErrUnknownClass)
}

func TestEvaluateWithMissingFeatures(t *testing.T) {
	tree := &Tree{Root: &Branch{Feature: 3, Threshold: -55.5, Left: &Leaf{1, 1}, Right: &Leaf{2, 1}}}
	narrow := NewSet([]Sample{NewSample([]float64{-60}, 1)})
	_, err := tree.Evaluate(narrow, NewClasses(1, 2))
	assert.ErrorIs(t, err, ErrMissingFeature)

	wide := NewSet([]Sample{NewSample([]float64{0, 0, 0, -60}, 1)})
	cm, err := tree.Evaluate(wide, NewClasses(1, 2))
	require.NoError(t, err)
	assert.Equal(t, 1, cm.Trace())
}

func TestSumConfusionMatrices(t *testing.T) {
	classes := Classes{1, 2}
	a, b := NewConfusionMatrix(classes), NewConfusionMatrix(classes)
	require.NoError(t, a.Record(1, 1))
	require.NoError(t, b.Record(1, 1))
	require.NoError(t, b.Record(2, 1))
	sum, err := SumConfusionMatrices(classes, a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.At(0, 0))
	assert.Equal(t, 1, sum.At(1, 0))
	assert.Equal(t, 1, a.Total(), "operands are left untouched")

	_, err = a.Add(NewConfusionMatrix(Classes{1, 3}))
	assert.Error(t, err)
}

func TestMetrics(t *testing.T) {
	cm := NewConfusionMatrix(Classes{1, 2})
	record := func(trueLabel, predicted, times int) {
		for i := 0; i < times; i++ {
			require.NoError(t, cm.Record(trueLabel, predicted))
		}
	}
	record(1, 1, 3)
	record(1, 2, 1)
	record(2, 2, 4)
	m := NewMetrics(cm)
	assert.InDelta(t, 7.0/8.0, m.Accuracy, 1e-12)
	assert.InDeltaSlice(t, []float64{0.75, 1}, m.Recall, 1e-12)
	assert.InDeltaSlice(t, []float64{1, 0.8}, m.Precision, 1e-12)
	p, r := 0.9, 0.875
	assert.InDelta(t, 2*p*r/(p+r), m.F1, 1e-12)
}

func TestMetricsWithZeroDenominators(t *testing.T) {
	cm := NewConfusionMatrix(Classes{1, 2})
	require.NoError(t, cm.Record(1, 1))
	m := NewMetrics(cm)
	assert.Equal(t, 1.0, m.Accuracy)
	assert.True(t, math.IsNaN(m.Recall[1]))
	assert.True(t, math.IsNaN(m.Precision[1]))
	assert.True(t, math.IsNaN(m.F1))
	assert.True(t, math.IsNaN(NewConfusionMatrix(Classes{1}).Accuracy()))
}
