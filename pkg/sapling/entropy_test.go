package sapling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntropy(t *testing.T) {
	tests := []struct {
		name   string
		labels []int
		want   float64
	}{
		{"single label", []int{3, 3, 3}, 0},
		{"two balanced labels", []int{1, 2, 1, 2}, 1},
		{"four balanced labels", []int{1, 2, 3, 4}, 2},
		{"skewed", []int{1, 1, 1, 2}, -(0.75*math.Log2(0.75) + 0.25*math.Log2(0.25))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Entropy(tt.labels)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestEntropyOfEmptyLabels(t *testing.T) {
	_, err := Entropy(nil)
	assert.ErrorIs(t, err, ErrEmptyLabels)
	_, err = InformationGain([]int{}, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyLabels)
}

func TestInformationGainOfPerfectSplit(t *testing.T) {
	gain, err := InformationGain([]int{1, 1, 2, 2}, []int{1, 1}, []int{2, 2})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, gain, 1e-12)
}

func TestInformationGainOfProportionalSplit(t *testing.T) {
	gain, err := InformationGain([]int{1, 2, 1, 2, 3, 3}, []int{1, 2, 3}, []int{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, gain, 1e-12)
}

func TestInformationGainWithEmptySide(t *testing.T) {
	gain, err := InformationGain([]int{1, 2}, []int{1, 2}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, gain, 1e-12)
}

func TestInformationGainIsNeverNegative(t *testing.T) {
	labels := []int{1, 2, 2, 3, 1, 4, 4, 2, 3, 1, 1, 2}
	for cut := 0; cut <= len(labels); cut++ {
		gain, err := InformationGain(labels, labels[:cut], labels[cut:])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, gain, -1e-12, "cut at %d", cut)
	}
}
