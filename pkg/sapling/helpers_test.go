package sapling

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// rows builds a set from rows whose last column is the label.
func rows(t *testing.T, data ...[]float64) Set {
	t.Helper()
	samples := make([]Sample, 0, len(data))
	for _, row := range data {
		require.NotEmpty(t, row)
		samples = append(samples, NewSample(row[:len(row)-1], int(row[len(row)-1])))
	}
	return NewSet(samples)
}

func separableSet(t *testing.T) Set {
	return rows(t,
		[]float64{1, 7, 1},
		[]float64{2, 3, 1},
		[]float64{3, 9, 1},
		[]float64{4, 1, 1},
		[]float64{6, 8, 2},
		[]float64{7, 2, 2},
		[]float64{8, 6, 2},
		[]float64{9, 4, 2},
	)
}

/*
syntheticSet returns a set of n samples with 7 features and 4 classes whose
features are noisy around a per-class centre, so that classes overlap a bit.
*/
func syntheticSet(n int, seed int64) Set {
	r := rand.New(rand.NewSource(seed))
	samples := make([]Sample, n)
	for i := range samples {
		label := i%4 + 1
		values := make([]float64, 7)
		for f := range values {
			values[f] = float64(label*(f+1)*3) + r.NormFloat64()*6
		}
		samples[i] = NewSample(values, label)
	}
	return NewSet(samples)
}
