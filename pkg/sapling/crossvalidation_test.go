package sapling

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldPartition(t *testing.T) {
	s := syntheticSet(2000, 1)
	cv := &CrossValidator{}
	assert.Equal(t, 200, cv.BlockSize(s.Count()))
	samples := s.Samples()
	for i := 0; i < DefaultFolds; i++ {
		train, validation, test := cv.FoldPartition(s, i)
		assert.Equal(t, 1600, train.Count())
		assert.Equal(t, 200, validation.Count())
		assert.Equal(t, 200, test.Count())
		assert.Equal(t, samples[i*200], test.Samples()[0])
		v := (i + 1) % DefaultFolds
		assert.Equal(t, samples[v*200], validation.Samples()[0])
	}
	train, _, _ := cv.FoldPartition(s, 9)
	assert.Equal(t, samples[200], train.Samples()[0], "the last fold validates on the first block")
}

func TestCrossValidationConservesSamples(t *testing.T) {
	s := Shuffle(syntheticSet(2000, 42), DefaultSeed)
	classes := ClassesOf(s)
	var mu sync.Mutex
	var seen []int
	cv := &CrossValidator{
		Pot:     New(SplitWorkers(2)),
		Workers: 4,
		OnFold: func(_ context.Context, r *FoldResult) error {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, r.Index)
			return nil
		},
	}
	report, err := cv.Run(context.Background(), s, classes)
	require.NoError(t, err)
	assert.Equal(t, 2000, report.Unpruned.Total())
	assert.Equal(t, 2000, report.Pruned.Total())
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, seen)
	require.Len(t, report.Folds, DefaultFolds)
	for i, f := range report.Folds {
		assert.Equal(t, i, f.Index)
		assert.Equal(t, 200, f.TestSize)
		assert.LessOrEqual(t, f.Pruned.Leaves(), f.Unpruned.Leaves())

		_, validation, _ := cv.FoldPartition(s, i)
		assert.Equal(t, f.ValidationSize, validation.Count())
		before, err := f.Unpruned.Evaluate(validation, classes)
		require.NoError(t, err)
		after, err := f.Pruned.Evaluate(validation, classes)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, after.Trace(), before.Trace(), "fold %d lost validation accuracy when pruned", i)
	}
	assert.Greater(t, report.UnprunedMetrics.Accuracy, 0.5)
	assert.Len(t, report.PrunedMetrics.Recall, 4)
}

type failingPot struct {
	err error
}

func (p failingPot) Grow(ctx context.Context, s Set) (*Tree, error) {
	return nil, p.err
}

func TestCrossValidationFailsOnFirstFoldError(t *testing.T) {
	boom := errors.New("no soil")
	cv := &CrossValidator{Pot: failingPot{boom}, Workers: 2}
	report, err := cv.Run(context.Background(), syntheticSet(100, 1), Classes{1, 2, 3, 4})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, report)
}

func TestCrossValidationFailsOnCallbackError(t *testing.T) {
	boom := errors.New("store unavailable")
	cv := &CrossValidator{OnFold: func(context.Context, *FoldResult) error { return boom }}
	_, err := cv.Run(context.Background(), syntheticSet(100, 1), Classes{1, 2, 3, 4})
	assert.ErrorIs(t, err, boom)
}

func TestCrossValidationRejectsInvalidFolds(t *testing.T) {
	s := syntheticSet(100, 1)
	for _, cv := range []*CrossValidator{
		{Folds: 1},
		{Proportion: 1.5},
		{Folds: 20, Proportion: 0.1},
		{Proportion: 0.001},
	} {
		_, err := cv.Run(context.Background(), s, ClassesOf(s))
		assert.Error(t, err)
	}
}

func TestCrossValidationWithCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&CrossValidator{}).Run(ctx, syntheticSet(100, 1), Classes{1, 2, 3, 4})
	assert.Error(t, err)
}
