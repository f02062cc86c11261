package sapling

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	// DefaultFolds is the number of folds of a cross validation run
	DefaultFolds = 10
	// DefaultProportion is the share of a dataset that each fold holds out
	DefaultProportion = 0.1
	// DefaultSeed is the seed used to shuffle datasets before cross validating
	DefaultSeed int64 = 60012
)

/*
CrossValidator runs k-fold cross validation of trees grown by a Pot and
pruned by a Pruner.

Folds is the number of folds (DefaultFolds if not positive). Proportion is the
share of the set in each held-out block (DefaultProportion if not positive).
Workers is the number of folds processed concurrently: one per fold if not
positive. Pot defaults to New(), Pruner to ReducedErrorPruner() and Logger to
a logger that discards everything.

OnFold, if set, is called with every fold result as soon as the fold is done,
from the goroutine that processed it, so it may be called concurrently. An
error returned by it fails the fold.
*/
type CrossValidator struct {
	Folds      int
	Proportion float64
	Workers    int
	Pot        Pot
	Pruner     Pruner
	Logger     *slog.Logger
	OnFold     func(context.Context, *FoldResult) error
}

/*
FoldResult holds the outcome of processing a fold: the sizes of its
partitions, the trees grown and pruned on it and their confusion
matrices against its test partition.
*/
type FoldResult struct {
	Index          int
	TrainSize      int
	ValidationSize int
	TestSize       int
	Unpruned       *Tree
	Pruned         *Tree
	UnprunedMatrix *ConfusionMatrix
	PrunedMatrix   *ConfusionMatrix
	Duration       time.Duration
}

/*
Report is the outcome of a cross validation run: the results of each fold
in fold order and the sum of their confusion matrices with the metrics
derived from them, for both unpruned and pruned trees.
*/
type Report struct {
	Folds           []*FoldResult
	Unpruned        *ConfusionMatrix
	Pruned          *ConfusionMatrix
	UnprunedMetrics Metrics
	PrunedMetrics   Metrics
}

func (cv *CrossValidator) folds() int {
	if cv.Folds < 1 {
		return DefaultFolds
	}
	return cv.Folds
}

func (cv *CrossValidator) proportion() float64 {
	if cv.Proportion <= 0 {
		return DefaultProportion
	}
	return cv.Proportion
}

/*
BlockSize returns the number of samples held out for testing, and for
validation, in every fold of a set of n samples.
*/
func (cv *CrossValidator) BlockSize(n int) int {
	return int(float64(n) * cv.proportion())
}

/*
FoldPartition takes a set and the index of a fold and returns the training,
validation and test partitions of the fold. The test partition is the i-th
block of BlockSize samples of the set, the validation partition is the next
block (the first one for the last fold) and the training partition holds the
remaining samples in their original order.
*/
func (cv *CrossValidator) FoldPartition(s Set, i int) (train, validation, test Set) {
	k := cv.folds()
	size := cv.BlockSize(s.Count())
	tr := [2]int{i * size, (i + 1) * size}
	v := (i + 1) % k
	vr := [2]int{v * size, (v + 1) * size}
	return Without(s, tr, vr), Slice(s, vr[0], vr[1]), Slice(s, tr[0], tr[1])
}

func (cv *CrossValidator) validate(n int) error {
	k := cv.folds()
	if k < 2 {
		return fmt.Errorf("cross validation needs at least 2 folds, got %d", k)
	}
	if p := cv.proportion(); p >= 1 {
		return fmt.Errorf("fold proportion must be lower than 1, got %v", p)
	}
	size := cv.BlockSize(n)
	if size == 0 {
		return fmt.Errorf("a set of %d samples is too small for folds of proportion %v", n, cv.proportion())
	}
	if k*size > n {
		return fmt.Errorf("%d folds of %d samples do not fit in a set of %d samples", k, size, n)
	}
	return nil
}

/*
Run takes a context, a set and the classes of its labels and cross validates
trees on it. Folds are processed on a queue of Workers workers: for every
fold a tree is grown on its training partition, evaluated on its test
partition, pruned with its validation partition and evaluated again.

If any fold fails, the rest are cancelled and the error of the first failure
is returned without a report. The set is expected to be shuffled already.
*/
func (cv *CrossValidator) Run(ctx context.Context, s Set, classes Classes) (*Report, error) {
	if err := cv.validate(s.Count()); err != nil {
		return nil, err
	}
	k := cv.folds()
	workers := cv.Workers
	if workers < 1 {
		workers = k
	}
	logger := cv.Logger
	if logger == nil {
		logger = discardLogger()
	}
	results := make([]*FoldResult, k)
	q := newQueue(ctx, workers)
	for i := 0; i < k; i++ {
		i := i
		q.add(fmt.Sprintf("fold %d", i), func(ctx context.Context) error {
			result, err := cv.runFold(ctx, s, classes, i, logger)
			if err != nil {
				return err
			}
			results[i] = result
			if cv.OnFold != nil {
				return cv.OnFold(ctx, result)
			}
			return nil
		})
	}
	err := q.waitForAll()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return newReport(classes, results)
}

func (cv *CrossValidator) runFold(ctx context.Context, s Set, classes Classes, i int, logger *slog.Logger) (*FoldResult, error) {
	start := time.Now()
	p := cv.Pot
	if p == nil {
		p = New()
	}
	pruner := cv.Pruner
	if pruner == nil {
		pruner = ReducedErrorPruner()
	}
	train, validation, test := cv.FoldPartition(s, i)
	result := &FoldResult{
		Index:          i,
		TrainSize:      train.Count(),
		ValidationSize: validation.Count(),
		TestSize:       test.Count(),
	}
	logger.DebugContext(ctx, "fold started", "fold", i, "train", result.TrainSize, "validation", result.ValidationSize, "test", result.TestSize)
	var err error
	result.Unpruned, err = p.Grow(ctx, train)
	if err != nil {
		return nil, fmt.Errorf("growing tree: %w", err)
	}
	result.UnprunedMatrix, err = result.Unpruned.Evaluate(test, classes)
	if err != nil {
		return nil, fmt.Errorf("testing unpruned tree: %w", err)
	}
	result.Pruned, err = pruner.Prune(ctx, result.Unpruned, validation)
	if err != nil {
		return nil, fmt.Errorf("pruning tree: %w", err)
	}
	result.PrunedMatrix, err = result.Pruned.Evaluate(test, classes)
	if err != nil {
		return nil, fmt.Errorf("testing pruned tree: %w", err)
	}
	result.Duration = time.Since(start)
	logger.InfoContext(ctx, "fold done",
		"fold", i,
		"duration", result.Duration,
		"unprunedAccuracy", result.UnprunedMatrix.Accuracy(),
		"prunedAccuracy", result.PrunedMatrix.Accuracy(),
		"unprunedLeaves", result.Unpruned.Leaves(),
		"prunedLeaves", result.Pruned.Leaves(),
	)
	return result, nil
}

func newReport(classes Classes, results []*FoldResult) (*Report, error) {
	unpruned := make([]*ConfusionMatrix, 0, len(results))
	pruned := make([]*ConfusionMatrix, 0, len(results))
	for i, r := range results {
		if r == nil {
			return nil, fmt.Errorf("fold %d did not finish", i)
		}
		unpruned = append(unpruned, r.UnprunedMatrix)
		pruned = append(pruned, r.PrunedMatrix)
	}
	report := &Report{Folds: results}
	var err error
	report.Unpruned, err = SumConfusionMatrices(classes, unpruned...)
	if err != nil {
		return nil, err
	}
	report.Pruned, err = SumConfusionMatrices(classes, pruned...)
	if err != nil {
		return nil, err
	}
	report.UnprunedMetrics = NewMetrics(report.Unpruned)
	report.PrunedMetrics = NewMetrics(report.Pruned)
	return report, nil
}
