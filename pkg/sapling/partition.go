package sapling

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

/*
Partition represents a binary split of a set on a feature at a threshold,
with the subsets of samples on each side and the information gain it
achieves for the labels.
*/
type Partition struct {
	Feature         int
	Threshold       float64
	Left            Set
	Right           Set
	informationGain float64
}

// InformationGain returns the information gain achieved by the partition.
func (p *Partition) InformationGain() float64 {
	return p.informationGain
}

// Criteria returns the criteria selecting the left and right sides of the partition.
func (p *Partition) Criteria() (left, right ThresholdCriterion) {
	return AtMost(p.Feature, p.Threshold), Above(p.Feature, p.Threshold)
}

/*
FindBestSplit takes a set and returns the partition with the highest
information gain among all features and all thresholds placed at the
midpoint of two consecutive distinct values of a feature.

Only partitions with a strictly positive gain are considered and the first
one found wins ties, scanning features in order and thresholds in ascending
order. If no partition has a positive gain, a nil partition is returned.

An ErrEmptyLabels error is returned for an empty set.
*/
func FindBestSplit(s Set) (*Partition, error) {
	sc, err := newSplitScan(s)
	if err != nil {
		return nil, err
	}
	var best *splitCandidate
	for f := 0; f < sc.features; f++ {
		best = sc.better(best, sc.bestForFeature(f))
	}
	return sc.partition(s, best), nil
}

/*
FindBestSplitConcurrently behaves as FindBestSplit but scans up to workers
features at a time. Per-feature winners are reduced in feature order with the
same strict comparison, so the result is the one FindBestSplit returns.
It returns the context error if the context is done before the scan ends.
*/
func FindBestSplitConcurrently(ctx context.Context, s Set, workers int) (*Partition, error) {
	sc, err := newSplitScan(s)
	if err != nil {
		return nil, err
	}
	candidates := make([]*splitCandidate, sc.features)
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for f := 0; f < sc.features; f++ {
		f := f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			candidates[f] = sc.bestForFeature(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var best *splitCandidate
	for _, c := range candidates {
		best = sc.better(best, c)
	}
	return sc.partition(s, best), nil
}

type splitCandidate struct {
	feature   int
	threshold float64
	gain      float64
}

// splitScan holds the read-only data shared by the per-feature scans of a set.
type splitScan struct {
	samples       []Sample
	classes       []int
	parentCounts  []int
	parentEntropy float64
	features      int
}

func newSplitScan(s Set) (*splitScan, error) {
	samples := s.Samples()
	if len(samples) == 0 {
		return nil, ErrEmptyLabels
	}
	labels := labelsOf(samples)
	distinct := append([]int(nil), labels...)
	sort.Ints(distinct)
	index := make(map[int]int)
	for _, l := range distinct {
		if _, ok := index[l]; !ok {
			index[l] = len(index)
		}
	}
	classes := make([]int, len(samples))
	parentCounts := make([]int, len(index))
	for i, l := range labels {
		classes[i] = index[l]
		parentCounts[classes[i]]++
	}
	return &splitScan{
		samples:       samples,
		classes:       classes,
		parentCounts:  parentCounts,
		parentEntropy: entropyOfCounts(parentCounts, len(samples)),
		features:      samples[0].FeatureCount(),
	}, nil
}

/*
bestForFeature sweeps the samples sorted by the value of the feature keeping
the label counts on each side of the current threshold, which yields the
same gains as partitioning the set for every threshold.
*/
func (sc *splitScan) bestForFeature(f int) *splitCandidate {
	n := len(sc.samples)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return sc.samples[order[i]].Value(f) < sc.samples[order[j]].Value(f)
	})
	left := make([]int, len(sc.parentCounts))
	right := append([]int(nil), sc.parentCounts...)
	var best *splitCandidate
	var bestGain float64
	for i := 0; i < n-1; i++ {
		c := sc.classes[order[i]]
		left[c]++
		right[c]--
		a, b := sc.samples[order[i]].Value(f), sc.samples[order[i+1]].Value(f)
		if a == b {
			continue
		}
		threshold := (a + b) / 2.0
		if !(threshold < b) {
			// a and b are adjacent floats: keep b on the right side
			threshold = a
		}
		nl, nr := i+1, n-i-1
		gain := sc.parentEntropy -
			float64(nl)/float64(n)*entropyOfCounts(left, nl) -
			float64(nr)/float64(n)*entropyOfCounts(right, nr)
		if gain > bestGain {
			bestGain = gain
			best = &splitCandidate{f, threshold, gain}
		}
	}
	return best
}

func (sc *splitScan) better(current, candidate *splitCandidate) *splitCandidate {
	if candidate == nil {
		return current
	}
	if current == nil || candidate.gain > current.gain {
		return candidate
	}
	return current
}

func (sc *splitScan) partition(s Set, c *splitCandidate) *Partition {
	if c == nil {
		return nil
	}
	return &Partition{
		Feature:         c.feature,
		Threshold:       c.threshold,
		Left:            s.SubsetWith(AtMost(c.feature, c.threshold)),
		Right:           s.SubsetWith(Above(c.feature, c.threshold)),
		informationGain: c.gain,
	}
}
