package sapling

import (
	"fmt"
	"math/rand"
)

const (
	sampleCountThresholdForSetImplementation = 1000
)

/*
Set represents an ordered collection of samples.

Its Count method returns the number of samples in the set.

Its Samples method returns the samples it contains, in order.

Its Labels method returns the labels of the samples it contains, in order.

Its FeatureValues method returns the values of the samples for the feature
at the given index, in sample order.

Its SubsetWith method takes a Criterion and returns a subset that only
contains samples that satisfy it, preserving their order.

Sets are never modified once built, so they can be shared by concurrent
readers.
*/
type Set interface {
	Count() int
	Samples() []Sample
	Labels() []int
	FeatureValues(feature int) []float64
	SubsetWith(Criterion) Set
}

type memoryIntensiveSubsettingSet struct {
	samples []Sample
}

type cpuIntensiveSubsettingSet struct {
	samples  []Sample
	criteria []Criterion
}

/*
NewSet takes a slice of samples and returns a set built with them.
The set will be a CPU intensive one when the number of samples is
over sampleCountThresholdForSetImplementation
*/
func NewSet(samples []Sample) Set {
	if len(samples) > sampleCountThresholdForSetImplementation {
		return NewCPUIntensiveSet(samples)
	}
	return NewMemoryIntensiveSet(samples)
}

/*
NewMemoryIntensiveSet takes a slice of samples and returns a Set
built with them. A memory-intensive set is an implementation that
replicates the slice of samples when subsetting to reduce
calculations at the cost of increased memory.
*/
func NewMemoryIntensiveSet(samples []Sample) Set {
	return &memoryIntensiveSubsettingSet{append([]Sample(nil), samples...)}
}

/*
NewCPUIntensiveSet takes a slice of samples and returns a Set
built with them. A cpu-intensive set is an implementation that
instead of replicating the samples when subsetting, stores the
applying criteria to define the subset and keeps the same
sample slice. This can achieve a drastic reduction in memory use
that comes at the cost of CPU time: every calculation that goes over
the samples of the set will apply the criteria of the set
on all original samples (the ones provided to this method).
*/
func NewCPUIntensiveSet(samples []Sample) Set {
	return &cpuIntensiveSubsettingSet{append([]Sample(nil), samples...), nil}
}

func (s *memoryIntensiveSubsettingSet) Count() int {
	return len(s.samples)
}

func (s *cpuIntensiveSubsettingSet) Count() int {
	var count int
	s.iterateOnSet(func(Sample) bool {
		count++
		return true
	})
	return count
}

func (s *memoryIntensiveSubsettingSet) Samples() []Sample {
	return s.samples
}

func (s *cpuIntensiveSubsettingSet) Samples() []Sample {
	if len(s.criteria) == 0 {
		return s.samples
	}
	var samples []Sample
	s.iterateOnSet(func(sample Sample) bool {
		samples = append(samples, sample)
		return true
	})
	return samples
}

func (s *memoryIntensiveSubsettingSet) Labels() []int {
	return labelsOf(s.samples)
}

func (s *cpuIntensiveSubsettingSet) Labels() []int {
	var labels []int
	s.iterateOnSet(func(sample Sample) bool {
		labels = append(labels, sample.Label())
		return true
	})
	return labels
}

func (s *memoryIntensiveSubsettingSet) FeatureValues(feature int) []float64 {
	values := make([]float64, 0, len(s.samples))
	for _, sample := range s.samples {
		values = append(values, sample.Value(feature))
	}
	return values
}

func (s *cpuIntensiveSubsettingSet) FeatureValues(feature int) []float64 {
	var values []float64
	s.iterateOnSet(func(sample Sample) bool {
		values = append(values, sample.Value(feature))
		return true
	})
	return values
}

func (s *memoryIntensiveSubsettingSet) SubsetWith(c Criterion) Set {
	var samples []Sample
	for _, sample := range s.samples {
		if c.SatisfiedBy(sample) {
			samples = append(samples, sample)
		}
	}
	return &memoryIntensiveSubsettingSet{samples}
}

func (s *cpuIntensiveSubsettingSet) SubsetWith(c Criterion) Set {
	criteria := make([]Criterion, 0, len(s.criteria)+1)
	criteria = append(criteria, c)
	criteria = append(criteria, s.criteria...)
	return &cpuIntensiveSubsettingSet{s.samples, criteria}
}

func (s *memoryIntensiveSubsettingSet) String() string {
	return fmt.Sprintf("[ %v ]", s.Count())
}

func (s *cpuIntensiveSubsettingSet) String() string {
	return fmt.Sprintf("[ %v ]", s.Count())
}

func (s *cpuIntensiveSubsettingSet) iterateOnSet(lambda func(Sample) bool) {
	for _, sample := range s.samples {
		skip := false
		for _, criterion := range s.criteria {
			if !criterion.SatisfiedBy(sample) {
				skip = true
				break
			}
		}
		if !skip && !lambda(sample) {
			break
		}
	}
}

func labelsOf(samples []Sample) []int {
	labels := make([]int, len(samples))
	for i, sample := range samples {
		labels[i] = sample.Label()
	}
	return labels
}

/*
Slice takes a set and a half-open range [from, to) of sample positions and
returns a set with the samples of the given set in that range. The range is
clamped to the bounds of the set.
*/
func Slice(s Set, from, to int) Set {
	samples := s.Samples()
	from, to = clamp(from, len(samples)), clamp(to, len(samples))
	if to < from {
		to = from
	}
	return NewSet(samples[from:to])
}

/*
Without takes a set and a list of half-open ranges of sample positions and
returns a set with the samples of the given set that fall outside all of
those ranges, in their original order.
*/
func Without(s Set, ranges ...[2]int) Set {
	samples := s.Samples()
	result := make([]Sample, 0, len(samples))
	for i, sample := range samples {
		excluded := false
		for _, r := range ranges {
			if i >= r[0] && i < r[1] {
				excluded = true
				break
			}
		}
		if !excluded {
			result = append(result, sample)
		}
	}
	return NewSet(result)
}

/*
Shuffle takes a set and a seed and returns a new set with the same samples
in a pseudo-random order determined by the seed. The given set is left
untouched.
*/
func Shuffle(s Set, seed int64) Set {
	samples := append([]Sample(nil), s.Samples()...)
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(samples), func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	})
	return NewSet(samples)
}

/*
PureLabel returns the label shared by all samples in the set and true, or
0 and false if the set is empty or its samples have different labels.
*/
func PureLabel(s Set) (int, bool) {
	labels := s.Labels()
	if len(labels) == 0 {
		return 0, false
	}
	for _, l := range labels[1:] {
		if l != labels[0] {
			return 0, false
		}
	}
	return labels[0], true
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
