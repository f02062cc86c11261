package sapling

import "fmt"

/*
Sample represents an item from which to learn or on which
to test a tree: an ordered sequence of continuous feature
values and the integer label (class) the item belongs to.

Samples are immutable: values are copied on construction
and only exposed through accessors.
*/
type Sample struct {
	values []float64
	label  int
}

/*
NewSample takes a slice of feature values and a label and
returns a Sample holding a copy of the values.
*/
func NewSample(values []float64, label int) Sample {
	v := make([]float64, len(values))
	copy(v, values)
	return Sample{v, label}
}

// Value returns the value of the sample for the feature at index i.
func (s Sample) Value(i int) float64 {
	return s.values[i]
}

// Values returns a copy of the feature values of the sample.
func (s Sample) Values() []float64 {
	v := make([]float64, len(s.values))
	copy(v, s.values)
	return v
}

// Label returns the class of the sample.
func (s Sample) Label() int {
	return s.label
}

// FeatureCount returns the number of feature values in the sample.
func (s Sample) FeatureCount() int {
	return len(s.values)
}

func (s Sample) String() string {
	return fmt.Sprintf("%v -> %d", s.values, s.label)
}
