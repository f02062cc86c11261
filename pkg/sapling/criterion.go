package sapling

import "fmt"

/*
Criterion represents a constraint on a feature.

Its SatisfiedBy method takes a sample and returns a boolean indicating if
the sample satisfies the criterion.

Its Feature method returns the index of the feature on which the criterion
is applied.
*/
type Criterion interface {
	Feature() int
	SatisfiedBy(s Sample) bool
}

/*
ThresholdCriterion is a Criterion on a continuous feature that splits
values at a threshold: samples whose value for the feature is lower or
equal than the threshold satisfy the criterion when Above is false,
samples with a greater value satisfy it when Above is true.
*/
type ThresholdCriterion struct {
	FeatureIndex int
	Threshold    float64
	Above        bool
}

/*
AtMost returns the criterion satisfied by samples whose value for the given
feature is lower or equal than the threshold: the left side of a split.
*/
func AtMost(feature int, threshold float64) ThresholdCriterion {
	return ThresholdCriterion{feature, threshold, false}
}

/*
Above returns the criterion satisfied by samples whose value for the given
feature is greater than the threshold: the right side of a split.
*/
func Above(feature int, threshold float64) ThresholdCriterion {
	return ThresholdCriterion{feature, threshold, true}
}

// Feature returns the index of the feature the criterion constrains.
func (tc ThresholdCriterion) Feature() int {
	return tc.FeatureIndex
}

// SatisfiedBy returns whether the sample value falls on the criterion's side of the threshold.
func (tc ThresholdCriterion) SatisfiedBy(s Sample) bool {
	if tc.Above {
		return s.Value(tc.FeatureIndex) > tc.Threshold
	}
	return s.Value(tc.FeatureIndex) <= tc.Threshold
}

func (tc ThresholdCriterion) String() string {
	op := "<="
	if tc.Above {
		op = ">"
	}
	return fmt.Sprintf("X%d %s %v", tc.FeatureIndex, op, tc.Threshold)
}
