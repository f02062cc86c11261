package sapling

import (
	"math"
	"sort"
)

/*
Entropy takes a sequence of labels and returns the entropy (in bits) of
their distribution: -Σ p·log2(p) over the distinct labels present, p being
the proportion of each label in the sequence. A sequence with a single
distinct label has 0 entropy. It returns ErrEmptyLabels for an empty
sequence.
*/
func Entropy(labels []int) (float64, error) {
	if len(labels) == 0 {
		return 0.0, ErrEmptyLabels
	}
	return entropyOfCounts(countLabels(labels), len(labels)), nil
}

/*
InformationGain takes the labels of a set and the labels of the two subsets
a split produces and returns the information gain of the split:
Entropy(parent) - |left|/|parent|·Entropy(left) - |right|/|parent|·Entropy(right).
An empty subset contributes nothing. It returns ErrEmptyLabels if the parent
sequence is empty.
*/
func InformationGain(parent, left, right []int) (float64, error) {
	if len(parent) == 0 {
		return 0.0, ErrEmptyLabels
	}
	result := entropyOfCounts(countLabels(parent), len(parent))
	total := float64(len(parent))
	for _, side := range [][]int{left, right} {
		if len(side) == 0 {
			continue
		}
		result -= float64(len(side)) / total * entropyOfCounts(countLabels(side), len(side))
	}
	return result, nil
}

// countLabels returns the count of every distinct label in ascending label order.
func countLabels(labels []int) []int {
	byLabel := make(map[int]int)
	for _, l := range labels {
		byLabel[l]++
	}
	keys := make([]int, 0, len(byLabel))
	for l := range byLabel {
		keys = append(keys, l)
	}
	sort.Ints(keys)
	counts := make([]int, len(keys))
	for i, l := range keys {
		counts[i] = byLabel[l]
	}
	return counts
}

// entropyOfCounts skips zero counts so log2(0) is never evaluated.
func entropyOfCounts(counts []int, total int) float64 {
	var result float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		result -= p * math.Log2(p)
	}
	return result
}
