package sapling

import "sort"

/*
Classes is the sorted domain of labels of a dataset. It maps every label to
the zero-based index it takes in confusion matrices, so it must be built
once from the full dataset and shared by every fold.
*/
type Classes []int

// NewClasses returns the sorted Classes with the distinct given labels.
func NewClasses(labels ...int) Classes {
	seen := make(map[int]bool)
	var c Classes
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			c = append(c, l)
		}
	}
	sort.Ints(c)
	return c
}

// ClassesOf returns the Classes of the labels of the samples in a set.
func ClassesOf(s Set) Classes {
	return NewClasses(s.Labels()...)
}

// Index returns the index of a label in the classes and whether it belongs to them.
func (c Classes) Index(label int) (int, bool) {
	i := sort.SearchInts(c, label)
	if i < len(c) && c[i] == label {
		return i, true
	}
	return 0, false
}
