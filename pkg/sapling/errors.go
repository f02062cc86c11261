package sapling

// GrowError represents an error growing, pruning or evaluating a tree
type GrowError string

const (
	/*
		ErrEmptyLabels is returned when computing the entropy or the
		information gain of an empty sequence of labels.
	*/
	ErrEmptyLabels = GrowError("cannot compute entropy of an empty label sequence")

	/*
		ErrEmptySet is returned when trying to grow a tree from a set
		without samples.
	*/
	ErrEmptySet = GrowError("cannot grow a tree from an empty set")

	/*
		ErrNoSplit is returned when a set whose samples have different
		labels cannot be split with any positive information gain, for
		instance because all its samples share the same feature values.
	*/
	ErrNoSplit = GrowError("no split with positive information gain for a set with mixed labels")

	/*
		ErrUnknownClass is returned when evaluating a sample whose label,
		or the label predicted for it, is not part of the class domain.
	*/
	ErrUnknownClass = GrowError("label is not part of the class domain")

	/*
		ErrMissingFeature is returned when evaluating or pruning a tree
		with samples lacking features the tree splits on.
	*/
	ErrMissingFeature = GrowError("sample lacks features the tree splits on")
)

func (ge GrowError) Error() string {
	return string(ge)
}
