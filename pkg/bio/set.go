package bio

import "github.com/pbanos/sapling/pkg/sapling"

/*
SetGenerator is a function that takes a slice of samples
and generates a set with them.
*/
type SetGenerator func([]sapling.Sample) sapling.Set

func (sg SetGenerator) orDefault() SetGenerator {
	if sg == nil {
		return sapling.NewSet
	}
	return sg
}
