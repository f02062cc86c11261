package sapling

import (
	"context"
	"fmt"
)

/*
Pruner is an interface wrapping the Prune method, that can be used
to reduce the size of a grown tree using a validation set.

The Prune method takes a context, a tree and a validation set and returns
a pruned tree or an error. Implementations must not modify the given tree.
*/
type Pruner interface {
	Prune(ctx context.Context, t *Tree, validation Set) (*Tree, error)
}

/*
PrunerFunc wraps a function with the Prune method signature to implement
the Pruner interface
*/
type PrunerFunc func(ctx context.Context, t *Tree, validation Set) (*Tree, error)

/*
Prune takes a context, a tree and a validation set and invokes the
PrunerFunc with those parameters to return its result.
*/
func (pf PrunerFunc) Prune(ctx context.Context, t *Tree, validation Set) (*Tree, error) {
	return pf(ctx, t, validation)
}

/*
ReducedErrorPruner returns a Pruner whose Prune method goes once through the
tree bottom-up with Prune. Twigs created by collapsing the children of a
node are not reconsidered by its ancestors on the same pass.
*/
func ReducedErrorPruner() Pruner {
	return PrunerFunc(func(ctx context.Context, t *Tree, validation Set) (*Tree, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := checkFeatures(t.Root, validation); err != nil {
			return nil, fmt.Errorf("pruning: %w", err)
		}
		return newPrunedTree(Prune(validation, t.Root)), nil
	})
}

/*
RepeatedReducedErrorPruner returns a Pruner whose Prune method repeats the
single bottom-up pass of ReducedErrorPruner until a pass leaves the number of
nodes in the tree unchanged, so twigs created by a pass are considered on the
next one.
*/
func RepeatedReducedErrorPruner() Pruner {
	return PrunerFunc(func(ctx context.Context, t *Tree, validation Set) (*Tree, error) {
		if err := checkFeatures(t.Root, validation); err != nil {
			return nil, fmt.Errorf("pruning: %w", err)
		}
		root := t.Root
		size := nodeCount(root)
		for {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			root = Prune(validation, root)
			newSize := nodeCount(root)
			if newSize == size {
				break
			}
			size = newSize
		}
		return newPrunedTree(root), nil
	})
}

/*
NoPruner returns a Pruner whose Prune method always returns the given
tree, that is, never prunes.
*/
func NoPruner() Pruner {
	return PrunerFunc(func(ctx context.Context, t *Tree, validation Set) (*Tree, error) {
		return t, nil
	})
}

/*
Prune takes a validation set and a node and returns the node that replaces
it after pruning the subtree under it bottom-up:
  * leaves are kept,
  * branches first prune their subtrees with the validation samples each one
    receives,
  * a branch left with two leaves of the same label becomes a single leaf
    with the label and the sum of their counts,
  * a branch left with two leaves of different labels becomes the leaf with
    the higher count (the left one on ties) if no validation samples reach it
    or if that leaf predicts at least as many of them correctly as the branch.
The given node is never modified: a new node is returned when the subtree
changes and the node itself otherwise. Validation samples must have every
feature the subtree splits on, as checked by the Pruners of this package.
*/
func Prune(validation Set, n Node) Node {
	b, ok := n.(*Branch)
	if !ok {
		return n
	}
	lc, rc := b.Criteria()
	left := Prune(validation.SubsetWith(lc), b.Left)
	right := Prune(validation.SubsetWith(rc), b.Right)
	pruned := b
	if left != b.Left || right != b.Right {
		pruned = &Branch{Feature: b.Feature, Threshold: b.Threshold, Left: left, Right: right}
	}
	leftLeaf, lok := left.(*Leaf)
	rightLeaf, rok := right.(*Leaf)
	if !lok || !rok {
		return pruned
	}
	if leftLeaf.Label == rightLeaf.Label {
		return &Leaf{Label: leftLeaf.Label, Count: leftLeaf.Count + rightLeaf.Count}
	}
	majority := leftLeaf
	if rightLeaf.Count > leftLeaf.Count {
		majority = rightLeaf
	}
	samples := validation.Samples()
	if len(samples) == 0 {
		return majority
	}
	// both accuracies share the denominator, so comparing hits is enough
	if correctPredictions(majority, samples) >= correctPredictions(pruned, samples) {
		return majority
	}
	return pruned
}

func correctPredictions(n Node, samples []Sample) int {
	var correct int
	for _, s := range samples {
		if n.Predict(s) == s.Label() {
			correct++
		}
	}
	return correct
}

func newPrunedTree(root Node) *Tree {
	t := &Tree{Root: root}
	t.Depth = t.MaxDepth()
	return t
}

func nodeCount(n Node) int {
	if b, ok := n.(*Branch); ok {
		return 1 + nodeCount(b.Left) + nodeCount(b.Right)
	}
	return 1
}
