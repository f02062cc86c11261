package sapling

import (
	"encoding/json"
	"fmt"
	"strings"
)

/*
Node is a node of a classification tree: either a *Leaf or a *Branch.
Nodes are never modified once built; operations that change a tree,
like pruning, return new nodes instead.
*/
type Node interface {
	// Predict takes a sample and returns the label the subtree under
	// the node predicts for it.
	Predict(Sample) int
	isNode()
}

/*
Leaf is a terminal node predicting a label. Count is the number of
training samples that reached the leaf.
*/
type Leaf struct {
	Label int
	Count int
}

/*
Branch is an internal node splitting samples on a feature at a threshold:
samples whose value for the feature is lower or equal than the threshold go
to the Left subtree and the rest go to the Right subtree. Both subtrees are
always set.
*/
type Branch struct {
	Feature   int
	Threshold float64
	Left      Node
	Right     Node
}

func (*Leaf) isNode()   {}
func (*Branch) isNode() {}

// Predict returns the label of the leaf.
func (l *Leaf) Predict(Sample) int {
	return l.Label
}

// Predict descends the branch until a leaf is reached and returns its label.
func (b *Branch) Predict(s Sample) int {
	var n Node = b
	for {
		switch node := n.(type) {
		case *Leaf:
			return node.Label
		case *Branch:
			if s.Value(node.Feature) <= node.Threshold {
				n = node.Left
			} else {
				n = node.Right
			}
		default:
			panic(fmt.Sprintf("cannot predict with node of type %T", n))
		}
	}
}

// Criteria returns the criteria selecting the samples for the left and right subtrees.
func (b *Branch) Criteria() (left, right ThresholdCriterion) {
	return AtMost(b.Feature, b.Threshold), Above(b.Feature, b.Threshold)
}

// IsTwig returns whether both subtrees of the branch are leaves.
func (b *Branch) IsTwig() bool {
	_, lok := b.Left.(*Leaf)
	_, rok := b.Right.(*Leaf)
	return lok && rok
}

// Tree represents a classification tree: its root node and
// the maximum depth reached while growing it.
type Tree struct {
	Root  Node
	Depth int
}

// Predict takes a sample and returns the label the tree predicts for it.
func (t *Tree) Predict(s Sample) int {
	return t.Root.Predict(s)
}

// Walk takes a function and calls it for every node in the tree in
// pre-order with the node and its depth. If the function returns
// false the children of the node are not visited.
func (t *Tree) Walk(f func(n Node, depth int) bool) {
	walk(t.Root, 0, f)
}

func walk(n Node, depth int, f func(Node, int) bool) {
	if !f(n, depth) {
		return
	}
	if b, ok := n.(*Branch); ok {
		walk(b.Left, depth+1, f)
		walk(b.Right, depth+1, f)
	}
}

// Leaves returns the number of leaves in the tree.
func (t *Tree) Leaves() int {
	var count int
	t.Walk(func(n Node, _ int) bool {
		if _, ok := n.(*Leaf); ok {
			count++
		}
		return true
	})
	return count
}

// Branches returns the number of internal nodes in the tree.
func (t *Tree) Branches() int {
	var count int
	t.Walk(func(n Node, _ int) bool {
		if _, ok := n.(*Branch); ok {
			count++
		}
		return true
	})
	return count
}

// AverageDepth returns the mean depth of the leaves of the tree.
func (t *Tree) AverageDepth() float64 {
	var total, count int
	t.Walk(func(n Node, depth int) bool {
		if _, ok := n.(*Leaf); ok {
			total += depth
			count++
		}
		return true
	})
	if count == 0 {
		return 0.0
	}
	return float64(total) / float64(count)
}

// MaxDepth returns the depth of the deepest leaf of the tree.
func (t *Tree) MaxDepth() int {
	var max int
	t.Walk(func(n Node, depth int) bool {
		if depth > max {
			max = depth
		}
		return true
	})
	return max
}

/*
RequiredFeatures returns the number of features a sample needs for the
subtree under n to predict its label: one more than the highest feature
index a branch splits on, or 0 for a leaf.
*/
func RequiredFeatures(n Node) int {
	required := 0
	walk(n, 0, func(n Node, _ int) bool {
		if b, ok := n.(*Branch); ok && b.Feature >= required {
			required = b.Feature + 1
		}
		return true
	})
	return required
}

// checkFeatures returns an error wrapping ErrMissingFeature if any sample
// in s has fewer features than the subtree under n splits on.
func checkFeatures(n Node, s Set) error {
	required := RequiredFeatures(n)
	for i, sample := range s.Samples() {
		if sample.FeatureCount() < required {
			return fmt.Errorf("sample %d has %d features, the tree splits on %d: %w", i, sample.FeatureCount(), required, ErrMissingFeature)
		}
	}
	return nil
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return ""
	}
	return subtreeString(t.Root)
}

func subtreeString(n Node) string {
	switch n := n.(type) {
	case *Leaf:
		return fmt.Sprintf("{ %d (%d) }\n", n.Label, n.Count)
	case *Branch:
		l, r := n.Criteria()
		result := "|\n"
		for i, side := range []struct {
			c ThresholdCriterion
			n Node
		}{{l, n.Left}, {r, n.Right}} {
			for j, line := range strings.Split(fmt.Sprintf("{ %v }\n%s", side.c, subtreeString(side.n)), "\n") {
				if len(line) == 0 {
					continue
				}
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else if i == 0 {
					result = fmt.Sprintf("%s|  %s\n", result, line)
				} else {
					result = fmt.Sprintf("%s   %s\n", result, line)
				}
			}
		}
		return result
	}
	return ""
}

type jsonTree struct {
	Depth int       `json:"depth"`
	Root  *jsonNode `json:"root"`
}

type jsonNode struct {
	Leaf   *jsonLeaf   `json:"leaf,omitempty"`
	Branch *jsonBranch `json:"branch,omitempty"`
}

type jsonLeaf struct {
	Label int `json:"label"`
	Count int `json:"count"`
}

type jsonBranch struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      *jsonNode `json:"left"`
	Right     *jsonNode `json:"right"`
}

/*
MarshalJSON returns a slice of bytes with the Tree serialized to JSON and an error.
A Tree is serialized as an object with its "depth" and its "root" node. Nodes are
serialized recursively as objects with either a "leaf" property holding the "label"
and "count" of the leaf, or a "branch" property holding the "feature", "threshold",
"left" and "right" of the branch.
*/
func (t *Tree) MarshalJSON() ([]byte, error) {
	root, err := toJSONNode(t.Root)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&jsonTree{t.Depth, root})
}

/*
UnmarshalJSON takes a slice of bytes containing a serialized Tree and
loads its data. The slice of bytes is expected to have the tree serialized
in JSON format as generated by MarshalJSON
*/
func (t *Tree) UnmarshalJSON(b []byte) error {
	jt := &jsonTree{}
	err := json.Unmarshal(b, jt)
	if err != nil {
		return err
	}
	root, err := fromJSONNode(jt.Root)
	if err != nil {
		return err
	}
	t.Root = root
	t.Depth = jt.Depth
	return nil
}

func toJSONNode(n Node) (*jsonNode, error) {
	switch n := n.(type) {
	case *Leaf:
		return &jsonNode{Leaf: &jsonLeaf{n.Label, n.Count}}, nil
	case *Branch:
		left, err := toJSONNode(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := toJSONNode(n.Right)
		if err != nil {
			return nil, err
		}
		return &jsonNode{Branch: &jsonBranch{n.Feature, n.Threshold, left, right}}, nil
	}
	return nil, fmt.Errorf("cannot serialize node of type %T", n)
}

func fromJSONNode(jn *jsonNode) (Node, error) {
	switch {
	case jn == nil:
		return nil, fmt.Errorf("missing node")
	case jn.Leaf != nil && jn.Branch != nil:
		return nil, fmt.Errorf("node cannot be both a leaf and a branch")
	case jn.Leaf != nil:
		return &Leaf{jn.Leaf.Label, jn.Leaf.Count}, nil
	case jn.Branch != nil:
		left, err := fromJSONNode(jn.Branch.Left)
		if err != nil {
			return nil, fmt.Errorf("left of feature %d branch: %w", jn.Branch.Feature, err)
		}
		right, err := fromJSONNode(jn.Branch.Right)
		if err != nil {
			return nil, fmt.Errorf("right of feature %d branch: %w", jn.Branch.Feature, err)
		}
		return &Branch{jn.Branch.Feature, jn.Branch.Threshold, left, right}, nil
	}
	return nil, fmt.Errorf("node is neither a leaf nor a branch")
}
