package render

import (
	"fmt"
	"io"

	"github.com/pbanos/sapling/pkg/sapling"
)

/*
WriteTree takes an io.Writer, a tree, the names of the features and a Style
and writes an indented drawing of the tree onto the writer followed by the
average depth of its leaves:

	├───X3 <= -55.5
	│   ╰───leaf: 2
	╰───X3 > -55.5
	    ╰───leaf: 4

Features without a name in names are shown as X followed by their index.
*/
func WriteTree(w io.Writer, t *sapling.Tree, names []string, style Style) error {
	for _, line := range treeLines(t.Root, 0, names, style) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nAverage depth: %v\n", t.AverageDepth())
	return err
}

func treeLines(n sapling.Node, depth int, names []string, style Style) []string {
	switch n := n.(type) {
	case *sapling.Leaf:
		return []string{style.leaf(fmt.Sprintf("╰───leaf: %d", n.Label))}
	case *sapling.Branch:
		name := featureName(n.Feature, names)
		left := treeLines(n.Left, depth+1, names, style)
		right := treeLines(n.Right, depth+1, names, style)
		lines := make([]string, 0, len(left)+len(right)+2)
		lines = append(lines, style.depth(depth, fmt.Sprintf("├───%s <= %v", name, n.Threshold)))
		for _, l := range left {
			lines = append(lines, style.depth(depth, "│   ")+l)
		}
		lines = append(lines, style.depth(depth, fmt.Sprintf("╰───%s > %v", name, n.Threshold)))
		for _, l := range right {
			lines = append(lines, style.depth(depth, "    ")+l)
		}
		return lines
	}
	return nil
}

func featureName(i int, names []string) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("X%d", i)
}
