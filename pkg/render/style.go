/*
Package render writes trees, confusion matrices and metrics for people to
read: on terminals, with colours, or as charts.
*/
package render

import (
	"fmt"

	"github.com/fatih/color"
)

/*
Style holds the formatting configuration used by the render functions.
Branches of the tree take the colour for their depth, cycling through
Depths. Leaves take the Leaf colour and section headings the Heading one.
With NoColor set, nothing is coloured.

A Style is never modified by the render functions, so the same one can be
shared by concurrent writers.
*/
type Style struct {
	Depths  []*color.Color
	Leaf    *color.Color
	Heading *color.Color
	NoColor bool
}

// DefaultStyle returns the Style with the default colours.
func DefaultStyle() Style {
	return Style{
		Depths: []*color.Color{
			color.New(color.FgRed),
			color.New(color.FgYellow),
			color.New(color.FgGreen),
			color.New(color.FgBlue),
			color.New(color.FgMagenta),
			color.New(color.FgCyan),
		},
		Leaf:    color.New(color.FgWhite),
		Heading: color.New(color.FgGreen, color.Bold),
	}
}

// PlainStyle returns a Style that colours nothing.
func PlainStyle() Style {
	return Style{NoColor: true}
}

func (s Style) sprint(c *color.Color, a ...interface{}) string {
	if s.NoColor || c == nil {
		return fmt.Sprint(a...)
	}
	return c.Sprint(a...)
}

func (s Style) depth(d int, a ...interface{}) string {
	if len(s.Depths) == 0 {
		return fmt.Sprint(a...)
	}
	return s.sprint(s.Depths[d%len(s.Depths)], a...)
}

func (s Style) leaf(a ...interface{}) string {
	return s.sprint(s.Leaf, a...)
}

func (s Style) heading(a ...interface{}) string {
	return s.sprint(s.Heading, a...)
}
