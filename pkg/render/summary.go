package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pbanos/sapling/pkg/sapling"
)

const lineWidth = 80

// WriteHeading writes a section title padded with a rule up to the line width.
func WriteHeading(w io.Writer, title string, style Style) error {
	pad := lineWidth - len([]rune(title))
	if pad < 0 {
		pad = 0
	}
	_, err := fmt.Fprintln(w, style.heading(title+strings.Repeat("─", pad)))
	return err
}

// WriteNote writes a line of text in the heading colour.
func WriteNote(w io.Writer, text string, style Style) error {
	_, err := fmt.Fprintln(w, style.heading(text))
	return err
}

/*
WriteConfusionMatrix writes a title and the counts of a confusion matrix,
one row per true class, followed by a blank line.
*/
func WriteConfusionMatrix(w io.Writer, title string, cm *sapling.ConfusionMatrix, style Style) error {
	classes := cm.Classes()
	width := len(strconv.Itoa(cm.Total()))
	for _, c := range classes {
		if l := len(strconv.Itoa(c)); l > width {
			width = l
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", title)
	fmt.Fprintf(&b, "%*s", width+2, "")
	for _, c := range classes {
		fmt.Fprintf(&b, " %*d", width, c)
	}
	b.WriteString("\n")
	for i, c := range classes {
		b.WriteString(style.depth(i, fmt.Sprintf("%*d |", width, c)))
		for j := range classes {
			fmt.Fprintf(&b, " %*d", width, cm.At(i, j))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

/*
WriteSummary writes the metrics of unpruned and pruned trees side by side,
rounded to 3 decimals, under a Metrics heading.
*/
func WriteSummary(w io.Writer, unpruned, pruned sapling.Metrics, style Style) error {
	rows := []struct {
		label            string
		unpruned, pruned string
	}{
		{"Recall (Per Class)", formatValues(unpruned.Recall), formatValues(pruned.Recall)},
		{"Precision (Per Class)", formatValues(unpruned.Precision), formatValues(pruned.Precision)},
		{"Macro-averaged F1 Score", formatValue(unpruned.F1), formatValue(pruned.F1)},
		{"Accuracy (Average)", formatValue(unpruned.Accuracy), formatValue(pruned.Accuracy)},
	}
	if err := WriteHeading(w, "Metrics", style); err != nil {
		return err
	}
	var b strings.Builder
	for i, r := range rows {
		fmt.Fprintf(&b, "%-24s Unpruned: %s\n", r.label, r.unpruned)
		fmt.Fprintf(&b, "%-24s Pruned  : %s\n", "", r.pruned)
		if i < len(rows)-1 {
			b.WriteString(strings.Repeat("─", lineWidth))
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteMetrics writes the metrics of a single tree under a Metrics heading.
func WriteMetrics(w io.Writer, m sapling.Metrics, style Style) error {
	if err := WriteHeading(w, "Metrics", style); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%-24s %s\n%-24s %s\n%-24s %s\n%-24s %s\n",
		"Recall (Per Class)", formatValues(m.Recall),
		"Precision (Per Class)", formatValues(m.Precision),
		"Macro-averaged F1 Score", formatValue(m.F1),
		"Accuracy (Average)", formatValue(m.Accuracy),
	)
	return err
}

// Round returns v rounded to 3 decimals.
func Round(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(Round(v), 'f', -1, 64)
}

func formatValues(vs []float64) string {
	s := make([]string, len(vs))
	for i, v := range vs {
		s[i] = formatValue(v)
	}
	return "[" + strings.Join(s, " ") + "]"
}
