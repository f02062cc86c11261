package render

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pbanos/sapling/pkg/sapling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *sapling.Tree {
	return &sapling.Tree{
		Depth: 2,
		Root: &sapling.Branch{
			Feature:   3,
			Threshold: -55.5,
			Left:      &sapling.Leaf{Label: 2, Count: 10},
			Right: &sapling.Branch{
				Feature:   0,
				Threshold: 2.25,
				Left:      &sapling.Leaf{Label: 1, Count: 4},
				Right:     &sapling.Leaf{Label: 4, Count: 6},
			},
		},
	}
}

func TestWriteTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTree(&buf, sampleTree(), nil, PlainStyle()))
	expected := strings.Join([]string{
		"├───X3 <= -55.5",
		"│   ╰───leaf: 2",
		"╰───X3 > -55.5",
		"    ├───X0 <= 2.25",
		"    │   ╰───leaf: 1",
		"    ╰───X0 > 2.25",
		"        ╰───leaf: 4",
		"",
		"Average depth: 1.6666666666666667",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestWriteTreeWithNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTree(&buf, sampleTree(), []string{"s0", "s1", "s2", "s3"}, PlainStyle()))
	assert.True(t, strings.HasPrefix(buf.String(), "├───s3 <= -55.5\n"))
}

func TestWriteTreeColoursByDepth(t *testing.T) {
	red, blue := color.New(color.FgRed), color.New(color.FgBlue)
	red.EnableColor()
	blue.EnableColor()
	style := Style{Depths: []*color.Color{red, blue}}
	var buf bytes.Buffer
	require.NoError(t, WriteTree(&buf, sampleTree(), nil, style))
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, red.Sprint("├───X3 <= -55.5"), lines[0])
	assert.Equal(t, red.Sprint("    ")+blue.Sprint("├───X0 <= 2.25"), lines[3])
	assert.Equal(t, red.Sprint("│   ")+"╰───leaf: 2", lines[1])
}

func TestWriteConfusionMatrix(t *testing.T) {
	cm := sapling.NewConfusionMatrix(sapling.Classes{1, 2})
	for i := 0; i < 12; i++ {
		require.NoError(t, cm.Record(1, 1))
	}
	require.NoError(t, cm.Record(2, 1))
	var buf bytes.Buffer
	require.NoError(t, WriteConfusionMatrix(&buf, "Cumulative Pruned Confusion Matrix", cm, PlainStyle()))
	assert.Equal(t, "Cumulative Pruned Confusion Matrix:\n"+
		"      1  2\n"+
		" 1 | 12  0\n"+
		" 2 |  1  0\n\n", buf.String())
}

func TestWriteSummary(t *testing.T) {
	unpruned := sapling.Metrics{Recall: []float64{0.97777, 1}, Precision: []float64{0.5, math.NaN()}, F1: 0.66666, Accuracy: 0.9}
	pruned := sapling.Metrics{Recall: []float64{1, 1}, Precision: []float64{1, 1}, F1: 1, Accuracy: 1}
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, unpruned, pruned, PlainStyle()))
	out := buf.String()
	assert.Contains(t, out, "Metrics"+strings.Repeat("─", 73)+"\n")
	assert.Contains(t, out, "Recall (Per Class)       Unpruned: [0.978 1]\n")
	assert.Contains(t, out, "Precision (Per Class)    Unpruned: [0.5 NaN]\n")
	assert.Contains(t, out, "Macro-averaged F1 Score  Unpruned: 0.667\n")
	assert.Contains(t, out, "                         Pruned  : 1\n")
	assert.True(t, strings.HasSuffix(out, "Accuracy (Average)       Unpruned: 0.9\n"+strings.Repeat(" ", 25)+"Pruned  : 1\n"))
	assert.Equal(t, 3, strings.Count(out, strings.Repeat("─", 80)+"\n"))
}

func TestWriteMetrics(t *testing.T) {
	m := sapling.Metrics{Recall: []float64{1, 0.5}, Precision: []float64{0.6667, 1}, F1: math.NaN(), Accuracy: 0.75}
	var buf bytes.Buffer
	require.NoError(t, WriteMetrics(&buf, m, PlainStyle()))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Recall (Per Class)       [1 0.5]", lines[1])
	assert.Equal(t, "Precision (Per Class)    [0.667 1]", lines[2])
	assert.Equal(t, "Macro-averaged F1 Score  NaN", lines[3])
	assert.Equal(t, "Accuracy (Average)       0.75", lines[4])
}

func TestWriteNote(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNote(&buf, "Note: Using clean dataset", PlainStyle()))
	assert.Equal(t, "Note: Using clean dataset\n", buf.String())
}

func TestSaveMetricsChart(t *testing.T) {
	classes := sapling.Classes{1, 2}
	m := sapling.Metrics{Recall: []float64{0.9, math.NaN()}, Precision: []float64{0.8, 0.7}, F1: 0.8, Accuracy: 0.85}
	path := filepath.Join(t.TempDir(), "metrics.png")
	require.NoError(t, SaveMetricsChart(path, classes, m, m))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	_, err = MetricsChart(sapling.Classes{1, 2, 3}, m, m)
	assert.Error(t, err)
}
