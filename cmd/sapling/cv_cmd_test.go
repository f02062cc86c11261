package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pbanos/sapling/pkg/bio"
	"github.com/pbanos/sapling/pkg/render"
	"github.com/pbanos/sapling/pkg/sapling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCVParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  string
	}{
		{"clean pruned", []string{"clean", "pruned"}, ""},
		{"noisy unpruned", []string{"noisy", "unpruned"}, ""},
		{"path", []string{"data/rooms.csv", "pruned"}, ""},
		{"no args", nil, "expected 2 arguments, got 0"},
		{"one arg", []string{"clean"}, "expected 2 arguments, got 1"},
		{"three args", []string{"clean", "pruned", "extra"}, "expected 2 arguments, got 3"},
		{"bad variant", []string{"clean", "trimmed"}, `tree variant must be pruned or unpruned, got "trimmed"`},
		{"empty dataset", []string{"", "pruned"}, "dataset cannot be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &cvCmdConfig{}
			err := config.parseArgs(tt.args)
			if tt.err != "" {
				assert.EqualError(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.args[0], config.dataset)
			assert.Equal(t, tt.args[1], config.variant)
		})
	}
}

func TestCVValidate(t *testing.T) {
	assert.NoError(t, (&cvCmdConfig{prune: "default", store: "memory"}).Validate())
	assert.NoError(t, (&cvCmdConfig{prune: "repeated", store: "redis"}).Validate())
	assert.NoError(t, (&cvCmdConfig{prune: "none"}).Validate())
	assert.Error(t, (&cvCmdConfig{prune: "aggressive"}).Validate())
	assert.Error(t, (&cvCmdConfig{prune: "default", store: "disk"}).Validate())
}

func TestPruner(t *testing.T) {
	tree := &sapling.Tree{Root: &sapling.Branch{
		Feature:   0,
		Threshold: 5,
		Left:      &sapling.Leaf{Label: 1, Count: 2},
		Right:     &sapling.Leaf{Label: 1, Count: 3},
	}, Depth: 1}
	for _, name := range []string{"", "default", "repeated"} {
		p, err := pruner(name)
		require.NoError(t, err)
		pruned, err := p.Prune(context.Background(), tree, sapling.NewSet(nil))
		require.NoError(t, err)
		assert.Equal(t, &sapling.Leaf{Label: 1, Count: 5}, pruned.Root, name)
	}
	p, err := pruner("none")
	require.NoError(t, err)
	pruned, err := p.Prune(context.Background(), tree, sapling.NewSet(nil))
	require.NoError(t, err)
	assert.Same(t, tree, pruned)
}

func TestCrossValidatorFromConfig(t *testing.T) {
	rcc := &rootCmdConfig{v: newViper()}
	rcc.v.Set(foldsKey, 5)
	rcc.v.Set(proportionKey, 0.2)
	rcc.v.Set(workersKey, 2)
	config := &cvCmdConfig{rootCmdConfig: rcc, prune: "default", splitWorkers: 1}
	cv, err := config.crossValidator(nil)
	require.NoError(t, err)
	assert.Equal(t, 5, cv.Folds)
	assert.Equal(t, 0.2, cv.Proportion)
	assert.Equal(t, 2, cv.Workers)
	assert.Nil(t, cv.OnFold)

	ts, err := (&cvCmdConfig{rootCmdConfig: rcc, store: "memory"}).treeStore()
	require.NoError(t, err)
	cv, err = config.crossValidator(ts)
	require.NoError(t, err)
	assert.NotNil(t, cv.OnFold)

	ts, err = (&cvCmdConfig{rootCmdConfig: rcc}).treeStore()
	require.NoError(t, err)
	assert.Nil(t, ts)
}

func TestWriteReport(t *testing.T) {
	classes := sapling.NewClasses(1, 2)
	unpruned := sapling.NewConfusionMatrix(classes)
	require.NoError(t, unpruned.Record(1, 1))
	require.NoError(t, unpruned.Record(2, 1))
	pruned := sapling.NewConfusionMatrix(classes)
	require.NoError(t, pruned.Record(1, 1))
	require.NoError(t, pruned.Record(2, 2))
	report := &sapling.Report{
		Folds: []*sapling.FoldResult{{
			Unpruned: &sapling.Tree{Root: &sapling.Branch{
				Feature:   3,
				Threshold: -55.5,
				Left:      &sapling.Leaf{Label: 1, Count: 1},
				Right:     &sapling.Leaf{Label: 2, Count: 1},
			}, Depth: 1},
			Pruned: &sapling.Tree{Root: &sapling.Leaf{Label: 1, Count: 2}},
		}},
		Unpruned:        unpruned,
		Pruned:          pruned,
		UnprunedMetrics: sapling.NewMetrics(unpruned),
		PrunedMetrics:   sapling.NewMetrics(pruned),
	}
	names := []string{"X0", "X1", "X2", "X3"}

	var buf bytes.Buffer
	config := &cvCmdConfig{variant: "unpruned"}
	require.NoError(t, config.writeReport(context.Background(), &buf, report, nil, names, render.PlainStyle()))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Visualisation "+strings.Repeat("─", 66)+"\n├───X3 <= -55.5\n"))
	assert.Contains(t, out, "\nAverage depth: 1\n\nConfusion Matrices ")
	assert.Contains(t, out, "Cumulative Unpruned Confusion Matrix:\n")
	assert.Contains(t, out, "Cumulative Pruned Confusion Matrix:\n")
	assert.Contains(t, out, "Accuracy (Average)       Unpruned: 0.5\n")

	buf.Reset()
	config.variant = "pruned"
	require.NoError(t, config.writeReport(context.Background(), &buf, report, nil, names, render.PlainStyle()))
	assert.Contains(t, buf.String(), "╰───leaf: 1\n\nAverage depth: 0\n")
}

func TestWriteReportReadsTreeFromStore(t *testing.T) {
	classes := sapling.NewClasses(1, 2)
	cm := sapling.NewConfusionMatrix(classes)
	require.NoError(t, cm.Record(1, 1))
	fold := &sapling.FoldResult{
		Index:    0,
		Unpruned: &sapling.Tree{Root: &sapling.Leaf{Label: 1, Count: 3}},
		Pruned:   &sapling.Tree{Root: &sapling.Leaf{Label: 1, Count: 3}},
	}
	report := &sapling.Report{
		Folds:           []*sapling.FoldResult{fold},
		Unpruned:        cm,
		Pruned:          cm,
		UnprunedMetrics: sapling.NewMetrics(cm),
		PrunedMetrics:   sapling.NewMetrics(cm),
	}
	ts := bio.NewMemoryTreeStore()
	stored := &sapling.Tree{Root: &sapling.Leaf{Label: 2, Count: 3}}
	require.NoError(t, ts.Store(context.Background(), bio.FoldKey(0, true), stored))

	var buf bytes.Buffer
	config := &cvCmdConfig{variant: "pruned"}
	require.NoError(t, config.writeReport(context.Background(), &buf, report, ts, nil, render.PlainStyle()))
	assert.Contains(t, buf.String(), "╰───leaf: 2\n")

	config.variant = "unpruned"
	err := config.writeReport(context.Background(), &bytes.Buffer{}, report, ts, nil, render.PlainStyle())
	assert.ErrorIs(t, err, bio.ErrTreeNotFound)
}
