package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling/pkg/bio"
	"github.com/pbanos/sapling/pkg/render"
	"github.com/pbanos/sapling/pkg/sapling"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	dataInput     string
	metadataInput string
	noColor       bool
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a test data set, showing its confusion matrix and metrics`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			md, err := config.metadata(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			t, err := bio.ReadJSONTreeFromFile(config.treeInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			testingSet, err := config.loadSet(config.Context(), config.dataInput, md, nil)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Testing tree against testset with %d samples...", testingSet.Count())
			cm, err := t.Evaluate(testingSet, testClasses(md, testingSet, t))
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing tree: %v\n", err)
				os.Exit(6)
			}
			config.Logf("Done")
			style := render.DefaultStyle()
			if config.noColor {
				style = render.PlainStyle()
			}
			err = render.WriteConfusionMatrix(os.Stdout, "Confusion Matrix", cm, style)
			if err == nil {
				err = render.WriteMetrics(os.Stdout, sapling.NewMetrics(cm), style)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(7)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input text, CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the test set (defaults to STDIN, interpreted as text)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features, label and classes of the input")
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to test will be read and parsed as JSON (required)")
	cmd.Flags().BoolVar(&(config.noColor), "no-color", false, "disable colours on the output")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

/*
testClasses returns the classes of a test: the ones declared on the metadata
or found on the set, plus any label the tree predicts.
*/
func testClasses(md *bio.Metadata, s sapling.Set, t *sapling.Tree) sapling.Classes {
	labels := md.ClassesFor(s)
	t.Walk(func(n sapling.Node, _ int) bool {
		if l, ok := n.(*sapling.Leaf); ok {
			labels = append(labels, l.Label)
		}
		return true
	})
	return sapling.NewClasses(labels...)
}
