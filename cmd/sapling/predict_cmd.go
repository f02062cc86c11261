package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/sapling/pkg/bio"
	"github.com/pbanos/sapling/pkg/sapling"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	metadataInput string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a label for a sample answering questions",
		Long:  `Use the loaded tree to predict the label of a sample answering a reduced set of questions about its features`,
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
			label, err := predict(t, md.FeatureNames(sapling.RequiredFeatures(t.Root)), os.Stdin, os.Stdout)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			fmt.Printf("Predicted %s is %d\n", md.LabelName(), label)
		},
	}
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the names of the features and label of the tree")
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON (required)")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

/*
predict descends the tree asking on out for the value of every feature a
branch on the way splits on and reading it from in, until a leaf is
reached. Each feature is asked for once at most.
*/
func predict(t *sapling.Tree, names []string, in io.Reader, out io.Writer) (int, error) {
	scanner := bufio.NewScanner(in)
	values := make(map[int]float64)
	node := t.Root
	for {
		switch n := node.(type) {
		case *sapling.Leaf:
			return n.Label, nil
		case *sapling.Branch:
			v, ok := values[n.Feature]
			if !ok {
				var err error
				v, err = requestValue(scanner, out, nameOf(n.Feature, names))
				if err != nil {
					return 0, err
				}
				values[n.Feature] = v
			}
			if v <= n.Threshold {
				node = n.Left
			} else {
				node = n.Right
			}
		default:
			return 0, fmt.Errorf("unknown node type %T", node)
		}
	}
}

func requestValue(scanner *bufio.Scanner, out io.Writer, name string) (float64, error) {
	fmt.Fprintf(out, "Please provide the sample's %s:\n(valid values are real numbers)\n", name)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		v, err := strconv.ParseFloat(text, 64)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(out, "%q is not a valid value for the sample's %s. Please provide a real number.\n", text, name)
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("reading value for %s: %w", name, err)
	}
	return 0, fmt.Errorf("no value provided for %s", name)
}

func nameOf(feature int, names []string) string {
	if feature < len(names) {
		return names[feature]
	}
	return fmt.Sprintf("X%d", feature)
}
