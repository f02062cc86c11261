package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling/pkg/bio"
	"github.com/spf13/cobra"
)

type pruneCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	dataInput     string
	metadataInput string
	output        string
	pruneStrategy string
}

func pruneCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &pruneCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Prune a tree with a validation set",
		Long:  `Prune a tree with reduced error pruning against a validation set of data`,
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
			validationSet, err := config.loadSet(config.Context(), config.dataInput, md, nil)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			strategy, _ := pruner(config.pruneStrategy)
			config.Logf("Pruning tree with %d leaves against a validation set with %d samples...", t.Leaves(), validationSet.Count())
			pruned, err := strategy.Prune(config.Context(), t, validationSet)
			if err != nil {
				fmt.Fprintf(os.Stderr, "pruning the tree: %v\n", err)
				os.Exit(5)
			}
			config.Logf("Done: %d leaves left, depth %d", pruned.Leaves(), pruned.Depth)
			err = bio.WriteJSONTreeToFile(config.output, pruned)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to prune will be read and parsed as JSON (required)")
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input text, CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the validation set (defaults to STDIN, interpreted as text)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features and label of the input")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the pruned tree will be written in JSON format (defaults to STDOUT)")
	cmd.Flags().StringVarP(&(config.pruneStrategy), "prune", "p", "default", "pruning strategy to apply: default, repeated or none")
	return cmd
}

func (pcc *pruneCmdConfig) Validate() error {
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if pcc.dataInput == "" {
		return fmt.Errorf("required input flag was not set")
	}
	_, err := pruner(pcc.pruneStrategy)
	return err
}
