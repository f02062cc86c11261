package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling/pkg/bio"
	"github.com/pbanos/sapling/pkg/sapling"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataInput          string
	metadataInput      string
	output             string
	pruneStrategy      string
	validationInput    string
	cpuIntensiveSet    bool
	memoryIntensiveSet bool
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a tree from a set of data to predict its labels, optionally pruning it with a validation set.`,
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
			sg, _ := setGenerator(config.memoryIntensiveSet, config.cpuIntensiveSet)
			trainingSet, err := config.loadSet(config.Context(), config.dataInput, md, sg)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			p := sapling.New(
				sapling.SplitWorkers(intSetting(config.v, cmd, "split-workers", splitWorkersKey)),
				sapling.PotLogger(config.foldLogger()),
			)
			config.Logf("Growing tree from a set with %d samples...", trainingSet.Count())
			t, err := p.Grow(config.Context(), trainingSet)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(8)
			}
			config.Logf("Done: %d leaves, depth %d", t.Leaves(), t.Depth)
			if config.validationInput != "" {
				validationSet, err := config.loadSet(config.Context(), config.validationInput, md, sg)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(4)
				}
				strategy, _ := pruner(config.pruneStrategy)
				t, err = strategy.Prune(config.Context(), t, validationSet)
				if err != nil {
					fmt.Fprintf(os.Stderr, "pruning the tree: %v\n", err)
					os.Exit(9)
				}
				config.Logf("Pruned: %d leaves, depth %d", t.Leaves(), t.Depth)
			}
			err = bio.WriteJSONTreeToFile(config.output, t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(10)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input text, CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to use to grow the tree (defaults to STDIN, interpreted as text)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features and label of the input")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format (defaults to STDOUT)")
	cmd.PersistentFlags().StringVar(&(config.validationInput), "validation", "", "input with a validation set with which to prune the tree (the tree is not pruned if not set)")
	cmd.PersistentFlags().StringVarP(&(config.pruneStrategy), "prune", "p", "default", "pruning strategy to apply with the validation set: default, repeated or none")
	cmd.PersistentFlags().BoolVar(&(config.memoryIntensiveSet), "memory-intensive", false, "force the use of memory-intensive subsetting to decrease time at the cost of increasing memory use")
	cmd.PersistentFlags().BoolVar(&(config.cpuIntensiveSet), "cpu-intensive", false, "force the use of cpu-intensive subsetting to decrease memory use at the cost of increasing time")
	cmd.Flags().Int("split-workers", 1, "number of features scanned concurrently when splitting a node")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if _, err := setGenerator(gcc.memoryIntensiveSet, gcc.cpuIntensiveSet); err != nil {
		return err
	}
	if _, err := pruner(gcc.pruneStrategy); err != nil {
		return err
	}
	if gcc.validationInput != "" && gcc.validationInput == gcc.dataInput {
		return fmt.Errorf("validation set cannot be the training set")
	}
	return nil
}
