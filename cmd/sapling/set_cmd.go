package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling/pkg/sapling"
	"github.com/spf13/cobra"
)

type setCmdConfig struct {
	*rootCmdConfig
	setInput      string
	metadataInput string
	setOutput     string
	shuffle       bool
	seed          int64
	seedChanged   bool
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage sets of data",
		Long:  `Convert sets of data between text, CSV, SQLite3, PostgreSQL and MongoDB`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			config.seedChanged = cmd.Flags().Changed("seed")
			s, err := config.inputSet()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			md, _ := config.metadata(config.metadataInput)
			err = config.writeSet(config.Context(), config.setOutput, s, md)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
			config.Logf("Done")
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", "path to an input text, CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL (defaults to STDIN, interpreted as text)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features and label of the input")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path to a text, CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the output set (defaults to STDOUT in CSV)")
	cmd.PersistentFlags().BoolVar(&(config.shuffle), "shuffle", false, "shuffle the samples with the configured seed")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", sapling.DefaultSeed, "seed to shuffle the set with (defaults to the configured seed)")
	cmd.AddCommand(splitCmd(config))
	return cmd
}

func (scc *setCmdConfig) Validate() error {
	if scc.setInput != "" && scc.setInput == scc.setOutput {
		return fmt.Errorf("input and output sets cannot be the same")
	}
	return nil
}

// inputSet loads the input set, shuffled if requested.
func (scc *setCmdConfig) inputSet() (sapling.Set, error) {
	md, err := scc.metadata(scc.metadataInput)
	if err != nil {
		return nil, err
	}
	s, err := scc.loadSet(scc.Context(), scc.setInput, md, nil)
	if err != nil {
		return nil, err
	}
	if scc.shuffle {
		seed := scc.v.GetInt64(seedKey)
		if scc.seedChanged {
			seed = scc.seed
		}
		scc.Logf("Shuffling %d samples with seed %d...", s.Count(), seed)
		s = sapling.Shuffle(s, seed)
	}
	return s, nil
}
