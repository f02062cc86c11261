package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling/pkg/sapling"
	"github.com/spf13/cobra"
)

type splitCmdConfig struct {
	*setCmdConfig
	splitOutput string
	proportion  float64
}

func splitCmd(setConfig *setCmdConfig) *cobra.Command {
	config := &splitCmdConfig{setCmdConfig: setConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into an output set and a split set holding the given proportion of its first samples`,
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
			split, rest := splitSet(s, config.proportion)
			config.Logf("Writing %d samples on split set and %d on output set...", split.Count(), rest.Count())
			err = config.writeSet(config.Context(), config.splitOutput, split, md)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			err = config.writeSet(config.Context(), config.setOutput, rest, md)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.splitOutput), "split-output", "s", "", "path to a text, CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the split set (required)")
	cmd.Flags().Float64VarP(&(config.proportion), "proportion", "p", 0.1, "proportion of the samples to put on the split set")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if err := scc.setCmdConfig.Validate(); err != nil {
		return err
	}
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitOutput == scc.setOutput {
		return fmt.Errorf("split and output sets cannot be the same")
	}
	if scc.proportion <= 0 || scc.proportion >= 1 {
		return fmt.Errorf("proportion must be between 0 and 1, got %v", scc.proportion)
	}
	return nil
}

// splitSet returns the first floor(n*p) samples of s and the rest.
func splitSet(s sapling.Set, p float64) (split, rest sapling.Set) {
	n := int(float64(s.Count()) * p)
	return sapling.Slice(s, 0, n), sapling.Without(s, [2]int{0, n})
}
