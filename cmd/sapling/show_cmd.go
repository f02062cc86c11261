package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling/pkg/bio"
	"github.com/pbanos/sapling/pkg/bio/redisstore"
	"github.com/pbanos/sapling/pkg/render"
	"github.com/pbanos/sapling/pkg/sapling"
	"github.com/spf13/cobra"
)

type showCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	metadataInput string
	noColor       bool
	storeKey      string
}

func showCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &showCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a tree",
		Long:  `Draw a tree read from JSON, colouring its levels`,
		Run: func(cmd *cobra.Command, args []string) {
			md, err := config.metadata(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			t, err := config.tree()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			style := render.DefaultStyle()
			if config.noColor {
				style = render.PlainStyle()
			}
			err = render.WriteTree(os.Stdout, t, md.FeatureNames(sapling.RequiredFeatures(t.Root)), style)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to show will be read and parsed as JSON (defaults to STDIN)")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the names of the features used on the tree")
	cmd.Flags().BoolVar(&(config.noColor), "no-color", false, "disable colours on the output")
	cmd.Flags().StringVar(&(config.storeKey), "key", "", "read the tree stored under the given key on redis, like fold-0:pruned, instead of a JSON file")
	return cmd
}

// tree reads the tree to show from redis if a key was given, or from JSON.
func (scc *showCmdConfig) tree() (*sapling.Tree, error) {
	if scc.storeKey == "" {
		return bio.ReadJSONTreeFromFile(scc.treeInput)
	}
	addr := scc.v.GetString(redisAddrKey)
	scc.Logf("Reading tree %s from redis at %s...", scc.storeKey, addr)
	client, err := redisstore.Dial(addr)
	if err != nil {
		return nil, err
	}
	ts := redisstore.New(client, scc.v.GetString(redisPrefixKey), nil)
	defer ts.Close(scc.Context())
	return ts.Get(scc.Context(), scc.storeKey)
}
