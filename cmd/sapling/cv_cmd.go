package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/sapling/pkg/bio"
	"github.com/pbanos/sapling/pkg/bio/redisstore"
	"github.com/pbanos/sapling/pkg/render"
	"github.com/pbanos/sapling/pkg/sapling"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

type cvCmdConfig struct {
	*rootCmdConfig
	dataset       string
	variant       string
	metadataInput string
	prune         string
	chart         string
	store         string
	noColor       bool
	profile       string
	splitWorkers  int
}

func cvCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &cvCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "cv [clean|noisy|PATH] [pruned|unpruned]",
		Short: "Cross-validate trees grown on a dataset",
		Long: `Shuffle a dataset, grow and prune a tree on each fold of a k-fold cross validation,
show the tree of the first fold and the cumulative confusion matrices and metrics
of unpruned and pruned trees`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.parseArgs(args)
			if err == nil {
				err = config.Validate()
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				cmd.Usage()
				os.Exit(1)
			}
			config.splitWorkers = intSetting(config.v, cmd, "split-workers", splitWorkersKey)
			if config.profile != "" {
				defer profile.Start(profile.CPUProfile, profile.ProfilePath(config.profile), profile.NoShutdownHook).Stop()
			}
			md, err := config.metadata(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			style := config.style()
			render.WriteNote(os.Stdout, fmt.Sprintf("Note: Using %s dataset", config.dataset), style)
			s, err := config.loadSet(config.Context(), config.datasetPath(config.dataset), md, nil)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			seed := config.v.GetInt64(seedKey)
			config.Logf("Shuffling %d samples with seed %d...", s.Count(), seed)
			s = sapling.Shuffle(s, seed)
			ts, err := config.treeStore()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			if ts != nil {
				defer ts.Close(context.Background())
			}
			cv, err := config.crossValidator(ts)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			report, err := cv.Run(config.Context(), s, md.ClassesFor(s))
			if err != nil {
				fmt.Fprintf(os.Stderr, "cross validating: %v\n", err)
				os.Exit(5)
			}
			err = config.writeReport(config.Context(), os.Stdout, report, ts, md.FeatureNames(featureCountOf(s, md)), style)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
			if config.chart != "" {
				config.Logf("Saving metrics chart at %s...", config.chart)
				err = render.SaveMetricsChart(config.chart, report.Unpruned.Classes(), report.UnprunedMetrics, report.PrunedMetrics)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(7)
				}
			}
		},
	}
	flags := cmd.Flags()
	flags.Int("folds", sapling.DefaultFolds, "number of folds to cross validate")
	flags.Float64("proportion", sapling.DefaultProportion, "proportion of the dataset on the test and validation blocks of each fold")
	flags.Int64("seed", sapling.DefaultSeed, "seed to shuffle the dataset with")
	flags.Int("workers", 0, "number of folds processed concurrently (defaults to one per fold)")
	flags.Int("split-workers", 1, "number of features scanned concurrently when splitting a node")
	config.v.BindPFlag(foldsKey, flags.Lookup("folds"))
	config.v.BindPFlag(proportionKey, flags.Lookup("proportion"))
	config.v.BindPFlag(seedKey, flags.Lookup("seed"))
	config.v.BindPFlag(workersKey, flags.Lookup("workers"))
	flags.StringVar(&(config.prune), "prune", "default", "pruning strategy: default (single pass), repeated (until no twig is pruned) or none")
	flags.StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with the names of features, label and classes of the dataset")
	flags.StringVar(&(config.chart), "chart", "", "path to a PNG file on which to save a chart of the metrics")
	flags.StringVar(&(config.store), "store", "", "store the trees of every fold on memory or redis")
	flags.BoolVar(&(config.noColor), "no-color", false, "disable colours on the output")
	flags.StringVar(&(config.profile), "profile", "", "write a CPU profile of the run on the given directory")
	return cmd
}

// parseArgs takes the positional arguments: a dataset and the tree variant to show.
func (ccc *cvCmdConfig) parseArgs(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	if args[0] == "" {
		return fmt.Errorf("dataset cannot be empty")
	}
	if args[1] != "pruned" && args[1] != "unpruned" {
		return fmt.Errorf("tree variant must be pruned or unpruned, got %q", args[1])
	}
	ccc.dataset, ccc.variant = args[0], args[1]
	return nil
}

func (ccc *cvCmdConfig) Validate() error {
	if _, err := pruner(ccc.prune); err != nil {
		return err
	}
	switch ccc.store {
	case "", "memory", "redis":
	default:
		return fmt.Errorf("unknown tree store %q: expected memory or redis", ccc.store)
	}
	return nil
}

func (ccc *cvCmdConfig) style() render.Style {
	if ccc.noColor {
		return render.PlainStyle()
	}
	return render.DefaultStyle()
}

// treeStore returns the store for fold trees, nil if they are not to be stored.
func (ccc *cvCmdConfig) treeStore() (bio.TreeStore, error) {
	switch ccc.store {
	case "memory":
		return bio.NewMemoryTreeStore(), nil
	case "redis":
		addr := ccc.v.GetString(redisAddrKey)
		ccc.Logf("Connecting to redis at %s...", addr)
		client, err := redisstore.Dial(addr)
		if err != nil {
			return nil, err
		}
		return redisstore.New(client, ccc.v.GetString(redisPrefixKey), nil), nil
	}
	return nil, nil
}

func (ccc *cvCmdConfig) crossValidator(ts bio.TreeStore) (*sapling.CrossValidator, error) {
	p, err := pruner(ccc.prune)
	if err != nil {
		return nil, err
	}
	logger := ccc.foldLogger()
	cv := &sapling.CrossValidator{
		Folds:      ccc.v.GetInt(foldsKey),
		Proportion: ccc.v.GetFloat64(proportionKey),
		Workers:    ccc.v.GetInt(workersKey),
		Pot: sapling.New(
			sapling.SplitWorkers(ccc.splitWorkers),
			sapling.PotLogger(logger),
		),
		Pruner: p,
		Logger: logger,
	}
	if ts != nil {
		cv.OnFold = func(ctx context.Context, r *sapling.FoldResult) error {
			return bio.StoreFoldTrees(ctx, ts, r)
		}
	}
	return cv, nil
}

/*
writeReport writes the tree of the first fold followed by the cumulative
matrices and metrics of the report. The tree is read back from ts if fold
trees were stored.
*/
func (ccc *cvCmdConfig) writeReport(ctx context.Context, w io.Writer, report *sapling.Report, ts bio.TreeStore, names []string, style render.Style) error {
	pruned := ccc.variant != "unpruned"
	tree := report.Folds[0].Pruned
	if !pruned {
		tree = report.Folds[0].Unpruned
	}
	if ts != nil {
		var err error
		tree, err = ts.Get(ctx, bio.FoldKey(0, pruned))
		if err != nil {
			return fmt.Errorf("reading tree of fold 0: %w", err)
		}
	}
	if err := render.WriteHeading(w, "Visualisation ", style); err != nil {
		return err
	}
	if err := render.WriteTree(w, tree, names, style); err != nil {
		return err
	}
	fmt.Fprintln(w)
	if err := render.WriteHeading(w, "Confusion Matrices ", style); err != nil {
		return err
	}
	if err := render.WriteConfusionMatrix(w, "Cumulative Unpruned Confusion Matrix", report.Unpruned, style); err != nil {
		return err
	}
	if err := render.WriteConfusionMatrix(w, "Cumulative Pruned Confusion Matrix", report.Pruned, style); err != nil {
		return err
	}
	return render.WriteSummary(w, report.UnprunedMetrics, report.PrunedMetrics, style)
}

// pruner returns the Pruner for a pruning strategy name.
func pruner(name string) (sapling.Pruner, error) {
	switch name {
	case "", "default":
		return sapling.ReducedErrorPruner(), nil
	case "repeated":
		return sapling.RepeatedReducedErrorPruner(), nil
	case "none":
		return sapling.NoPruner(), nil
	}
	return nil, fmt.Errorf("unknown pruning strategy %q: expected default, repeated or none", name)
}
