package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootCmdConfig struct {
	verbose    bool
	configFile string
	v          *viper.Viper
	logger     *slog.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{v: newViper()}
	rootCmd := &cobra.Command{
		Use:   "sapling",
		Short: "sapling is a tool to grow decision trees",
		Long:  `A tool to grow classification trees from your data, prune them, cross-validate them and render them`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			err := config.load()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "report progress on STDERR")
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YAML configuration file (settings can also be given as SAPLING_* environment variables)")
	rootCmd.AddCommand(
		versionCmd(),
		cvCmd(config),
		growCmd(config),
		pruneCmd(config),
		testCmd(config),
		showCmd(config),
		setCmd(config),
		predictCmd(config),
	)
	return rootCmd
}

// load reads the configuration file, if any, and sets up the logger.
func (rcc *rootCmdConfig) load() error {
	err := readConfigFile(rcc.v, rcc.configFile)
	if err != nil {
		return err
	}
	rcc.logger, err = newLogger(loggerConfigFrom(rcc.v), os.Stderr)
	return err
}

func (rcc *rootCmdConfig) Logger() *slog.Logger {
	if rcc.logger == nil {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return rcc.logger
}

func (rcc *rootCmdConfig) Context() context.Context {
	rcc.setContextAndCancelFunc()
	return rcc.ctx
}

func (rcc *rootCmdConfig) ContextCancelFunc() context.CancelFunc {
	rcc.setContextAndCancelFunc()
	return rcc.cancelFunc
}

func (rcc *rootCmdConfig) setContextAndCancelFunc() {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = context.WithCancel(context.Background())
	}
}
