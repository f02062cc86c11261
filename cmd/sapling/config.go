package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Settings that can be given on the configuration file or as SAPLING_*
// environment variables, with "." replaced by "_".
const (
	cleanDatasetKey = "datasets.clean"
	noisyDatasetKey = "datasets.noisy"
	foldsKey        = "folds"
	proportionKey   = "proportion"
	seedKey         = "seed"
	workersKey      = "workers"
	splitWorkersKey = "split_workers"
	logLevelKey     = "log.level"
	logFormatKey    = "log.format"
	logFileKey      = "log.file"
	logMaxSizeKey   = "log.max_size"
	logBackupsKey   = "log.max_backups"
	logMaxAgeKey    = "log.max_age"
	logCompressKey  = "log.compress"
	redisAddrKey    = "redis.addr"
	redisPrefixKey  = "redis.prefix"
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(cleanDatasetKey, "./wifi_db/clean_dataset.txt")
	v.SetDefault(noisyDatasetKey, "./wifi_db/noisy_dataset.txt")
	v.SetDefault(foldsKey, 10)
	v.SetDefault(proportionKey, 0.1)
	v.SetDefault(seedKey, 60012)
	v.SetDefault(workersKey, 0)
	v.SetDefault(splitWorkersKey, 1)
	v.SetDefault(logLevelKey, "info")
	v.SetDefault(logFormatKey, "text")
	v.SetDefault(logFileKey, "")
	v.SetDefault(logMaxSizeKey, 100)
	v.SetDefault(logBackupsKey, 3)
	v.SetDefault(logMaxAgeKey, 28)
	v.SetDefault(logCompressKey, false)
	v.SetDefault(redisAddrKey, "localhost:6379")
	v.SetDefault(redisPrefixKey, "sapling")
	v.SetEnvPrefix("SAPLING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func readConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

/*
intSetting returns the value of an int flag of cmd if it was set on the
command line, or the value configured for key otherwise. It serves flags
shared by several commands, which cannot all be bound to the same key.
*/
func intSetting(v *viper.Viper, cmd *cobra.Command, flag, key string) int {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		n, err := cmd.Flags().GetInt(flag)
		if err == nil {
			return n
		}
	}
	return v.GetInt(key)
}
