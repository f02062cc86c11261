package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

type loggerConfig struct {
	Level      string
	Format     string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

func loggerConfigFrom(v *viper.Viper) loggerConfig {
	return loggerConfig{
		Level:      v.GetString(logLevelKey),
		Format:     v.GetString(logFormatKey),
		File:       v.GetString(logFileKey),
		MaxSize:    v.GetInt(logMaxSizeKey),
		MaxBackups: v.GetInt(logBackupsKey),
		MaxAge:     v.GetInt(logMaxAgeKey),
		Compress:   v.GetBool(logCompressKey),
	}
}

/*
newLogger returns a logger writing on the configured file, rotated with
lumberjack, or on w if no file is configured.
*/
func newLogger(cfg loggerConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", cfg.Level)
	}
	if cfg.File != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
	}
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Key = "timestamp"
			}
			return a
		},
	}
	var handler slog.Handler
	switch cfg.Format {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return slog.New(handler), nil
}

// Logf reports progress, only when running verbosely.
func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	if !rcc.verbose {
		return
	}
	rcc.Logger().Info(fmt.Sprintf(format, a...))
}

// foldLogger returns the logger given to library types: silent unless verbose.
func (rcc *rootCmdConfig) foldLogger() *slog.Logger {
	if !rcc.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return rcc.Logger()
}
