package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"

	"github.com/dshills/alatty/internal/config"
	"github.com/dshills/alatty/internal/config/layer"
	"github.com/dshills/alatty/internal/config/loader"
)

// EnvConfigDir overrides the directory the default config file is read from.
const EnvConfigDir = "ALATTY_CONFIG_DIRECTORY"

type rootOptions struct {
	configPaths []string
	overrides   []string
	defaults    string
	logFile     string
	debug       bool

	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	ro := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "alatty-config",
		Short:        "Inspect alatty configuration",
		Long:         `Load alatty configuration files the way the terminal does and report what they produce.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return ro.setupLogging(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if ro.logCloser != nil {
				return ro.logCloser.Close()
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringArrayVarP(&ro.configPaths, "config", "c", nil, "config file to load, may be repeated (default "+defaultConfigPath()+")")
	flags.StringArrayVarP(&ro.overrides, "override", "o", nil, `override a setting, as "name=value" or a config line`)
	flags.StringVar(&ro.defaults, "defaults", "", "TOML file with default settings (default built in)")
	flags.StringVar(&ro.logFile, "log-file", "", "also write JSON logs to this file")
	flags.BoolVar(&ro.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newCheckCmd(ro),
		newShowCmd(ro),
		newWatchCmd(ro),
		newCacheCmd(),
	)
	return cmd
}

// setupLogging installs the default logger: text on stderr, plus JSON to the
// log file when one is given.
func (ro *rootOptions) setupLogging(stderr io.Writer) error {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if ro.debug {
		opts.Level = slog.LevelDebug
	}

	handlers := []slog.Handler{slog.NewTextHandler(stderr, opts)}
	if ro.logFile != "" {
		f, err := os.OpenFile(ro.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		ro.logCloser = f
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))
	return nil
}

func (ro *rootOptions) paths() []string {
	if len(ro.configPaths) > 0 {
		return ro.configPaths
	}
	return []string{defaultConfigPath()}
}

func (ro *rootOptions) baseline() (*layer.Record, error) {
	if ro.defaults == "" {
		return config.DefaultBaseline()
	}
	b, err := loader.LoadBaseline(loader.DefaultFS(), ro.defaults)
	if err != nil {
		return nil, &config.FatalError{Source: ro.defaults, Err: err}
	}
	return b, nil
}

func (ro *rootOptions) loader() (*config.Loader, error) {
	b, err := ro.baseline()
	if err != nil {
		return nil, err
	}
	return config.New(b, config.WithLogger(slog.Default())), nil
}

func defaultConfigPath() string {
	dir := os.Getenv(EnvConfigDir)
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		dir = filepath.Join(base, "alatty")
	}
	return filepath.Join(dir, "alatty.conf")
}
