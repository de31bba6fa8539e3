package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yhekr/abexp"
	"github.com/yhekr/abexp/internal/logging"
)

// app carries state shared by all commands of one invocation.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *abexp.Config
	logger abexp.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "abexp",
		Short:         "Inspect and edit A/B cohort assignment",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to the YAML configuration file")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "console", "log format: text, json, console")

	root.AddCommand(
		newStatusCmd(a),
		newDescribeCmd(a),
		newListCmd(a),
		newOverrideCmd(a),
		newSeedCmd(a),
		newCollectCmd(a),
		newMenuCmd(a),
	)

	return root
}

func (a *app) init(logOut io.Writer) error {
	logger, err := newLogger(logOut, a.logLevel, a.logFormat)
	if err != nil {
		return err
	}
	a.logger = logger

	if a.configPath == "" {
		cfg := abexp.DefaultConfig()
		a.cfg = &cfg

		return nil
	}

	cfg, err := abexp.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	return nil
}

// engine builds an engine over the configured catalog and override store.
// The returned function releases the store.
func (a *app) engine(ctx context.Context, opts ...abexp.Option) (*abexp.Engine, func(), error) {
	store, closeStore, err := abexp.OpenOverrideStore(ctx, a.cfg.Overrides)
	if err != nil {
		return nil, nil, err
	}

	opts = append([]abexp.Option{abexp.WithLogger(a.logger)}, opts...)
	engine, err := abexp.NewEngine(a.cfg, abexp.NewConfigSource(a.cfg), store, opts...)
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	return engine, closeStore, nil
}

func newLogger(w io.Writer, level, format string) (abexp.Logger, error) {
	switch strings.ToLower(format) {
	case "console", "":
		return logging.NewZerologConsole(w, level), nil
	case "text":
		return logging.NewSlogWriter(w, level, false), nil
	case "json":
		return logging.NewSlogWriter(w, level, true), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want text, json or console)", format)
	}
}
