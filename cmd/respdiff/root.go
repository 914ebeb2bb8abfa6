package main

import (
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aleister1102/respdiff/internal/config"
	"github.com/aleister1102/respdiff/internal/history"
	"github.com/aleister1102/respdiff/internal/httpclient"
	"github.com/aleister1102/respdiff/internal/logger"
	"github.com/aleister1102/respdiff/internal/source"
)

// app carries the global flags and everything built from them.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	dbPath     string

	cfg    *config.Config
	log    *logger.Logger
	logger zerolog.Logger
}

func rootCmd(a *app) *cobra.Command {
	command := &cobra.Command{
		Use:   "respdiff",
		Short: "respdiff compares JSON documents structurally",
		Long: `respdiff compares two JSON documents after normalizing them.

Documents are referenced by file path, "-" for stdin, an http(s) URL, or
"snapshot:<name>" for the latest saved snapshot of a name. Files ending in
.yaml or .yml are read as YAML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := command.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to a YAML/JSON config file (default: searches "+config.ConfigPathEnv+", ./respdiff.yaml, ./respdiff.json)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: console, json, text")
	flags.StringVar(&a.dbPath, "db", "", "path to the snapshot database")

	command.AddCommand(compareCmd(a))
	command.AddCommand(redactCmd(a))
	command.AddCommand(canonicalizeCmd(a))
	command.AddCommand(snapshotCmd(a))

	return command
}

// setup loads and validates configuration, applies flag overrides and
// builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, zerolog.Nop())
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if flags.Changed("db") {
		cfg.Storage.SQLitePath = a.dbPath
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	log, err := logger.NewLoggerBuilder().
		WithConfig(cfg.Log).
		WithConsoleOutput(cmd.ErrOrStderr()).
		WithNoColor(color.NoColor).
		Build()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.logger = *log.GetZerolog()
	a.logger.Debug().Str("command", cmd.CommandPath()).Msg("Configuration loaded")
	return nil
}

func (a *app) close() {
	if a.log != nil {
		_ = a.log.Close()
	}
}

func (a *app) openStore() (*history.Store, error) {
	return history.Open(a.cfg.Storage.SQLitePath, a.logger)
}

// newLoader builds a loader that can fetch URLs and, when store is not nil,
// resolve snapshot references.
func (a *app) newLoader(cmd *cobra.Command, store *history.Store) (*source.Loader, error) {
	client, err := httpclient.NewBuilder(a.logger).
		WithFetchConfig(a.cfg.Fetch).
		Build()
	if err != nil {
		return nil, err
	}

	builder := source.NewLoaderBuilder(a.logger).
		WithFetcher(client).
		WithStdin(cmd.InOrStdin())
	if store != nil {
		builder = builder.WithSnapshots(store)
	}
	return builder.Build(), nil
}

// needsStore reports whether any ref points at a snapshot.
func needsStore(refs ...string) bool {
	for _, ref := range refs {
		if source.KindOf(ref) == source.RefSnapshot {
			return true
		}
	}
	return false
}
