/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/ssargent/indextuple/pkg/catalog"
	"github.com/ssargent/indextuple/pkg/config"
	"github.com/ssargent/indextuple/pkg/metrics"
)

// env is what every subcommand runs against.
type env struct {
	cfg        *config.Config
	schemaName string
	table      *catalog.Table
	logger     *slog.Logger
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
}

type envKey struct{}

func envFrom(cmd *cobra.Command) *env {
	e, _ := cmd.Context().Value(envKey{}).(*env)
	return e
}

// NewRootCmd builds the itupctl command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "itupctl",
		Short: "Build and inspect index tuples",
		Long: `itupctl encodes key values into index tuples, decodes and inspects
tuples given as hex, builds truncated routing keys, and keeps tuples in a
local store.

Schemas are named in the configuration file; values are written as
literals of each column's type, with NULL for a null.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["skipEnv"] == "true" {
				return nil
			}
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), envKey{}, e))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			e := envFrom(cmd)
			if e == nil {
				return nil
			}
			if show, _ := cmd.Flags().GetBool("metrics"); !show {
				return nil
			}
			return writeMetrics(cmd, e.registry)
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", config.GetDefaultConfigPath(), "Configuration file")
	rootCmd.PersistentFlags().StringP("schema", "s", "default", "Schema name from the configuration")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured logging level")
	rootCmd.PersistentFlags().Bool("metrics", false, "Print collected metrics after the command")

	rootCmd.AddCommand(
		newInitCmd(),
		newEncodeCmd(),
		newDecodeCmd(),
		newGetAttrCmd(),
		newTruncateCmd(),
		newInspectCmd(),
		newCapacityCmd(),
		newPutCmd(),
		newGetCmd(),
		newScanCmd(),
		newDeleteCmd(),
	)
	return rootCmd
}

// Execute runs the command tree. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	configPath, _ := cmd.Flags().GetString("config")
	schemaName, _ := cmd.Flags().GetString("schema")
	levelOverride, _ := cmd.Flags().GetString("log-level")

	cfg := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if levelOverride != "" {
		cfg.Logging.Level = levelOverride
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	level, _ := cfg.Logging.SlogLevel()
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	table, err := cfg.Table(schemaName)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded schema", "schema", schemaName, "attributes", table.Schema.NumAttrs(), "config", configPath)

	registry := prometheus.NewRegistry()
	collector := metrics.NewSchemaCollector()
	collector.Track(schemaName, table.Schema)
	registry.MustRegister(collector)

	return &env{
		cfg:        cfg,
		schemaName: schemaName,
		table:      table,
		logger:     logger,
		registry:   registry,
		metrics:    metrics.NewMetrics(registry),
	}, nil
}

func writeMetrics(cmd *cobra.Command, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(cmd.ErrOrStderr(), mf); err != nil {
			return errors.Wrap(err, "writing metrics")
		}
	}
	return nil
}
