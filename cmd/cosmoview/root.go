// cmd/cosmoview/root.go
package cosmoview

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mwiater/cosmoview/catalog"
	"github.com/mwiater/cosmoview/internal/dataset"
	"github.com/mwiater/cosmoview/internal/query"
	"github.com/mwiater/cosmoview/internal/viewer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd is the base Cobra command for the cosmoview application.
// All subcommands are attached to this root to form the complete CLI.
var rootCmd = &cobra.Command{
	Use:           "cosmoview",
	Short:         "Explore precomputed clustering and halo mass function datasets",
	Long:          `cosmoview loads a precomputed ξ(r) / n(M) dataset, lets you move through its cosmological parameter grid and recomputes the curves and summary statistics for every selection.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root Cobra command and all registered subcommands.
// It prints any returned error and exits the process with a non-zero
// status code on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var (
	cfgFile     string
	datasetName string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.json", "config file listing the datasets")
	rootCmd.PersistentFlags().StringVarP(&datasetName, "dataset", "d", "", "dataset name from the config (default: default_dataset)")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("dataset", rootCmd.PersistentFlags().Lookup("dataset"))
}

// newLogger returns the CLI logger: text on w, debug level when debug is set.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// commandContext returns the command context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig reads the config named by --config.
func loadConfig() (catalog.Config, error) {
	return catalog.LoadConfig(viper.GetString("config"))
}

// openDataset loads the dataset named by --dataset.
func openDataset(cmd *cobra.Command) (catalog.Config, catalog.Entry, *dataset.Dataset, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, catalog.Entry{}, nil, nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Debug)
	ds, entry, err := cfg.Load(commandContext(cmd), viper.GetString("dataset"), dataset.WithLogger(logger))
	if err != nil {
		return cfg, entry, nil, logger, err
	}
	return cfg, entry, ds, logger, nil
}

// openSession loads the dataset and starts a session with the configured
// display defaults.
func openSession(cmd *cobra.Command) (*viewer.Session, error) {
	cfg, entry, ds, logger, err := openDataset(cmd)
	if err != nil {
		return nil, err
	}
	return viewer.NewSession(ds,
		viewer.WithName(entry.Name),
		viewer.WithOptions(query.Options{ShowFiducial: cfg.ShowFiducial}),
		viewer.WithLogger(logger),
	), nil
}
