// Package cmd contains all CLI commands for nutri-dash.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"nutri-dash/internal/config"
	"nutri-dash/internal/dataset"
	"nutri-dash/internal/storage"
)

// Version is the current version of nutri-dash
var Version = "1.0.0"

// options holds the global flags shared by every command.
type options struct {
	configPath  string
	datasetPath string
	source      string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "nutri-dash",
		Short: "Nutrition dashboard for vegetarian foods",
		Long: `nutri-dash loads a table of vegetarian foods (protein, fat, fiber and
carbohydrate per 100 g) and serves an interactive comparison dashboard.

The dataset comes from a CSV file, a SQLite database created with
'nutri-dash import', or a CSV served over HTTP. Settings are read from
nutri-dash.yaml in the working directory unless --config is given.

Examples:
  nutri-dash serve                            # Start the dashboard on :8011
  nutri-dash compare Spinach Lentils          # Compare foods in the terminal
  nutri-dash top --nutrient fiber             # Top 15 fiber sources
  nutri-dash import --db foods.db             # Copy the CSV into SQLite
  nutri-dash render --out charts --food Peas  # Write SVG charts to a directory`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default: "+config.ConfigFileName+")")
	root.PersistentFlags().StringVar(&opts.datasetPath, "dataset", "", "Dataset location: CSV path, SQLite path or URL depending on --source")
	root.PersistentFlags().StringVar(&opts.source, "source", "", "Dataset source (csv|sqlite|url)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(
		newServeCmd(opts),
		newImportCmd(opts),
		newFoodsCmd(opts),
		newCompareCmd(opts),
		newTopCmd(opts),
		newStatsCmd(opts),
		newRenderCmd(opts),
		newInitConfigCmd(opts),
	)

	return root
}

// Execute runs the root command and exits non-zero on error.
// This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the global flag overrides.
func (o *options) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = config.ConfigFileName
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}

	if o.source != "" {
		cfg.Dataset.Source = o.source
	}
	if o.datasetPath != "" {
		switch cfg.Dataset.Source {
		case config.SourceSQLite:
			cfg.Dataset.DBPath = o.datasetPath
		case config.SourceURL:
			cfg.Dataset.URL = o.datasetPath
		default:
			cfg.Dataset.Path = o.datasetPath
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDataset loads the food table from the configured source.
func loadDataset(ctx context.Context, cfg config.DatasetConfig) (*dataset.Dataset, error) {
	switch cfg.Source {
	case config.SourceSQLite:
		// opening a missing file would create an empty database
		if _, err := os.Stat(cfg.DBPath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				err = fmt.Errorf("%w: %w", dataset.ErrSourceNotFound, err)
			}
			return nil, &dataset.LoadError{Source: cfg.DBPath, Err: err}
		}
		store, err := storage.NewSQLiteStorage(cfg.DBPath)
		if err != nil {
			return nil, &dataset.LoadError{Source: cfg.DBPath, Err: err}
		}
		defer store.Close()

		ds, err := store.LoadDataset()
		if err != nil {
			return nil, &dataset.LoadError{Source: cfg.DBPath, Err: err}
		}
		return ds, nil
	case config.SourceURL:
		return dataset.NewFetcher(cfg.Timeout(), "").Fetch(ctx, cfg.URL)
	default:
		return dataset.Load(cfg.Path)
	}
}

// setup loads config and dataset for commands that need both.
func (o *options) setup(ctx context.Context) (*config.Config, *dataset.Dataset, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	ds, err := loadDataset(ctx, cfg.Dataset)
	if err != nil {
		return nil, nil, err
	}
	if o.verbose {
		st := ds.Stats()
		log.Printf("Loaded %d foods (%d rows, %d incomplete, %d duplicates)",
			st.Kept, st.Rows, st.Incomplete, st.Duplicates)
	}
	return cfg, ds, nil
}
