package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"nutri-dash/internal/config"
	"nutri-dash/internal/storage"
)

func newImportCmd(opts *options) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the dataset into a SQLite database",
		Long: `Load the dataset from the configured source, applying the usual cleaning
rules, and replace the contents of a SQLite database with it. Serve from the
database afterwards with --source sqlite.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ds, err := opts.setup(cmd.Context())
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = cfg.Dataset.DBPath
			}
			if cfg.Dataset.Source == config.SourceSQLite && dbPath == cfg.Dataset.DBPath {
				return fmt.Errorf("import source and target are the same database: %s", dbPath)
			}

			store, err := storage.NewSQLiteStorage(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveDataset(ds); err != nil {
				return err
			}
			n, err := store.CountFoods()
			if err != nil {
				return err
			}

			st := ds.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d foods into %s (%d incomplete rows and %d duplicates skipped)\n",
				n, dbPath, st.Incomplete, st.Duplicates)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Target database path (default: dataset.db_path)")

	return cmd
}
