package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"nutri-dash/internal/charts"
	"nutri-dash/internal/dataset"
	"nutri-dash/internal/models"
	"nutri-dash/internal/render"
)

func newRenderCmd(opts *options) *cobra.Command {
	var (
		outDir   string
		foods    []string
		nutrient string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the dashboard charts as SVG files",
		Long: `Build every chart panel and write it to --out as an SVG file. A panel
that cannot be built or drawn is reported and skipped; the rest are still
written.

Without --food the first three foods of the dataset are compared.

Examples:
  nutri-dash render --out charts
  nutri-dash render --out charts --food Spinach --food Peas --nutrient fiber`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := models.ParseNutrient(nutrient)
			if err != nil {
				return err
			}
			cfg, ds, err := opts.setup(cmd.Context())
			if err != nil {
				return err
			}

			sel := ds.DefaultSelection()
			if len(foods) > 0 {
				if sel, err = ds.Select(foods...); err != nil {
					return err
				}
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}

			size := render.Size{Width: cfg.Render.Width, Height: cfg.Render.Height}
			written, failed := renderDashboard(outDir, charts.BuildDashboard(ds, sel, k), size)

			out := cmd.OutOrStdout()
			for _, path := range written {
				fmt.Fprintf(out, "wrote %s\n", path)
			}
			for _, msg := range failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", msg)
			}
			if len(written) == 0 {
				return fmt.Errorf("no charts rendered")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "charts", "Output directory")
	cmd.Flags().StringArrayVarP(&foods, "food", "f", nil, fmt.Sprintf("Food to compare (repeatable, max %d)", dataset.MaxSelection))
	cmd.Flags().StringVarP(&nutrient, "nutrient", "n", models.Protein.String(), "Nutrient for the top performers chart")

	return cmd
}

// renderDashboard writes each chart panel of d to dir. It returns the files
// written and a message per panel that failed.
func renderDashboard(dir string, d charts.Dashboard, size render.Size) (written, failed []string) {
	panels := []*charts.Result{d.Radar, d.Scatter, d.Top}
	for _, res := range panels {
		if res == nil {
			continue
		}
		if !res.OK {
			failed = append(failed, fmt.Sprintf("%s: %s", res.Chart, res.Reason))
			continue
		}

		var buf bytes.Buffer
		var err error
		switch c := res.Data.(type) {
		case models.RadarChart:
			err = render.Radar(&buf, c, size)
		case models.ScatterChart:
			err = render.Scatter(&buf, c, size)
		case models.TopPerformersChart:
			err = render.TopPerformers(&buf, c, size)
		}
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", res.Chart, err))
			continue
		}

		path := filepath.Join(dir, res.Chart+".svg")
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", res.Chart, err))
			continue
		}
		written = append(written, path)
	}
	return written, failed
}
