package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"nutri-dash/internal/charts"
	"nutri-dash/internal/dataset"
	"nutri-dash/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2C3E50")).Padding(0, 1)
	nameStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BDC3C7"))
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

// renderTable lays out rows with the first column left aligned and the rest
// right aligned.
func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return nameStyle
			default:
				return numberStyle
			}
		})
	return t.Render()
}

func grams(v float64) string {
	return strconv.FormatFloat(charts.Round1(v), 'f', 1, 64)
}

func newFoodsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "foods",
		Short: "List the foods in the dataset",
		Long:  `Print every food name in alphabetical order, one per line.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ds, err := opts.setup(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range ds.Options() {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func newCompareCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "compare FOOD [FOOD...]",
		Short: "Compare up to five foods side by side",
		Long: `Print the detailed comparison table for the given foods, values rounded
to one decimal place.

Examples:
  nutri-dash compare Spinach "Lentils Boiled" Peas`,
		Args: cobra.RangeArgs(1, dataset.MaxSelection),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ds, err := opts.setup(cmd.Context())
			if err != nil {
				return err
			}
			sel, err := ds.Select(args...)
			if err != nil {
				return err
			}
			tbl, err := charts.BuildComparison(ds, sel)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(tbl.Rows))
			for _, r := range tbl.Rows {
				rows = append(rows, []string{r.Food, grams(r.ProteinG), grams(r.FatG), grams(r.FiberG), grams(r.CarbG)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(tbl.Columns, rows))
			return nil
		},
	}
}

func newTopCmd(opts *options) *cobra.Command {
	var nutrient string

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the top 15 foods for a nutrient",
		Long: `Rank the dataset by one nutrient and print the 15 richest foods, best
first, with the percentile band of each value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := models.ParseNutrient(nutrient)
			if err != nil {
				return err
			}
			_, ds, err := opts.setup(cmd.Context())
			if err != nil {
				return err
			}
			chart, err := charts.BuildTopPerformers(ds, k)
			if err != nil {
				return err
			}

			// bars are ascending for plotting; print best first
			rows := make([][]string, 0, len(chart.Bars))
			for i := len(chart.Bars) - 1; i >= 0; i-- {
				b := chart.Bars[i]
				rank := len(chart.Bars) - i
				rows = append(rows, []string{strconv.Itoa(rank), b.Food, grams(b.Value), string(b.Bucket)})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(chart.Title))
			fmt.Fprintln(out, renderTable([]string{"#", "Food", chart.AxisLabel, "Band"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&nutrient, "nutrient", "n", models.Protein.String(), "Nutrient to rank by (protein|fat|fiber|carbs)")

	return cmd
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dataset statistics and percentile cut points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ds, err := opts.setup(cmd.Context())
			if err != nil {
				return err
			}
			qs, err := charts.BuildQuickStats(ds)
			if err != nil {
				return err
			}

			st := ds.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Quick Stats"))
			fmt.Fprintln(out, renderTable(
				[]string{"Total Foods", "Highest Protein", "Highest Fiber", "Lowest Carbs"},
				[][]string{{strconv.Itoa(qs.TotalFoods), grams(qs.HighestProtein) + "g", grams(qs.HighestFiber) + "g", grams(qs.LowestCarbs) + "g"}},
			))
			fmt.Fprintf(out, "%d rows read, %d incomplete, %d duplicates\n\n", st.Rows, st.Incomplete, st.Duplicates)

			pct := ds.Percentiles()
			rows := make([][]string, 0, len(models.Nutrients))
			for _, k := range models.Nutrients {
				c := pct[k]
				rows = append(rows, []string{k.String(), grams(c.P25), grams(c.P50), grams(c.P75), grams(c.P90), grams(c.P95)})
			}
			fmt.Fprintln(out, titleStyle.Render("Percentiles (g per 100g)"))
			fmt.Fprintln(out, renderTable([]string{"Nutrient", "p25", "p50", "p75", "p90", "p95"}, rows))
			return nil
		},
	}
}
