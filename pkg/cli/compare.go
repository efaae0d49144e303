package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mycotrack/mycotrack/pkg/compare"
	"github.com/mycotrack/mycotrack/pkg/render"
	"github.com/mycotrack/mycotrack/pkg/views"
)

func (a *app) compareCommand() *cobra.Command {
	var outDir, format string

	cmd := &cobra.Command{
		Use:   "compare <batch-id> <batch-id> [batch-id...]",
		Short: "Compare yield and conditions across batches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseBatchIDs(args)
			if err != nil {
				return err
			}

			view := views.NewComparison(a.api, a.logger)
			for _, id := range ids {
				view.Select(id)
			}
			result, err := view.Run(cmd.Context())
			if err != nil {
				return err
			}

			var outputs []render.Output
			if outDir != "" && !view.Empty() {
				r, err := a.renderer(format)
				if err != nil {
					return err
				}
				if outputs, err = r.WriteComparisonCharts(outDir, result); err != nil {
					return err
				}
			}

			p := a.printer(cmd.OutOrStdout())
			if ok, err := p.structured(result); ok {
				return err
			}
			printComparison(p, view.Sections())
			for _, out := range outputs {
				if !out.Skipped {
					p.line(styles.Success.Render("wrote ") + out.Path)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "also write comparison charts into this directory")
	cmd.Flags().StringVar(&format, "format", "", "image format: png or svg (defaults to charts.format)")
	return cmd
}

func printComparison(p printer, sections []compare.Section) {
	if len(sections) == 0 {
		p.line(styles.Muted.Render(compare.EmptyMessage))
		return
	}

	for i, s := range sections {
		if i > 0 {
			p.line("")
		}
		p.line(styles.Title.Render(s.Title))
		switch s.Kind {
		case compare.SectionYield:
			rows := make([][]string, len(s.Yields))
			for j, y := range s.Yields {
				rows[j] = []string{strconv.Itoa(y.BatchID), formatFloat(y.TotalYield) + " kg"}
			}
			p.line(table([]string{"BATCH", "TOTAL YIELD"}, rows))
		case compare.SectionConditions:
			rows := make([][]string, len(s.Conditions))
			for j, c := range s.Conditions {
				rows[j] = []string{
					strconv.Itoa(c.BatchID),
					formatOptional(c.AvgTemperature, func(v float64) string { return fmt.Sprintf("%.1f°C", v) }),
					formatOptional(c.AvgHumidity, func(v float64) string { return fmt.Sprintf("%.1f%%", v) }),
				}
			}
			p.line(table([]string{"BATCH", "AVG TEMP", "AVG HUMIDITY"}, rows))
		case compare.SectionInsights:
			for _, text := range s.Insights {
				p.line("  • " + text)
			}
		}
	}
}
