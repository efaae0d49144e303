package cli

import (
	"cmp"

	"github.com/spf13/cobra"

	"github.com/mycotrack/mycotrack/pkg/charts"
	"github.com/mycotrack/mycotrack/pkg/render"
	"github.com/mycotrack/mycotrack/pkg/views"
)

func (a *app) renderer(format string) (*render.Renderer, error) {
	f, err := render.ParseFormat(cmp.Or(format, a.cfg.Charts.Format))
	if err != nil {
		return nil, err
	}
	return render.NewRenderer(render.Options{
		Width:  a.cfg.Charts.Width,
		Height: a.cfg.Charts.Height,
		Format: f,
	}, a.logger), nil
}

func (a *app) chartsCommand() *cobra.Command {
	var outDir, format string

	cmd := &cobra.Command{
		Use:   "charts <batch-id>",
		Short: "Render yield and correlation charts for a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBatchID(args[0])
			if err != nil {
				return err
			}
			r, err := a.renderer(format)
			if err != nil {
				return err
			}

			detail, err := views.NewBatchDetail(a.api, a.logger).Open(cmd.Context(), id)
			if err != nil {
				return err
			}

			var outputs []render.Output
			if detail.Charts.Status == charts.StatusReady {
				outputs, err = r.WriteBatchCharts(cmp.Or(outDir, a.cfg.Charts.OutputDir), id, detail.Charts)
				if err != nil {
					return err
				}
			}

			p := a.printer(cmd.OutOrStdout())
			if ok, err := p.structured(struct {
				Charts charts.Set      `json:"charts"`
				Files  []render.Output `json:"files"`
			}{detail.Charts, outputs}); ok {
				return err
			}
			printChartOutputs(p, detail.Charts.Status, outputs)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "output directory (defaults to charts.output_dir)")
	cmd.Flags().StringVar(&format, "format", "", "image format: png or svg (defaults to charts.format)")
	return cmd
}

func printChartOutputs(p printer, status charts.Status, outputs []render.Output) {
	switch status {
	case charts.StatusNoData:
		p.line(styles.Muted.Render("No data logged yet."))
		return
	case charts.StatusInsufficient:
		p.line(styles.Muted.Render("Insufficient data for charts. Log both observations and harvests."))
		return
	}

	for _, out := range outputs {
		if out.Skipped {
			p.line(styles.Muted.Render(out.Name + ": insufficient data"))
			continue
		}
		p.line(styles.Success.Render("wrote ") + out.Path)
	}
}
