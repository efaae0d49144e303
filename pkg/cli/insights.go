package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mycotrack/mycotrack/pkg/insights"
	"github.com/mycotrack/mycotrack/pkg/views"
)

func (a *app) insightsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "insights <batch-id>",
		Short: "Show service-computed insights for a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBatchID(args[0])
			if err != nil {
				return err
			}

			detail, err := views.NewBatchDetail(a.api, a.logger).Open(cmd.Context(), id)
			if err != nil {
				return err
			}

			snap := views.NewInsights(a.api, a.logger).Show(cmd.Context(), detail)
			if snap.State == insights.StateFailure {
				return snap.Err
			}

			rendering := snap.Rendering()
			p := a.printer(cmd.OutOrStdout())
			if ok, err := p.structured(rendering); ok {
				return err
			}
			printInsights(p, rendering)
			return nil
		},
	}
}

func printInsights(p printer, r insights.Rendering) {
	if r.IsPlaceholder() {
		p.line(styles.Muted.Render(r.Placeholder))
		return
	}

	for i, s := range r.Sections {
		if i > 0 {
			p.line("")
		}
		p.line(sectionStyle(s.Kind).Render(s.Title))
		if s.Kind == insights.KindSummary {
			p.line(s.Text)
			continue
		}
		for _, item := range s.Items {
			p.line("  • " + item)
		}
	}
}

func sectionStyle(k insights.Kind) lipgloss.Style {
	switch k {
	case insights.KindWarnings:
		return styles.Warning.Bold(true)
	case insights.KindAnomalies:
		return styles.Error
	case insights.KindSuggestions:
		return styles.Success.Bold(true)
	case insights.KindTrends:
		return styles.Info.Bold(true)
	default:
		return styles.Title
	}
}
