package views

import (
	"context"

	"go.uber.org/zap"

	"github.com/mycotrack/mycotrack/pkg/client"
	"github.com/mycotrack/mycotrack/pkg/insights"
)

// Insights is the insight panel of the batch screen.
type Insights struct {
	view *insights.View
}

// NewInsights creates an idle insight panel that fetches through api.
func NewInsights(api client.API, logger *zap.Logger) *Insights {
	return &Insights{view: insights.NewView(api.GetInsights, logger)}
}

// Show syncs the panel to detail and returns its state.
func (i *Insights) Show(ctx context.Context, detail *Detail) insights.Snapshot {
	if detail == nil {
		return i.view.Snapshot()
	}
	return i.view.Sync(ctx, detail.InsightKey())
}

// Retry re-runs a failed insight load.
func (i *Insights) Retry(ctx context.Context) insights.Snapshot {
	return i.view.Retry(ctx)
}

// Refresh fetches the insights of the current batch again.
func (i *Insights) Refresh(ctx context.Context) insights.Snapshot {
	return i.view.Refresh(ctx)
}

// Snapshot returns the panel's current state.
func (i *Insights) Snapshot() insights.Snapshot {
	return i.view.Snapshot()
}
