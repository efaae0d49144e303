package render

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/mycotrack/mycotrack/pkg/charts"
)

// YieldPerFlush draws one bar per harvest.
func (r *Renderer) YieldPerFlush(w io.Writer, points []charts.FlushPoint) error {
	if len(points) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		bars[i] = chart.Value{Label: p.Label, Value: p.Yield, Style: barStyle(colorYield)}
		ys[i] = p.Yield
	}

	return r.renderBars(w, chart.BarChart{
		Title: "Yield per Flush",
		YAxis: chart.YAxis{Name: "Yield (kg)", Range: valueRange(ys, true)},
		Bars:  bars,
	})
}

// Correlation draws an environmental reading against matched yield. The
// reading uses the left axis and yield the right.
func (r *Renderer) Correlation(w io.Writer, field charts.Field, points []charts.CorrelationPoint) error {
	if len(points) == 0 {
		return ErrNoData
	}

	name, unit, col := "Humidity", "Humidity (%)", colorHumidity
	if field == charts.FieldTemperature {
		name, unit, col = "Temperature", "Temperature (°C)", colorTemperature
	}

	labels := make([]string, len(points))
	xs := make([]float64, len(points))
	values := make([]float64, len(points))
	yields := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Label
		xs[i] = float64(i + 1)
		values[i] = p.Value
		yields[i] = p.Yield
	}

	return r.renderChart(w, chart.Chart{
		Title:          name + " vs Yield",
		XAxis:          indexAxis("Date", labels),
		YAxis:          chart.YAxis{Name: unit, Range: valueRange(values, false)},
		YAxisSecondary: chart.YAxis{Name: "Yield (kg)", Range: valueRange(yields, true)},
		Series: []chart.Series{
			lineSeries(name, xs, values, col, chart.YAxisPrimary),
			lineSeries("Yield (kg)", xs, yields, colorYield, chart.YAxisSecondary),
		},
	})
}
