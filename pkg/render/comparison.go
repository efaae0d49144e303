package render

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/mycotrack/mycotrack/pkg/models"
)

func batchLabel(id int) string {
	return fmt.Sprintf("Batch %d", id)
}

// ComparisonYield draws total yield per batch.
func (r *Renderer) ComparisonYield(w io.Writer, totals []models.YieldTotal) error {
	if len(totals) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, len(totals))
	ys := make([]float64, len(totals))
	for i, t := range totals {
		bars[i] = chart.Value{Label: batchLabel(t.BatchID), Value: t.TotalYield, Style: barStyle(colorYield)}
		ys[i] = t.TotalYield
	}

	return r.renderBars(w, chart.BarChart{
		Title: "Total Yield by Batch",
		YAxis: chart.YAxis{Name: "Yield (kg)", Range: valueRange(ys, true)},
		Bars:  bars,
	})
}

// ComparisonConditions draws average temperature (left axis) and humidity
// (right axis) per batch. Batches missing an average are left out of that line.
func (r *Renderer) ComparisonConditions(w io.Writer, conditions []models.AverageConditions) error {
	labels := make([]string, len(conditions))
	var tempX, tempY, humX, humY []float64
	for i, c := range conditions {
		labels[i] = batchLabel(c.BatchID)
		x := float64(i + 1)
		if t, ok := c.AvgTemperature.Get(); ok {
			tempX, tempY = append(tempX, x), append(tempY, t)
		}
		if h, ok := c.AvgHumidity.Get(); ok {
			humX, humY = append(humX, x), append(humY, h)
		}
	}
	if len(tempY) == 0 && len(humY) == 0 {
		return ErrNoData
	}

	ch := chart.Chart{
		Title: "Average Conditions by Batch",
		XAxis: indexAxis("Batch", labels),
	}
	if len(tempY) > 0 {
		ch.YAxis = chart.YAxis{Name: "Temperature (°C)", Range: valueRange(tempY, false)}
		ch.Series = append(ch.Series, lineSeries("Avg Temperature", tempX, tempY, colorTemperature, chart.YAxisPrimary))
	}
	if len(humY) > 0 {
		axis := chart.YAxisSecondary
		if len(tempY) == 0 {
			axis = chart.YAxisPrimary
			ch.YAxis = chart.YAxis{Name: "Humidity (%)", Range: valueRange(humY, false)}
		} else {
			ch.YAxisSecondary = chart.YAxis{Name: "Humidity (%)", Range: valueRange(humY, false)}
		}
		ch.Series = append(ch.Series, lineSeries("Avg Humidity", humX, humY, colorHumidity, axis))
	}

	return r.renderChart(w, ch)
}
