package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mycotrack/mycotrack/pkg/charts"
	"github.com/mycotrack/mycotrack/pkg/models"
)

// Output records one chart written to disk, or skipped for lack of data.
type Output struct {
	Name    string `json:"name"`
	Path    string `json:"path,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
}

type drawFunc func(io.Writer) error

// WriteBatchCharts writes the three batch charts into dir.
func (r *Renderer) WriteBatchCharts(dir string, batchID int, set charts.Set) ([]Output, error) {
	prefix := fmt.Sprintf("batch-%d-", batchID)
	return r.writeAll(dir, []namedChart{
		{prefix + "yield-per-flush", func(w io.Writer) error { return r.YieldPerFlush(w, set.YieldPerFlush) }},
		{prefix + "humidity-vs-yield", func(w io.Writer) error {
			return r.Correlation(w, charts.FieldHumidity, set.HumidityYield)
		}},
		{prefix + "temperature-vs-yield", func(w io.Writer) error {
			return r.Correlation(w, charts.FieldTemperature, set.TemperatureYield)
		}},
	})
}

// WriteComparisonCharts writes the comparison charts into dir.
func (r *Renderer) WriteComparisonCharts(dir string, result *models.Comparison) ([]Output, error) {
	if result == nil {
		result = &models.Comparison{}
	}
	return r.writeAll(dir, []namedChart{
		{"comparison-total-yield", func(w io.Writer) error { return r.ComparisonYield(w, result.YieldComparison) }},
		{"comparison-average-conditions", func(w io.Writer) error {
			return r.ComparisonConditions(w, result.AverageConditions)
		}},
	})
}

type namedChart struct {
	name string
	draw drawFunc
}

func (r *Renderer) writeAll(dir string, list []namedChart) ([]Output, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart directory: %w", err)
	}

	outputs := make([]Output, 0, len(list))
	for _, c := range list {
		out, err := r.write(dir, c)
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// write renders into memory first so a failed render leaves no partial file.
func (r *Renderer) write(dir string, c namedChart) (Output, error) {
	var buf bytes.Buffer
	if err := c.draw(&buf); err != nil {
		if errors.Is(err, ErrNoData) {
			r.logger.Debug("Skipping empty chart", zap.String("chart", c.name))
			return Output{Name: c.name, Skipped: true}, nil
		}
		return Output{}, err
	}

	path := filepath.Join(dir, c.name+r.opts.Format.Ext())
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return Output{}, fmt.Errorf("write chart %s: %w", c.name, err)
	}
	r.logger.Debug("Chart written", zap.String("chart", c.name), zap.String("path", path), zap.Int("bytes", buf.Len()))
	return Output{Name: c.name, Path: path}, nil
}
