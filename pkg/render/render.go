// Package render draws dashboard charts as PNG or SVG images.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/zap"
)

// ErrNoData is returned when a chart has no points. Callers show a placeholder instead.
var ErrNoData = errors.New("no data to chart")

// Format is an image output format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat parses "png" or "svg", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q (expected png or svg)", s)
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

// Options sizes and encodes rendered charts.
type Options struct {
	Width  int
	Height int
	Format Format
}

// DefaultOptions returns an 800x400 PNG.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 400, Format: FormatPNG}
}

// Renderer draws charts with fixed options.
type Renderer struct {
	opts   Options
	logger *zap.Logger
}

// NewRenderer creates a Renderer. Zero options fall back to DefaultOptions.
func NewRenderer(opts Options, logger *zap.Logger) *Renderer {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.Format == "" {
		opts.Format = def.Format
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{opts: opts, logger: logger.Named("render")}
}

// Format returns the output format.
func (r *Renderer) Format() Format {
	return r.opts.Format
}

var (
	colorYield       = chart.ColorGreen
	colorHumidity    = chart.ColorBlue
	colorTemperature = chart.ColorOrange
)

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    4,
	}
}

func barStyle(col drawing.Color) chart.Style {
	return chart.Style{
		FillColor:   col,
		StrokeColor: col,
		StrokeWidth: 1,
	}
}

// lineSeries builds a series over xs. A single point is widened to two
// x values so the axis range is non-zero.
func lineSeries(name string, xs, ys []float64, col drawing.Color, axis chart.YAxisType) chart.ContinuousSeries {
	if len(xs) == 1 {
		xs = []float64{xs[0] - 0.5, xs[0] + 0.5}
		ys = []float64{ys[0], ys[0]}
	}
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		YAxis:   axis,
		Style:   lineStyle(col),
	}
}

// indexAxis places one labelled tick per category at x = 1..n.
func indexAxis(name string, labels []string) chart.XAxis {
	ticks := make([]chart.Tick, len(labels))
	for i, l := range labels {
		ticks[i] = chart.Tick{Value: float64(i + 1), Label: l}
	}
	return chart.XAxis{
		Name:  name,
		Ticks: ticks,
		Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(labels)) + 0.5},
	}
}

// valueRange returns a padded range covering values. With fromZero the
// range starts at zero unless a value is negative.
func valueRange(values []float64, fromZero bool) *chart.ContinuousRange {
	if len(values) == 0 {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if fromZero && lo > 0 {
		lo = 0
	}
	if hi == lo {
		hi++
		if !fromZero {
			lo--
		}
	}
	pad := (hi - lo) * 0.1
	hi += pad
	if !fromZero || lo < 0 {
		lo -= pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func (r *Renderer) barWidth(n int) int {
	w := (r.opts.Width - 120) / (2 * max(n, 1))
	return min(max(w, 8), 60)
}

func (r *Renderer) renderChart(w io.Writer, ch chart.Chart) error {
	ch.Width = r.opts.Width
	ch.Height = r.opts.Height
	ch.Background = chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(r.opts.Format.provider(), w); err != nil {
		return fmt.Errorf("render %q: %w", ch.Title, err)
	}
	return nil
}

func (r *Renderer) renderBars(w io.Writer, bc chart.BarChart) error {
	bc.Width = r.opts.Width
	bc.Height = r.opts.Height
	bc.BarWidth = r.barWidth(len(bc.Bars))
	bc.Background = chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}

	if err := bc.Render(r.opts.Format.provider(), w); err != nil {
		return fmt.Errorf("render %q: %w", bc.Title, err)
	}
	return nil
}
