// Package charts derives chart-ready series from a batch's observations and harvests.
//
// Every series is a lazy iter.Seq over copies of its inputs: ranging over it
// recomputes from scratch, so a series can be consumed any number of times and
// always yields the same points.
package charts

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/mycotrack/mycotrack/pkg/models"
)

// MatchWindow is the maximum distance between an observation and the harvest it is paired with.
// The comparison is strict: a harvest exactly seven days away does not match.
const MatchWindow = 7 * 24 * time.Hour

// LabelLayout formats correlation point dates, e.g. "Jan 2".
const LabelLayout = "Jan 2"

// Field selects the observation reading a correlation series tracks.
type Field int

const (
	FieldHumidity Field = iota
	FieldTemperature
)

// String returns the point key used for the field.
func (f Field) String() string {
	switch f {
	case FieldHumidity:
		return "humidity"
	case FieldTemperature:
		return "temperature"
	default:
		return "unknown"
	}
}

// reading returns the field's value on o, if recorded.
func (f Field) reading(o models.Observation) (float64, bool) {
	switch f {
	case FieldHumidity:
		return o.RelativeHumidityPercent.Get()
	case FieldTemperature:
		return o.AmbientTemperatureCelsius.Get()
	default:
		return 0, false
	}
}

// FlushPoint is one bar of the yield-per-flush chart.
type FlushPoint struct {
	Label       string  `json:"flush"`
	FlushNumber int     `json:"flush_number"`
	Yield       float64 `json:"yield"`
}

// CorrelationPoint pairs one observation reading with the yield of its matched harvest.
type CorrelationPoint struct {
	Label string    `json:"date"`
	Date  time.Time `json:"-"`
	Field Field     `json:"-"`
	Value float64   `json:"value"`
	Yield float64   `json:"yield"`
}

// YieldPerFlush yields one point per harvest, ordered by flush number.
// Harvests sharing a flush number keep their input order.
func YieldPerFlush(harvests []models.Harvest) iter.Seq[FlushPoint] {
	hs := slices.Clone(harvests)
	return func(yield func(FlushPoint) bool) {
		sorted := slices.Clone(hs)
		slices.SortStableFunc(sorted, func(a, b models.Harvest) int {
			return cmp.Compare(a.FlushNumber, b.FlushNumber)
		})
		for _, h := range sorted {
			p := FlushPoint{
				Label:       fmt.Sprintf("Flush %d", h.FlushNumber),
				FlushNumber: h.FlushNumber,
				Yield:       h.FlushYieldKg,
			}
			if !yield(p) {
				return
			}
		}
	}
}

// HumidityYield pairs humidity readings with harvest yields.
func HumidityYield(observations []models.Observation, harvests []models.Harvest) iter.Seq[CorrelationPoint] {
	return Correlate(FieldHumidity, observations, harvests)
}

// TemperatureYield pairs temperature readings with harvest yields.
func TemperatureYield(observations []models.Observation, harvests []models.Harvest) iter.Seq[CorrelationPoint] {
	return Correlate(FieldTemperature, observations, harvests)
}

// Correlate yields a point for every observation that records field and has a
// harvest within MatchWindow. Observations are visited in input order.
//
// When several harvests qualify, the first one in harvests order wins; no
// nearest-date preference is applied. A harvest without a date takes the
// observation's date and therefore always matches.
func Correlate(field Field, observations []models.Observation, harvests []models.Harvest) iter.Seq[CorrelationPoint] {
	obs := slices.Clone(observations)
	hs := slices.Clone(harvests)
	return func(yield func(CorrelationPoint) bool) {
		if len(obs) == 0 || len(hs) == 0 {
			return
		}
		for _, o := range obs {
			value, ok := field.reading(o)
			if !ok {
				continue
			}
			h, ok := matchHarvest(o, hs)
			if !ok {
				continue
			}
			p := CorrelationPoint{
				Label: o.Date.UTC().Format(LabelLayout),
				Date:  o.Date.Time,
				Field: field,
				Value: value,
				Yield: h.FlushYieldKg,
			}
			if !yield(p) {
				return
			}
		}
	}
}

// matchHarvest returns the first harvest whose effective date is within MatchWindow of o.
func matchHarvest(o models.Observation, harvests []models.Harvest) (models.Harvest, bool) {
	for _, h := range harvests {
		effective := o.Date
		if d, ok := h.Date.Get(); ok {
			effective = d
		}
		if absDuration(o.Date.Sub(effective.Time)) < MatchWindow {
			return h, true
		}
	}
	return models.Harvest{}, false
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
