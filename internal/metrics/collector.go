// Package metrics exposes catalog statistics as Prometheus gauges.
//
// The collector reads the registry at scrape time, so the values always
// reflect the registry's current contents.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/dyluth/fathom/pkg/catalog"
)

const namespace = "fathom"

// StatsSource is the part of the registry the collector reads.
type StatsSource interface {
	Stats() catalog.Stats
}

// Collector implements prometheus.Collector over a catalog registry.
type Collector struct {
	src StatsSource

	pieces          *prometheus.Desc
	themes          *prometheus.Desc
	themePieces     *prometheus.Desc
	themeCategories *prometheus.Desc
}

// NewCollector returns a collector for src.
func NewCollector(src StatsSource) *Collector {
	return &Collector{
		src: src,
		pieces: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "catalog", "pieces"),
			"Number of pieces in the catalog ID index.",
			nil, nil,
		),
		themes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "catalog", "themes"),
			"Number of registered themes.",
			nil, nil,
		),
		themePieces: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "theme", "pieces"),
			"Number of pieces in a theme.",
			[]string{"theme"}, nil,
		),
		themeCategories: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "theme", "categories"),
			"Number of distinct categories used by a theme.",
			[]string{"theme"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.pieces
	ch <- c.themes
	ch <- c.themePieces
	ch <- c.themeCategories
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.src.Stats()

	ch <- prometheus.MustNewConstMetric(c.pieces, prometheus.GaugeValue, float64(stats.TotalPieces))
	ch <- prometheus.MustNewConstMetric(c.themes, prometheus.GaugeValue, float64(len(stats.Themes)))
	for _, ts := range stats.Themes {
		ch <- prometheus.MustNewConstMetric(c.themePieces, prometheus.GaugeValue, float64(ts.PieceCount), ts.Name)
		ch <- prometheus.MustNewConstMetric(c.themeCategories, prometheus.GaugeValue, float64(len(ts.Categories)), ts.Name)
	}
}

// WriteText gathers the catalog metrics and writes them in the Prometheus
// text exposition format.
func WriteText(w io.Writer, src StatsSource) error {
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(NewCollector(src)); err != nil {
		return fmt.Errorf("failed to register collector: %w", err)
	}

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
