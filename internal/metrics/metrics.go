package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gauges
var (
	RendersInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "soundforge_renders_in_flight",
		Help: "Number of assets currently being rendered",
	})
	CachedAssets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "soundforge_cached_assets",
		Help: "Number of encoded assets held by the preview server",
	})
)

// Counters
var (
	AssetsRenderedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soundforge_assets_rendered_total",
		Help: "Total asset renders by outcome",
	}, []string{"outcome"})
	BytesWrittenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "soundforge_bytes_written_total",
		Help: "Total WAV bytes written to disk",
	})
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soundforge_http_requests_total",
		Help: "Preview server requests by route and status code",
	}, []string{"route", "code"})
)

// Histograms
var (
	RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "soundforge_render_duration_ms",
		Help:    "Asset render duration in milliseconds by stage",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
	}, []string{"stage"})
)
