package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Webtoon pipeline metrics
var (
	// PageFetchesTotal counts episode-list page requests by outcome
	// ("success" or "error").
	PageFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webtoon_page_fetches_total",
			Help: "Total number of episode list page fetches.",
		},
		[]string{"status"},
	)

	// ImageExtractionsTotal counts per-episode detail page extractions by
	// outcome ("success" or "error"). Failed extractions degrade to an empty
	// image list, so this counter is the only place they stay visible.
	ImageExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webtoon_image_extractions_total",
			Help: "Total number of episode image extractions.",
		},
		[]string{"status"},
	)

	// AnalysesTotal counts title analyses by outcome
	// ("success", "adult" or "error").
	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webtoon_analyses_total",
			Help: "Total number of title analyses.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		PageFetchesTotal,
		ImageExtractionsTotal,
		AnalysesTotal,
	)
}
