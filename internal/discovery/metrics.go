package discovery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "discovery_run_duration_seconds",
			Help: "Duration of influencer discovery runs in seconds",
		},
	)

	candidatesByStage = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_candidates_total",
			Help: "Candidates seen at each discovery stage",
		},
		[]string{"stage"},
	)
)
