package ptt

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricEngagements = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ptt_engagements_total",
		Help: "Total push-to-talk engagements",
	})

	metricReleases = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ptt_releases_total",
		Help: "Total push-to-talk releases",
	}, []string{"reason"})
)
