package media

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricAttaches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "media_track_attaches_total",
		Help: "Total tracks attached to rendering sinks",
	})

	metricReleases = promauto.NewCounter(prometheus.CounterOpts{
		Name: "media_track_releases_total",
		Help: "Total tracks released from rendering sinks",
	})

	metricAttachFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "media_attach_failures_total",
		Help: "Total sink attach failures",
	})

	metricPlayFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "media_play_failures_total",
		Help: "Total non-fatal playback start failures",
	})
)
