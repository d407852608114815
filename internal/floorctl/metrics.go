package floorctl

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var metricForcedMutes = promauto.NewCounter(prometheus.CounterOpts{
	Name: "floor_forced_mutes_total",
	Help: "Total push-to-talk releases forced by a speaking translator",
})
