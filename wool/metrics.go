package wool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var modulesWrapped = promauto.NewCounter(prometheus.CounterOpts{
	Name: "wool_modules_wrapped_total",
	Help: "The total number of schema modules wrapped",
})

var classesRegistered = promauto.NewCounter(prometheus.CounterOpts{
	Name: "wool_classes_registered_total",
	Help: "The total number of class descriptors registered",
})

var warningsReported = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "wool_warnings_total",
	Help: "The total number of warnings reported, by kind",
}, []string{"kind"})

var mergeActions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "wool_merge_actions_total",
	Help: "The total number of classes moved or dropped by the cross-module merge",
}, []string{"action"})

var wrapDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "wool_wrap_duration_seconds",
	Help:    "Time taken to wrap one schema module",
	Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
})
