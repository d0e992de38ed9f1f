package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "beryllium_events_published_total",
	Help: "Number of infraction events published to the bus",
}, []string{"kind"})

var handlerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "beryllium_event_handler_failures_total",
	Help: "Number of event deliveries a subscriber failed to handle",
}, []string{"subscriber"})

var handlerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "beryllium_event_handler_duration_sec",
	Help: "Duration of a single subscriber handling one event",
}, []string{"subscriber"})
