package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var infractionsIssued = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "beryllium_infractions_issued_total",
	Help: "Number of infractions persisted, by type",
}, []string{"type"})

var infractionsUpdated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "beryllium_infractions_updated_total",
	Help: "Number of existing infractions changed, by action",
}, []string{"action"})

var pipelineFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "beryllium_moderation_failures_total",
	Help: "Number of moderation commands that returned an error, by action and error kind",
}, []string{"action", "kind"})
