// Package metrics содержит счетчики Prometheus сервиса.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	IncidentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sos_incidents_created_total",
		Help: "Number of SOS incidents created.",
	})

	IncidentsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sos_incidents_deleted_total",
		Help: "Number of SOS incidents removed from the active set.",
	})

	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sos_status_transitions_total",
		Help: "Number of status changes by target status.",
	}, []string{"status"})

	StationRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sos_station_refreshes_total",
		Help: "Nearest station lookups by outcome (changed, unchanged, skipped, error).",
	}, []string{"outcome"})

	VoiceCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_commands_total",
		Help: "Parsed voice commands by intent.",
	}, []string{"intent"})

	ExternalFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "external_lookup_failures_total",
		Help: "Failed calls to external services by collaborator.",
	}, []string{"collaborator"})
)

// Handler отдает метрики в формате Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}
