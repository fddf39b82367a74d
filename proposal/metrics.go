package proposal

import "github.com/prometheus/client_golang/prometheus"

var (
	sectionEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_section_events_total",
			Help: "Total number of section change events emitted",
		},
		[]string{"operation"},
	)

	sectionEventsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "readiness_section_events_dropped_total",
			Help: "Section change events dropped because the channel was full",
		},
	)
)

func init() {
	prometheus.MustRegister(sectionEventsTotal, sectionEventsDropped)
}
