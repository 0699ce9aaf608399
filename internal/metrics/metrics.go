package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housie_rooms_created_total",
		Help: "Rooms created since process start.",
	})
	NumbersCalled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housie_numbers_called_total",
		Help: "Numbers drawn across all rooms.",
	})
	ClaimsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housie_claims_accepted_total",
		Help: "Prize claims that validated and were recorded.",
	})
	ClaimsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housie_claims_rejected_total",
		Help: "Prize claims rejected for any reason.",
	})
	RoundsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "housie_rounds_completed_total",
		Help: "Finished rounds by ending kind.",
	}, []string{"ending"})
)
