package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConversionEvents counts consumed conversion events by type
	ConversionEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "conversion_events_total",
		Help:      "Conversion events processed, by event type",
	}, []string{"type"})

	// CommissionsCreated counts emitted commission rows by source
	CommissionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "commissions_created_total",
		Help:      "Commission rows created, by source",
	}, []string{"source"})

	// CommissionsMatured counts PENDING to PROCEED transitions
	CommissionsMatured = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "commissions_matured_total",
		Help:      "Commissions moved from pending to proceed",
	})

	// CommissionsReversed counts reversal transitions
	CommissionsReversed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "commissions_reversed_total",
		Help:      "Commissions reversed by dispute or refund",
	})

	// PayoutRuns counts payout runs by outcome
	PayoutRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "payout_runs_total",
		Help:      "Payout runs, by outcome",
	}, []string{"status"})

	// SweepDuration observes maturation and payout sweep durations
	SweepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledger",
		Name:      "sweep_duration_seconds",
		Help:      "Duration of periodic sweeps, by sweep id",
	}, []string{"sweep"})
)
