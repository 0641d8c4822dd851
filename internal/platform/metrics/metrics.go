// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganges_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ganges_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
	}, []string{"method", "route"})

	LedgerEntriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganges_ledger_entries_total",
		Help: "Ledger entries committed, by reason",
	}, []string{"reason"})

	LedgerRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganges_ledger_rejections_total",
		Help: "Ledger writes rejected by business rules, by error kind",
	}, []string{"kind"})

	IdempotencyOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganges_idempotency_outcomes_total",
		Help: "Idempotency guard decisions, by operation and outcome",
	}, []string{"operation", "outcome"})

	TxConflictRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganges_tx_conflict_retries_total",
		Help: "Transactions retried after a lock or serialization conflict",
	}, []string{"operation"})

	ShipmentTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganges_shipment_transitions_total",
		Help: "Committed shipment status transitions, by target status",
	}, []string{"to"})

	SettlementFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ganges_settlement_failures_total",
		Help: "Payment gateway charges that failed after the ledger credit committed",
	})

	IdempotencyPurgedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ganges_idempotency_purged_total",
		Help: "Expired idempotency records removed by the sweeper",
	})
)
