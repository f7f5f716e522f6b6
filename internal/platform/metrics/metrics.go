package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ledgerbook"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	journalEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_entries_total",
			Help:      "Journal entries persisted, by transaction type and initial status",
		},
		[]string{"transaction_type", "status"},
	)
	journalReversalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_reversals_total",
			Help:      "Journal entries reversed",
		},
	)
	journalRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_rejections_total",
			Help:      "Journal writes rejected, by reason",
		},
		[]string{"reason"},
	)

	reportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Time spent generating a report",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"report"},
	)
	reportConsistencyWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_consistency_warnings_total",
			Help:      "Reports generated with a false validation flag",
		},
		[]string{"report"},
	)
)

// EntryCreated records a persisted journal entry.
func EntryCreated(transactionType, status string) {
	journalEntriesTotal.WithLabelValues(transactionType, status).Inc()
}

// EntryReversed records a reversal.
func EntryReversed() {
	journalReversalsTotal.Inc()
}

// EntryRejected records a rejected journal write.
func EntryRejected(reason string) {
	journalRejectionsTotal.WithLabelValues(reason).Inc()
}

// ObserveReport records how long a report took since start.
func ObserveReport(report string, start time.Time) {
	reportDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
}

// ConsistencyWarning records a report whose validation flag came out false.
func ConsistencyWarning(report string) {
	reportConsistencyWarnings.WithLabelValues(report).Inc()
}
