package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	Transitions         *prometheus.CounterVec
	TransitionsRejected *prometheus.CounterVec
	TransitionDuration  prometheus.Histogram
	SignoffsRecorded    prometheus.Counter
	NotificationsSent   prometheus.Counter
	FAAMessagesFetched  prometheus.Counter
	FAAMessagesMatched  prometheus.Counter
	Errors              *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "The total number of successful flight status transitions",
		}, []string{"from", "to"}),
		TransitionsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_rejected_total",
			Help:      "The total number of rejected transition attempts",
		}, []string{"reason"}),
		TransitionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transition_duration_seconds",
			Help:      "Time taken to apply a status transition",
			Buckets:   prometheus.DefBuckets,
		}),
		SignoffsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signoffs_recorded_total",
			Help:      "The total number of mechanic sign-offs recorded",
		}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of status change notifications delivered",
		}),
		FAAMessagesFetched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "faa_messages_fetched_total",
			Help:      "The total number of FAA correspondence emails fetched",
		}),
		FAAMessagesMatched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "faa_messages_matched_total",
			Help:      "The total number of FAA emails matched to a permit",
		}),
		Errors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
