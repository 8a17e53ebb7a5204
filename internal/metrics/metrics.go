package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the site's Prometheus collectors
type Metrics struct {
	refreshDuration prometheus.Histogram
	refreshFailures prometheus.Counter
	fetchTotal      *prometheus.CounterVec
	fetchDuration   *prometheus.HistogramVec
	mutationTotal   *prometheus.CounterVec
	pageViews       *prometheus.CounterVec
	assistantTotal  *prometheus.CounterVec
}

// New registers the collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		refreshDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "boardsite_refresh_duration_seconds",
			Help:    "Time taken to load every content category",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
		refreshFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "boardsite_refresh_failed_categories_total",
			Help: "Category fetches that failed during a refresh",
		}),
		fetchTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "boardsite_fetch_total",
			Help: "Category fetches by outcome",
		}, []string{"category", "outcome"}),
		fetchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "boardsite_fetch_duration_seconds",
			Help:    "Category fetch latency",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"category"}),
		mutationTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "boardsite_mutation_total",
			Help: "Content mutations by category, operation and result",
		}, []string{"category", "op", "result"}),
		pageViews: f.NewCounterVec(prometheus.CounterOpts{
			Name: "boardsite_page_views_total",
			Help: "Public page views by route",
		}, []string{"route"}),
		assistantTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "boardsite_assistant_requests_total",
			Help: "Assistant requests by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObserveFetch(category, outcome string, d time.Duration) {
	m.fetchTotal.WithLabelValues(category, outcome).Inc()
	m.fetchDuration.WithLabelValues(category).Observe(d.Seconds())
}

func (m *Metrics) ObserveRefresh(d time.Duration, failed int) {
	m.refreshDuration.Observe(d.Seconds())
	m.refreshFailures.Add(float64(failed))
}

func (m *Metrics) ObserveMutation(category, op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.mutationTotal.WithLabelValues(category, op, result).Inc()
}

func (m *Metrics) ObservePageView(route string) {
	m.pageViews.WithLabelValues(route).Inc()
}

func (m *Metrics) ObserveAssistant(outcome string) {
	m.assistantTotal.WithLabelValues(outcome).Inc()
}
