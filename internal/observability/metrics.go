package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dirview/dirview/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	listingsTotal     *prometheus.CounterVec
	entriesTotal      *prometheus.CounterVec
	inferenceTotal    *prometheus.CounterVec
	requestsTotal     *prometheus.CounterVec
	ratelimitHits     prometheus.Counter
	processDuration   *prometheus.HistogramVec
	listingEntryCount prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		listingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "dirview_listings_total", Help: "Total listings processed"},
			[]string{"source", "criteria", "order"},
		),
		entriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "dirview_entries_total", Help: "Total entries sorted"},
			[]string{"kind"},
		),
		inferenceTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "dirview_path_inference_total", Help: "Current path inferences by deciding rule"},
			[]string{"rule"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "dirview_http_requests_total", Help: "Total API requests"},
			[]string{"endpoint", "code"},
		),
		ratelimitHits: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "dirview_ratelimit_hits_total", Help: "Total rate limited API requests"},
		),
		processDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dirview_process_duration_seconds",
				Help:    "Time spent sorting a listing and inferring its path",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"source"},
		),
		listingEntryCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dirview_listing_entries",
				Help:    "Entries per listing",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.listingsTotal,
		m.entriesTotal,
		m.inferenceTotal,
		m.requestsTotal,
		m.ratelimitHits,
		m.processDuration,
		m.listingEntryCount,
	)

	return m
}

func (m *Metrics) Handler(reg *prometheus.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// ObserveListing records a processed listing. Failed events only count
// toward the request metrics.
func (m *Metrics) ObserveListing(event logging.Event) {
	if m == nil || event.Error != "" {
		return
	}

	m.listingsTotal.WithLabelValues(event.Source, criteriaLabel(event.Criteria), event.Order).Inc()
	m.entriesTotal.WithLabelValues("dir").Add(float64(event.Dirs))
	m.entriesTotal.WithLabelValues("file").Add(float64(event.Entries - event.Dirs))
	m.inferenceTotal.WithLabelValues(event.Inference).Inc()
	m.processDuration.WithLabelValues(event.Source).Observe((time.Duration(event.DurationUS) * time.Microsecond).Seconds())
	m.listingEntryCount.Observe(float64(event.Entries))
}

func (m *Metrics) ObserveRequest(endpoint string, code int) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
}

func (m *Metrics) ObserveRateLimited() {
	if m == nil {
		return
	}
	m.ratelimitHits.Inc()
}

func criteriaLabel(criteria string) string {
	if criteria == "" {
		return "none"
	}
	return criteria
}
