package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many instances as
// they like without colliding on the default one.
type Metrics struct {
	registry *prometheus.Registry

	requests           *prometheus.CounterVec
	latency            *prometheus.HistogramVec
	donationsSubmitted prometheus.Counter
	itemsDonated       prometheus.Counter
	transitions        *prometheus.CounterVec
	pickupsScheduled   prometheus.Counter
	describeCalls      *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		}, []string{"method", "route", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		donationsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "donations_submitted_total",
			Help: "Donations recorded as pending",
		}),
		itemsDonated: factory.NewCounter(prometheus.CounterOpts{
			Name: "donation_items_total",
			Help: "Items carried by submitted donations",
		}),
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "donation_requests_transitioned_total",
			Help: "Pending donations moved to a terminal state",
		}, []string{"status"}),
		pickupsScheduled: factory.NewCounter(prometheus.CounterOpts{
			Name: "pickups_scheduled_total",
			Help: "Pickup schedules created",
		}),
		describeCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "image_describe_calls_total",
			Help: "Calls to the image description provider by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware records count and latency per matched route.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		m.requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// The recorders below are nil-safe so services can run without metrics.

func (m *Metrics) DonationSubmitted(items int) {
	if m == nil {
		return
	}
	m.donationsSubmitted.Inc()
	if items > 0 {
		m.itemsDonated.Add(float64(items))
	}
}

func (m *Metrics) RequestTransitioned(status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(status).Inc()
}

func (m *Metrics) PickupScheduled() {
	if m == nil {
		return
	}
	m.pickupsScheduled.Inc()
}

func (m *Metrics) DescribeCalled(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.describeCalls.WithLabelValues(outcome).Inc()
}
