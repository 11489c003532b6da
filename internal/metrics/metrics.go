package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"
)

const instrumentationName = "blog"

var (
	methodKey = attribute.Key("http.method")
	statusKey = attribute.Key("http.status_code")
	nameKey   = attribute.Key("article.name")
)

// Metrics groups the service instruments. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	exporter *prometheus.Exporter

	completed metric.Int64Counter
	upvotes   metric.Int64Counter
	comments  metric.Int64Counter
	notFound  metric.Int64Counter
}

func New() (*Metrics, error) {
	config := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)

	exporter, err := prometheus.New(config, c)
	if err != nil {
		return nil, fmt.Errorf("initialize prometheus exporter: %w", err)
	}
	global.SetMeterProvider(exporter.MeterProvider())

	meter := metric.Must(exporter.MeterProvider().Meter(instrumentationName))

	return &Metrics{
		exporter: exporter,
		completed: meter.NewInt64Counter(
			"http/server/completed_count",
			metric.WithDescription("Count of completed requests, by HTTP method and response status"),
		),
		upvotes: meter.NewInt64Counter(
			"articles/upvotes_count",
			metric.WithDescription("Count of applied upvotes, by article"),
		),
		comments: meter.NewInt64Counter(
			"articles/comments_count",
			metric.WithDescription("Count of added comments, by article"),
		),
		notFound: meter.NewInt64Counter(
			"articles/not_found_count",
			metric.WithDescription("Count of requests for unknown articles"),
		),
	}, nil
}

// Handler serves the prometheus scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return m.exporter
}

// Middleware counts every completed request by method and status.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.completed.Add(r.Context(), 1,
			methodKey.String(r.Method),
			statusKey.String(strconv.Itoa(status)),
		)
	})
}

func (m *Metrics) Upvoted(ctx context.Context, name string) {
	if m == nil {
		return
	}
	m.upvotes.Add(ctx, 1, nameKey.String(name))
}

func (m *Metrics) Commented(ctx context.Context, name string) {
	if m == nil {
		return
	}
	m.comments.Add(ctx, 1, nameKey.String(name))
}

func (m *Metrics) NotFound(ctx context.Context) {
	if m == nil {
		return
	}
	m.notFound.Add(ctx, 1)
}
