// Package metrics records validation run statistics with OpenTelemetry
// instruments. The instruments are exported through a Prometheus registry so a
// run can dump them in the node exporter textfile format.
package metrics

import (
	"context"
	"fmt"
	"mdvalidate/pkg/domain"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

const meterName = "mdvalidate"

// Recorder holds the instruments updated during a validation run.
type Recorder struct {
	documents metric.Int64Counter
	issues    metric.Int64Counter
	duration  metric.Float64Histogram
}

// New creates a Recorder whose instruments are registered on the given provider.
func New(provider metric.MeterProvider) (*Recorder, error) {
	meter := provider.Meter(meterName)

	documents, err := meter.Int64Counter("mdvalidate_documents_scanned",
		metric.WithDescription("Number of markdown documents checked."))
	if err != nil {
		return nil, fmt.Errorf("could not create documents counter: %w", err)
	}

	issues, err := meter.Int64Counter("mdvalidate_issues",
		metric.WithDescription("Number of validation issues found, by kind."))
	if err != nil {
		return nil, fmt.Errorf("could not create issues counter: %w", err)
	}

	duration, err := meter.Float64Histogram("mdvalidate_run_duration",
		metric.WithDescription("Duration of a full validation run."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create run duration histogram: %w", err)
	}

	return &Recorder{documents: documents, issues: issues, duration: duration}, nil
}

// NewNop returns a Recorder that discards all measurements.
func NewNop() *Recorder {
	r, _ := New(noop.NewMeterProvider())

	return r
}

// DocumentScanned records one checked document.
func (r *Recorder) DocumentScanned(ctx context.Context) {
	r.documents.Add(ctx, 1)
}

// IssuesFound records the issues produced for one document.
func (r *Recorder) IssuesFound(ctx context.Context, issues []domain.Issue) {
	for _, issue := range issues {
		r.issues.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(issue.Kind))))
	}
}

// RunFinished records the duration and outcome of a validation run.
func (r *Recorder) RunFinished(ctx context.Context, elapsed time.Duration, passed bool) {
	r.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.Bool("passed", passed)))
}

// NewPrometheusProvider builds a MeterProvider whose readings are exposed on the
// given Prometheus registerer.
func NewPrometheusProvider(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// WriteTextfile gathers g and writes the result to path in the Prometheus text
// exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("could not write metrics file: %w", err)
	}

	return nil
}
