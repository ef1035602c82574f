package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

var (
	ErrInvalidConfig         = errors.New("invalid telemetry configuration")
	ErrMissingServiceName    = errors.New("service name is required")
	ErrMissingServiceVersion = errors.New("service version is required")
	ErrInvalidSampleRate     = errors.New("sample rate must be between 0.0 and 1.0")
)

type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// OTLPEndpoint is the collector address. Nothing is exported when it is empty
	// unless an exporter is supplied as an Option.
	OTLPEndpoint  string
	EnableTracing bool
	EnableMetrics bool
	SampleRate    float64
}

// Telemetry owns the providers it installed globally.
type Telemetry struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

type Option func(*telemetryOptions)

type telemetryOptions struct {
	traceExporter sdktrace.SpanExporter
	metricReader  sdkmetric.Reader
}

// WithTraceExporter replaces the OTLP trace exporter.
func WithTraceExporter(exporter sdktrace.SpanExporter) Option {
	return func(opts *telemetryOptions) {
		opts.traceExporter = exporter
	}
}

// WithMetricReader replaces the periodic OTLP metric reader.
func WithMetricReader(reader sdkmetric.Reader) Option {
	return func(opts *telemetryOptions) {
		opts.metricReader = reader
	}
}

func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrMissingServiceName)
	}
	if c.ServiceVersion == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrMissingServiceVersion)
	}
	if c.SampleRate < 0.0 || c.SampleRate > 1.0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrInvalidSampleRate)
	}
	return nil
}

func Initialize(ctx context.Context, cfg Config, opts ...Option) (*Telemetry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &telemetryOptions{}
	for _, opt := range opts {
		opt(options)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithHost(),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	tel := &Telemetry{}

	if cfg.EnableTracing && (cfg.OTLPEndpoint != "" || options.traceExporter != nil) {
		tp, err := newTracerProvider(ctx, res, cfg, options.traceExporter)
		if err != nil {
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		otel.SetTracerProvider(tp)
		tel.tracerProvider = tp
	}

	if cfg.EnableMetrics && (cfg.OTLPEndpoint != "" || options.metricReader != nil) {
		mp, err := newMeterProvider(ctx, res, cfg, options.metricReader)
		if err != nil {
			_ = tel.Shutdown(ctx)
			return nil, fmt.Errorf("initialize metrics: %w", err)
		}
		otel.SetMeterProvider(mp)
		tel.meterProvider = mp
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tel, nil
}

func newTracerProvider(ctx context.Context, res *resource.Resource, cfg Config, exporter sdktrace.SpanExporter) (*sdktrace.TracerProvider, error) {
	if exporter == nil {
		// Plaintext gRPC to the local collector.
		var err error
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create trace exporter: %w", err)
		}
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(createSampler(cfg.SampleRate)),
		sdktrace.WithBatcher(exporter),
	), nil
}

func newMeterProvider(ctx context.Context, res *resource.Resource, cfg Config, reader sdkmetric.Reader) (*sdkmetric.MeterProvider, error) {
	if reader == nil {
		exporter, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create metric exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(exporter)
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	), nil
}

func createSampler(sampleRate float64) sdktrace.Sampler {
	if sampleRate <= 0.0 {
		return sdktrace.NeverSample()
	}
	if sampleRate >= 1.0 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))
}

// Meter returns a meter from the installed provider, or from the global one when metrics are off.
func (t *Telemetry) Meter(name string) metric.Meter {
	if t.meterProvider != nil {
		return t.meterProvider.Meter(name)
	}
	return otel.Meter(name)
}

// TracingEnabled reports whether spans are being exported.
func (t *Telemetry) TracingEnabled() bool {
	return t.tracerProvider != nil
}

// Shutdown flushes and stops the providers. Provider shutdown also stops their exporters.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.tracerProvider != nil {
		if err := t.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracer provider: %w", err))
		}
	}
	if t.meterProvider != nil {
		if err := t.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown meter provider: %w", err))
		}
	}

	return errors.Join(errs...)
}
