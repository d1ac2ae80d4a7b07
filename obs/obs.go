// Package obs wires OpenTelemetry tracing and metrics for the pipeline.
package obs

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

var (
	manager     *Manager
	managerOnce sync.Once
)

// Options configures observability setup.
type Options struct {
	ServiceName    string
	SampleRatio    float64
	DisableTracing bool
	DisableMetrics bool
}

// Manager coordinates OTEL setup.
type Manager struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	tracer         trace.Tracer
	meter          metric.Meter
}

type noopSpanExporter struct{}

func (noopSpanExporter) ExportSpans(context.Context, []sdktrace.ReadOnlySpan) error { return nil }

func (noopSpanExporter) Shutdown(context.Context) error { return nil }

// Init configures global tracing and metrics. Safe to call once; returns a
// shutdown function to flush exporters.
func Init(ctx context.Context, opts Options) (func(context.Context) error, error) {
	var initErr error
	managerOnce.Do(func() {
		if opts.ServiceName == "" {
			opts.ServiceName = "voicepipe"
		}
		if opts.SampleRatio <= 0 || opts.SampleRatio > 1 {
			opts.SampleRatio = 1
		}

		res, err := resource.New(ctx,
			resource.WithAttributes(semconv.ServiceName(opts.ServiceName)),
		)
		if err != nil {
			initErr = err
			return
		}

		tracerProvider, err := buildTracerProvider(opts, res)
		if err != nil {
			initErr = err
			return
		}

		var meterProvider *sdkmetric.MeterProvider
		if !opts.DisableMetrics {
			exporter, err := stdoutmetric.New()
			if err != nil {
				_ = tracerProvider.Shutdown(ctx)
				initErr = err
				return
			}
			meterProvider = sdkmetric.NewMeterProvider(
				sdkmetric.WithResource(res),
				sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
			)
			otel.SetMeterProvider(meterProvider)
		}

		tracer := tracerProvider.Tracer("github.com/shillcollin/voicepipe/obs")
		var meter metric.Meter
		if meterProvider != nil {
			meter = meterProvider.Meter("github.com/shillcollin/voicepipe/obs")
		} else {
			meter = otel.Meter("github.com/shillcollin/voicepipe/obs")
		}

		manager = &Manager{
			tracerProvider: tracerProvider,
			meterProvider:  meterProvider,
			tracer:         tracer,
			meter:          meter,
		}

		otel.SetTracerProvider(tracerProvider)
		installMetrics(meter)
	})

	if initErr != nil {
		return nil, initErr
	}
	if manager == nil {
		return nil, errors.New("observability already initialized")
	}

	shutdown := func(ctx context.Context) error {
		var firstErr error
		if manager.meterProvider != nil {
			if err := manager.meterProvider.Shutdown(ctx); err != nil {
				firstErr = err
			}
		}
		if err := manager.tracerProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
		return firstErr
	}
	return shutdown, nil
}

func buildTracerProvider(opts Options, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	sampler := sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))

	if opts.DisableTracing {
		return sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sampler),
			sdktrace.WithBatcher(noopSpanExporter{}),
		), nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
		sdktrace.WithBatcher(exporter),
	), nil
}

// Tracer returns the configured tracer, or a no-op tracer before Init.
func Tracer() trace.Tracer {
	if manager == nil {
		return otel.Tracer("github.com/shillcollin/voicepipe/obs")
	}
	return manager.tracer
}
