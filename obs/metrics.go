package obs

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	metricsOnce      sync.Once
	talkCounter      metric.Int64Counter
	latencyHistogram metric.Float64Histogram
	chunkCounter     metric.Int64Counter
	pushCounter      metric.Int64Counter
)

func installMetrics(m meter) {
	metricsOnce.Do(func() {
		if m == nil {
			return
		}
		talkCounter, _ = m.Int64Counter("voicepipe.talk.requests", metric.WithDescription("Total /talk requests"))
		latencyHistogram, _ = m.Float64Histogram("voicepipe.talk.latency_ms", metric.WithDescription("Synchronous /talk latency (ms)"))
		chunkCounter, _ = m.Int64Counter("voicepipe.stream.chunks", metric.WithDescription("Synthesized audio chunks"))
		pushCounter, _ = m.Int64Counter("voicepipe.stream.pushes", metric.WithDescription("Channel push attempts"))
	})
}

type meter interface {
	Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error)
	Float64Histogram(string, ...metric.Float64HistogramOption) (metric.Float64Histogram, error)
}

// RecordTalk records one completed synchronous /talk phase.
func RecordTalk(mode string, latencyMs float64) {
	attrs := metric.WithAttributes(attribute.String("mode", mode))
	if talkCounter != nil {
		talkCounter.Add(context.Background(), 1, attrs)
	}
	if latencyHistogram != nil {
		latencyHistogram.Record(context.Background(), latencyMs, attrs)
	}
}

// RecordChunk records one synthesized chunk.
func RecordChunk() {
	if chunkCounter != nil {
		chunkCounter.Add(context.Background(), 1)
	}
}

// RecordPush records a channel push attempt and whether it was delivered.
func RecordPush(delivered bool) {
	if pushCounter != nil {
		pushCounter.Add(context.Background(), 1,
			metric.WithAttributes(attribute.Bool("delivered", delivered)))
	}
}
