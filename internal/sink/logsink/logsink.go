// Package logsink provides zap-backed fallback sinks used when Datadog
// credentials are not configured, so development runs still surface
// telemetry in the process log.
package logsink

import (
	"context"

	"github.com/ByteWise-Cookie/llm-observability/internal/domain"
	"github.com/ByteWise-Cookie/llm-observability/internal/observability"
)

// MetricsSink implements domain.MetricsSink by logging each series.
type MetricsSink struct{}

// NewMetricsSink creates a new logging metrics sink.
func NewMetricsSink() *MetricsSink {
	return &MetricsSink{}
}

// Submit logs every series at info level.
func (s *MetricsSink) Submit(ctx context.Context, series []domain.MetricSeries) error {
	logger := observability.FromContext(ctx)

	for _, sr := range series {
		logger.Info("metric",
			observability.String("metric", sr.Metric),
			observability.Float64("value", sr.Value),
			observability.Int64("timestamp", sr.Timestamp),
			observability.Any("tags", sr.Tags),
		)
	}

	return nil
}

// LogSink implements domain.LogSink by logging each entry.
type LogSink struct{}

// NewLogSink creates a new logging log sink.
func NewLogSink() *LogSink {
	return &LogSink{}
}

// Submit logs every entry at info level.
func (s *LogSink) Submit(ctx context.Context, entries []domain.LogEntry) error {
	logger := observability.FromContext(ctx)

	for _, entry := range entries {
		logger.Info(entry.Message,
			observability.Any("attributes", entry.Attributes),
		)
	}

	return nil
}
