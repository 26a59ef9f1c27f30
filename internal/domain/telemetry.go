package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ByteWise-Cookie/llm-observability/internal/observability"
)

// Metric names emitted per request.
const (
	MetricRequestLatency    = "llm.request.latency_ms"
	MetricSelfConfidence    = "llm.self_confidence"
	MetricHallucinationRisk = "llm.hallucination_risk"
	MetricAnswerLength      = "llm.answer_length"
	MetricTokenCount        = "llm.token.count"
	MetricErrorCount        = "llm.error.count"
)

// TelemetryBuilder assembles normalized telemetry records from completed or
// failed interactions.
type TelemetryBuilder struct {
	identity ServiceIdentity
}

// NewTelemetryBuilder creates a new builder (DI constructor).
func NewTelemetryBuilder(identity ServiceIdentity) *TelemetryBuilder {
	return &TelemetryBuilder{identity: identity}
}

// BuildSuccess populates a record from the computed values of a completed
// interaction. generationLatency covers the primary generation call only.
func (b *TelemetryBuilder) BuildSuccess(
	requestID string,
	prompt string,
	completion *Completion,
	confidence float64,
	source ConfidenceSource,
	risk float64,
	generationLatency time.Duration,
) TelemetryRecord {
	return TelemetryRecord{
		RequestID:         requestID,
		PromptHash:        HashPrompt(prompt),
		ModelName:         b.identity.ModelName,
		LatencyMs:         durationToMillis(generationLatency),
		Confidence:        confidence,
		ConfidenceSource:  source,
		Risk:              risk,
		AnswerLengthWords: len(strings.Fields(completion.Text)),
		TokenCount:        completion.TokenCount,
		Status:            StatusSuccess,
	}
}

// BuildFailure populates only the fields known before the failure. Score
// fields stay at their zero values and are never emitted for error records.
func (b *TelemetryBuilder) BuildFailure(
	requestID string,
	failure error,
	stage string,
	elapsed time.Duration,
) TelemetryRecord {
	return TelemetryRecord{
		RequestID:    requestID,
		ModelName:    b.identity.ModelName,
		LatencyMs:    durationToMillis(elapsed),
		Status:       StatusError,
		ErrorMessage: failure.Error(),
		FailedStage:  stage,
	}
}

// TelemetryEmitter dispatches a record to the metrics and log sinks. Both
// dispatches sit behind an explicit never-propagate boundary: a sink error
// or panic is logged operationally and cannot reach the caller's path. No
// retries.
type TelemetryEmitter struct {
	identity ServiceIdentity
	metrics  MetricsSink
	logs     LogSink
}

// NewTelemetryEmitter creates a new emitter (DI constructor).
func NewTelemetryEmitter(identity ServiceIdentity, metrics MetricsSink, logs LogSink) *TelemetryEmitter {
	return &TelemetryEmitter{
		identity: identity,
		metrics:  metrics,
		logs:     logs,
	}
}

// Emit sends the record to both sinks, best-effort. The request lifecycle
// ends here; sink outcomes do not affect the caller response.
func (e *TelemetryEmitter) Emit(ctx context.Context, record TelemetryRecord) {
	e.dispatch(ctx, "metrics", func() error {
		return e.metrics.Submit(ctx, e.buildSeries(record))
	})
	e.dispatch(ctx, "logs", func() error {
		return e.logs.Submit(ctx, []LogEntry{e.buildLogEntry(record)})
	})
}

// dispatch is the never-propagate boundary around a single sink call.
func (e *TelemetryEmitter) dispatch(ctx context.Context, sink string, submit func() error) {
	logger := observability.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("telemetry sink panicked",
				observability.String("sink", sink),
				observability.Any("panic", r))
		}
	}()

	if err := submit(); err != nil {
		logger.Error("telemetry sink submit failed",
			observability.String("sink", sink),
			observability.Error(err))
	}
}

func (e *TelemetryEmitter) buildSeries(record TelemetryRecord) []MetricSeries {
	timestamp := time.Now().Unix()

	if record.Status == StatusError {
		return []MetricSeries{{
			Metric:    MetricErrorCount,
			Timestamp: timestamp,
			Value:     1.0,
			Tags: []string{
				"service:" + e.identity.ServiceName,
				"env:" + e.identity.Environment,
			},
		}}
	}

	tags := []string{
		"model_name:" + record.ModelName,
		"service:" + e.identity.ServiceName,
		"env:" + e.identity.Environment,
	}

	return []MetricSeries{
		{Metric: MetricRequestLatency, Timestamp: timestamp, Value: record.LatencyMs, Tags: tags},
		{Metric: MetricSelfConfidence, Timestamp: timestamp, Value: record.Confidence, Tags: tags},
		{Metric: MetricHallucinationRisk, Timestamp: timestamp, Value: record.Risk, Tags: tags},
		{Metric: MetricAnswerLength, Timestamp: timestamp, Value: float64(record.AnswerLengthWords), Tags: tags},
		{Metric: MetricTokenCount, Timestamp: timestamp, Value: float64(record.TokenCount), Tags: tags},
	}
}

func (e *TelemetryEmitter) buildLogEntry(record TelemetryRecord) LogEntry {
	attributes := map[string]string{
		"request_id": record.RequestID,
		"status":     record.Status,
		"model_name": record.ModelName,
		"latency_ms": formatFloat(record.LatencyMs),
	}

	if record.Status == StatusSuccess {
		attributes["prompt_hash"] = record.PromptHash
		attributes["self_confidence"] = formatFloat(record.Confidence)
		attributes["confidence_source"] = string(record.ConfidenceSource)
		attributes["hallucination_risk"] = formatFloat(record.Risk)
		attributes["answer_length"] = strconv.Itoa(record.AnswerLengthWords)
		attributes["token_count"] = strconv.Itoa(record.TokenCount)
	} else {
		attributes["error"] = record.ErrorMessage
		if record.FailedStage != "" {
			attributes["failed_stage"] = record.FailedStage
		}
	}

	return LogEntry{
		Message:    fmt.Sprintf("LLM request completed: request_id=%s", record.RequestID),
		Attributes: attributes,
	}
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
