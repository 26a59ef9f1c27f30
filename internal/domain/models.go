package domain

import "time"

// Completion is the result of a single generation call. It is produced once
// per call by the model capability and immutable thereafter.
type Completion struct {
	Text       string
	TokenCount int
}

// ConfidenceSource records how a confidence score was obtained. The score
// itself defaults to 0.5 on any elicitation failure, so the source is the
// only way to tell "the model said 0.5" from "we defaulted".
type ConfidenceSource string

const (
	// ConfidenceFromModel means the score was parsed out of the model's reply.
	ConfidenceFromModel ConfidenceSource = "model"

	// ConfidenceDefaultUnparsable means the reply contained no numeric token.
	ConfidenceDefaultUnparsable ConfidenceSource = "default_unparsable"

	// ConfidenceDefaultCallFailed means the elicitation call itself failed.
	ConfidenceDefaultCallFailed ConfidenceSource = "default_call_failed"
)

// Telemetry record status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// TelemetryRecord is the normalized, sink-agnostic representation of one
// request's outcome. Created once per request and immutable. For error
// records only the fields known before the failure are populated; sinks must
// not emit score fields for them.
type TelemetryRecord struct {
	RequestID         string
	PromptHash        string
	ModelName         string
	LatencyMs         float64
	Confidence        float64
	ConfidenceSource  ConfidenceSource
	Risk              float64
	AnswerLengthWords int
	TokenCount        int
	Status            string
	ErrorMessage      string
	FailedStage       string
}

// ResponseEnvelope is returned to the caller on success. LatencyMs here
// covers the full request (generation, elicitation, scoring and emission),
// unlike TelemetryRecord.LatencyMs which covers the primary generation call
// only.
type ResponseEnvelope struct {
	RequestID    string
	ResponseText string
	LatencyMs    float64
	Confidence   float64
	Risk         float64
	ModelName    string
}

// MetricSeries is one numeric time-series point for the metrics sink.
type MetricSeries struct {
	Metric    string
	Timestamp int64
	Value     float64
	Tags      []string
}

// LogEntry is one structured record for the log sink. Attribute values are
// strings because log intake backends treat them as such.
type LogEntry struct {
	Message    string
	Attributes map[string]string
}

// ScoreSample is one privacy-safe score observation kept in the optional
// score index. It carries numbers only, never prompt or response text.
type ScoreSample struct {
	Confidence float64   `json:"confidence"`
	Risk       float64   `json:"risk"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ServiceIdentity is the process-wide read-only identity attached to metric
// tags and log attributes. Constructed once at startup from configuration.
type ServiceIdentity struct {
	ModelName   string
	ServiceName string
	Environment string
}
