package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ByteWise-Cookie/llm-observability/internal/observability"
)

// requestStage tracks where in its lifecycle a request currently is. A
// request moves received -> generating -> estimating_confidence -> scoring
// -> emitting and then responds; a failure from any non-terminal stage goes
// through failure telemetry instead.
type requestStage string

const (
	stageReceived             requestStage = "received"
	stageGenerating           requestStage = "generating"
	stageEstimatingConfidence requestStage = "estimating_confidence"
	stageScoring              requestStage = "scoring"
	stageEmitting             requestStage = "emitting"
)

// Orchestrator drives one request end to end: generate, estimate
// confidence, score risk, build telemetry, emit, respond. Requests are
// independent; the orchestrator holds only read-only configuration and
// stateless collaborators, so it is safe for concurrent use.
type Orchestrator struct {
	identity   ServiceIdentity
	provider   ModelProvider
	estimator  *SelfConfidenceEstimator
	builder    *TelemetryBuilder
	emitter    *TelemetryEmitter
	scoreIndex ScoreIndex // optional, nil disables score history
}

// NewOrchestrator creates a new orchestrator (DI constructor).
func NewOrchestrator(
	identity ServiceIdentity,
	provider ModelProvider,
	estimator *SelfConfidenceEstimator,
	builder *TelemetryBuilder,
	emitter *TelemetryEmitter,
	scoreIndex ScoreIndex,
) *Orchestrator {
	return &Orchestrator{
		identity:   identity,
		provider:   provider,
		estimator:  estimator,
		builder:    builder,
		emitter:    emitter,
		scoreIndex: scoreIndex,
	}
}

// Handle processes a single prompt. An empty prompt returns ErrEmptyPrompt
// before any model call or telemetry emission. A generation failure returns
// a *RequestError after emitting best-effort error telemetry. Confidence
// elicitation and sink failures never surface here.
func (o *Orchestrator) Handle(ctx context.Context, prompt string) (*ResponseEnvelope, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	requestID := uuid.New().String()
	ctx = observability.WithRequestID(ctx, requestID)
	logger := observability.FromContext(ctx)

	start := time.Now()
	stage := stageReceived
	advance := func(next requestStage) {
		stage = next
		logger.Debug("request stage", observability.String("stage", string(stage)))
	}

	advance(stageGenerating)
	generationStart := time.Now()
	completion, err := o.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, o.fail(ctx, requestID, stage, start, fmt.Errorf("generation failed: %w", err))
	}
	generationLatency := time.Since(generationStart)

	advance(stageEstimatingConfidence)
	confidence, source := o.estimator.Estimate(ctx, o.provider, prompt, completion.Text)

	advance(stageScoring)
	risk := ScoreHallucinationRisk(completion.Text, prompt, confidence)

	advance(stageEmitting)
	record := o.builder.BuildSuccess(requestID, prompt, completion, confidence, source, risk, generationLatency)
	o.emitter.Emit(ctx, record)
	o.recordScore(ctx, record)

	logger.Info("request scored",
		observability.Float64("confidence", confidence),
		observability.String("confidence_source", string(source)),
		observability.Float64("hallucination_risk", risk),
		observability.Int("token_count", completion.TokenCount),
	)

	return &ResponseEnvelope{
		RequestID:    requestID,
		ResponseText: completion.Text,
		LatencyMs:    durationToMillis(time.Since(start)),
		Confidence:   confidence,
		Risk:         risk,
		ModelName:    o.identity.ModelName,
	}, nil
}

// fail emits best-effort error telemetry and wraps the failure with the
// request ID for the transport layer.
func (o *Orchestrator) fail(
	ctx context.Context,
	requestID string,
	stage requestStage,
	start time.Time,
	err error,
) error {
	record := o.builder.BuildFailure(requestID, err, string(stage), time.Since(start))
	o.emitter.Emit(ctx, record)

	return &RequestError{RequestID: requestID, Err: err}
}

// recordScore appends the sample to the optional score index, best-effort.
func (o *Orchestrator) recordScore(ctx context.Context, record TelemetryRecord) {
	if o.scoreIndex == nil {
		return
	}

	sample := ScoreSample{
		Confidence: record.Confidence,
		Risk:       record.Risk,
		RecordedAt: time.Now(),
	}

	if err := o.scoreIndex.Record(ctx, record.PromptHash, sample); err != nil {
		observability.FromContext(ctx).Warn("score index record failed",
			observability.Error(err))
	}
}
