package domain

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ByteWise-Cookie/llm-observability/internal/observability"
)

// DefaultConfidence is returned when elicitation fails or the reply cannot
// be parsed. It is a policy value, not a measurement; the accompanying
// ConfidenceSource tells the two apart downstream.
const DefaultConfidence = 0.5

// confidencePattern matches the first decimal-looking token in the reply:
// an optional leading "0." followed by digits, or exactly "1.0", "0" or "1".
var confidencePattern = regexp.MustCompile(`0?\.\d+|1\.0|0|1`)

const confidencePromptTemplate = `You previously answered this question:
Question: %s
Your answer: %s

On a scale from 0.0 to 1.0, how confident are you that your answer is accurate and complete?
Respond with ONLY a number between 0.0 and 1.0, nothing else.`

// SelfConfidenceEstimator asks the model to rate its own prior answer via a
// follow-up query against the same model capability.
type SelfConfidenceEstimator struct{}

// NewSelfConfidenceEstimator creates a new estimator (DI constructor).
func NewSelfConfidenceEstimator() *SelfConfidenceEstimator {
	return &SelfConfidenceEstimator{}
}

// Estimate performs the elicitation round-trip. Single attempt, no retries.
// It never returns an error: elicitation is best-effort and must not abort
// the primary request, so call and parse failures collapse to
// DefaultConfidence with a source explaining why.
func (e *SelfConfidenceEstimator) Estimate(
	ctx context.Context,
	provider ModelProvider,
	prompt string,
	answer string,
) (float64, ConfidenceSource) {
	logger := observability.FromContext(ctx)

	followUp := fmt.Sprintf(confidencePromptTemplate, prompt, answer)

	completion, err := provider.Generate(ctx, followUp)
	if err != nil {
		logger.Warn("self-confidence elicitation failed",
			observability.Error(err))
		return DefaultConfidence, ConfidenceDefaultCallFailed
	}

	match := confidencePattern.FindString(strings.TrimSpace(completion.Text))
	if match == "" {
		logger.Warn("no numeric token in self-confidence reply",
			observability.Int("reply_length", len(completion.Text)))
		return DefaultConfidence, ConfidenceDefaultUnparsable
	}

	score, parseErr := strconv.ParseFloat(match, 64)
	if parseErr != nil {
		return DefaultConfidence, ConfidenceDefaultUnparsable
	}

	return score, ConfidenceFromModel
}
