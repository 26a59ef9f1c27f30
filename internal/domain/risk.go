package domain

import "strings"

const (
	confidenceWeight = 0.4
	hedgingWeight    = 0.3
	verbosityWeight  = 0.3

	hedgingCountCap   = 5.0
	verbosityRatioCap = 50.0
)

// hedgingPhrases is the fixed vocabulary of epistemic uncertainty markers.
// Matching is case-insensitive substring containment; each phrase counts at
// most once regardless of repetition.
var hedgingPhrases = []string{
	"might", "possibly", "perhaps", "maybe", "i think",
	"could be", "it seems", "likely", "probably",
}

// ScoreHallucinationRisk combines three weak signals into a single score in
// [0.0, 1.0]: low self-confidence, hedging language density and response
// verbosity relative to the prompt. Each sub-score is clamped before
// weighting and the weights sum to 1.0, so the result is bounded and
// monotone non-decreasing in every signal. Pure and deterministic.
func ScoreHallucinationRisk(responseText, prompt string, confidence float64) float64 {
	confidenceRisk := clamp01(1.0 - confidence)

	lower := strings.ToLower(responseText)
	hedgingCount := 0
	for _, phrase := range hedgingPhrases {
		if strings.Contains(lower, phrase) {
			hedgingCount++
		}
	}
	hedgingRisk := clamp01(float64(hedgingCount) / hedgingCountCap)

	responseWords := len(strings.Fields(responseText))
	promptWords := len(strings.Fields(prompt))
	if promptWords < 1 {
		promptWords = 1
	}
	verbosityRatio := float64(responseWords) / float64(promptWords)
	verbosityRisk := clamp01(verbosityRatio / verbosityRatioCap)

	score := confidenceRisk*confidenceWeight +
		hedgingRisk*hedgingWeight +
		verbosityRisk*verbosityWeight

	return clamp01(score)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0.0:
		return 0.0
	case v > 1.0:
		return 1.0
	default:
		return v
	}
}
