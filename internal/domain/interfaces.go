package domain

import "context"

// ModelProvider is the opaque text-generation capability. It is invoked
// twice per request with different prompts: once for the primary completion
// and once for the self-confidence elicitation.
type ModelProvider interface {
	// Generate sends a prompt and returns the completion text with its
	// token count.
	Generate(ctx context.Context, prompt string) (*Completion, error)

	// Name returns the provider identifier.
	Name() string
}

// ProviderRegistry manages available providers.
type ProviderRegistry interface {
	// Register adds a provider to the registry.
	Register(ctx context.Context, provider ModelProvider) error

	// Get retrieves a provider by name.
	Get(ctx context.Context, providerName string) (ModelProvider, error)

	// List returns all available providers.
	List(ctx context.Context) ([]string, error)
}

// MetricsSink receives numeric time series. Submissions are best-effort:
// callers log failures and move on.
type MetricsSink interface {
	Submit(ctx context.Context, series []MetricSeries) error
}

// LogSink receives structured log entries. Submissions are best-effort.
type LogSink interface {
	Submit(ctx context.Context, entries []LogEntry) error
}

// ScoreIndex keeps a bounded history of score samples per prompt hash.
// Optional: the orchestrator treats a nil index as disabled.
type ScoreIndex interface {
	// Record stores a sample under the prompt hash.
	Record(ctx context.Context, promptHash string, sample ScoreSample) error

	// Recent returns up to limit samples for the prompt hash, newest first.
	Recent(ctx context.Context, promptHash string, limit int) ([]ScoreSample, error)
}
