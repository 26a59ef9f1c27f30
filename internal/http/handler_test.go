package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ByteWise-Cookie/llm-observability/internal/domain"
	internalhttp "github.com/ByteWise-Cookie/llm-observability/internal/http"
)

// scriptedProvider answers the primary call with a canned completion and the
// elicitation call with a canned confidence reply.
type scriptedProvider struct {
	answer          string
	confidenceReply string
	generateErr     error
	calls           int
}

func (s *scriptedProvider) Generate(_ context.Context, _ string) (*domain.Completion, error) {
	s.calls++
	if s.generateErr != nil {
		return nil, s.generateErr
	}
	if s.calls == 1 {
		return &domain.Completion{Text: s.answer, TokenCount: 10}, nil
	}
	return &domain.Completion{Text: s.confidenceReply, TokenCount: 1}, nil
}

func (s *scriptedProvider) Name() string { return "scripted" }

type nopMetricsSink struct{}

func (nopMetricsSink) Submit(_ context.Context, _ []domain.MetricSeries) error { return nil }

type nopLogSink struct{}

func (nopLogSink) Submit(_ context.Context, _ []domain.LogEntry) error { return nil }

// stubScoreIndex serves a fixed history.
type stubScoreIndex struct {
	samples   []domain.ScoreSample
	recentErr error
}

func (s *stubScoreIndex) Record(_ context.Context, _ string, _ domain.ScoreSample) error {
	return nil
}

func (s *stubScoreIndex) Recent(_ context.Context, _ string, _ int) ([]domain.ScoreSample, error) {
	return s.samples, s.recentErr
}

func newTestHandler(provider domain.ModelProvider, scores domain.ScoreIndex) *internalhttp.Handler {
	identity := domain.ServiceIdentity{
		ModelName:   "test-model",
		ServiceName: "llm-observability-service",
		Environment: "test",
	}

	orchestrator := domain.NewOrchestrator(
		identity,
		provider,
		domain.NewSelfConfidenceEstimator(),
		domain.NewTelemetryBuilder(identity),
		domain.NewTelemetryEmitter(identity, nopMetricsSink{}, nopLogSink{}),
		scores,
	)

	return internalhttp.NewHandler(orchestrator, scores)
}

func postChat(t *testing.T, handler *internalhttp.Handler, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleChat(w, req)

	return w
}

func TestHandleChat(t *testing.T) {
	t.Run("should return the response envelope on success", func(t *testing.T) {
		provider := &scriptedProvider{answer: "Paris.", confidenceReply: "0.9"}
		handler := newTestHandler(provider, nil)

		body, _ := json.Marshal(map[string]string{"prompt": "What is the capital of France?"})
		w := postChat(t, handler, body)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var resp struct {
			RequestID string `json:"request_id"`
			Response  string `json:"response"`
			Metadata  struct {
				LatencyMs         float64 `json:"latency_ms"`
				Confidence        float64 `json:"confidence"`
				HallucinationRisk float64 `json:"hallucination_risk"`
				Model             string  `json:"model"`
			} `json:"metadata"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

		require.NotEmpty(t, resp.RequestID)
		require.Equal(t, "Paris.", resp.Response)
		require.Equal(t, "test-model", resp.Metadata.Model)
		require.InDelta(t, 0.9, resp.Metadata.Confidence, 0.0001)
		require.Less(t, resp.Metadata.HallucinationRisk, 0.3)
		require.GreaterOrEqual(t, resp.Metadata.LatencyMs, 0.0)
	})

	t.Run("should reject an empty prompt with 400", func(t *testing.T) {
		provider := &scriptedProvider{answer: "Paris.", confidenceReply: "0.9"}
		handler := newTestHandler(provider, nil)

		body, _ := json.Marshal(map[string]string{"prompt": ""})
		w := postChat(t, handler, body)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Equal(t, "prompt is required", resp.Error)

		// No model call was made.
		require.Zero(t, provider.calls)
	})

	t.Run("should reject a malformed body with 400", func(t *testing.T) {
		handler := newTestHandler(&scriptedProvider{}, nil)

		w := postChat(t, handler, []byte("{not json"))

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should return 500 with the request id on generation failure", func(t *testing.T) {
		provider := &scriptedProvider{generateErr: errors.New("upstream exploded")}
		handler := newTestHandler(provider, nil)

		body, _ := json.Marshal(map[string]string{"prompt": "What is the capital of France?"})
		w := postChat(t, handler, body)

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var resp struct {
			Error     string `json:"error"`
			RequestID string `json:"request_id"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Contains(t, resp.Error, "upstream exploded")
		require.NotEmpty(t, resp.RequestID)
	})

	t.Run("should reject non-POST methods", func(t *testing.T) {
		handler := newTestHandler(&scriptedProvider{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/chat", nil)
		w := httptest.NewRecorder()
		handler.HandleChat(w, req)

		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestHandleScores(t *testing.T) {
	t.Run("should return 503 when the score index is disabled", func(t *testing.T) {
		handler := newTestHandler(&scriptedProvider{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/scores?prompt_hash=abcdef0123456789", nil)
		w := httptest.NewRecorder()
		handler.HandleScores(w, req)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("should require a prompt_hash parameter", func(t *testing.T) {
		handler := newTestHandler(&scriptedProvider{}, &stubScoreIndex{})

		req := httptest.NewRequest(http.MethodGet, "/scores", nil)
		w := httptest.NewRecorder()
		handler.HandleScores(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should return the recent samples", func(t *testing.T) {
		scores := &stubScoreIndex{
			samples: []domain.ScoreSample{
				{Confidence: 0.9, Risk: 0.1, RecordedAt: time.Now()},
				{Confidence: 0.5, Risk: 0.4, RecordedAt: time.Now().Add(-time.Minute)},
			},
		}
		handler := newTestHandler(&scriptedProvider{}, scores)

		req := httptest.NewRequest(http.MethodGet, "/scores?prompt_hash=abcdef0123456789", nil)
		w := httptest.NewRecorder()
		handler.HandleScores(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			PromptHash string               `json:"prompt_hash"`
			Samples    []domain.ScoreSample `json:"samples"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Equal(t, "abcdef0123456789", resp.PromptHash)
		require.Len(t, resp.Samples, 2)
		require.InDelta(t, 0.9, resp.Samples[0].Confidence, 0.0001)
	})

	t.Run("should return 500 when the lookup fails", func(t *testing.T) {
		scores := &stubScoreIndex{recentErr: errors.New("redis down")}
		handler := newTestHandler(&scriptedProvider{}, scores)

		req := httptest.NewRequest(http.MethodGet, "/scores?prompt_hash=abcdef0123456789", nil)
		w := httptest.NewRecorder()
		handler.HandleScores(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	handler := newTestHandler(&scriptedProvider{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.HandleHealth(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, "healthy", resp["status"])
}
