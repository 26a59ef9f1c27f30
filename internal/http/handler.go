package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/ByteWise-Cookie/llm-observability/internal/domain"
	"github.com/ByteWise-Cookie/llm-observability/internal/observability"
)

// Handler handles HTTP requests.
type Handler struct {
	orchestrator *domain.Orchestrator
	scores       domain.ScoreIndex // nil when the score index is disabled
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(orchestrator *domain.Orchestrator, scores domain.ScoreIndex) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		scores:       scores,
	}
}

type chatRequest struct {
	Prompt string `json:"prompt"`
}

type chatMetadata struct {
	LatencyMs         float64 `json:"latency_ms"`
	Confidence        float64 `json:"confidence"`
	HallucinationRisk float64 `json:"hallucination_risk"`
	Model             string  `json:"model"`
}

type chatResponse struct {
	RequestID string       `json:"request_id"`
	Response  string       `json:"response"`
	Metadata  chatMetadata `json:"metadata"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type scoresResponse struct {
	PromptHash string               `json:"prompt_hash"`
	Samples    []domain.ScoreSample `json:"samples"`
}

// HandleChat processes scoring requests.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("invalid request body: %v", err),
		})
		return
	}

	logger := observability.FromContext(ctx)

	envelope, err := h.orchestrator.Handle(ctx, req.Prompt)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyPrompt) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: domain.ErrEmptyPrompt.Error()})
			return
		}

		var reqErr *domain.RequestError
		requestID := ""
		if errors.As(err, &reqErr) {
			requestID = reqErr.RequestID
		}

		logger.Error("chat request failed", observability.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:     err.Error(),
			RequestID: requestID,
		})
		return
	}

	logger.Info("chat request completed",
		observability.String("request_id", envelope.RequestID),
		observability.Float64("hallucination_risk", envelope.Risk),
	)

	writeJSON(w, http.StatusOK, chatResponse{
		RequestID: envelope.RequestID,
		Response:  envelope.ResponseText,
		Metadata: chatMetadata{
			LatencyMs:         round(envelope.LatencyMs, 2),
			Confidence:        round(envelope.Confidence, 3),
			HallucinationRisk: round(envelope.Risk, 3),
			Model:             envelope.ModelName,
		},
	})
}

// HandleScores returns the recent score history for a prompt hash.
func (h *Handler) HandleScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.scores == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error: "score index is not configured",
		})
		return
	}

	promptHash := r.URL.Query().Get("prompt_hash")
	if promptHash == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "prompt_hash is required"})
		return
	}

	samples, err := h.scores.Recent(r.Context(), promptHash, 0)
	if err != nil {
		observability.FromContext(r.Context()).Error("score history lookup failed",
			observability.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, scoresResponse{
		PromptHash: promptHash,
		Samples:    samples,
	})
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Status is already written; nothing left to do.
		return
	}
}

// round keeps the wire format stable: latency to 2 decimals, scores to 3.
func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
