// Package redis stores a bounded, privacy-safe history of score samples per
// prompt hash. Keys carry only the one-way hash and values only numbers, so
// no prompt or response text ever reaches Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ByteWise-Cookie/llm-observability/internal/domain"
	"github.com/ByteWise-Cookie/llm-observability/internal/observability"
)

const (
	keyPrefix     = "score:"
	historyLength = 20
	historyTTL    = 24 * time.Hour
)

// ScoreIndex implements domain.ScoreIndex on a capped Redis list per prompt
// hash.
type ScoreIndex struct {
	client *redis.Client
}

// NewScoreIndex creates a new Redis score index adapter.
func NewScoreIndex(client *redis.Client) *ScoreIndex {
	return &ScoreIndex{client: client}
}

// Record prepends the sample and trims the history to its cap. The TTL is
// refreshed on every write so active prompts keep their history.
func (s *ScoreIndex) Record(ctx context.Context, promptHash string, sample domain.ScoreSample) error {
	data, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal score sample: %w", err)
	}

	key := keyPrefix + promptHash

	pipe := s.client.Pipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, historyLength-1)
	pipe.Expire(ctx, key, historyTTL)

	if _, execErr := pipe.Exec(ctx); execErr != nil {
		return fmt.Errorf("failed to record score: %w", execErr)
	}

	return nil
}

// Recent returns up to limit samples for the prompt hash, newest first.
// A limit outside (0, historyLength] falls back to the full history.
func (s *ScoreIndex) Recent(ctx context.Context, promptHash string, limit int) ([]domain.ScoreSample, error) {
	if limit <= 0 || limit > historyLength {
		limit = historyLength
	}

	values, err := s.client.LRange(ctx, keyPrefix+promptHash, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read score history: %w", err)
	}

	samples := make([]domain.ScoreSample, 0, len(values))
	for _, value := range values {
		var sample domain.ScoreSample
		if unmarshalErr := json.Unmarshal([]byte(value), &sample); unmarshalErr != nil {
			observability.FromContext(ctx).Warn("skipping malformed score sample",
				observability.Error(unmarshalErr))
			continue
		}
		samples = append(samples, sample)
	}

	return samples, nil
}
