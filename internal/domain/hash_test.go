package domain_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ByteWise-Cookie/llm-observability/internal/domain"
)

func TestHashPrompt(t *testing.T) {
	t.Run("should be deterministic", func(t *testing.T) {
		first := domain.HashPrompt("What is the capital of France?")
		second := domain.HashPrompt("What is the capital of France?")

		require.Equal(t, first, second)
	})

	t.Run("should produce 16 lowercase hex characters", func(t *testing.T) {
		pattern := regexp.MustCompile(`^[0-9a-f]{16}$`)

		prompts := []string{
			"",
			"a",
			"What is the capital of France?",
			"multi\nline\nprompt",
			"unicode prompt: héllo wörld",
		}

		for _, prompt := range prompts {
			require.Regexp(t, pattern, domain.HashPrompt(prompt))
		}
	})

	t.Run("should not collide across a test corpus", func(t *testing.T) {
		prompts := []string{
			"What is the capital of France?",
			"What is the capital of France",
			"what is the capital of france?",
			"Explain quantum entanglement",
			"Explain quantum entanglement.",
			"", " ", "  ",
			"tell me a joke",
			"tell me a joke ",
		}

		seen := make(map[string]string, len(prompts))
		for _, prompt := range prompts {
			hash := domain.HashPrompt(prompt)
			previous, exists := seen[hash]
			require.Falsef(t, exists, "collision between %q and %q", previous, prompt)
			seen[hash] = prompt
		}
	})
}
