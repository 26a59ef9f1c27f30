package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

const promptHashLength = 16

// HashPrompt returns a SHA-256 digest of the prompt truncated to 16 lowercase
// hex characters. It is the only trace of the prompt that survives the
// request; raw prompt text is never persisted or logged.
func HashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])[:promptHashLength]
}
