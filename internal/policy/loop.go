package policy

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// HashPrompt produces a stable content hash for a planned question prompt.
// Case and surrounding whitespace are ignored so trivially reworded
// repeats still collide.
func HashPrompt(prompt string) string {
	normalized := strings.ToLower(strings.TrimSpace(prompt))
	sum := sha1.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// DetectLoop reports whether the last three entries of the prompt-hash
// ring are identical. Fewer than three entries can never be a loop.
func DetectLoop(hashes []string) bool {
	n := len(hashes)
	if n < 3 {
		return false
	}
	return hashes[n-1] == hashes[n-2] && hashes[n-2] == hashes[n-3]
}
