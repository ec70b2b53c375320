// Package classifier scores a message against the intent catalog with three
// independent matchers and fuses their votes into one decision.
package classifier

import (
	"regexp"
	"strings"

	"kisan-advisory/internal/models"
)

// Signal is one matcher's vote.
type Signal struct {
	Intent     models.Intent
	Confidence float64
}

// Scorer maps a message to a single vote. Implementations must not fail:
// degraded paths return a general_help vote.
type Scorer interface {
	Score(message string) Signal
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\s]`)

// Normalize lower-cases message, replaces punctuation with spaces and
// collapses runs of whitespace.
func Normalize(message string) string {
	message = strings.ToLower(message)
	message = nonWord.ReplaceAllString(message, " ")
	return strings.Join(strings.Fields(message), " ")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
