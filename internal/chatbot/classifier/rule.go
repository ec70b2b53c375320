package classifier

import (
	"kisan-advisory/internal/chatbot/knowledge"
	"kisan-advisory/internal/models"
)

const (
	RuleHitConfidence  = 0.8
	RuleMissConfidence = 0.3
)

// RuleMatcher tests ordered patterns against the raw message; the first
// match wins.
type RuleMatcher struct {
	rules []knowledge.Rule
}

func NewRuleMatcher(rules []knowledge.Rule) *RuleMatcher {
	return &RuleMatcher{rules: rules}
}

func (m *RuleMatcher) Score(message string) Signal {
	for _, r := range m.rules {
		if r.Pattern.MatchString(message) {
			return Signal{Intent: r.Intent, Confidence: RuleHitConfidence}
		}
	}
	return Signal{Intent: models.IntentGeneralHelp, Confidence: RuleMissConfidence}
}
