package classifier

import (
	"strings"

	"kisan-advisory/internal/chatbot/knowledge"
	"kisan-advisory/internal/models"
)

// KeywordMatcher scores the share of an intent's keywords found as
// substrings of the normalized message.
type KeywordMatcher struct {
	intents []knowledge.IntentDef
}

func NewKeywordMatcher(intents []knowledge.IntentDef) *KeywordMatcher {
	lowered := make([]knowledge.IntentDef, len(intents))
	for i, def := range intents {
		kw := make([]string, len(def.Keywords))
		for j, k := range def.Keywords {
			kw[j] = strings.ToLower(k)
		}
		lowered[i] = knowledge.IntentDef{Name: def.Name, Keywords: kw}
	}
	return &KeywordMatcher{intents: lowered}
}

func (m *KeywordMatcher) Score(message string) Signal {
	best := Signal{Intent: models.IntentGeneralHelp}
	for _, def := range m.intents {
		if len(def.Keywords) == 0 {
			continue
		}
		hits := 0
		for _, kw := range def.Keywords {
			if strings.Contains(message, kw) {
				hits++
			}
		}
		score := float64(hits) / float64(len(def.Keywords))
		// strict comparison keeps the earliest intent on ties
		if score > best.Confidence {
			best = Signal{Intent: def.Name, Confidence: score}
		}
	}
	best.Confidence = clamp01(best.Confidence)
	return best
}
