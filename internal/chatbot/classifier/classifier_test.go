package classifier

import (
	"testing"

	"kisan-advisory/internal/chatbot/entities"
	"kisan-advisory/internal/chatbot/knowledge"
	"kisan-advisory/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test doubles
// ==========================

type TestLogger struct {
	warns []string
}

func (l *TestLogger) Warn(msg string, fields map[string]interface{}) { l.warns = append(l.warns, msg) }
func (l *TestLogger) With(fields map[string]interface{}) Logger  { return l }

type entityLogger struct{}

func (entityLogger) Warn(string, map[string]interface{})                   {}
func (l entityLogger) With(map[string]interface{}) entities.Logger { return l }

type fixedScorer Signal

func (f fixedScorer) Score(string) Signal { return Signal(f) }

type panicScorer struct{}

func (panicScorer) Score(string) Signal { panic("vectorizer not fitted") }

var (
	intentA = models.IntentCropRecommendation
	intentB = models.IntentDiseaseIdentification
	order   = []models.Intent{intentA, intentB, models.IntentGeneralHelp}
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(knowledge.Default(), entities.NewExtractor(nil, entityLogger{}), &TestLogger{})
}

// ==========================
// Fusion
// ==========================

func TestEngine_Classify(t *testing.T) {
	e := newEngine(t)

	t.Run("crop recommendation question", func(t *testing.T) {
		got := e.Classify("what crop should I grow")
		assert.Equal(t, models.IntentCropRecommendation, got.Intent)
		expected := (2.0/7.0*KeywordWeight + 1.0*SimilarityWeight + RuleHitConfidence*RuleWeight) / 3
		assert.InDelta(t, expected, got.Confidence, 1e-6)
		assert.GreaterOrEqual(t, got.Confidence, FallbackThreshold)
	})

	t.Run("disease symptoms", func(t *testing.T) {
		got := e.Classify("my plant has spots on leaves")
		assert.Equal(t, models.IntentDiseaseIdentification, got.Intent)
		assert.GreaterOrEqual(t, got.Confidence, FallbackThreshold)
	})

	t.Run("nonsense falls back", func(t *testing.T) {
		got := e.Classify("asdkjasd nonsense qqq")
		assert.Equal(t, models.IntentGeneralHelp, got.Intent)
		assert.Equal(t, FallbackConfidence, got.Confidence)
	})

	t.Run("market prices with entities", func(t *testing.T) {
		got := e.Classify("What is the market price of wheat in Punjab?")
		assert.Equal(t, models.IntentMarketPrices, got.Intent)
		assert.Equal(t, []string{"wheat"}, got.Entities.Crops)
		assert.Equal(t, []string{"Punjab"}, got.Entities.Locations)
	})

	t.Run("confidence stays in range", func(t *testing.T) {
		for _, msg := range []string{"", "!!!", "help", "pest control for cotton", "PM Kisan subsidy loan"} {
			got := e.Classify(msg)
			assert.GreaterOrEqual(t, got.Confidence, 0.0, msg)
			assert.LessOrEqual(t, got.Confidence, 1.0, msg)
			assert.True(t, got.Intent.IsCatalog(), msg)
		}
	})
}

func TestEngine_FusionArithmetic(t *testing.T) {
	tests := []struct {
		name       string
		keyword    Signal
		similarity Signal
		rule       Signal
		intent     models.Intent
		confidence float64
	}{
		{
			name:       "agreeing votes are averaged",
			keyword:    Signal{Intent: intentA, Confidence: 0.5},
			similarity: Signal{Intent: intentA, Confidence: 0.5},
			rule:       Signal{Intent: intentB, Confidence: 0.8},
			intent:     intentA,
			confidence: 0.2,
		},
		{
			name:       "single strong rule vote",
			keyword:    Signal{Intent: models.IntentGeneralHelp},
			similarity: Signal{Intent: intentA, Confidence: 0.2},
			rule:       Signal{Intent: intentB, Confidence: 0.8},
			intent:     intentB,
			confidence: 0.16,
		},
		{
			name:       "ties go to the earlier intent",
			keyword:    Signal{Intent: intentB, Confidence: 0.5},
			similarity: Signal{Intent: intentA, Confidence: 0.5},
			rule:       Signal{Intent: models.IntentGeneralHelp, Confidence: RuleMissConfidence},
			intent:     intentA,
			confidence: 0.2,
		},
		{
			name:       "below threshold is floored",
			keyword:    Signal{Intent: intentA, Confidence: 0.2},
			similarity: Signal{Intent: intentB, Confidence: 0.2},
			rule:       Signal{Intent: models.IntentGeneralHelp, Confidence: RuleMissConfidence},
			intent:     models.IntentGeneralHelp,
			confidence: FallbackConfidence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngineWithScorers(order, fixedScorer(tt.keyword), fixedScorer(tt.similarity), fixedScorer(tt.rule), nil, &TestLogger{})
			got := e.Classify("anything")
			assert.Equal(t, tt.intent, got.Intent)
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
		})
	}
}

func TestEngine_PanicDegradesToFallback(t *testing.T) {
	log := &TestLogger{}
	e := NewEngineWithScorers(order, fixedScorer{Intent: intentA, Confidence: 1}, panicScorer{}, fixedScorer{}, nil, log)

	got := e.Classify("rice in Punjab")
	assert.Equal(t, models.IntentGeneralHelp, got.Intent)
	assert.Equal(t, FallbackConfidence, got.Confidence)
	assert.True(t, got.Entities.IsEmpty())
	require.Len(t, log.warns, 1)
}

func TestEngine_Explain(t *testing.T) {
	ex := newEngine(t).Explain("Recommend crops for my soil!")
	assert.Equal(t, "recommend crops for my soil", ex.Normalized)
	assert.Equal(t, models.IntentCropRecommendation, ex.Rule.Intent)
	assert.Equal(t, models.IntentCropRecommendation, ex.Similarity.Intent)
	assert.Len(t, ex.Scores, len(models.Intents))
	assert.False(t, ex.Floored)
}

// ==========================
// Matchers
// ==========================

func TestKeywordMatcher_Score(t *testing.T) {
	m := NewKeywordMatcher(knowledge.Default().Intents())

	got := m.Score(Normalize("Which fertilizer suits my soil?"))
	assert.Equal(t, models.IntentFertilizerAdvice, got.Intent)
	assert.InDelta(t, 2.0/6.0, got.Confidence, 1e-9)

	assert.Equal(t, Signal{Intent: models.IntentGeneralHelp}, m.Score("zzz"))
}

func TestKeywordMatcher_MixedCaseKeywords(t *testing.T) {
	m := NewKeywordMatcher(knowledge.Default().Intents())
	got := m.Score(Normalize("NPK ratio"))
	assert.Equal(t, models.IntentFertilizerAdvice, got.Intent)
}

func TestRuleMatcher_Score(t *testing.T) {
	m := NewRuleMatcher(knowledge.Default().Rules())

	assert.Equal(t, Signal{Intent: models.IntentWeatherAdvice, Confidence: RuleHitConfidence}, m.Score("Should I irrigate today?"))
	assert.Equal(t, Signal{Intent: models.IntentMarketPrices, Confidence: RuleHitConfidence}, m.Score("CURRENT PRICES please"))
	assert.Equal(t, Signal{Intent: models.IntentGeneralHelp, Confidence: RuleMissConfidence}, m.Score("hello"))
}

func TestSimilarityMatcher_Score(t *testing.T) {
	m := NewSimilarityMatcher(knowledge.Default().Intents())

	got := m.Score(Normalize("Government schemes for farmers?"))
	assert.Equal(t, models.IntentGovernmentSchemes, got.Intent)
	assert.Greater(t, got.Confidence, 0.5)

	exact := m.Score(Normalize("pest management"))
	assert.Equal(t, models.IntentPestControl, exact.Intent)
	assert.InDelta(t, 1.0, exact.Confidence, 1e-9)
}

func TestSimilarityMatcher_UnfittedFallsBack(t *testing.T) {
	m := NewSimilarityMatcher([]knowledge.IntentDef{{Name: intentA, Examples: []string{"a", "the"}}})
	assert.Equal(t, Signal{Intent: models.IntentGeneralHelp}, m.Score("anything at all"))
}

func TestAnalyze(t *testing.T) {
	assert.Equal(t, []string{"crop", "grow", "crop grow"}, analyze("What crop should I grow?"))
	assert.Empty(t, analyze("a I the"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "what s the price of wheat", Normalize("  What's the PRICE of wheat?! "))
	assert.Equal(t, "", Normalize("?!"))
}
