package classifier

import (
	"fmt"

	"kisan-advisory/internal/chatbot/knowledge"
	"kisan-advisory/internal/common/metrics"
	"kisan-advisory/internal/models"
)

// Fusion constants. Replies and tests depend on these values exactly.
const (
	KeywordWeight    = 0.4
	SimilarityWeight = 0.4
	RuleWeight       = 0.2

	FallbackThreshold  = 0.1
	FallbackConfidence = 0.5
)

// Logger interface definition
type Logger interface {
	Warn(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// EntityExtractor is satisfied by entities.Extractor.
type EntityExtractor interface {
	Extract(message string) models.Entities
}

// Result is one classification decision.
type Result struct {
	Intent     models.Intent
	Confidence float64
	Entities   models.Entities
}

// Explanation exposes the individual votes behind a Result.
type Explanation struct {
	Result
	Normalized string
	Keyword    Signal
	Similarity Signal
	Rule       Signal
	Scores     map[models.Intent]float64
	Floored    bool
}

// Engine fuses the keyword, similarity and rule votes. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	intents    []models.Intent
	keyword    Scorer
	similarity Scorer
	rule       Scorer
	extractor  EntityExtractor
	logger     Logger
}

// NewEngine builds the three matchers from catalog.
func NewEngine(catalog *knowledge.Catalog, extractor EntityExtractor, log Logger) *Engine {
	defs := catalog.Intents()
	names := make([]models.Intent, len(defs))
	for i, def := range defs {
		names[i] = def.Name
	}
	return NewEngineWithScorers(
		names,
		NewKeywordMatcher(defs),
		NewSimilarityMatcher(defs),
		NewRuleMatcher(catalog.Rules()),
		extractor,
		log,
	)
}

// NewEngineWithScorers wires arbitrary scorers. intents fixes the tie-break
// order.
func NewEngineWithScorers(intents []models.Intent, keyword, similarity, rule Scorer, extractor EntityExtractor, log Logger) *Engine {
	return &Engine{
		intents:    intents,
		keyword:    keyword,
		similarity: similarity,
		rule:       rule,
		extractor:  extractor,
		logger:     log.With(map[string]interface{}{"component": "intent-fusion"}),
	}
}

// Classify never fails. A panic in any matcher degrades to general_help at
// FallbackConfidence with no entities.
func (e *Engine) Classify(message string) Result {
	return e.Explain(message).Result
}

func (e *Engine) Explain(message string) (out Explanation) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ChatFallbacks.WithLabelValues("classification_error").Inc()
			e.logger.Warn("intent classification failed, using fallback intent", map[string]interface{}{
				"error": fmt.Sprintf("%v", r),
			})
			out = Explanation{
				Result:  Result{Intent: models.IntentGeneralHelp, Confidence: FallbackConfidence},
				Floored: true,
			}
		}
	}()

	out.Normalized = Normalize(message)
	if e.extractor != nil {
		out.Entities = e.extractor.Extract(message)
	}

	out.Keyword = e.keyword.Score(out.Normalized)
	out.Similarity = e.similarity.Score(out.Normalized)
	// rules see the raw text; patterns are case-insensitive
	out.Rule = e.rule.Score(message)

	out.Scores = e.fuse(out.Keyword, out.Similarity, out.Rule)

	best, top := models.IntentGeneralHelp, -1.0
	for _, intent := range e.intents {
		if s := out.Scores[intent]; s > top {
			best, top = intent, s
		}
	}

	if top < FallbackThreshold {
		metrics.ChatFallbacks.WithLabelValues("low_confidence").Inc()
		out.Floored = true
		best, top = models.IntentGeneralHelp, FallbackConfidence
	}

	out.Intent = best
	out.Confidence = clamp01(top)
	return out
}

// fuse averages the weighted votes each intent received. An intent nobody
// voted for scores 0.
func (e *Engine) fuse(keyword, similarity, rule Signal) map[models.Intent]float64 {
	scores := make(map[models.Intent]float64, len(e.intents))
	for _, intent := range e.intents {
		var sum float64
		var votes int
		if keyword.Intent == intent {
			sum += keyword.Confidence * KeywordWeight
			votes++
		}
		if similarity.Intent == intent {
			sum += similarity.Confidence * SimilarityWeight
			votes++
		}
		if rule.Intent == intent {
			sum += rule.Confidence * RuleWeight
			votes++
		}
		if votes > 0 {
			scores[intent] = sum / float64(votes)
		} else {
			scores[intent] = 0
		}
	}
	return scores
}
