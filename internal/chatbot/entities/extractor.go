// Package entities pulls crop names, places, dates, numbers and problem
// keywords out of free text.
package entities

import (
	"fmt"
	"regexp"
	"strings"

	"kisan-advisory/internal/common/metrics"
	"kisan-advisory/internal/models"
)

// Logger interface definition
type Logger interface {
	Warn(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

var (
	cropVocabulary    = []string{"rice", "wheat", "maize", "cotton", "sugarcane", "potato", "tomato", "onion", "soybean"}
	problemVocabulary = []string{"disease", "pest", "problem", "issue", "damage", "rot", "blight", "wilt"}

	tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:[.,/'\-][\p{L}\p{N}]+)*`)
)

// Extractor never fails: any tagger error or panic yields empty Entities.
type Extractor struct {
	tagger SpanTagger
	logger Logger
}

func NewExtractor(tagger SpanTagger, log Logger) *Extractor {
	if tagger == nil {
		tagger = NewGazetteerTagger()
	}
	return &Extractor{
		tagger: tagger,
		logger: log.With(map[string]interface{}{"component": "entity-extractor"}),
	}
}

// Extract returns the slots found in message.
func (e *Extractor) Extract(message string) (out models.Entities) {
	defer func() {
		if r := recover(); r != nil {
			e.degrade(fmt.Errorf("panic: %v", r))
			out = models.Entities{}
		}
	}()

	spans, err := e.tagger.Tag(message)
	if err != nil {
		e.degrade(err)
		return models.Entities{}
	}

	for _, span := range spans {
		switch span.Label {
		case LabelPlace:
			out.Locations = append(out.Locations, span.Text)
		case LabelDate:
			out.Dates = append(out.Dates, span.Text)
		}
	}

	for _, tok := range tokenPattern.FindAllString(message, -1) {
		lower := strings.ToLower(tok)
		if inVocabulary(cropVocabulary, lower) {
			out.Crops = append(out.Crops, lower)
		}
		if likeNumber(lower) {
			out.Numbers = append(out.Numbers, tok)
		}
		if inVocabulary(problemVocabulary, lower) {
			out.Problems = append(out.Problems, lower)
		}
	}

	return out
}

func (e *Extractor) degrade(err error) {
	metrics.ChatFallbacks.WithLabelValues("entity_extraction").Inc()
	e.logger.Warn("entity extraction failed, returning empty entities", map[string]interface{}{
		"error": err.Error(),
	})
}

func inVocabulary(vocab []string, word string) bool {
	for _, v := range vocab {
		if v == word {
			return true
		}
	}
	return false
}
