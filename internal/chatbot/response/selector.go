// Package response turns a classified message into reply text. The static
// Selector draws from the catalog pools; LLMResponder asks a remote model and
// falls back to the Selector on any failure.
package response

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"kisan-advisory/internal/chatbot/knowledge"
	"kisan-advisory/internal/models"
)

const maxPlaceholderCrops = 3

type Kind int

const (
	KindRecognized Kind = iota
	KindFallback
)

// Source values reported in Bundle.Source.
const (
	SourceStatic   = "static"
	SourceFallback = "fallback_template"
)

// Bundle is the reply material for one turn.
type Bundle struct {
	Kind          Kind
	Intent        models.Intent
	Confidence    float64
	Response      string
	FollowUp      string
	Actions       []string
	NeedsMoreInfo bool
	Source        string
}

// Request carries what a responder may use. State is nil for anonymous
// callers.
type Request struct {
	Message    string
	Intent     models.Intent
	Confidence float64
	Entities   models.Entities
	State      *models.ConversationState
}

// Responder produces the reply for one turn.
type Responder interface {
	Respond(ctx context.Context, req Request) (Bundle, error)
}

// Selector picks canned replies. The random source is guarded by a mutex so
// one Selector can serve concurrent turns.
type Selector struct {
	catalog     *knowledge.Catalog
	locale      knowledge.Locale
	personalize bool

	mu  sync.Mutex
	rng *rand.Rand
}

type SelectorOption func(*Selector)

// WithSource fixes the random draw, mainly for tests.
func WithSource(src rand.Source) SelectorOption {
	return func(s *Selector) { s.rng = rand.New(src) }
}

// WithPersonalization appends location and crop context to replies.
func WithPersonalization(enabled bool) SelectorOption {
	return func(s *Selector) { s.personalize = enabled }
}

func NewSelector(catalog *knowledge.Catalog, locale knowledge.Locale, opts ...SelectorOption) *Selector {
	s := &Selector{
		catalog: catalog,
		locale:  locale,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select never fails. Intents outside the catalog get the fixed fallback
// template.
//
// NeedsMoreInfo is true for every recognized intent; no intent is ever
// considered fully answered.
func (s *Selector) Select(intent models.Intent, confidence float64, entities models.Entities, state *models.ConversationState) Bundle {
	pool, ok := s.catalog.Pool(s.locale, intent)
	if !ok || len(pool.Responses) == 0 {
		return s.fallback()
	}

	s.mu.Lock()
	text := pool.Responses[s.rng.Intn(len(pool.Responses))]
	var followUp string
	if len(pool.FollowUps) > 0 {
		followUp = pool.FollowUps[s.rng.Intn(len(pool.FollowUps))]
	}
	s.mu.Unlock()

	return Bundle{
		Kind:          KindRecognized,
		Intent:        intent,
		Confidence:    confidence,
		Response:      s.render(text, entities, state),
		FollowUp:      followUp,
		Actions:       append([]string(nil), pool.Actions...),
		NeedsMoreInfo: true,
		Source:        SourceStatic,
	}
}

func (s *Selector) Respond(_ context.Context, req Request) (Bundle, error) {
	return s.Select(req.Intent, req.Confidence, req.Entities, req.State), nil
}

func (s *Selector) fallback() Bundle {
	f := s.catalog.Fallback(s.locale)
	return Bundle{
		Kind:          KindFallback,
		Intent:        models.IntentUnknown,
		Confidence:    0,
		Response:      f.Response,
		FollowUp:      f.FollowUp,
		Actions:       append([]string(nil), f.Actions...),
		NeedsMoreInfo: true,
		Source:        SourceFallback,
	}
}

// render fills {crops} and, when personalization is on, adds location and
// crop context.
func (s *Selector) render(text string, entities models.Entities, state *models.ConversationState) string {
	if strings.Contains(text, "{crops}") {
		crops := entities.Crops
		if len(crops) == 0 && state != nil {
			crops = state.UserProfile.Crops
		}
		filler := s.catalog.CropPlaceholder(s.locale)
		if len(crops) > 0 {
			if len(crops) > maxPlaceholderCrops {
				crops = crops[:maxPlaceholderCrops]
			}
			filler = strings.Join(crops, ", ")
		}
		text = strings.ReplaceAll(text, "{crops}", filler)
	}

	if !s.personalize {
		return text
	}

	if len(entities.Locations) > 0 {
		text += fmt.Sprintf(" (considering your location in %s)", entities.Locations[0])
	}
	if len(entities.Crops) > 0 && !strings.Contains(strings.ToLower(text), "crop") {
		text = fmt.Sprintf("For your %s crop: %s", entities.Crops[0], text)
	}
	return text
}
