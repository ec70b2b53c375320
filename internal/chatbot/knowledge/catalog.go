// Package knowledge holds the static intent catalog: example phrases,
// keywords, rule patterns and the per-locale response pools.
package knowledge

import (
	"regexp"
	"sync"

	"kisan-advisory/internal/models"
)

type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleHindi   Locale = "hi"
)

// IntentDef is the classification data for one intent.
type IntentDef struct {
	Name     models.Intent
	Examples []string
	Keywords []string
}

// Rule is one ordered pattern of the rule matcher.
type Rule struct {
	Intent  models.Intent
	Pattern *regexp.Regexp
}

// Pool is the reply material for one intent in one locale.
type Pool struct {
	Responses []string
	FollowUps []string
	Actions   []string
}

// Fallback is the fixed reply used for intents outside the catalog.
type Fallback struct {
	Response string
	FollowUp string
	Actions  []string
}

// Catalog is immutable after construction and safe for concurrent reads.
type Catalog struct {
	intents      []IntentDef
	byName       map[models.Intent]int
	rules        []Rule
	pools        map[Locale]map[models.Intent]Pool
	fallbacks    map[Locale]Fallback
	cropDefaults map[Locale]string
	suggestions  []string
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog, built on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = build()
	})
	return defaultCatalog
}

func build() *Catalog {
	c := &Catalog{
		intents: intentDefs(),
		byName:  make(map[models.Intent]int),
		rules:   compileRules(),
		pools: map[Locale]map[models.Intent]Pool{
			LocaleEnglish: englishPools(),
			LocaleHindi:   hindiPools(),
		},
		fallbacks: map[Locale]Fallback{
			LocaleEnglish: englishFallback,
			LocaleHindi:   hindiFallback,
		},
		cropDefaults: map[Locale]string{
			LocaleEnglish: "crops suited to your region",
			LocaleHindi:   "आपके क्षेत्र के अनुकूल फसलें",
		},
		suggestions: starterQuestions,
	}
	for i, def := range c.intents {
		c.byName[def.Name] = i
	}
	return c
}

// Intents returns the definitions in declaration order.
func (c *Catalog) Intents() []IntentDef {
	return c.intents
}

func (c *Catalog) Intent(name models.Intent) (IntentDef, bool) {
	i, ok := c.byName[name]
	if !ok {
		return IntentDef{}, false
	}
	return c.intents[i], true
}

// Rules returns the rule table in priority order.
func (c *Catalog) Rules() []Rule {
	return c.rules
}

// Pool returns the reply material for intent. Unknown locales read English.
func (c *Catalog) Pool(locale Locale, intent models.Intent) (Pool, bool) {
	pools, ok := c.pools[locale]
	if !ok {
		pools = c.pools[LocaleEnglish]
	}
	p, ok := pools[intent]
	return p, ok
}

func (c *Catalog) Fallback(locale Locale) Fallback {
	if f, ok := c.fallbacks[locale]; ok {
		return f
	}
	return c.fallbacks[LocaleEnglish]
}

// CropPlaceholder is the text substituted for {crops} when no crop is known.
func (c *Catalog) CropPlaceholder(locale Locale) string {
	if s, ok := c.cropDefaults[locale]; ok {
		return s
	}
	return c.cropDefaults[LocaleEnglish]
}

// Suggestions returns the canned starter questions.
func (c *Catalog) Suggestions() []string {
	out := make([]string, len(c.suggestions))
	copy(out, c.suggestions)
	return out
}

// ParseLocale maps a config value onto a Locale, defaulting to English.
func ParseLocale(s string) Locale {
	if Locale(s) == LocaleHindi {
		return LocaleHindi
	}
	return LocaleEnglish
}
