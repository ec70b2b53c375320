package entities

import (
	"errors"
	"testing"

	"kisan-advisory/internal/models"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Logger
// ==========================

type TestLogger struct {
	warns []string
}

func (l *TestLogger) Warn(msg string, fields map[string]interface{}) { l.warns = append(l.warns, msg) }
func (l *TestLogger) With(fields map[string]interface{}) Logger  { return l }

type failingTagger struct{ err error }

func (f failingTagger) Tag(string) ([]Span, error) { return nil, f.err }

type panickingTagger struct{}

func (panickingTagger) Tag(string) ([]Span, error) { panic("model not loaded") }

// ==========================
// Tests
// ==========================

func TestExtractor_Extract(t *testing.T) {
	ex := NewExtractor(nil, &TestLogger{})

	tests := []struct {
		name     string
		message  string
		expected models.Entities
	}{
		{
			name:    "crops are canonical lower case",
			message: "I grow Rice and WHEAT",
			expected: models.Entities{
				Crops: []string{"rice", "wheat"},
			},
		},
		{
			name:    "place, number and problem",
			message: "My 5 acres of cotton in Uttar Pradesh have a pest problem",
			expected: models.Entities{
				Crops:     []string{"cotton"},
				Locations: []string{"Uttar Pradesh"},
				Numbers:   []string{"5"},
				Problems:  []string{"pest", "problem"},
			},
		},
		{
			name:    "dates and number words",
			message: "planted two weeks back, should I irrigate tomorrow or on 12 March 2024?",
			expected: models.Entities{
				Dates:   []string{"tomorrow", "12 March 2024"},
				Numbers: []string{"two", "12", "2024"},
			},
		},
		{
			name:     "nothing to extract",
			message:  "hello there",
			expected: models.Entities{},
		},
		{
			name:    "decimal and fraction numbers",
			message: "use 2.5 kg or 1/2 bag",
			expected: models.Entities{
				Numbers: []string{"2.5", "1/2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ex.Extract(tt.message))
		})
	}
}

func TestExtractor_FailsSoft(t *testing.T) {
	t.Run("tagger error", func(t *testing.T) {
		log := &TestLogger{}
		ex := NewExtractor(failingTagger{err: errors.New("backend down")}, log)

		got := ex.Extract("rice in Punjab")
		assert.True(t, got.IsEmpty())
		assert.Len(t, log.warns, 1)
	})

	t.Run("tagger panic", func(t *testing.T) {
		log := &TestLogger{}
		ex := NewExtractor(panickingTagger{}, log)

		assert.NotPanics(t, func() {
			assert.True(t, ex.Extract("rice").IsEmpty())
		})
		assert.Len(t, log.warns, 1)
	})
}

func TestLikeNumber(t *testing.T) {
	for _, tok := range []string{"5", "1,000", "2.5", "3/4", "3rd", "twenty", "lakh", "-4"} {
		assert.True(t, likeNumber(tok), tok)
	}
	for _, tok := range []string{"rice", "5kg", "", "a/b", "st"} {
		assert.False(t, likeNumber(tok), tok)
	}
}

func TestGazetteerTagger_PrefersLongestPlace(t *testing.T) {
	spans, err := NewGazetteerTagger().Tag("farms near New Delhi and West Bengal")
	assert.NoError(t, err)
	assert.Equal(t, []Span{
		{Text: "New Delhi", Label: LabelPlace, Start: 11},
		{Text: "West Bengal", Label: LabelPlace, Start: 25},
	}, spans)
}
