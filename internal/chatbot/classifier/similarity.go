package classifier

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"kisan-advisory/internal/chatbot/knowledge"
	"kisan-advisory/internal/models"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}\p{M}_]{2,}`)

// SimilarityMatcher embeds messages in a TF-IDF space fitted once over every
// intent's example phrases and votes for the intent owning the most similar
// example. Read-only after construction.
type SimilarityMatcher struct {
	vocab    map[string]int
	idf      []float64
	examples []sparseVector
	owners   []int // index into intents per example
	intents  []models.Intent
	fitted   bool
}

type sparseVector map[int]float64

func NewSimilarityMatcher(intents []knowledge.IntentDef) *SimilarityMatcher {
	m := &SimilarityMatcher{vocab: make(map[string]int)}

	var docs [][]string
	for i, def := range intents {
		m.intents = append(m.intents, def.Name)
		for _, ex := range def.Examples {
			docs = append(docs, analyze(ex))
			m.owners = append(m.owners, i)
		}
	}

	df := make(map[string]int)
	for _, terms := range docs {
		seen := make(map[string]bool)
		for _, term := range terms {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}
	if len(df) == 0 {
		return m
	}

	sorted := make([]string, 0, len(df))
	for term := range df {
		sorted = append(sorted, term)
	}
	sort.Strings(sorted)
	m.idf = make([]float64, len(sorted))
	n := float64(len(docs))
	for i, term := range sorted {
		m.vocab[term] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	for _, terms := range docs {
		m.examples = append(m.examples, m.vectorize(terms))
	}
	m.fitted = true
	return m
}

// Score expects a normalized message.
func (m *SimilarityMatcher) Score(message string) Signal {
	if !m.fitted {
		return Signal{Intent: models.IntentGeneralHelp}
	}

	q := m.vectorize(analyze(message))
	best := make([]float64, len(m.intents))
	for i := range best {
		best[i] = math.Inf(-1)
	}
	for i, ex := range m.examples {
		sim := dot(q, ex)
		if owner := m.owners[i]; sim > best[owner] {
			best[owner] = sim
		}
	}

	win := Signal{Intent: models.IntentGeneralHelp}
	top := math.Inf(-1)
	for i, s := range best {
		if s > top {
			top = s
			win = Signal{Intent: m.intents[i], Confidence: s}
		}
	}
	win.Confidence = clamp01(win.Confidence)
	return win
}

func (m *SimilarityMatcher) vectorize(terms []string) sparseVector {
	v := make(sparseVector)
	for _, term := range terms {
		if idx, ok := m.vocab[term]; ok {
			v[idx]++
		}
	}
	var norm float64
	for idx, tf := range v {
		w := tf * m.idf[idx]
		v[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range v {
			v[idx] /= norm
		}
	}
	return v
}

// analyze lower-cases, tokenizes, drops stop words and emits unigrams then
// bigrams of the remaining tokens.
func analyze(text string) []string {
	var tokens []string
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := englishStopWords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}
	terms := append([]string(nil), tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

func dot(a, b sparseVector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var sum float64
	for idx, w := range a {
		sum += w * b[idx]
	}
	return sum
}

