package entities

import (
	"regexp"
	"sort"
	"strings"
)

type SpanLabel string

const (
	LabelPlace SpanLabel = "PLACE"
	LabelDate  SpanLabel = "DATE"
)

// Span is a tagged substring of the input.
type Span struct {
	Text  string
	Label SpanLabel
	Start int
}

// SpanTagger finds place names and date expressions in text.
type SpanTagger interface {
	Tag(text string) ([]Span, error)
}

// GazetteerTagger recognizes places from a fixed list of Indian states,
// union territories and agricultural districts, and dates from a set of
// calendar expressions.
type GazetteerTagger struct {
	places *regexp.Regexp
	dates  *regexp.Regexp
}

var indianPlaces = []string{
	// states and union territories
	"andhra pradesh", "arunachal pradesh", "assam", "bihar", "chhattisgarh", "goa",
	"gujarat", "haryana", "himachal pradesh", "jharkhand", "karnataka", "kerala",
	"madhya pradesh", "maharashtra", "manipur", "meghalaya", "mizoram", "nagaland",
	"odisha", "orissa", "punjab", "rajasthan", "sikkim", "tamil nadu", "telangana",
	"tripura", "uttar pradesh", "uttarakhand", "west bengal", "delhi",
	"jammu and kashmir", "ladakh", "puducherry", "chandigarh",
	// cities and districts
	"mumbai", "pune", "nagpur", "nashik", "aurangabad", "kolhapur", "solapur",
	"bangalore", "bengaluru", "mysore", "mysuru", "belgaum", "dharwad",
	"chennai", "coimbatore", "madurai", "thanjavur", "hyderabad", "warangal",
	"guntur", "vijayawada", "kolkata", "lucknow", "kanpur", "varanasi", "agra",
	"meerut", "bareilly", "patna", "gaya", "muzaffarpur", "bhopal", "indore",
	"jabalpur", "gwalior", "ujjain", "jaipur", "jodhpur", "kota", "bikaner",
	"udaipur", "ahmedabad", "surat", "rajkot", "vadodara", "ludhiana", "amritsar",
	"jalandhar", "patiala", "bathinda", "karnal", "hisar", "ambala", "rohtak",
	"shimla", "dehradun", "ranchi", "raipur", "bhubaneswar", "cuttack", "guwahati",
	"thiruvananthapuram", "kochi", "kozhikode", "new delhi", "india",
}

var datePatterns = []string{
	`(?:next|last|this|coming)\s+(?:week|month|year|season|monday|tuesday|wednesday|thursday|friday|saturday|sunday)`,
	`\d{1,2}(?:st|nd|rd|th)?\s+(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)(?:\s+\d{4})?`,
	`(?:january|february|march|april|june|july|august|september|october|november|december)(?:\s+\d{1,2}(?:st|nd|rd|th)?)?(?:,?\s+\d{4})?`,
	`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`,
	`\d+\s+(?:days?|weeks?|months?|years?)(?:\s+ago)?`,
	`(?:today|tomorrow|yesterday|tonight)`,
	`(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)`,
	`(?:kharif|rabi|zaid)\s+season`,
	`(?:in|since|during)\s+(?:19|20)\d{2}`,
}

func NewGazetteerTagger() *GazetteerTagger {
	places := make([]string, len(indianPlaces))
	copy(places, indianPlaces)
	// longest first so multi-word names win over their prefixes
	sort.SliceStable(places, func(i, j int) bool { return len(places[i]) > len(places[j]) })
	for i, p := range places {
		places[i] = strings.ReplaceAll(regexp.QuoteMeta(p), " ", `\s+`)
	}

	return &GazetteerTagger{
		places: regexp.MustCompile(`(?i)\b(?:` + strings.Join(places, "|") + `)\b`),
		dates:  regexp.MustCompile(`(?i)\b(?:` + strings.Join(datePatterns, "|") + `)\b`),
	}
}

func (g *GazetteerTagger) Tag(text string) ([]Span, error) {
	var spans []Span
	for _, loc := range g.places.FindAllStringIndex(text, -1) {
		spans = append(spans, Span{Text: text[loc[0]:loc[1]], Label: LabelPlace, Start: loc[0]})
	}
	for _, loc := range g.dates.FindAllStringIndex(text, -1) {
		spans = append(spans, Span{Text: text[loc[0]:loc[1]], Label: LabelDate, Start: loc[0]})
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans, nil
}
