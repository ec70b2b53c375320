package knowledge

import (
	"regexp"

	"kisan-advisory/internal/models"
)

func intentDefs() []IntentDef {
	return []IntentDef{
		{
			Name: models.IntentCropRecommendation,
			Examples: []string{
				"what crop should I grow",
				"recommend crops for my soil",
				"which crop is best for my land",
				"suggest crops for farming",
				"what to plant this season",
				"crop suggestions",
				"best crops for my area",
				"farming recommendations",
			},
			Keywords: []string{"crop", "grow", "plant", "recommend", "suggest", "best", "farming"},
		},
		{
			Name: models.IntentDiseaseIdentification,
			Examples: []string{
				"my plant has spots on leaves",
				"what disease is this",
				"plant disease identification",
				"leaves turning yellow",
				"brown spots on leaves",
				"identify plant disease",
				"what is wrong with my crop",
				"disease diagnosis",
			},
			Keywords: []string{"disease", "spots", "yellow", "brown", "sick", "identify", "diagnosis"},
		},
		{
			Name: models.IntentWeatherAdvice,
			Examples: []string{
				"should I irrigate today",
				"weather effect on crops",
				"rain impact on farming",
				"temperature and crops",
				"weather advisory for farmers",
				"farming weather tips",
				"climate advice",
			},
			Keywords: []string{"weather", "rain", "temperature", "irrigate", "climate", "advisory"},
		},
		{
			Name: models.IntentMarketPrices,
			Examples: []string{
				"current crop prices",
				"market rates for wheat",
				"selling price of rice",
				"commodity prices",
				"farm produce rates",
				"price information",
				"market trends",
			},
			Keywords: []string{"price", "market", "rates", "selling", "commodity", "trends"},
		},
		{
			Name: models.IntentFertilizerAdvice,
			Examples: []string{
				"which fertilizer to use",
				"fertilizer recommendations",
				"soil nutrient management",
				"NPK requirements",
				"organic fertilizers",
				"chemical fertilizers",
				"soil testing advice",
			},
			Keywords: []string{"fertilizer", "NPK", "nutrient", "soil", "organic", "chemical"},
		},
		{
			Name: models.IntentPestControl,
			Examples: []string{
				"how to control pests",
				"insecticide recommendations",
				"pest management",
				"bugs on plants",
				"organic pest control",
				"chemical pest control",
				"pesticide advice",
			},
			Keywords: []string{"pest", "insect", "bug", "control", "pesticide", "organic"},
		},
		{
			Name: models.IntentGovernmentSchemes,
			Examples: []string{
				"government farming schemes",
				"subsidy for farmers",
				"agricultural loans",
				"PM Kisan scheme",
				"farming subsidies",
				"government support",
				"farmer welfare schemes",
			},
			Keywords: []string{"government", "scheme", "subsidy", "loan", "PM Kisan", "support"},
		},
		{
			Name: models.IntentFarmingTechniques,
			Examples: []string{
				"modern farming methods",
				"organic farming techniques",
				"sustainable agriculture",
				"farming best practices",
				"crop rotation advice",
				"irrigation methods",
				"soil conservation",
			},
			Keywords: []string{"technique", "method", "organic", "sustainable", "practice", "rotation"},
		},
		{
			Name: models.IntentGeneralHelp,
			Examples: []string{
				"help me with farming",
				"agricultural assistance",
				"farming guidance",
				"farmer support",
				"agricultural advice",
				"farming information",
				"how can you help",
			},
			Keywords: []string{"help", "assist", "guidance", "support", "advice", "information"},
		},
	}
}

var rulePatterns = []struct {
	intent  models.Intent
	pattern string
}{
	{models.IntentCropRecommendation, `\b(what|which|best)\s+(crop|plant)s?\s+(should|to|for|can)\s+(I|we)\s+(grow|plant|cultivate)`},
	{models.IntentCropRecommendation, `\b(recommend|suggest)\s+(crop|plant)s?\s+(for|to)`},
	{models.IntentCropRecommendation, `\b(crop|plant)\s+(recommendation|suggestion)s?`},

	{models.IntentDiseaseIdentification, `\b(disease|problem|issue)\s+(with|in)\s+(my|plant|crop)`},
	{models.IntentDiseaseIdentification, `\b(what|identify)\s+(is|are)\s+(wrong|this)\s+(with|disease)`},
	{models.IntentDiseaseIdentification, `\b(spots?|yellow|brown|black)\s+(on|leaves?|stems?|fruits?)`},

	{models.IntentWeatherAdvice, `\b(weather|rain|temperature|climate)\s+(effect|impact|advice)`},
	{models.IntentWeatherAdvice, `\b(should|can)\s+I\s+(irrigate|water|plant)`},
	{models.IntentWeatherAdvice, `\b(weather|rain)\s+(today|now|forecast)`},

	{models.IntentMarketPrices, `\b(price|rate|cost)\s+(of|for)\s+(crop|produce|commodity)`},
	{models.IntentMarketPrices, `\b(market|selling)\s+(price|rate)s?`},
	{models.IntentMarketPrices, `\b(current|today)\s+(price|rate)s?`},
}

func compileRules() []Rule {
	rules := make([]Rule, 0, len(rulePatterns))
	for _, rp := range rulePatterns {
		rules = append(rules, Rule{
			Intent:  rp.intent,
			Pattern: regexp.MustCompile(`(?i)` + rp.pattern),
		})
	}
	return rules
}

var starterQuestions = []string{
	"What crops should I grow in my area?",
	"How can I identify plant diseases?",
	"Tell me about government schemes for farmers",
	"What are the best farming practices?",
	"How does weather affect my crops?",
	"I need help with soil management",
}
