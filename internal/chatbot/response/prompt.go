package response

import (
	"strings"

	"kisan-advisory/internal/models"
)

const historyWindow = 10

// Message is one entry of the conversation sent to a remote model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const assistantPrompt = `You are Kisan Unnati, an expert agricultural AI assistant specialized in helping Indian farmers.
Your knowledge covers:
- Crop recommendations based on soil, climate, and location
- Disease identification and treatment
- Weather-based farming advice
- Market prices and trends
- Government schemes and subsidies
- Modern farming techniques
- Pest and weed management
- Soil health and fertilization

Guidelines:
- Use simple, clear language that farmers can understand
- Provide practical, actionable advice
- When unsure, recommend consulting local agricultural experts
- Suggest cost-effective and sustainable solutions
- Be thorough but concise.`

var intentPrompts = map[models.Intent]string{
	models.IntentCropRecommendation: `You are a crop recommendation specialist for Kisan Unnati.
Focus on:
- Matching crops to soil types, climate, and seasons
- Considering market demand and profitability
- Providing cultivation best practices
- Risk assessment and mitigation strategies

Always consider the farmer's location, resources, and experience level.`,
	models.IntentDiseaseIdentification: `You are a plant pathology expert for Kisan Unnati.
Specialize in:
- Visual disease identification
- Treatment recommendations
- Prevention strategies
- Integrated disease management

Emphasize early detection and organic solutions when possible.`,
	models.IntentMarketPrices: `You are an agricultural market analyst for Kisan Unnati.
Provide:
- Current market prices
- Price trends and forecasts
- Market intelligence
- Selling strategy advice

Consider both local and national markets, seasonal variations, and quality factors.`,
}

// SystemPrompt returns the intent-specific prompt with an entity context
// block appended when entities were extracted.
func SystemPrompt(intent models.Intent, entities models.Entities) string {
	prompt, ok := intentPrompts[intent]
	if !ok {
		prompt = assistantPrompt
	}

	var info []string
	if len(entities.Crops) > 0 {
		info = append(info, "Crops mentioned: "+strings.Join(entities.Crops, ", "))
	}
	if len(entities.Locations) > 0 {
		info = append(info, "Locations mentioned: "+strings.Join(entities.Locations, ", "))
	}
	if len(entities.Numbers) > 0 {
		info = append(info, "Numbers mentioned: "+strings.Join(entities.Numbers, ", "))
	}
	if len(entities.Problems) > 0 {
		info = append(info, "Problems mentioned: "+strings.Join(entities.Problems, ", "))
	}
	if len(info) == 0 {
		return prompt
	}
	return prompt + "\n\nEntity Context:\n" + strings.Join(info, "\n")
}

// Conversation returns the last historyWindow turns followed by message.
// The current user turn, if already recorded, is not repeated.
func Conversation(state *models.ConversationState, message string) []Message {
	var out []Message
	if state != nil {
		history := state.History
		if n := len(history); n > 0 && history[n-1].Role == models.RoleUser && history[n-1].Content == message {
			history = history[:n-1]
		}
		if len(history) > historyWindow {
			history = history[len(history)-historyWindow:]
		}
		for _, t := range history {
			out = append(out, Message{Role: string(t.Role), Content: t.Content})
		}
	}
	return append(out, Message{Role: string(models.RoleUser), Content: message})
}
