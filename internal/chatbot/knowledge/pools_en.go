package knowledge

import "kisan-advisory/internal/models"

var englishFallback = Fallback{
	Response: "I'm not sure I understood that correctly. Could you please rephrase your question?",
	FollowUp: "What farming topic would you like help with?",
	Actions:  []string{"Browse help topics", "Ask about crop recommendations", "Get weather advice"},
}

func englishPools() map[models.Intent]Pool {
	return map[models.Intent]Pool{
		models.IntentCropRecommendation: {
			Responses: []string{
				"Based on your location and soil conditions, I recommend considering {crops}. Would you like me to provide more details about these crops?",
				"For your area, {crops} would be excellent choices. I can help you with detailed cultivation practices for any of these.",
				"Considering the current season and your soil type, I suggest {crops}. Each has different requirements - which one interests you most?",
			},
			FollowUps: []string{
				"Could you tell me your soil type (clay, sandy, loamy)?",
				"What's your location or region?",
				"What season are you planning to plant in?",
				"Do you have any specific preferences or constraints?",
			},
			Actions: []string{"Get detailed cultivation guide", "Check soil requirements", "View market prices", "Get weather-based advice"},
		},
		models.IntentDiseaseIdentification: {
			Responses: []string{
				"It sounds like your plant might have a disease issue. Could you upload a clear photo of the affected area for accurate identification?",
				"Plant diseases can be identified through visual symptoms. Please share an image of the affected leaves or stems.",
				"I can help identify plant diseases using image analysis. Would you like to upload a photo for diagnosis?",
			},
			FollowUps: []string{
				"What type of crop or plant is affected?",
				"When did you first notice these symptoms?",
				"Have you applied any treatments already?",
			},
			Actions: []string{"Upload plant image for diagnosis", "Get treatment recommendations", "Learn prevention methods", "Check for similar symptoms"},
		},
		models.IntentWeatherAdvice: {
			Responses: []string{
				"Weather plays a crucial role in farming. I can provide specific advice based on current conditions. What's your location?",
				"Different weather conditions require different farming approaches. Tell me about your current weather situation.",
				"Weather-based farming decisions are important. I can help with irrigation, planting, and protection advice.",
			},
			FollowUps: []string{
				"What's the current temperature in your area?",
				"Has it rained recently? How much?",
				"What crop stage are your plants in?",
				"What's the humidity level?",
			},
			Actions: []string{"Check current weather", "Get irrigation schedule", "Plan planting activities", "Prepare for weather events"},
		},
		models.IntentMarketPrices: {
			Responses: []string{
				"Market prices fluctuate regularly. I can provide current price information for various crops. Which crop are you interested in?",
				"Understanding market prices helps in making better farming decisions. What produce are you planning to sell?",
				"I can help you with current market rates and price trends. Let me know which commodity you're asking about.",
			},
			FollowUps: []string{
				"Which crop's price information do you need?",
				"Are you looking for local market prices or wholesale rates?",
				"What's your location for region-specific prices?",
			},
			Actions: []string{"View current prices", "Check price trends", "Find nearby markets", "Get selling tips"},
		},
		models.IntentFertilizerAdvice: {
			Responses: []string{
				"Proper fertilization is key to good crop yields. I can recommend suitable fertilizers based on your soil and crop needs.",
				"Different crops need different nutrient balances. Tell me about your crop and soil type for specific recommendations.",
				"Soil testing and appropriate fertilization can significantly improve your yields. What crop are you growing?",
			},
			FollowUps: []string{
				"What crop are you fertilizing?",
				"Have you done a soil test recently?",
				"What are your current NPK levels?",
				"Are you looking for organic or chemical fertilizers?",
			},
			Actions: []string{"Get soil test recommendations", "View fertilizer calculator", "Learn application methods", "Check organic alternatives"},
		},
		models.IntentPestControl: {
			Responses: []string{
				"Effective pest management combines prevention and treatment. I can guide you on integrated pest management approaches.",
				"Pest control should be targeted and environmentally friendly. What type of pest problem are you facing?",
				"There are many pest control options available. Let me help you choose the most appropriate method for your situation.",
			},
			FollowUps: []string{
				"What type of pest are you dealing with?",
				"What crop is affected?",
				"Have you tried any control measures already?",
				"Do you prefer organic or chemical solutions?",
			},
			Actions: []string{"Identify pest type", "Get control methods", "Learn prevention techniques", "Check organic solutions"},
		},
		models.IntentGovernmentSchemes: {
			Responses: []string{
				"There are several government schemes available for farmers. I can provide information about various agricultural support programs.",
				"Government schemes can provide financial and technical support for farming. Which type of assistance are you looking for?",
				"From subsidies to insurance, there are many schemes to support farmers. Let me help you find the right ones for your needs.",
			},
			FollowUps: []string{
				"What type of scheme are you interested in (subsidies, loans, insurance)?",
				"Are you looking for crop-specific schemes?",
				"What's your location for state-specific schemes?",
			},
			Actions: []string{"Browse available schemes", "Check eligibility criteria", "Apply for schemes", "Get application help"},
		},
		models.IntentFarmingTechniques: {
			Responses: []string{
				"Modern farming techniques can improve efficiency and sustainability. What aspect of farming are you interested in learning about?",
				"There are many innovative farming methods available. I can share information about various techniques and best practices.",
				"Sustainable farming practices help in long-term productivity. Which farming technique would you like to know more about?",
			},
			FollowUps: []string{
				"What specific farming technique interests you?",
				"Are you looking for organic farming methods?",
				"What crop are you focusing on?",
				"Do you have any specific challenges you're trying to address?",
			},
			Actions: []string{"Browse farming methods", "Get detailed guides", "Watch tutorial videos", "Connect with experts"},
		},
		models.IntentGeneralHelp: {
			Responses: []string{
				"I'm here to help you with all your farming needs! I can assist with crop recommendations, disease identification, weather advice, market information, and much more.",
				"As your agricultural assistant, I can help with crop selection, pest management, fertilization advice, market prices, and government schemes.",
				"I provide comprehensive farming support including crop recommendations, disease diagnosis, weather-based advice, and market intelligence.",
			},
			FollowUps: []string{
				"What specific farming topic would you like help with?",
				"Are you looking for crop recommendations?",
				"Do you need help with a plant disease?",
				"Are you interested in market prices or weather advice?",
			},
			Actions: []string{"Get more information", "Ask a specific question"},
		},
	}
}
