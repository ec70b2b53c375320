package knowledge

import "kisan-advisory/internal/models"

var hindiFallback = Fallback{
	Response: "क्षमा करें, मैं आपकी क्वेरी को समझ नहीं सका। कृपया कृषि संबंधित प्रश्न पूछें जैसे: फसल सिफारिश, बीमारी पहचान, मौसम सलाह आदि।",
	FollowUp: "आप किस विषय में मदद चाहते हैं?",
	Actions:  []string{"मुख्य विषय चुनें", "विवरण के साथ पूछें"},
}

func hindiPools() map[models.Intent]Pool {
	return map[models.Intent]Pool{
		models.IntentCropRecommendation: {
			Responses: []string{
				"मैं आपकी मिट्टी और मौसम के आधार पर फसल की सिफारिश कर सकता हूं। आपकी मिट्टी का प्रकार क्या है? (रेतली, दोमट, काली मिट्टी)",
				"आपके क्षेत्र के लिए मुख्य फसलें हैं: गेहूं, धान, मक्का, कपास, गन्ना। कौन सी फसल में आप रुचि रखते हैं?",
				"मौजूदा मौसम और आपकी मिट्टी के आधार पर मैं ये फसलें सुझाऊंगा: गेहूं, चना, सरसों। क्या आप इनके बारे में और जानना चाहेंगे?",
				"भारतीय कृषि में मुख्य फसलें: खरीफ (बरसात), रबी (सर्दी), जायद (गर्मी)। आप किस मौसम के लिए योजना बना रहे हैं?",
			},
			FollowUps: []string{
				"आपकी मिट्टी का प्रकार क्या है?",
				"आपका स्थान या जिला क्या है?",
				"आप किस मौसम में बोना चाहते हैं?",
				"आपके पास कितनी जमीन है?",
			},
			Actions: []string{"फसल सिफारिश प्राप्त करें", "मिट्टी परीक्षण कराएं", "मौसम जांचें"},
		},
		models.IntentDiseaseIdentification: {
			Responses: []string{
				"पत्तों पर धब्बे या पीला पड़ना कई कारणों से हो सकता है। कृपया प्रभावित पत्ते की स्पष्ट तस्वीर अपलोड करें।",
				"फसल की बीमारी की पहचान के लिए मुझे पत्ते, तना या फल की तस्वीर दिखाएं। इससे सही निदान हो सकेगा।",
				"प्लांट क्लिनिक सुविधा का उपयोग करके अपनी फसल की बीमारी की पहचान कराएं। आप किस फसल की बात कर रहे हैं?",
			},
			FollowUps: []string{
				"कौन सी फसल प्रभावित है?",
				"कब से ये लक्षण दिख रहे हैं?",
				"क्या आपने कोई उपचार पहले किया है?",
			},
			Actions: []string{"तस्वीर अपलोड करें", "प्लांट क्लिनिक से संपर्क करें", "उपचार शुरू करें"},
		},
		models.IntentWeatherAdvice: {
			Responses: []string{
				"मौसम कृषि पर बहुत प्रभाव डालता है। वर्तमान मौसम के आधार पर सिंचाई, बुवाई और सुरक्षा के सुझाव मिल सकते हैं।",
				"बारिश, तापमान और आर्द्रता फसल के स्वास्थ्य को प्रभावित करती है। मौजूदा मौसम की स्थिति क्या है?",
				"मौसम आधारित कृषि निर्णय महत्वपूर्ण हैं। सिंचाई, कीटनाशक और फसल सुरक्षा के लिए मौसम की निगरानी जरूरी है।",
			},
			FollowUps: []string{
				"आपके क्षेत्र का वर्तमान तापमान क्या है?",
				"हाल ही में बारिश हुई है? कितनी?",
				"आपकी फसल किस अवस्था में है?",
				"आर्द्रता का स्तर क्या है?",
			},
			Actions: []string{"मौसम पूर्वानुमान देखें", "सिंचाई योजना बनाएं", "फसल सुरक्षा करें"},
		},
		models.IntentMarketPrices: {
			Responses: []string{
				"फसल की कीमतें नियमित रूप से बदलती हैं। वर्तमान बाजार भाव के लिए आप किस फसल के बारे में जानना चाहते हैं?",
				"गेहूं, धान, मक्का, कपास आदि की कीमतों के लिए स्थानीय मंडी दरें देखें। किस फसल की जानकारी चाहिए?",
				"बाजार भाव समझने से बेहतर कृषि निर्णय ले सकते हैं। वर्तमान कीमतों और रुझानों के लिए कौन सी फसल?",
			},
			FollowUps: []string{
				"किस फसल की कीमत जाननी है?",
				"स्थानीय मंडी या थोक दर चाहिए?",
				"आपका स्थान क्या है?",
			},
			Actions: []string{"मंडी दरें जांचें", "बिक्री का समय चुनें", "गुणवत्ता सुधारें"},
		},
		models.IntentFertilizerAdvice: {
			Responses: []string{
				"उर्वरक का चुनाव मिट्टी परीक्षण और फसल की जरूरत पर निर्भर करता है। आप किस फसल के लिए उर्वरक चाहते हैं?",
				"मिट्टी में NPK (नाइट्रोजन, फास्फोरस, पोटाश) की मात्रा महत्वपूर्ण है। हाल ही में मिट्टी परीक्षण करवाया है?",
				"जैविक और रासायनिक दोनों तरह के उर्वरक उपलब्ध हैं। आप किस प्रकार को प्राथमिकता देते हैं?",
			},
			FollowUps: []string{
				"कौन सी फसल के लिए उर्वरक?",
				"हाल ही में मिट्टी परीक्षण हुआ है?",
				"वर्तमान NPK स्तर क्या हैं?",
				"जैविक या रासायनिक उर्वरक?",
			},
			Actions: []string{"मिट्टी परीक्षण कराएं", "NPK जांचें", "जैविक उर्वरक आजमाएं"},
		},
		models.IntentPestControl: {
			Responses: []string{
				"कीट नियंत्रण में निवारण और उपचार दोनों महत्वपूर्ण हैं। आप किस प्रकार की कीट समस्या का सामना कर रहे हैं?",
				"जैविक और रासायनिक दोनों तरह के कीटनाशक उपलब्ध हैं। फसल और कीट के प्रकार के आधार पर चुनाव करें।",
				"एकीकृत कीट प्रबंधन (IPM) विधि सबसे प्रभावी है। कीट की पहचान और उचित नियंत्रण जरूरी है।",
			},
			FollowUps: []string{
				"किस प्रकार का कीट है?",
				"कौन सी फसल प्रभावित है?",
				"पहले कोई नियंत्रण उपाय किए?",
				"जैविक या रासायनिक समाधान?",
			},
			Actions: []string{"कीट पहचानें", "जैविक नियंत्रण आजमाएं", "विशेषज्ञ से सलाह लें"},
		},
		models.IntentGovernmentSchemes: {
			Responses: []string{
				"सरकार कई कृषि योजनाएं चलाती है: PM Kisan, Soil Health Card, Kisan Credit Card, Pradhan Mantri Fasal Bima Yojana।",
				"कृषि सब्सिडी, ऋण और बीमा योजनाएं किसानों की मदद करती हैं। आप किस प्रकार की सहायता चाहते हैं?",
				"केंद्र और राज्य सरकारें किसानों के लिए कई योजनाएं चलाती हैं। आपकी पसंद का क्षेत्र क्या है?",
			},
			FollowUps: []string{
				"किस प्रकार की योजना चाहिए (सब्सिडी, ऋण, बीमा)?",
				"फसल विशिष्ट योजनाएं?",
				"आपका राज्य क्या है?",
			},
			Actions: []string{"योग्यता जांचें", "आवेदन करें", "दस्तावेज तैयार करें"},
		},
		models.IntentFarmingTechniques: {
			Responses: []string{
				"आधुनिक कृषि तकनीकें: SRI (System of Rice Intensification), DSR (Direct Seeded Rice), precision farming।",
				"जैविक कृषि में कम रासायनिक उपयोग, फसल चक्रण, और प्राकृतिक खाद का प्रयोग होता है।",
				"टिकाऊ कृषि में मिट्टी स्वास्थ्य, जल संरक्षण और पर्यावरण संरक्षण महत्वपूर्ण हैं।",
			},
			FollowUps: []string{
				"आप किस प्रकार की तकनीक में रुचि रखते हैं?",
				"आपकी फसल का प्रकार क्या है?",
				"आपके पास कौन से संसाधन हैं?",
			},
			Actions: []string{"प्रशिक्षण लें", "नई तकनीक आजमाएं", "परिणाम ट्रैक करें"},
		},
		models.IntentGeneralHelp: {
			Responses: []string{
				"नमस्ते! मैं आपकी कृषि संबंधी मदद करने के लिए यहां हूं। आप किस विषय में सहायता चाहते हैं?",
				"किसान उन्नति में आप मदद ले सकते हैं: फसल सिफारिश, बीमारी पहचान, मौसम सलाह, बाजार भाव, सरकारी योजनाएं।",
				"मैं कृषि विशेषज्ञ हूं। फसल, बीमारी, उर्वरक, कीट नियंत्रण, मौसम या बाजार के बारे में पूछ सकते हैं।",
			},
			FollowUps: []string{
				"आप किस विषय में मदद चाहते हैं?",
				"कोई विशिष्ट समस्या है?",
				"आप किस प्रकार की जानकारी ढूंढ रहे हैं?",
			},
			Actions: []string{"अधिक जानकारी के लिए पूछें"},
		},
	}
}
