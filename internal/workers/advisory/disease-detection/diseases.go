// internal/workers/advisory/disease-detection/diseases.go
package diseasedetection

import "strings"

type diseaseInfo struct {
	Severity, Treatment, Prevention string
}

var diseaseDatabase = map[string]diseaseInfo{
	"healthy": {
		Severity:   "None",
		Treatment:  "No treatment needed",
		Prevention: "Continue good agricultural practices",
	},
	"bacterial_blight": {
		Severity:   "High",
		Treatment:  "Apply copper-based bactericides. Remove infected plant parts.",
		Prevention: "Use disease-resistant varieties. Avoid overhead irrigation. Practice crop rotation.",
	},
	"leaf_blight": {
		Severity:   "Medium",
		Treatment:  "Apply fungicides like chlorothalonil or mancozeb. Improve air circulation.",
		Prevention: "Avoid wet foliage. Use drip irrigation. Remove plant debris.",
	},
	"powdery_mildew": {
		Severity:   "Medium",
		Treatment:  "Apply sulfur or potassium bicarbonate sprays. Improve air circulation.",
		Prevention: "Plant resistant varieties. Avoid overhead watering. Space plants properly.",
	},
	"rust": {
		Severity:   "High",
		Treatment:  "Apply fungicides containing triazoles or strobilurins.",
		Prevention: "Use rust-resistant varieties. Remove alternate hosts. Apply preventive fungicides.",
	},
	"fusarium_wilt": {
		Severity:   "Very High",
		Treatment:  "Remove and destroy infected plants. Soil fumigation may be necessary.",
		Prevention: "Use resistant varieties. Practice long crop rotations. Sterilize tools.",
	},
	"root_rot": {
		Severity:   "High",
		Treatment:  "Improve drainage. Apply fungicides to soil. Reduce watering.",
		Prevention: "Ensure good drainage. Avoid overwatering. Use well-draining soil.",
	},
	"aphid_damage": {
		Severity:   "Medium",
		Treatment:  "Apply insecticidal soap or neem oil. Introduce beneficial insects.",
		Prevention: "Monitor plants regularly. Use reflective mulches. Encourage natural predators.",
	},
	"caterpillar_damage": {
		Severity:   "Medium",
		Treatment:  "Apply Bacillus thuringiensis (Bt) or spinosad insecticides.",
		Prevention: "Hand-pick caterpillars. Use row covers. Plant trap crops.",
	},
}

var unknownDisease = diseaseInfo{
	Severity:   "Unknown",
	Treatment:  "Consult local agricultural extension service",
	Prevention: "Practice good agricultural management",
}

func lookupDisease(label string) diseaseInfo {
	if info, ok := diseaseDatabase[label]; ok {
		return info
	}
	return unknownDisease
}

var cropAdvice = map[string]map[string]CropAdvice{
	"rice": {
		"bacterial_blight": {
			Varieties:         []string{"IR64", "MTU1010", "Improved Pusa Basmati"},
			ChemicalControl:   "Streptomycin 100ppm + Copper oxychloride 0.2%",
			CulturalPractices: "Avoid close planting, use balanced fertilization",
		},
		"leaf_blight": {
			Varieties:         []string{"IR36", "Coimbatore 1", "TNAU Rice Variety"},
			ChemicalControl:   "Mancozeb 0.2% or Carbendazim 0.1%",
			CulturalPractices: "Remove infected leaves, improve drainage",
		},
	},
	"wheat": {
		"rust": {
			Varieties:         []string{"PBW343", "HD2687", "DBW17"},
			ChemicalControl:   "Propiconazole 0.1% or Tebuconazole 0.1%",
			CulturalPractices: "Use rust-resistant varieties, avoid late sowing",
		},
		"powdery_mildew": {
			Varieties:         []string{"PBW550", "HD2967", "DBW88"},
			ChemicalControl:   "Sulfur 0.2% or Dinocap 0.05%",
			CulturalPractices: "Avoid dense planting, ensure good air circulation",
		},
	},
	"maize": {
		"fusarium_wilt": {
			Varieties:         []string{"HQPM1", "DKC9081", "Pioneer P21"},
			ChemicalControl:   "Carbendazim 0.1% soil drench",
			CulturalPractices: "Crop rotation with non-host crops, deep plowing",
		},
		"root_rot": {
			Varieties:         []string{"DMH1", "HQPM5", "Bio963"},
			ChemicalControl:   "Copper oxychloride 0.2%",
			CulturalPractices: "Improve drainage, avoid waterlogging",
		},
	},
}

var generalAdvice = CropAdvice{
	Varieties:         []string{"Consult local variety recommendations"},
	ChemicalControl:   "Follow general disease management guidelines",
	CulturalPractices: "Practice integrated disease management",
}

func adviceFor(disease, cropType string) CropAdvice {
	if advice, ok := cropAdvice[strings.ToLower(cropType)][disease]; ok {
		return advice
	}
	return generalAdvice
}
