package gemini

import "google.golang.org/genai"

func stringSchema(enum ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Enum: enum}
}

func numberSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeNumber}
}

func deliverableSchema(required ...string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"service":       stringSchema(),
			"quantity":      numberSchema(),
			"unit":          stringSchema(),
			"suggestedRate": numberSchema(),
			"total":         numberSchema(),
			"justification": stringSchema(),
			"category":      stringSchema(),
			"isOverage":     {Type: genai.TypeBoolean},
		},
		Required: required,
	}
}

var estimateSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"items": {
			Type:  genai.TypeArray,
			Items: deliverableSchema("service", "quantity", "unit", "suggestedRate", "total", "justification"),
		},
		"totalEstimate":   numberSchema(),
		"currency":        stringSchema(),
		"recommendedTier": stringSchema(),
		"strategicAdvice": stringSchema(),
		"thoughtProcess":  stringSchema(),
		"mappingLogic": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"inputPoint":    stringSchema(),
					"mappedService": stringSchema(),
					"reasoning":     stringSchema(),
				},
			},
		},
	},
	Required: []string{"items", "totalEstimate", "currency", "strategicAdvice", "thoughtProcess", "mappingLogic"},
}

var workLogSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"deliverables": {
			Type:  genai.TypeArray,
			Items: deliverableSchema(),
		},
		"totalMarketValue":  numberSchema(),
		"totalSheetRevenue": numberSchema(),
		"overageTotal":      numberSchema(),
		"health":            stringSchema("Healthy", "Loss", "Warning"),
		"aiInsight":         stringSchema(),
	},
	Required: []string{"deliverables", "totalMarketValue", "totalSheetRevenue", "overageTotal", "health", "aiInsight"},
}

var invoiceSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"detectedName":     stringSchema(),
			"detectedCategory": stringSchema("Design", "Video", "Motion", "Strategy", "Other"),
			"detectedRate":     numberSchema(),
			"detectedCurrency": stringSchema("INR", "EUR", "USD"),
			"detectedUnit":     stringSchema(),
			"confidence":       numberSchema(),
			"sourceLabel":      stringSchema(),
		},
	},
}
