package geminidomain

// Deliverable is one line item as returned by the model.
type Deliverable struct {
	Service       string  `mapstructure:"service"`
	Quantity      float64 `mapstructure:"quantity"`
	Unit          string  `mapstructure:"unit"`
	SuggestedRate float64 `mapstructure:"suggestedRate"`
	Total         float64 `mapstructure:"total"`
	Justification string  `mapstructure:"justification"`
	Category      string  `mapstructure:"category"`
	IsOverage     bool    `mapstructure:"isOverage"`
}

type TaskMapping struct {
	InputPoint    string `mapstructure:"inputPoint"`
	MappedService string `mapstructure:"mappedService"`
	Reasoning     string `mapstructure:"reasoning"`
}

type Estimate struct {
	Items           []Deliverable `mapstructure:"items"`
	TotalEstimate   float64       `mapstructure:"totalEstimate"`
	Currency        string        `mapstructure:"currency"`
	RecommendedTier string        `mapstructure:"recommendedTier"`
	StrategicAdvice string        `mapstructure:"strategicAdvice"`
	ThoughtProcess  string        `mapstructure:"thoughtProcess"`
	MappingLogic    []TaskMapping `mapstructure:"mappingLogic"`
}
