package geminidomain

type InvoiceLine struct {
	DetectedName     string  `mapstructure:"detectedName"`
	DetectedCategory string  `mapstructure:"detectedCategory"`
	DetectedRate     float64 `mapstructure:"detectedRate"`
	DetectedCurrency string  `mapstructure:"detectedCurrency"`
	DetectedUnit     string  `mapstructure:"detectedUnit"`
	Confidence       float64 `mapstructure:"confidence"`
	SourceLabel      string  `mapstructure:"sourceLabel"`
}
