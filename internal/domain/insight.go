package domain

// InvoiceInsight is a rate discovered in an invoice, pending human approval.
type InvoiceInsight struct {
	ID               string   `json:"id"`
	DetectedName     string   `json:"detectedName"`
	DetectedCategory Category `json:"detectedCategory"`
	DetectedRate     float64  `json:"detectedRate"`
	DetectedCurrency Currency `json:"detectedCurrency"`
	DetectedUnit     string   `json:"detectedUnit"`
	Confidence       float64  `json:"confidence"`
	SourceLabel      string   `json:"sourceLabel"`
}

type UpdateInsightRequest struct {
	ID               string    `json:"id"`
	DetectedName     *string   `json:"detectedName,omitempty"`
	DetectedCategory *Category `json:"detectedCategory,omitempty" validate:"omitempty,oneof=Design Video Motion Strategy Other"`
	DetectedRate     *float64  `json:"detectedRate,omitempty"`
	DetectedCurrency *Currency `json:"detectedCurrency,omitempty" validate:"omitempty,oneof=INR EUR USD"`
	DetectedUnit     *string   `json:"detectedUnit,omitempty"`
}

type IngestInvoiceRequest struct {
	Text string      `json:"text"`
	File *Attachment `json:"file,omitempty"`
}

// ApplyTo folds an approved insight into the catalog. A rate with the same name
// gets the detected price and currency; otherwise a new rate is appended.
func (i *InvoiceInsight) ApplyTo(rates []ServiceRate, newID func() string) []ServiceRate {
	if existing := FindRate(rates, i.DetectedName); existing != nil {
		existing.CurrentRate = i.DetectedRate
		if i.DetectedCurrency != "" {
			existing.Currency = i.DetectedCurrency
		}
		return rates
	}

	category := i.DetectedCategory
	if category == "" {
		category = CategoryOther
	}
	currency := i.DetectedCurrency
	if currency == "" {
		currency = CurrencyINR
	}
	unit := i.DetectedUnit
	if unit == "" {
		unit = DefaultUnit
	}

	return append(rates, ServiceRate{
		ID:           newID(),
		Name:         i.DetectedName,
		Category:     category,
		CurrentRate:  i.DetectedRate,
		Currency:     currency,
		IndustryRate: i.DetectedRate * IndustryRateMarkup,
		Unit:         unit,
	})
}
