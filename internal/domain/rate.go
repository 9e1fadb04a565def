package domain

import "strings"

type Category string

const (
	CategoryDesign   Category = "Design"
	CategoryVideo    Category = "Video"
	CategoryMotion   Category = "Motion"
	CategoryStrategy Category = "Strategy"
	CategoryOther    Category = "Other"
)

type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

// IndustryRateMarkup is applied to an agency rate when no market reference is known.
const IndustryRateMarkup = 1.5

const DefaultUnit = "per unit"

type ServiceRate struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Category     Category `json:"category" yaml:"category"`
	CurrentRate  float64  `json:"currentRate" yaml:"currentRate"`
	Currency     Currency `json:"currency" yaml:"currency"`
	IndustryRate float64  `json:"industryRate" yaml:"industryRate"`
	Unit         string   `json:"unit" yaml:"unit"`
	Notes        *string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type CreateRateRequest struct {
	Name         string   `json:"name" validate:"not_blank"`
	Category     Category `json:"category" validate:"omitempty,oneof=Design Video Motion Strategy Other"`
	CurrentRate  float64  `json:"currentRate" validate:"gt=0"`
	Currency     Currency `json:"currency" validate:"omitempty,oneof=INR EUR USD"`
	IndustryRate float64  `json:"industryRate"`
	Unit         string   `json:"unit"`
	Notes        *string  `json:"notes,omitempty"`
}

type UpdateRateRequest struct {
	ID           string    `json:"id"`
	Name         *string   `json:"name,omitempty"`
	Category     *Category `json:"category,omitempty" validate:"omitempty,oneof=Design Video Motion Strategy Other"`
	CurrentRate  *float64  `json:"currentRate,omitempty"`
	Currency     *Currency `json:"currency,omitempty" validate:"omitempty,oneof=INR EUR USD"`
	IndustryRate *float64  `json:"industryRate,omitempty"`
	Unit         *string   `json:"unit,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
}

// SameService reports whether two service names refer to the same catalog entry.
func SameService(a, b string) bool {
	return strings.EqualFold(a, b)
}

// FindRate returns the first rate whose name matches serviceName, or nil.
func FindRate(rates []ServiceRate, serviceName string) *ServiceRate {
	for i := range rates {
		if SameService(rates[i].Name, serviceName) {
			return &rates[i]
		}
	}
	return nil
}

// MergeRates puts learned rates first and drops every global entry shadowed by one of them.
func MergeRates(learned, global []ServiceRate) []ServiceRate {
	merged := make([]ServiceRate, 0, len(learned)+len(global))
	merged = append(merged, learned...)

	for _, rate := range global {
		if FindRate(learned, rate.Name) != nil {
			continue
		}
		merged = append(merged, rate)
	}

	return merged
}

// ResolveRate looks the service up in the brand's learned rates before the global catalog.
func ResolveRate(serviceName string, brand *Brand, global []ServiceRate) *ServiceRate {
	if brand != nil {
		if rate := FindRate(brand.LearnedRates, serviceName); rate != nil {
			found := *rate
			return &found
		}
	}

	if rate := FindRate(global, serviceName); rate != nil {
		found := *rate
		return &found
	}

	return nil
}
