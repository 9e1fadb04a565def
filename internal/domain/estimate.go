package domain

import "time"

type PricingTier string

const (
	PricingTierMaintenance PricingTier = "Maintenance"
	PricingTierGrowth      PricingTier = "Growth"
	PricingTierPartner     PricingTier = "Partner"
)

type TaskMapping struct {
	InputPoint    string `json:"inputPoint"`
	MappedService string `json:"mappedService"`
	Reasoning     string `json:"reasoning"`
}

type EstimateResponse struct {
	Items           []EstimateItem `json:"items"`
	TotalEstimate   float64        `json:"totalEstimate"`
	Currency        string         `json:"currency"`
	RecommendedTier *PricingTier   `json:"recommendedTier,omitempty"`
	StrategicAdvice string         `json:"strategicAdvice"`
	ThoughtProcess  string         `json:"thoughtProcess,omitempty"`
	MappingLogic    []TaskMapping  `json:"mappingLogic,omitempty"`
	RawInput        string         `json:"rawInput,omitempty"`
}

// Attachment is an inline file (image, PDF) forwarded to the mapper.
type Attachment struct {
	Data     []byte `json:"data"`
	MimeType string `json:"mimeType"`
}

type EstimateRequest struct {
	Scope   string      `json:"scope"`
	Image   *Attachment `json:"image,omitempty"`
	Region  Region      `json:"region" validate:"omitempty,oneof=India International"`
	BrandID *string     `json:"brandId,omitempty"`
}

type HistoryStatus string

const (
	HistoryStatusDraft    HistoryStatus = "Draft"
	HistoryStatusSent     HistoryStatus = "Sent"
	HistoryStatusAccepted HistoryStatus = "Accepted"
	HistoryStatusRejected HistoryStatus = "Rejected"
)

func (s HistoryStatus) Valid() bool {
	switch s {
	case HistoryStatusDraft, HistoryStatusSent, HistoryStatusAccepted, HistoryStatusRejected:
		return true
	}
	return false
}

type HistoryItem struct {
	ID            string           `json:"id"`
	Timestamp     int64            `json:"timestamp"`
	ClientName    *string          `json:"clientName,omitempty"`
	BrandID       *string          `json:"brandId,omitempty"`
	Region        Region           `json:"region"`
	FinalEstimate EstimateResponse `json:"finalEstimate"`
	Status        HistoryStatus    `json:"status"`
	Notes         *string          `json:"notes,omitempty"`
}

// CreatedAt converts the millisecond timestamp kept for compatibility with stored history.
func (h *HistoryItem) CreatedAt() time.Time {
	return time.UnixMilli(h.Timestamp)
}

type SaveEstimateRequest struct {
	Estimate   EstimateResponse `json:"estimate"`
	BrandID    *string          `json:"brandId,omitempty"`
	ClientName *string          `json:"clientName,omitempty"`
	Region     Region           `json:"region" validate:"omitempty,oneof=India International"`
	Notes      *string          `json:"notes,omitempty"`
}

type TierDefinition struct {
	Name         PricingTier `json:"name" yaml:"name"`
	PriceRange   string      `json:"priceRange" yaml:"priceRange"`
	Deliverables []string    `json:"deliverables" yaml:"deliverables"`
}

type PricingSettings struct {
	AgencyMultiplier        float64          `json:"agencyMultiplier" yaml:"agencyMultiplier"`
	InternationalMultiplier float64          `json:"internationalMultiplier" yaml:"internationalMultiplier"`
	JuniorHourlyCost        float64          `json:"juniorHourlyCost" yaml:"juniorHourlyCost"`
	SeniorHourlyCost        float64          `json:"seniorHourlyCost" yaml:"seniorHourlyCost"`
	Philosophy              string           `json:"philosophy" yaml:"philosophy"`
	Tiers                   []TierDefinition `json:"tiers" yaml:"tiers"`
}

// Multiplier picks the pricing multiplier for a region.
func (s *PricingSettings) Multiplier(region Region) float64 {
	if region == RegionInternational {
		return s.InternationalMultiplier
	}
	return s.AgencyMultiplier
}
