package domain

type BillingModel string

const (
	BillingModelRetainer BillingModel = "Retainer"
	BillingModelProject  BillingModel = "Project-Based"
	BillingModelHybrid   BillingModel = "Hybrid"
)

type Region string

const (
	RegionIndia         Region = "India"
	RegionInternational Region = "International"
)

type Brand struct {
	ID                 string        `json:"id" yaml:"id"`
	Name               string        `json:"name" yaml:"name"`
	BillingModel       BillingModel  `json:"billingModel" yaml:"billingModel"`
	MonthlyRetainerFee *float64      `json:"monthlyRetainerFee,omitempty" yaml:"monthlyRetainerFee,omitempty"`
	RetainerScopeLimit *string       `json:"retainerScopeLimit,omitempty" yaml:"retainerScopeLimit,omitempty"`
	Currency           Currency      `json:"currency" yaml:"currency"`
	Region             Region        `json:"region" yaml:"region"`
	LearnedRates       []ServiceRate `json:"learnedRates" yaml:"learnedRates"`
}

// RetainerFee returns the nominal monthly fee, zero when unset.
func (b *Brand) RetainerFee() float64 {
	if b == nil || b.MonthlyRetainerFee == nil {
		return 0
	}
	return *b.MonthlyRetainerFee
}

// LearnFromDeliverables adds a learned rate for every deliverable whose service is not
// already known to the brand. Existing learned rates are never updated.
func (b *Brand) LearnFromDeliverables(deliverables []EstimateItem, newID func() string) []ServiceRate {
	learned := make([]ServiceRate, 0)

	for _, item := range deliverables {
		if item.Service == "" || FindRate(b.LearnedRates, item.Service) != nil {
			continue
		}

		category := CategoryOther
		if item.Category != nil && *item.Category != "" {
			category = *item.Category
		}

		rate := ServiceRate{
			ID:           newID(),
			Name:         item.Service,
			Category:     category,
			CurrentRate:  item.SuggestedRate,
			Currency:     b.Currency,
			IndustryRate: item.SuggestedRate * IndustryRateMarkup,
			Unit:         item.Unit,
		}

		b.LearnedRates = append(b.LearnedRates, rate)
		learned = append(learned, rate)
	}

	return learned
}

type CreateBrandRequest struct {
	Name               string       `json:"name" validate:"not_blank"`
	BillingModel       BillingModel `json:"billingModel" validate:"omitempty,oneof=Retainer Project-Based Hybrid"`
	MonthlyRetainerFee *float64     `json:"monthlyRetainerFee,omitempty"`
	RetainerScopeLimit *string      `json:"retainerScopeLimit,omitempty"`
	Currency           Currency     `json:"currency" validate:"omitempty,oneof=INR EUR USD"`
	Region             Region       `json:"region" validate:"omitempty,oneof=India International"`
}

type UpdateBrandRequest struct {
	ID                 string        `json:"id"`
	Name               *string       `json:"name,omitempty"`
	BillingModel       *BillingModel `json:"billingModel,omitempty" validate:"omitempty,oneof=Retainer Project-Based Hybrid"`
	MonthlyRetainerFee *float64      `json:"monthlyRetainerFee,omitempty"`
	RetainerScopeLimit *string       `json:"retainerScopeLimit,omitempty"`
	Currency           *Currency     `json:"currency,omitempty" validate:"omitempty,oneof=INR EUR USD"`
	Region             *Region       `json:"region,omitempty" validate:"omitempty,oneof=India International"`
}

// FindBrand returns the index of the brand with id, or -1.
func FindBrand(brands []Brand, id string) int {
	for i := range brands {
		if brands[i].ID == id {
			return i
		}
	}
	return -1
}
