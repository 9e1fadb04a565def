package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RevenueWindow is how many of a brand's latest logs feed the monthly run rate.
const RevenueWindow = 6

// BrandLogs returns the brand's logs ordered by insertion sequence, oldest first.
func BrandLogs(brandID string, logs []*WorkLog) []*WorkLog {
	filtered := make([]*WorkLog, 0)
	for _, log := range logs {
		if log != nil && log.BrandID == brandID {
			filtered = append(filtered, log)
		}
	}

	return SortLogs(filtered)
}

// SortLogs drops nil entries and orders the rest by sequence, oldest first.
func SortLogs(logs []*WorkLog) []*WorkLog {
	sorted := make([]*WorkLog, 0, len(logs))
	for _, log := range logs {
		if log != nil {
			sorted = append(sorted, log)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Sequence < sorted[j].Sequence
	})

	return sorted
}

// EffectiveMonthlyRevenue normalizes the latest logs of a brand into a monthly run rate.
// Without logs the nominal retainer fee is returned.
func EffectiveMonthlyRevenue(brand *Brand, logs []*WorkLog) float64 {
	brandLogs := BrandLogs(brand.ID, logs)
	if len(brandLogs) == 0 {
		return brand.RetainerFee()
	}

	if len(brandLogs) > RevenueWindow {
		brandLogs = brandLogs[len(brandLogs)-RevenueWindow:]
	}

	totalBilled := decimal.Zero
	totalMonths := int64(0)
	for _, log := range brandLogs {
		totalBilled = totalBilled.Add(decimal.NewFromFloat(log.ActualBilled))
		totalMonths += int64(log.Months())
	}

	if totalMonths == 0 {
		totalMonths = 1
	}

	return totalBilled.Div(decimal.NewFromInt(totalMonths)).InexactFloat64()
}

// DealHealth surfaces the health recorded on the brand's latest log as-is.
func DealHealth(brand *Brand, logs []*WorkLog) Health {
	brandLogs := BrandLogs(brand.ID, logs)
	if len(brandLogs) == 0 {
		return HealthNoData
	}

	return brandLogs[len(brandLogs)-1].Health
}

type BrandAudit struct {
	BrandID                 string       `json:"brandId"`
	BrandName               string       `json:"brandName"`
	BillingModel            BillingModel `json:"billingModel"`
	Currency                Currency     `json:"currency"`
	NominalRetainer         float64      `json:"nominalRetainer"`
	EffectiveMonthlyRevenue float64      `json:"effectiveMonthlyRevenue"`
	DealHealth              Health       `json:"dealHealth"`
	LogCount                int          `json:"logCount"`
}

func AuditBrand(brand *Brand, logs []*WorkLog) BrandAudit {
	return BrandAudit{
		BrandID:                 brand.ID,
		BrandName:               brand.Name,
		BillingModel:            brand.BillingModel,
		Currency:                brand.Currency,
		NominalRetainer:         brand.RetainerFee(),
		EffectiveMonthlyRevenue: EffectiveMonthlyRevenue(brand, logs),
		DealHealth:              DealHealth(brand, logs),
		LogCount:                len(BrandLogs(brand.ID, logs)),
	}
}

type PortfolioSnapshot struct {
	ID      string       `json:"id"`
	TakenAt time.Time    `json:"takenAt"`
	Brands  []BrandAudit `json:"brands"`
}

// NextSequence returns the sequence number for a log appended after logs.
func NextSequence(logs []*WorkLog) int64 {
	var next int64
	for _, log := range logs {
		if log != nil && log.Sequence > next {
			next = log.Sequence
		}
	}
	return next + 1
}
