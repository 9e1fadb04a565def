package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Health string

const (
	HealthHealthy Health = "Healthy"
	HealthLoss    Health = "Loss"
	HealthWarning Health = "Warning"
	HealthNoData  Health = "no data"
)

type EstimateItem struct {
	Service       string    `json:"service"`
	Quantity      float64   `json:"quantity"`
	Unit          string    `json:"unit"`
	SuggestedRate float64   `json:"suggestedRate"`
	Total         float64   `json:"total"`
	Justification string    `json:"justification,omitempty"`
	Category      *Category `json:"category,omitempty"`
	IsOverage     bool      `json:"isOverage,omitempty"`
}

type WorkLog struct {
	ID               string         `json:"id"`
	BrandID          string         `json:"brandId"`
	Sequence         int64          `json:"sequence"`
	CreatedAt        time.Time      `json:"createdAt"`
	Month            string         `json:"month"`
	PeriodMonths     int            `json:"periodMonths"`
	RawInput         string         `json:"rawInput"`
	Deliverables     []EstimateItem `json:"deliverables"`
	TotalMarketValue float64        `json:"totalMarketValue"`
	ActualBilled     float64        `json:"actualBilled"`
	OverageTotal     float64        `json:"overageTotal"`
	Health           Health         `json:"health"`
	AIInsight        string         `json:"aiInsight"`
}

// Months is the billing span of the log; legacy entries without the field count as one month.
func (l *WorkLog) Months() int {
	if l.PeriodMonths < 1 {
		return 1
	}
	return l.PeriodMonths
}

// PendingReview is the mapper's reading of a work history, awaiting confirmation.
type PendingReview struct {
	Deliverables      []EstimateItem `json:"deliverables"`
	TotalMarketValue  float64        `json:"totalMarketValue"`
	TotalSheetRevenue *float64       `json:"totalSheetRevenue,omitempty"`
	OverageTotal      float64        `json:"overageTotal"`
	Health            Health         `json:"health"`
	AIInsight         string         `json:"aiInsight"`
}

// ToggleOverage flips the overage flag of one deliverable and recomputes OverageTotal.
func (r *PendingReview) ToggleOverage(index int) error {
	if index < 0 || index >= len(r.Deliverables) {
		return fmt.Errorf("deliverable index %d out of range [0,%d)", index, len(r.Deliverables))
	}

	r.Deliverables[index].IsOverage = !r.Deliverables[index].IsOverage
	r.OverageTotal = OverageTotal(r.Deliverables)

	return nil
}

// OverageTotal sums the total of every deliverable flagged as overage.
func OverageTotal(items []EstimateItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		if item.IsOverage {
			sum = sum.Add(decimal.NewFromFloat(item.Total))
		}
	}
	return sum.InexactFloat64()
}

// MarketValue sums quantity x suggestedRate across deliverables.
func MarketValue(items []EstimateItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(item.Quantity).Mul(decimal.NewFromFloat(item.SuggestedRate)))
	}
	return sum.InexactFloat64()
}

// ActualBilled prefers the revenue stated by the source sheet over the retainer formula.
func ActualBilled(review PendingReview, brand *Brand, periodMonths int) float64 {
	if review.TotalSheetRevenue != nil && *review.TotalSheetRevenue > 0 {
		return *review.TotalSheetRevenue
	}

	fee := decimal.NewFromFloat(brand.RetainerFee())
	return fee.Mul(decimal.NewFromInt(int64(periodMonths))).
		Add(decimal.NewFromFloat(review.OverageTotal)).
		InexactFloat64()
}

// BillingPeriod is an inclusive range of calendar months.
type BillingPeriod struct {
	StartYear  int        `json:"startYear" validate:"gte=1900"`
	StartMonth time.Month `json:"startMonth" validate:"gte=1,lte=12"`
	EndYear    int        `json:"endYear" validate:"gte=1900"`
	EndMonth   time.Month `json:"endMonth" validate:"gte=1,lte=12"`
}

// Months counts the calendar months covered; inverted ranges collapse to one.
func (p BillingPeriod) Months() int {
	return PeriodMonths(p.StartYear, p.StartMonth, p.EndYear, p.EndMonth)
}

// Label renders the human month label stored on the log.
func (p BillingPeriod) Label() string {
	if p.Months() > 1 {
		return fmt.Sprintf("%s %d — %s %d", p.StartMonth, p.StartYear, p.EndMonth, p.EndYear)
	}
	return fmt.Sprintf("%s %d", p.StartMonth, p.StartYear)
}

func PeriodMonths(startYear int, startMonth time.Month, endYear int, endMonth time.Month) int {
	start := startYear*12 + int(startMonth)
	end := endYear*12 + int(endMonth)
	return max(1, end-start+1)
}

type TableRow struct {
	Task     string `json:"task"`
	Quantity string `json:"quantity"`
	Price    string `json:"price"`
}

// TableInput renders the non-empty rows as tab separated lines.
func TableInput(rows []TableRow) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Task) == "" {
			continue
		}
		lines = append(lines, row.Task+"\t"+row.Quantity+"\t"+row.Price)
	}
	return strings.Join(lines, "\n")
}

// WorkInput is what the user supplied for a billing period: either free text or table rows.
type WorkInput struct {
	Text string     `json:"text,omitempty"`
	Rows []TableRow `json:"rows,omitempty"`
}

// IsTable reports whether the rows take precedence over the text.
func (in WorkInput) IsTable() bool {
	return len(in.Rows) > 0
}

// MapperInput is the text sent for analysis.
func (in WorkInput) MapperInput() string {
	if in.IsTable() {
		return TableInput(in.Rows)
	}
	return in.Text
}

type AnalyzeWorkLogRequest struct {
	BrandID string        `json:"-"`
	Input   WorkInput     `json:"input"`
	Period  BillingPeriod `json:"period"`
}

type ConfirmWorkLogRequest struct {
	BrandID string        `json:"-"`
	Review  PendingReview `json:"review"`
	Input   WorkInput     `json:"input"`
	Period  BillingPeriod `json:"period"`
}

type ToggleOverageRequest struct {
	Review PendingReview `json:"review"`
	Index  int           `json:"index"`
}
