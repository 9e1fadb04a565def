package geminidomain

// WorkLogAnalysis is the audit of a pasted work history.
type WorkLogAnalysis struct {
	Deliverables      []Deliverable `mapstructure:"deliverables"`
	TotalMarketValue  float64       `mapstructure:"totalMarketValue"`
	TotalSheetRevenue *float64      `mapstructure:"totalSheetRevenue"`
	OverageTotal      float64       `mapstructure:"overageTotal"`
	Health            string        `mapstructure:"health"`
	AIInsight         string        `mapstructure:"aiInsight"`
}
