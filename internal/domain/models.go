package domain

import "time"

// DailyRecord is one row of the behavior ledger: the day-over-day trace of
// total inventory+transit value against the target.
type DailyRecord struct {
	Date          string // display format DD/MM/YYYY
	TotalValue    float64
	ProjectedDOH  Amount
	Target        float64
	DailyVariance float64
}

// MonthVariance is one entry of the trailing monthly balance window.
type MonthVariance struct {
	Label    string // e.g. "Feb-26"
	Variance float64
}

// ReceiptRank is one entry of the top-N receipts ranking.
type ReceiptRank struct {
	Name  string
	Value float64
}

// RunMetrics accumulates the headline figures of a single pipeline run.
// Each step fills in its slice of the struct; once a step completes its
// fields are not mutated again.
type RunMetrics struct {
	Date        time.Time
	DisplayDate string

	PhysicalValue float64
	TransitValue  float64
	TotalValue    float64
	Target        float64

	ProjectedDOH Amount
	ImmediateDOH Amount

	DailyVariance float64

	YesterdayReceipts float64
	MonthReceipts     float64
	TopReceipts       []ReceiptRank

	Months []MonthVariance
}
