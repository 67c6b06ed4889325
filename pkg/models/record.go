package models

import "time"

// Sentinel values substituted when the source CSV leaves a field blank.
const (
	UnknownLabel   = "不明"
	OtherBreakdown = "その他"
)

// SalesRecord represents one confirmed sale from a Coconala sales CSV.
type SalesRecord struct {
	Date      time.Time
	Amount    int
	Service   string
	Customer  string
	Breakdown string
}

// DateKey returns the record date formatted as YYYY/MM/DD.
func (r SalesRecord) DateKey() string {
	return r.Date.Format("2006/01/02")
}

// MonthKey returns the record date formatted as YYYY/MM.
func (r SalesRecord) MonthKey() string {
	return r.Date.Format("2006/01")
}
