package analytics

import (
	"github.com/watamovie/CoconalaSummary/pkg/models"
)

// Granularity selects the trend grouping period.
type Granularity string

const (
	ByMonth Granularity = "month"
	ByDay   Granularity = "day"
)

// GroupByPeriod sums amounts per calendar period. Keys are zero-padded
// (YYYY/MM or YYYY/MM/DD) so lexicographic order is chronological order.
// Only periods with at least one record appear.
func GroupByPeriod(records []models.SalesRecord, granularity Granularity) map[string]int {
	sums := make(map[string]int)
	for _, r := range records {
		key := r.MonthKey()
		if granularity == ByDay {
			key = r.DateKey()
		}
		sums[key] += r.Amount
	}
	return sums
}

// GroupByField sums amounts per value of the selected field.
func GroupByField(records []models.SalesRecord, field func(models.SalesRecord) string) map[string]int {
	sums := make(map[string]int)
	for _, r := range records {
		sums[field(r)] += r.Amount
	}
	return sums
}

func GroupByService(records []models.SalesRecord) map[string]int {
	return GroupByField(records, func(r models.SalesRecord) string { return r.Service })
}

func GroupByCustomer(records []models.SalesRecord) map[string]int {
	return GroupByField(records, func(r models.SalesRecord) string { return r.Customer })
}

func GroupByBreakdown(records []models.SalesRecord) map[string]int {
	return GroupByField(records, func(r models.SalesRecord) string { return r.Breakdown })
}

// GroupByWeekday sums amounts into seven slots, 0=Sunday through 6=Saturday.
// Unlike the other groupings every slot is always present.
func GroupByWeekday(records []models.SalesRecord) [7]int {
	var sums [7]int
	for _, r := range records {
		sums[r.Date.Weekday()] += r.Amount
	}
	return sums
}
