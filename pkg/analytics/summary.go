package analytics

import (
	"math"

	"github.com/watamovie/CoconalaSummary/pkg/models"
)

// Summary holds the headline totals shown above the charts.
type Summary struct {
	Revenue int `json:"revenue"`
	Count   int `json:"count"`
	Average int `json:"average"`
}

// Summarize computes revenue, transaction count and average sale amount.
// Average rounds half away from zero and is 0 for an empty subset.
func Summarize(records []models.SalesRecord) Summary {
	s := Summary{Count: len(records)}
	for _, r := range records {
		s.Revenue += r.Amount
	}
	if s.Count > 0 {
		s.Average = int(math.Round(float64(s.Revenue) / float64(s.Count)))
	}
	return s
}
