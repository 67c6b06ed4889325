package analytics

import (
	"sort"
	"time"

	"github.com/watamovie/CoconalaSummary/pkg/models"
)

// Options lists the distinct values a filter surface can offer, derived from
// the full loaded record set.
type Options struct {
	Services   []string  `json:"services"`
	Breakdowns []string  `json:"breakdowns"`
	MinDate    time.Time `json:"min_date"`
	MaxDate    time.Time `json:"max_date"`
}

// CollectOptions gathers distinct service and breakdown values sorted
// ascending, plus the date range of the set.
func CollectOptions(records []models.SalesRecord) Options {
	services := make(map[string]struct{})
	breakdowns := make(map[string]struct{})

	var opts Options
	for i, r := range records {
		services[r.Service] = struct{}{}
		breakdowns[r.Breakdown] = struct{}{}
		if i == 0 || r.Date.Before(opts.MinDate) {
			opts.MinDate = r.Date
		}
		if i == 0 || r.Date.After(opts.MaxDate) {
			opts.MaxDate = r.Date
		}
	}

	opts.Services = sortedKeys(services)
	opts.Breakdowns = sortedKeys(breakdowns)
	return opts
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
