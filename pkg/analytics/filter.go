package analytics

import (
	"fmt"
	"time"

	"github.com/watamovie/CoconalaSummary/pkg/models"
)

// Filter narrows a record set. Zero-value axes are unconstrained. Start is
// inclusive from start of day; End is inclusive through end of day.
type Filter struct {
	Start     *time.Time
	End       *time.Time
	Service   string
	Breakdown string
}

// Apply returns the records matching every set axis, preserving order. The
// source slice is never mutated.
func (f Filter) Apply(records []models.SalesRecord) []models.SalesRecord {
	subset := make([]models.SalesRecord, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			subset = append(subset, r)
		}
	}
	return subset
}

// Matches reports whether a single record passes the filter.
func (f Filter) Matches(r models.SalesRecord) bool {
	if f.Start != nil && r.Date.Before(*f.Start) {
		return false
	}
	if f.End != nil && r.Date.After(endOfDay(*f.End)) {
		return false
	}
	if f.Service != "" && r.Service != f.Service {
		return false
	}
	if f.Breakdown != "" && r.Breakdown != f.Breakdown {
		return false
	}
	return true
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
}

// Date layouts accepted by FilterFromStrings for start/end bounds.
var boundLayouts = []string{"2006-01-02", "2006/01/02"}

// FilterFromStrings builds a Filter from raw text inputs, the form both the
// CLI flags and the HTTP query parameters arrive in. Empty strings leave the
// axis unconstrained.
func FilterFromStrings(start, end, service, breakdown string) (Filter, error) {
	f := Filter{Service: service, Breakdown: breakdown}
	if start != "" {
		t, err := parseBound(start)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid start date: %w", err)
		}
		f.Start = &t
	}
	if end != "" {
		t, err := parseBound(end)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid end date: %w", err)
		}
		f.End = &t
	}
	return f, nil
}

func parseBound(s string) (time.Time, error) {
	for _, layout := range boundLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %s", s)
}
