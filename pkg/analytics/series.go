package analytics

import (
	"sort"

	"github.com/watamovie/CoconalaSummary/pkg/models"
)

// Entry is one label/value pair of a ranked grouping.
type Entry struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Series is plain chart feed data: parallel label and value slices. The core
// emits these and stays decoupled from any rendering layer.
type Series struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// WeekdayLabels index 0=Sunday, matching time.Weekday.
var WeekdayLabels = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// Ranked sorts grouping entries by sum descending. Equal sums order by label
// ascending so the ranking is deterministic.
func Ranked(sums map[string]int) []Entry {
	entries := make([]Entry, 0, len(sums))
	for label, value := range sums {
		entries = append(entries, Entry{Label: label, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}

// TopN truncates a ranked entry list to its first n entries. n <= 0 keeps
// the full list.
func TopN(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}

// TrendSeries orders period sums chronologically. Lexicographic key order is
// chronological because period keys are zero-padded fixed width.
func TrendSeries(sums map[string]int) Series {
	keys := make([]string, 0, len(sums))
	for key := range sums {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	series := Series{Labels: keys, Values: make([]int, len(keys))}
	for i, key := range keys {
		series.Values[i] = sums[key]
	}
	return series
}

// EntrySeries converts ranked entries into a Series.
func EntrySeries(entries []Entry) Series {
	series := Series{Labels: make([]string, len(entries)), Values: make([]int, len(entries))}
	for i, e := range entries {
		series.Labels[i] = e.Label
		series.Values[i] = e.Value
	}
	return series
}

// WeekdaySeries pairs the seven weekday sums with their labels.
func WeekdaySeries(sums [7]int) Series {
	series := Series{Labels: make([]string, 7), Values: make([]int, 7)}
	for i, sum := range sums {
		series.Labels[i] = WeekdayLabels[i]
		series.Values[i] = sum
	}
	return series
}

// View bundles everything one dashboard refresh needs, recomputed from
// scratch on every call.
type View struct {
	Summary    Summary `json:"summary"`
	Trend      Series  `json:"trend"`
	Services   Series  `json:"services"`
	Customers  Series  `json:"customers"`
	Breakdowns Series  `json:"breakdowns"`
	Weekdays   Series  `json:"weekdays"`
}

// BuildView aggregates a filtered subset into chart-ready series. Service and
// customer rankings are truncated to their top-N; breakdown is always full.
func BuildView(subset []models.SalesRecord, granularity Granularity, serviceTop, customerTop int) View {
	return View{
		Summary:    Summarize(subset),
		Trend:      TrendSeries(GroupByPeriod(subset, granularity)),
		Services:   EntrySeries(TopN(Ranked(GroupByService(subset)), serviceTop)),
		Customers:  EntrySeries(TopN(Ranked(GroupByCustomer(subset)), customerTop)),
		Breakdowns: EntrySeries(Ranked(GroupByBreakdown(subset))),
		Weekdays:   WeekdaySeries(GroupByWeekday(subset)),
	}
}
