package main

import (
	"fmt"

	"github.com/watamovie/CoconalaSummary/pkg/analytics"
)

type filters struct {
	startDate   string
	endDate     string
	service     string
	breakdown   string
	granularity string
	serviceTop  int
	customerTop int
}

func (f *filters) toFilter() (analytics.Filter, error) {
	return analytics.FilterFromStrings(f.startDate, f.endDate, f.service, f.breakdown)
}

func (f *filters) toGranularity() analytics.Granularity {
	if f.granularity == string(analytics.ByDay) {
		return analytics.ByDay
	}
	return analytics.ByMonth
}

// printView renders the aggregation as plain text tables.
func printView(view analytics.View, total int) {
	fmt.Printf("売上合計: ¥%d\n", view.Summary.Revenue)
	fmt.Printf("取引件数: %d / %d\n", view.Summary.Count, total)
	fmt.Printf("平均単価: ¥%d\n", view.Summary.Average)

	fmt.Println("\n推移:")
	printSeries(view.Trend)

	fmt.Println("\nサービス別:")
	printSeries(view.Services)

	fmt.Println("\n購入者別:")
	printSeries(view.Customers)

	fmt.Println("\n内訳別:")
	printSeries(view.Breakdowns)

	fmt.Println("\n曜日別:")
	printSeries(view.Weekdays)
}

func printSeries(s analytics.Series) {
	for i, label := range s.Labels {
		fmt.Printf("  %-20s ¥%d\n", label, s.Values[i])
	}
}
