package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/watamovie/CoconalaSummary/pkg/models"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func sampleRecords() []models.SalesRecord {
	return []models.SalesRecord{
		{Date: date(2024, 1, 15), Amount: 100, Service: "ロゴ作成", Customer: "田中", Breakdown: "基本料金"},
		{Date: date(2024, 1, 20), Amount: 200, Service: "動画編集", Customer: "佐藤", Breakdown: "オプション"},
		{Date: date(2024, 2, 1), Amount: 300, Service: "動画編集", Customer: "田中", Breakdown: "基本料金"},
		{Date: date(2024, 3, 3), Amount: 500, Service: "ロゴ作成", Customer: "鈴木", Breakdown: "その他"},
	}
}

func TestFilterApplyMatchesPredicateCount(t *testing.T) {
	records := sampleRecords()
	start := date(2024, 1, 16)
	f := Filter{Start: &start, Service: "動画編集"}

	subset := f.Apply(records)

	want := 0
	for _, r := range records {
		if f.Matches(r) {
			want++
		}
	}
	if len(subset) != want {
		t.Errorf("Expected %d records, got %d", want, len(subset))
	}
	if len(subset) != 2 {
		t.Errorf("Expected 2 records for start+service filter, got %d", len(subset))
	}
}

func TestFilterEndDateIsInclusiveThroughEndOfDay(t *testing.T) {
	records := []models.SalesRecord{
		{Date: time.Date(2024, 1, 15, 18, 30, 0, 0, time.Local), Amount: 100},
		{Date: date(2024, 1, 16), Amount: 200},
	}
	end := date(2024, 1, 15)
	subset := Filter{End: &end}.Apply(records)

	if len(subset) != 1 || subset[0].Amount != 100 {
		t.Errorf("Expected only the 2024-01-15 record, got %d records", len(subset))
	}
}

func TestFilterIsIdempotentAndDoesNotMutate(t *testing.T) {
	records := sampleRecords()
	f := Filter{Breakdown: "基本料金"}

	first := f.Apply(records)
	second := f.Apply(records)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Applying the same filter twice gave different results:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(records, sampleRecords()) {
		t.Error("Filter mutated the source records")
	}
}

func TestEmptyFilterRestoresFullTotals(t *testing.T) {
	records := sampleRecords()

	narrowed := Filter{Service: "動画編集"}.Apply(records)
	if len(narrowed) == len(records) {
		t.Fatal("narrowing filter did not narrow")
	}

	reset := Filter{}.Apply(records)
	if Summarize(reset).Count != len(records) {
		t.Errorf("Expected count %d after reset, got %d", len(records), Summarize(reset).Count)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRecords())
	if s.Revenue != 1100 {
		t.Errorf("Expected revenue 1100, got %d", s.Revenue)
	}
	if s.Count != 4 {
		t.Errorf("Expected count 4, got %d", s.Count)
	}
	if s.Average != 275 {
		t.Errorf("Expected average 275, got %d", s.Average)
	}
}

func TestSummarizeRoundsAverageToNearest(t *testing.T) {
	records := []models.SalesRecord{
		{Date: date(2024, 1, 1), Amount: 100},
		{Date: date(2024, 1, 2), Amount: 101},
	}
	if got := Summarize(records).Average; got != 101 {
		t.Errorf("Expected average 101 (round half up), got %d", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Revenue != 0 || s.Count != 0 || s.Average != 0 {
		t.Errorf("Expected zero summary for empty subset, got %+v", s)
	}
}

func TestGroupByPeriodMonth(t *testing.T) {
	records := []models.SalesRecord{
		{Date: date(2024, 1, 15), Amount: 100},
		{Date: date(2024, 1, 20), Amount: 200},
	}
	got := GroupByPeriod(records, ByMonth)
	want := map[string]int{"2024/01": 300}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestGroupByPeriodDay(t *testing.T) {
	records := []models.SalesRecord{
		{Date: date(2024, 1, 5), Amount: 100},
		{Date: date(2024, 1, 5), Amount: 50},
		{Date: date(2024, 1, 20), Amount: 200},
	}
	got := GroupByPeriod(records, ByDay)
	want := map[string]int{"2024/01/05": 150, "2024/01/20": 200}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestGroupByWeekday(t *testing.T) {
	// 2024-03-03 is a Sunday.
	records := []models.SalesRecord{
		{Date: date(2024, 3, 3), Amount: 500},
	}
	got := GroupByWeekday(records)
	want := [7]int{500, 0, 0, 0, 0, 0, 0}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestGroupByFieldAxes(t *testing.T) {
	records := sampleRecords()

	services := GroupByService(records)
	if services["動画編集"] != 500 || services["ロゴ作成"] != 600 {
		t.Errorf("Unexpected service sums: %v", services)
	}

	customers := GroupByCustomer(records)
	if customers["田中"] != 400 {
		t.Errorf("Expected 田中 sum 400, got %d", customers["田中"])
	}

	breakdowns := GroupByBreakdown(records)
	if breakdowns["基本料金"] != 400 || breakdowns["オプション"] != 200 || breakdowns["その他"] != 500 {
		t.Errorf("Unexpected breakdown sums: %v", breakdowns)
	}
}

func TestRankedAndTopN(t *testing.T) {
	sums := map[string]int{"a": 100, "b": 300, "c": 200, "d": 200}

	ranked := Ranked(sums)
	wantLabels := []string{"b", "c", "d", "a"}
	for i, want := range wantLabels {
		if ranked[i].Label != want {
			t.Fatalf("Expected rank %d = %s, got %s", i, want, ranked[i].Label)
		}
	}

	top := TopN(ranked, 2)
	if len(top) != 2 || top[0].Label != "b" || top[1].Label != "c" {
		t.Errorf("Unexpected top-2: %+v", top)
	}

	if got := TopN(ranked, 0); len(got) != len(ranked) {
		t.Errorf("TopN(0) should keep the full list, got %d entries", len(got))
	}
}

func TestTrendSeriesIsChronological(t *testing.T) {
	sums := map[string]int{"2024/02": 2, "2023/12": 1, "2024/10": 3}
	series := TrendSeries(sums)

	wantLabels := []string{"2023/12", "2024/02", "2024/10"}
	wantValues := []int{1, 2, 3}
	if !reflect.DeepEqual(series.Labels, wantLabels) || !reflect.DeepEqual(series.Values, wantValues) {
		t.Errorf("Expected %v %v, got %v %v", wantLabels, wantValues, series.Labels, series.Values)
	}
}

func TestBuildView(t *testing.T) {
	view := BuildView(sampleRecords(), ByMonth, 1, 0)

	if view.Summary.Revenue != 1100 {
		t.Errorf("Expected revenue 1100, got %d", view.Summary.Revenue)
	}
	if len(view.Services.Labels) != 1 || view.Services.Labels[0] != "ロゴ作成" {
		t.Errorf("Expected top-1 service ロゴ作成, got %v", view.Services.Labels)
	}
	if len(view.Breakdowns.Labels) != 3 {
		t.Errorf("Breakdown ranking must not be truncated, got %v", view.Breakdowns.Labels)
	}
	if len(view.Weekdays.Values) != 7 {
		t.Errorf("Expected 7 weekday slots, got %d", len(view.Weekdays.Values))
	}
}

func TestCollectOptions(t *testing.T) {
	opts := CollectOptions(sampleRecords())

	if !reflect.DeepEqual(opts.Breakdowns, []string{"その他", "オプション", "基本料金"}) {
		t.Errorf("Unexpected breakdown options: %v", opts.Breakdowns)
	}
	if len(opts.Services) != 2 {
		t.Errorf("Expected 2 distinct services, got %v", opts.Services)
	}
	if !opts.MinDate.Equal(date(2024, 1, 15)) || !opts.MaxDate.Equal(date(2024, 3, 3)) {
		t.Errorf("Unexpected date range: %v - %v", opts.MinDate, opts.MaxDate)
	}
}
