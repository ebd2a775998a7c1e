package analytics

import (
	"math"
	"testing"
	"time"

	"legacy_m/pkg/core/statement"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleTxns() []statement.Transaction {
	return []statement.Transaction{
		{Date: day(2024, 1, 5), Description: "salary", Amount: 50000, Category: "salary"},
		{Date: day(2024, 1, 10), Description: "groceries", Amount: -4500.50, Category: "groceries"},
		{Date: day(2024, 1, 15), Description: "taxi", Amount: -450, Category: "transport"},
		{Date: day(2024, 2, 5), Description: "salary", Amount: 50000, Category: "salary"},
		{Date: day(2024, 2, 20), Description: "pharmacy", Amount: -780, Category: "health"},
		{Date: day(2024, 2, 25), Description: "unknown", Amount: -100, Category: "other"},
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummary(t *testing.T) {
	agg := NewAggregator(sampleTxns())
	s := agg.Summary()

	if !approxEqual(s.TotalIncome, 100000) {
		t.Errorf("income: got %v", s.TotalIncome)
	}
	if !approxEqual(s.TotalExpense, -5830.50) {
		t.Errorf("expense: got %v", s.TotalExpense)
	}
	if !approxEqual(s.Balance, 94169.50) {
		t.Errorf("balance: got %v", s.Balance)
	}
	if s.Count != 6 {
		t.Errorf("count: got %d", s.Count)
	}
	if s.PeriodStart != "2024-01-05" || s.PeriodEnd != "2024-02-25" {
		t.Errorf("period: %s .. %s", s.PeriodStart, s.PeriodEnd)
	}
}

func TestByCategoryPartitionsBalance(t *testing.T) {
	agg := NewAggregator(sampleTxns())
	byCat := agg.ByCategory()

	var sum float64
	for _, v := range byCat {
		sum += v
	}
	s := agg.Summary()
	if !approxEqual(sum, s.TotalIncome+s.TotalExpense) {
		t.Errorf("category sums %v != income+expense %v", sum, s.TotalIncome+s.TotalExpense)
	}

	if !approxEqual(byCat["transport"], -450) {
		t.Errorf("transport: got %v", byCat["transport"])
	}
}

func TestByMonthChronologicalAndConsistent(t *testing.T) {
	agg := NewAggregator(sampleTxns())
	months := agg.ByMonth()

	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}
	if months[0].Month != "2024-01" || months[1].Month != "2024-02" {
		t.Errorf("months out of order: %v, %v", months[0].Month, months[1].Month)
	}

	var total float64
	for _, m := range months {
		if !approxEqual(m.Balance, m.Income+m.Expense) {
			t.Errorf("%s: balance %v != income %v + expense %v", m.Month, m.Balance, m.Income, m.Expense)
		}
		total += m.Balance
	}
	if !approxEqual(total, agg.Summary().Balance) {
		t.Errorf("monthly balances sum %v != summary balance %v", total, agg.Summary().Balance)
	}
}

func TestEmptySet(t *testing.T) {
	agg := NewAggregator(nil)

	s := agg.Summary()
	if s.Count != 0 || s.Balance != 0 {
		t.Errorf("empty set summary: %+v", s)
	}
	if len(agg.ByCategory()) != 0 {
		t.Error("empty set should have no categories")
	}
	if len(agg.ByMonth()) != 0 {
		t.Error("empty set should have no months")
	}
}

func TestTrends(t *testing.T) {
	// Old incomes of 10000, recent income of 40000: the recent average sits
	// above the overall one. Expenses move the other way.
	txns := []statement.Transaction{
		{Date: day(2023, 1, 5), Amount: 10000, Category: "salary"},
		{Date: day(2023, 2, 5), Amount: 10000, Category: "salary"},
		{Date: day(2023, 1, 10), Amount: -5000, Category: "groceries"},
		{Date: day(2024, 6, 5), Amount: 40000, Category: "salary"},
		{Date: day(2024, 6, 10), Amount: -1000, Category: "groceries"},
	}
	tr := NewAggregator(txns).Trends()

	if !approxEqual(tr.AverageIncome, 20000) {
		t.Errorf("average income: got %v", tr.AverageIncome)
	}
	if !approxEqual(tr.RecentIncome, 40000) {
		t.Errorf("recent income: got %v", tr.RecentIncome)
	}
	if !approxEqual(tr.AverageExpense, 3000) {
		t.Errorf("average expense: got %v", tr.AverageExpense)
	}
	if !approxEqual(tr.RecentExpense, 1000) {
		t.Errorf("recent expense: got %v", tr.RecentExpense)
	}
	if tr.IncomeTrend != "рост" {
		t.Errorf("income trend: got %q", tr.IncomeTrend)
	}
	if tr.ExpenseTrend != "снижение" {
		t.Errorf("expense trend: got %q", tr.ExpenseTrend)
	}
}

func TestTrendsEmptySet(t *testing.T) {
	tr := NewAggregator(nil).Trends()
	if tr != (Trends{}) {
		t.Errorf("expected zero trends for empty set, got %+v", tr)
	}
}
