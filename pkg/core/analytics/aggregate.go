package analytics

import (
	"sort"
	"time"

	"legacy_m/pkg/core/statement"
)

// Summary holds the overall totals for a transaction set.
// TotalExpense is a sum of negative amounts and is itself negative;
// Balance = TotalIncome + TotalExpense.
type Summary struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
	Count        int     `json:"transaction_count"`
	PeriodStart  string  `json:"period_start,omitempty"`
	PeriodEnd    string  `json:"period_end,omitempty"`
}

// MonthBalance is one calendar month's totals, Month formatted YYYY-MM.
type MonthBalance struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// Aggregator computes pure reductions over a transaction set. It holds no
// caches: every call walks the current set, so a new upload can never serve
// stale aggregates.
type Aggregator struct {
	txns []statement.Transaction
}

func NewAggregator(txns []statement.Transaction) *Aggregator {
	return &Aggregator{txns: txns}
}

// Summary computes the overall income/expense totals and covered period.
func (a *Aggregator) Summary() Summary {
	s := Summary{Count: len(a.txns)}
	if len(a.txns) == 0 {
		return s
	}

	minDate, maxDate := a.txns[0].Date, a.txns[0].Date
	for _, t := range a.txns {
		if t.Amount > 0 {
			s.TotalIncome += t.Amount
		} else {
			s.TotalExpense += t.Amount
		}
		if t.Date.Before(minDate) {
			minDate = t.Date
		}
		if t.Date.After(maxDate) {
			maxDate = t.Date
		}
	}
	s.Balance = s.TotalIncome + s.TotalExpense
	s.PeriodStart = minDate.Format("2006-01-02")
	s.PeriodEnd = maxDate.Format("2006-01-02")
	return s
}

// ByCategory sums signed amounts per category. Every transaction lands in
// exactly one category, so the values sum to Summary().Balance.
func (a *Aggregator) ByCategory() map[string]float64 {
	out := make(map[string]float64)
	for _, t := range a.txns {
		out[t.Category] += t.Amount
	}
	return out
}

// recentWindow is how far back from the newest transaction the "recent"
// trend averages reach.
const recentWindow = 90 * 24 * time.Hour

// Trends compares per-transaction average income and expense over the whole
// set against the recent window. Expense averages are reported as positive
// magnitudes; trend markers say whether the recent average is above or below
// the overall one.
type Trends struct {
	AverageIncome  float64 `json:"average_monthly_income"`
	AverageExpense float64 `json:"average_monthly_expense"`
	RecentIncome   float64 `json:"recent_3_months_avg_income"`
	RecentExpense  float64 `json:"recent_3_months_avg_expense"`
	IncomeTrend    string  `json:"income_trend"`
	ExpenseTrend   string  `json:"expense_trend"`
}

func (a *Aggregator) Trends() Trends {
	var t Trends
	if len(a.txns) == 0 {
		return t
	}

	maxDate := a.txns[0].Date
	for _, tx := range a.txns {
		if tx.Date.After(maxDate) {
			maxDate = tx.Date
		}
	}
	cutoff := maxDate.Add(-recentWindow)

	var incomeSum, expenseSum float64
	var incomeN, expenseN int
	var recentIncomeSum, recentExpenseSum float64
	var recentIncomeN, recentExpenseN int
	for _, tx := range a.txns {
		recent := !tx.Date.Before(cutoff)
		if tx.Amount > 0 {
			incomeSum += tx.Amount
			incomeN++
			if recent {
				recentIncomeSum += tx.Amount
				recentIncomeN++
			}
		} else if tx.Amount < 0 {
			expenseSum -= tx.Amount
			expenseN++
			if recent {
				recentExpenseSum -= tx.Amount
				recentExpenseN++
			}
		}
	}

	t.AverageIncome = mean(incomeSum, incomeN)
	t.AverageExpense = mean(expenseSum, expenseN)
	t.RecentIncome = mean(recentIncomeSum, recentIncomeN)
	t.RecentExpense = mean(recentExpenseSum, recentExpenseN)
	t.IncomeTrend = direction(t.RecentIncome, t.AverageIncome)
	t.ExpenseTrend = direction(t.RecentExpense, t.AverageExpense)
	return t
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func direction(recent, overall float64) string {
	if recent > overall {
		return "рост"
	}
	return "снижение"
}

// ByMonth returns per-month income, expense and balance ordered
// chronologically.
func (a *Aggregator) ByMonth() []MonthBalance {
	type acc struct {
		income, expense float64
	}
	months := make(map[string]*acc)
	for _, t := range a.txns {
		key := t.Date.Format("2006-01")
		m, ok := months[key]
		if !ok {
			m = &acc{}
			months[key] = m
		}
		if t.Amount > 0 {
			m.income += t.Amount
		} else {
			m.expense += t.Amount
		}
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthBalance, 0, len(keys))
	for _, k := range keys {
		m := months[k]
		out = append(out, MonthBalance{
			Month:   k,
			Income:  m.income,
			Expense: m.expense,
			Balance: m.income + m.expense,
		})
	}
	return out
}
