package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LeonardoRFragoso/gerenciador-financeiro/internal/database/repository"
)

var (
	incomeBias  = decimal.RequireFromString("0.9")
	expenseBias = decimal.RequireFromString("1.1")
)

// MonthProjection is one month of the cash-flow forecast.
type MonthProjection struct {
	Month int
	Year  int

	ProjectedIncome  decimal.Decimal
	ProjectedExpense decimal.Decimal
	Committed        decimal.Decimal
	Balance          decimal.Decimal
}

// ForecastService projects future months from the current ledger. Every call
// re-reads the store, so the forecast is a pure function of its state.
type ForecastService struct {
	Incomes     *repository.IncomeRepo
	Expenses    *repository.ExpenseRepo
	Commitments *repository.CommitmentRepo

	// Now anchors the first projected month. Nil means time.Now.
	Now func() time.Time
}

func (s *ForecastService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Forecast projects the n calendar months after the current one. Projected
// income takes the larger of the recurring total and a trailing average biased
// down by 10%; projected expense takes the larger of the recurring total and a
// trailing average biased up by 10%.
func (s *ForecastService) Forecast(ctx context.Context, n int) ([]MonthProjection, error) {
	if n <= 0 {
		return []MonthProjection{}, nil
	}
	incomes, err := s.Incomes.List(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.Expenses.List(ctx)
	if err != nil {
		return nil, err
	}
	commitments, err := s.Commitments.List(ctx)
	if err != nil {
		return nil, err
	}

	var recurIncome, recurExpense decimal.Decimal
	incomeByMonth := map[string]decimal.Decimal{}
	expenseByMonth := map[string]decimal.Decimal{}
	for _, in := range incomes {
		if in.Recurring {
			recurIncome = recurIncome.Add(in.Amount)
		}
		key := in.Date.Format("2006-01")
		incomeByMonth[key] = incomeByMonth[key].Add(in.Amount)
	}
	for _, e := range expenses {
		if e.Recurring {
			recurExpense = recurExpense.Add(e.Amount)
		}
		key := e.Date.Format("2006-01")
		expenseByMonth[key] = expenseByMonth[key].Add(e.Amount)
	}

	projIncome := decimal.Max(recurIncome, trailingAverage(incomeByMonth).Mul(incomeBias))
	projExpense := decimal.Max(recurExpense, trailingAverage(expenseByMonth).Mul(expenseBias))

	out := make([]MonthProjection, 0, n)
	start := s.now()
	year, month := start.Year(), int(start.Month())
	for i := 0; i < n; i++ {
		month++
		if month > 12 {
			month = 1
			year++
		}
		committed := committedIn(commitments, year, month)
		out = append(out, MonthProjection{
			Month:            month,
			Year:             year,
			ProjectedIncome:  projIncome,
			ProjectedExpense: projExpense,
			Committed:        committed,
			Balance:          projIncome.Sub(projExpense).Sub(committed),
		})
	}
	return out, nil
}

// trailingAverage averages the monthly totals of the most recent three
// distinct months present. Fewer months average over what exists; an empty
// history yields zero.
func trailingAverage(byMonth map[string]decimal.Decimal) decimal.Decimal {
	if len(byMonth) == 0 {
		return decimal.Zero
	}
	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	// Month keys sort lexicographically in date order.
	sort.Strings(keys)
	if len(keys) > 3 {
		keys = keys[len(keys)-3:]
	}
	var sum decimal.Decimal
	for _, k := range keys {
		sum = sum.Add(byMonth[k])
	}
	return sum.Div(decimal.NewFromInt(int64(len(keys))))
}

// committedIn sums the installment amounts of unpaid commitments due in the
// given month.
func committedIn(commitments []repository.Commitment, year, month int) decimal.Decimal {
	var sum decimal.Decimal
	for _, c := range commitments {
		if c.Status == repository.StatusPaid {
			continue
		}
		if c.DueDate.Year() == year && int(c.DueDate.Month()) == month {
			sum = sum.Add(c.InstallmentAmount)
		}
	}
	return sum
}
