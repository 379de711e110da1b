package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LeonardoRFragoso/gerenciador-financeiro/internal/database/repository"
)

// Categories that count as needs under the 50/30/20 rule. Everything else on
// the expense side is a want.
var needsCategories = map[string]bool{
	"moradia":     true,
	"alimentacao": true,
	"alimentação": true,
	"transporte":  true,
	"saude":       true,
	"saúde":       true,
	"educacao":    true,
	"educação":    true,
}

var (
	idealNeedsPct   = decimal.NewFromInt(50)
	idealWantsPct   = decimal.NewFromInt(30)
	idealSavingsPct = decimal.NewFromInt(20)
	hundred         = decimal.NewFromInt(100)
)

// Classification is the 50/30/20 breakdown of a month of activity.
type Classification struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Committed     decimal.Decimal

	Needs   decimal.Decimal
	Wants   decimal.Decimal
	Savings decimal.Decimal

	NeedsPct   decimal.Decimal
	WantsPct   decimal.Decimal
	SavingsPct decimal.Decimal

	NeedsOver    bool
	WantsOver    bool
	SavingsUnder bool

	Advisory string
}

// Classify splits expenses into needs and wants, treats commitment
// installments as part of the month's obligations and derives savings as
// whatever income is left, floored at zero.
func Classify(income decimal.Decimal, expenses []repository.Expense, commitments []repository.Commitment) Classification {
	c := Classification{TotalIncome: income}
	for _, e := range expenses {
		c.TotalExpenses = c.TotalExpenses.Add(e.Amount)
		if needsCategories[strings.ToLower(e.Category)] {
			c.Needs = c.Needs.Add(e.Amount)
		} else {
			c.Wants = c.Wants.Add(e.Amount)
		}
	}
	for _, cm := range commitments {
		c.Committed = c.Committed.Add(cm.InstallmentAmount)
	}
	c.Savings = income.Sub(c.TotalExpenses).Sub(c.Committed)
	if c.Savings.IsNegative() {
		c.Savings = decimal.Zero
	}
	if income.IsZero() {
		c.Advisory = "Nenhuma receita registrada: cadastre suas receitas para avaliar o orçamento."
		return c
	}
	c.NeedsPct = c.Needs.Div(income).Mul(hundred)
	c.WantsPct = c.Wants.Div(income).Mul(hundred)
	c.SavingsPct = c.Savings.Div(income).Mul(hundred)
	c.NeedsOver = c.NeedsPct.GreaterThan(idealNeedsPct)
	c.WantsOver = c.WantsPct.GreaterThan(idealWantsPct)
	c.SavingsUnder = c.SavingsPct.LessThan(idealSavingsPct)
	return c
}

// AutoGoalDescription marks the reserve goal the classifier creates on its
// own. Its presence is what keeps the suggestion single-shot.
const AutoGoalDescription = "Reserva Automática sugerida pelo sistema"

var autoGoalMinimum = decimal.NewFromInt(50)

// BudgetService evaluates the ledger against the 50/30/20 rule.
type BudgetService struct {
	Incomes     *repository.IncomeRepo
	Expenses    *repository.ExpenseRepo
	Commitments *repository.CommitmentRepo
	Goals       *repository.GoalRepo

	// Now is the clock for the auto-goal deadline. Nil means time.Now.
	Now func() time.Time
}

func (s *BudgetService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Classify loads the full ledger and returns its 50/30/20 breakdown.
func (s *BudgetService) Classify(ctx context.Context) (Classification, error) {
	incomes, err := s.Incomes.List(ctx)
	if err != nil {
		return Classification{}, err
	}
	expenses, err := s.Expenses.List(ctx)
	if err != nil {
		return Classification{}, err
	}
	commitments, err := s.Commitments.List(ctx)
	if err != nil {
		return Classification{}, err
	}
	var income decimal.Decimal
	for _, in := range incomes {
		income = income.Add(in.Amount)
	}
	return Classify(income, expenses, commitments), nil
}

// EnsureAutoGoal creates the automatic reserve goal when the classified
// savings reach the minimum and no auto goal exists yet. It reports whether a
// goal was created.
func (s *BudgetService) EnsureAutoGoal(ctx context.Context) (bool, error) {
	c, err := s.Classify(ctx)
	if err != nil {
		return false, err
	}
	if c.Savings.LessThan(autoGoalMinimum) {
		return false, nil
	}
	goals, err := s.Goals.List(ctx)
	if err != nil {
		return false, err
	}
	for _, g := range goals {
		if g.Description == AutoGoalDescription {
			return false, nil
		}
	}
	_, err = s.Goals.Create(ctx, repository.Goal{
		Description:  AutoGoalDescription,
		TargetAmount: c.Savings,
		Deadline:     s.now().AddDate(0, 0, 90),
		Progress:     decimal.Zero,
		Category:     "reserva",
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
