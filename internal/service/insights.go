package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/LeonardoRFragoso/gerenciador-financeiro/internal/database/repository"
	"github.com/LeonardoRFragoso/gerenciador-financeiro/internal/llm"
)

// InsightsService summarizes the ledger as plain text and hands it to an
// advisor for recommendations. The advisor is opaque: text in, text out.
type InsightsService struct {
	Budget  *BudgetService
	Goals   *repository.GoalRepo
	Advisor llm.Advisor
}

// Summary renders the ledger totals as the plain-text block fed to the
// advisor. It is also useful on its own when no advisor is configured.
func (s *InsightsService) Summary(ctx context.Context) (string, error) {
	c, err := s.Budget.Classify(ctx)
	if err != nil {
		return "", err
	}
	goals, err := s.Goals.List(ctx)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Receitas totais: R$ %s\n", c.TotalIncome.StringFixed(2))
	fmt.Fprintf(&b, "Despesas totais: R$ %s\n", c.TotalExpenses.StringFixed(2))
	fmt.Fprintf(&b, "Gastos essenciais: R$ %s\n", c.Needs.StringFixed(2))
	fmt.Fprintf(&b, "Gastos supérfluos: R$ %s\n", c.Wants.StringFixed(2))
	fmt.Fprintf(&b, "Parcelas de dívidas e compromissos: R$ %s\n", c.Committed.StringFixed(2))
	fmt.Fprintf(&b, "Poupança estimada: R$ %s\n", c.Savings.StringFixed(2))
	fmt.Fprintf(&b, "Metas cadastradas: %d\n", len(goals))
	return b.String(), nil
}

// Advise builds the summary and asks the configured advisor for free-text
// recommendations.
func (s *InsightsService) Advise(ctx context.Context) (string, error) {
	if s.Advisor == nil {
		return "", fmt.Errorf("insights: no advisor configured")
	}
	summary, err := s.Summary(ctx)
	if err != nil {
		return "", err
	}
	return s.Advisor.Advise(ctx, summary)
}
