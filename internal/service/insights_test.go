package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeonardoRFragoso/gerenciador-financeiro/internal/database/repository"
)

type fakeAdvisor struct {
	gotSummary string
	reply      string
	err        error
}

func (f *fakeAdvisor) Advise(_ context.Context, summary string) (string, error) {
	f.gotSummary = summary
	return f.reply, f.err
}

func TestInsightsSummary(t *testing.T) {
	t.Parallel()
	db, ctx := newTestDB(t)
	incomes, expenses, commitments := seedLedger(t, ctx, db)
	goals := repository.NewGoalRepo(db)

	svc := &InsightsService{
		Budget: &BudgetService{Incomes: incomes, Expenses: expenses, Commitments: commitments, Goals: goals},
		Goals:  goals,
	}
	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Contains(t, summary, "Receitas totais: R$ 5000.00")
	require.Contains(t, summary, "Despesas totais: R$ 2800.00")
	require.Contains(t, summary, "Gastos essenciais: R$ 2000.00")
	require.Contains(t, summary, "Poupança estimada: R$ 1900.00")
	require.Contains(t, summary, "Metas cadastradas: 0")
}

func TestInsightsAdvise(t *testing.T) {
	t.Parallel()
	db, ctx := newTestDB(t)
	incomes, expenses, commitments := seedLedger(t, ctx, db)
	goals := repository.NewGoalRepo(db)

	fake := &fakeAdvisor{reply: "Reduza os gastos com lazer."}
	svc := &InsightsService{
		Budget:  &BudgetService{Incomes: incomes, Expenses: expenses, Commitments: commitments, Goals: goals},
		Goals:   goals,
		Advisor: fake,
	}
	advice, err := svc.Advise(ctx)
	require.NoError(t, err)
	require.Equal(t, "Reduza os gastos com lazer.", advice)
	require.Contains(t, fake.gotSummary, "Receitas totais")
}

func TestInsightsAdviseWithoutAdvisor(t *testing.T) {
	t.Parallel()
	db, ctx := newTestDB(t)
	incomes, expenses, commitments := seedLedger(t, ctx, db)
	goals := repository.NewGoalRepo(db)

	svc := &InsightsService{
		Budget: &BudgetService{Incomes: incomes, Expenses: expenses, Commitments: commitments, Goals: goals},
		Goals:  goals,
	}
	_, err := svc.Advise(ctx)
	require.Error(t, err)
}
