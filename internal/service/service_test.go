package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/LeonardoRFragoso/gerenciador-financeiro/internal/database"
	"github.com/LeonardoRFragoso/gerenciador-financeiro/internal/database/repository"
)

func newTestDB(t *testing.T) (*sql.DB, context.Context) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, ctx
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedLedger(t *testing.T, ctx context.Context, db *sql.DB) (incomes *repository.IncomeRepo, expenses *repository.ExpenseRepo, commitments *repository.CommitmentRepo) {
	t.Helper()
	incomes = repository.NewIncomeRepo(db)
	expenses = repository.NewExpenseRepo(db)
	commitments = repository.NewCommitmentRepo(db)

	_, err := incomes.Create(ctx, repository.Income{
		Description: "Salário mensal", Amount: dec("5000"), Date: day("2026-08-05"),
		Category: "salário", Recurring: true,
	})
	require.NoError(t, err)

	_, err = expenses.Create(ctx, repository.Expense{
		Description: "Aluguel", Amount: dec("2000"), Date: day("2026-08-01"), Category: "moradia",
	})
	require.NoError(t, err)
	_, err = expenses.Create(ctx, repository.Expense{
		Description: "Cinema e jantar", Amount: dec("800"), Date: day("2026-08-10"), Category: "lazer",
	})
	require.NoError(t, err)

	_, err = commitments.Create(ctx, repository.Commitment{
		Description: "Notebook", TotalAmount: dec("3000"), InstallmentAmount: dec("300"),
		DueDate: day("2026-09-10"), Status: repository.StatusPending, Kind: repository.KindInstallment,
		InterestRate: dec("0"), InstallmentsTotal: 10, InstallmentCurrent: 3,
	})
	require.NoError(t, err)
	return incomes, expenses, commitments
}
