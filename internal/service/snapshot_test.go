package service

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeonardoRFragoso/gerenciador-financeiro/internal/database/repository"
)

func newSnapshotService(db *sql.DB) *SnapshotService {
	return &SnapshotService{
		DB:            db,
		Accounts:      repository.NewAccountRepo(db),
		Expenses:      repository.NewExpenseRepo(db),
		Incomes:       repository.NewIncomeRepo(db),
		Goals:         repository.NewGoalRepo(db),
		Commitments:   repository.NewCommitmentRepo(db),
		Investments:   repository.NewInvestmentRepo(db),
		Budgets:       repository.NewBudgetRepo(db),
		Categories:    repository.NewCategoryRepo(db),
		Notifications: repository.NewNotificationRepo(db),
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()
	srcDB, ctx := newTestDB(t)
	seedLedger(t, ctx, srcDB)
	src := newSnapshotService(srcDB)

	_, err := src.Goals.Create(ctx, repository.Goal{
		Description: "Viagem", TargetAmount: dec("3000"), Deadline: day("2027-01-01"),
		Progress: dec("500"), Category: "lazer",
	})
	require.NoError(t, err)
	_, err = src.Budgets.Create(ctx, repository.Budget{
		Category: "lazer", PlannedAmount: dec("400"), Month: "2026-08", Year: 2026,
	})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "snap")
	m, err := src.Export(ctx, dir)
	require.NoError(t, err)
	require.NotEmpty(t, m.ID)
	require.Contains(t, m.Kinds, "expenses")
	require.FileExists(t, filepath.Join(dir, "manifest.json"))

	dstDB, dctx := newTestDB(t)
	dst := newSnapshotService(dstDB)
	results, err := dst.Import(dctx, dir)
	require.NoError(t, err)
	for _, r := range results {
		require.NoError(t, r.Err, r.Kind)
	}

	gotExpenses, err := dst.Expenses.List(dctx)
	require.NoError(t, err)
	wantExpenses, err := src.Expenses.List(ctx)
	require.NoError(t, err)
	require.Len(t, gotExpenses, len(wantExpenses))
	for i := range wantExpenses {
		require.Equal(t, wantExpenses[i].Description, gotExpenses[i].Description)
		require.True(t, gotExpenses[i].Amount.Equal(wantExpenses[i].Amount))
		require.Equal(t, wantExpenses[i].Category, gotExpenses[i].Category)
	}

	gotGoals, err := dst.Goals.List(dctx)
	require.NoError(t, err)
	require.Len(t, gotGoals, 1)
	require.True(t, gotGoals[0].Progress.Equal(dec("500")))

	gotCommitments, err := dst.Commitments.List(dctx)
	require.NoError(t, err)
	require.Len(t, gotCommitments, 1)
	require.True(t, gotCommitments[0].InstallmentAmount.Equal(dec("300")))
}

func TestSnapshotImportReplacesExistingRows(t *testing.T) {
	t.Parallel()
	srcDB, ctx := newTestDB(t)
	seedLedger(t, ctx, srcDB)
	src := newSnapshotService(srcDB)

	dir := filepath.Join(t.TempDir(), "snap")
	_, err := src.Export(ctx, dir)
	require.NoError(t, err)

	dstDB, dctx := newTestDB(t)
	dst := newSnapshotService(dstDB)
	_, err = dst.Expenses.Create(dctx, repository.Expense{
		Description: "linha antiga", Amount: dec("1"), Date: day("2026-01-01"),
	})
	require.NoError(t, err)

	_, err = dst.Import(dctx, dir)
	require.NoError(t, err)

	list, err := dst.Expenses.List(dctx)
	require.NoError(t, err)
	for _, e := range list {
		require.NotEqual(t, "linha antiga", e.Description)
	}
}

func TestSnapshotImportMissingDirFails(t *testing.T) {
	t.Parallel()
	db, ctx := newTestDB(t)
	svc := newSnapshotService(db)

	_, err := svc.Import(ctx, filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestSnapshotCorruptFileIsolatedPerKind(t *testing.T) {
	t.Parallel()
	srcDB, ctx := newTestDB(t)
	seedLedger(t, ctx, srcDB)
	src := newSnapshotService(srcDB)

	dir := filepath.Join(t.TempDir(), "snap")
	_, err := src.Export(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "incomes.json"), []byte("{not json"), 0o644))

	dstDB, dctx := newTestDB(t)
	dst := newSnapshotService(dstDB)
	results, err := dst.Import(dctx, dir)
	require.NoError(t, err)

	byKind := map[string]KindResult{}
	for _, r := range results {
		byKind[r.Kind] = r
	}
	require.Error(t, byKind["incomes"].Err)
	var serr *SerializationError
	require.ErrorAs(t, byKind["incomes"].Err, &serr)
	require.NoError(t, byKind["expenses"].Err)

	// The broken kind is untouched; the healthy kinds still land.
	expenses, err := dst.Expenses.List(dctx)
	require.NoError(t, err)
	require.NotEmpty(t, expenses)
	incomes, err := dst.Incomes.List(dctx)
	require.NoError(t, err)
	require.Empty(t, incomes)
}

func TestSnapshotImportSkipsAbsentKinds(t *testing.T) {
	t.Parallel()
	srcDB, ctx := newTestDB(t)
	seedLedger(t, ctx, srcDB)
	src := newSnapshotService(srcDB)

	dir := filepath.Join(t.TempDir(), "snap")
	_, err := src.Export(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, "goals.json")))

	dstDB, dctx := newTestDB(t)
	dst := newSnapshotService(dstDB)
	results, err := dst.Import(dctx, dir)
	require.NoError(t, err)
	for _, r := range results {
		require.NotEqual(t, "goals", r.Kind)
	}
}
