package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func seedLegacyTables(t *testing.T, ctx context.Context, db *sql.DB) {
	t.Helper()
	_, err := db.ExecContext(ctx, `
	CREATE TABLE debts (
	 id INTEGER PRIMARY KEY AUTOINCREMENT,
	 description TEXT NOT NULL,
	 amount TEXT NOT NULL,
	 interest_rate TEXT NOT NULL,
	 term_months INTEGER NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `
	CREATE TABLE installments (
	 id INTEGER PRIMARY KEY AUTOINCREMENT,
	 description TEXT NOT NULL,
	 amount TEXT NOT NULL,
	 due_date TEXT NOT NULL,
	 status TEXT
	)`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO debts(description, amount, interest_rate, term_months) VALUES
		 ('Cartão de crédito', '1200', '12.5', 12),
		 ('Empréstimo pessoal', '500', '0', 0)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO installments(description, amount, due_date, status) VALUES
		 ('Notebook 3/10', '250.00', '2026-09-10', 'pago'),
		 ('Sofá 1/6', '180.00', '2026-09-05', 'atrasado'),
		 ('Celular 2/12', '120.00', '2026-10-01', NULL)`)
	require.NoError(t, err)
}

func TestMigrateLegacy(t *testing.T) {
	t.Parallel()
	db, _, ctx := newTestDB(t)
	seedLegacyTables(t, ctx, db)

	require.NoError(t, MigrateLegacy(ctx, db))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM commitments`).Scan(&n))
	require.Equal(t, 5, n)

	// Debt with a term splits its total across the installments.
	var installment, total string
	var totalCount int64
	require.NoError(t, db.QueryRowContext(ctx, `
	SELECT installment_amount, total_amount, installments_total FROM commitments
	WHERE description = 'Cartão de crédito'`).Scan(&installment, &total, &totalCount))
	require.Equal(t, "100", installment)
	require.Equal(t, "1200", total)
	require.EqualValues(t, 12, totalCount)

	// Zero-term debt falls back to a single installment of the full amount.
	require.NoError(t, db.QueryRowContext(ctx, `
	SELECT installment_amount, installments_total FROM commitments
	WHERE description = 'Empréstimo pessoal'`).Scan(&installment, &totalCount))
	require.Equal(t, "500", installment)
	require.EqualValues(t, 1, totalCount)

	// Portuguese statuses are normalized, missing status defaults to pending.
	for desc, want := range map[string]string{
		"Notebook 3/10": "paid",
		"Sofá 1/6":      "overdue",
		"Celular 2/12":  "pending",
	} {
		var status string
		require.NoError(t, db.QueryRowContext(ctx,
			`SELECT status FROM commitments WHERE description = ?`, desc).Scan(&status))
		require.Equal(t, want, status, desc)
	}

	// Legacy tables survive the copy.
	ok, err := tableExists(ctx, db, "debts")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMigrateLegacyRunsOnce(t *testing.T) {
	t.Parallel()
	db, _, ctx := newTestDB(t)
	seedLegacyTables(t, ctx, db)

	require.NoError(t, MigrateLegacy(ctx, db))
	require.NoError(t, MigrateLegacy(ctx, db))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM commitments`).Scan(&n))
	require.Equal(t, 5, n)
}

func TestMigrateLegacyNoLegacyTables(t *testing.T) {
	t.Parallel()
	db, _, ctx := newTestDB(t)

	require.NoError(t, MigrateLegacy(ctx, db))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM commitments`).Scan(&n))
	require.Zero(t, n)

	// The marker still lands so later runs skip introspection.
	applied, err := legacyMigrationApplied(ctx, db, legacyCommitmentsMigration)
	require.NoError(t, err)
	require.True(t, applied)
}

func TestNormalizeLegacyStatus(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"pago":     "paid",
		"PAGO":     "paid",
		"atrasado": "overdue",
		"parcial":  "partial",
		"partial":  "partial",
		"":         "pending",
		"???":      "pending",
	}
	for in, want := range cases {
		require.Equal(t, want, normalizeLegacyStatus(in), "input %q", in)
	}
}

func TestNowIsUTC(t *testing.T) {
	t.Parallel()
	require.Equal(t, time.UTC, Now().Location())
}
