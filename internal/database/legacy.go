package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// legacyCommitmentsMigration marks the one-shot copy of the old debts and
// installments tables into the unified commitments table. The marker, not
// the presence of the legacy tables, decides whether the copy runs again.
const legacyCommitmentsMigration = "unify_commitments"

// MigrateLegacy copies rows from pre-existing legacy "debts" and
// "installments" tables into the commitments table, exactly once. The legacy
// tables are left in place for external consumers still reading them.
//
// Errors are returned for reporting but callers are expected to continue
// startup: a partially migrated ledger is still usable.
func MigrateLegacy(ctx context.Context, db *sql.DB) error {
	applied, err := legacyMigrationApplied(ctx, db, legacyCommitmentsMigration)
	if err != nil {
		return fmt.Errorf("check legacy migration marker: %w", err)
	}
	if applied {
		return nil
	}

	hasDebts, err := tableExists(ctx, db, "debts")
	if err != nil {
		return fmt.Errorf("introspect legacy tables: %w", err)
	}
	hasInstallments, err := tableExists(ctx, db, "installments")
	if err != nil {
		return fmt.Errorf("introspect legacy tables: %w", err)
	}

	err = WithTx(db, func(tx *sql.Tx) error {
		migrated := 0
		if hasDebts {
			n, err := migrateLegacyDebts(ctx, tx)
			if err != nil {
				return fmt.Errorf("migrate legacy debts: %w", err)
			}
			migrated += n
		}
		if hasInstallments {
			n, err := migrateLegacyInstallments(ctx, tx)
			if err != nil {
				return fmt.Errorf("migrate legacy installments: %w", err)
			}
			migrated += n
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO legacy_migrations(name, applied_at) VALUES (?, ?)`,
			legacyCommitmentsMigration, Now().Format("2006-01-02 15:04:05")); err != nil {
			return fmt.Errorf("write migration marker: %w", err)
		}
		if migrated > 0 {
			slog.Info("legacy commitment migration complete", "rows", migrated)
		}
		return nil
	})
	return err
}

func migrateLegacyDebts(ctx context.Context, tx *sql.Tx) (int, error) {
	rows, err := tx.QueryContext(ctx, `SELECT description, amount, interest_rate, term_months FROM debts`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	type debtRow struct {
		description  string
		amount       decimal.Decimal
		interestRate decimal.Decimal
		termMonths   int64
	}
	var debts []debtRow
	for rows.Next() {
		var d debtRow
		if err := rows.Scan(&d.description, &d.amount, &d.interestRate, &d.termMonths); err != nil {
			return 0, err
		}
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	today := Now().Format("2006-01-02")
	for _, d := range debts {
		total := max64(d.termMonths, 1)
		installment := d.amount
		if d.termMonths > 0 {
			installment = d.amount.Div(decimal.NewFromInt(d.termMonths))
		}
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO commitments(
		 description, total_amount, installment_amount, due_date, status, kind,
		 interest_rate, installments_total, installment_current)
		VALUES (?, ?, ?, ?, 'pending', 'debt', ?, ?, 1)`,
			d.description, d.amount.String(), installment.String(), today,
			d.interestRate.String(), total); err != nil {
			return 0, err
		}
	}
	return len(debts), nil
}

func migrateLegacyInstallments(ctx context.Context, tx *sql.Tx) (int, error) {
	hasStatus, err := columnExists(ctx, tx, "installments", "status")
	if err != nil {
		return 0, err
	}
	query := `SELECT description, amount, due_date, '' FROM installments`
	if hasStatus {
		query = `SELECT description, amount, due_date, COALESCE(status, '') FROM installments`
	}
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	type instRow struct {
		description string
		amount      decimal.Decimal
		dueDate     string
		status      string
	}
	var installments []instRow
	for rows.Next() {
		var r instRow
		if err := rows.Scan(&r.description, &r.amount, &r.dueDate, &r.status); err != nil {
			return 0, err
		}
		installments = append(installments, r)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, r := range installments {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO commitments(
		 description, total_amount, installment_amount, due_date, status, kind,
		 interest_rate, installments_total, installment_current)
		VALUES (?, ?, ?, ?, ?, 'installment', '0', 1, 1)`,
			r.description, r.amount.String(), r.amount.String(), r.dueDate,
			normalizeLegacyStatus(r.status)); err != nil {
			return 0, err
		}
	}
	return len(installments), nil
}

// normalizeLegacyStatus maps the old Portuguese status labels onto the
// unified enum; anything unrecognized defaults to pending.
func normalizeLegacyStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pago", "paid":
		return "paid"
	case "atrasado", "overdue":
		return "overdue"
	case "parcial", "partial":
		return "partial"
	default:
		return "pending"
	}
}

func legacyMigrationApplied(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM legacy_migrations WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func tableExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func columnExists(ctx context.Context, tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s)`, table))
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
