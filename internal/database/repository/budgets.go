package repository

import (
	"context"
	"database/sql"
	"regexp"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// BudgetRepo handles monthly category budgets. Uniqueness per
// (category, month, year) is enforced here in the write path; the unique
// index on the table is only a backstop.
type BudgetRepo struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepo { return &BudgetRepo{db: db} }

func (r *BudgetRepo) Create(ctx context.Context, b Budget) (int64, error) {
	if err := validateBudget(b); err != nil {
		return 0, err
	}
	taken, err := r.periodTaken(ctx, b, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, invalidf("category", "budget for %q already exists in %s", b.Category, b.Month)
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets(category, planned_amount, month, year) VALUES (?, ?, ?, ?)`,
		b.Category, b.PlannedAmount.String(), b.Month, b.Year)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update replaces every mutable field. Updating a missing id is a no-op.
func (r *BudgetRepo) Update(ctx context.Context, b Budget) error {
	if err := validateBudget(b); err != nil {
		return err
	}
	taken, err := r.periodTaken(ctx, b, b.ID)
	if err != nil {
		return err
	}
	if taken {
		return invalidf("category", "budget for %q already exists in %s", b.Category, b.Month)
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE budgets SET category = ?, planned_amount = ?, month = ?, year = ? WHERE id = ?`,
		b.Category, b.PlannedAmount.String(), b.Month, b.Year, b.ID)
	return err
}

// Delete removes a budget by id. Deleting a missing id is a no-op.
func (r *BudgetRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	return err
}

func (r *BudgetRepo) List(ctx context.Context) ([]Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, planned_amount, month, year FROM budgets ORDER BY month, category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Budget
	for rows.Next() {
		var b Budget
		if err := rows.Scan(&b.ID, &b.Category, &b.PlannedAmount, &b.Month, &b.Year); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BudgetRepo) periodTaken(ctx context.Context, b Budget, excludeID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM budgets
	WHERE lower(category) = lower(?) AND month = ? AND year = ? AND id != ?`,
		b.Category, b.Month, b.Year, excludeID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func validateBudget(b Budget) error {
	if b.Category == "" {
		return invalidf("category", "must not be empty")
	}
	if err := validatePositive("planned_amount", b.PlannedAmount); err != nil {
		return err
	}
	if !monthPattern.MatchString(b.Month) {
		return invalidf("month", "must be YYYY-MM, got %q", b.Month)
	}
	return nil
}
