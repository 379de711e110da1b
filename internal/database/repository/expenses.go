package repository

import (
	"context"
	"database/sql"
)

// ExpenseRepo handles expenses.
type ExpenseRepo struct {
	db *sql.DB
}

func NewExpenseRepo(db *sql.DB) *ExpenseRepo { return &ExpenseRepo{db: db} }

func (r *ExpenseRepo) Create(ctx context.Context, e Expense) (int64, error) {
	if err := r.validate(ctx, e); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO expenses(description, amount, date, category, recurring, tax_deductible)
	VALUES (?, ?, ?, ?, ?, ?)`,
		e.Description, e.Amount.String(), fmtDate(e.Date), e.Category, e.Recurring, e.TaxDeductible)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update replaces every mutable field. Updating a missing id is a no-op.
func (r *ExpenseRepo) Update(ctx context.Context, e Expense) error {
	if err := r.validate(ctx, e); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
	UPDATE expenses SET description = ?, amount = ?, date = ?, category = ?,
	 recurring = ?, tax_deductible = ?
	WHERE id = ?`,
		e.Description, e.Amount.String(), fmtDate(e.Date), e.Category, e.Recurring, e.TaxDeductible, e.ID)
	return err
}

// Delete removes an expense by id. Deleting a missing id is a no-op.
func (r *ExpenseRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	return err
}

func (r *ExpenseRepo) List(ctx context.Context) ([]Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, description, amount, date, category, recurring, tax_deductible
	FROM expenses ORDER BY date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Expense
	for rows.Next() {
		var (
			e    Expense
			date string
		)
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &date, &e.Category, &e.Recurring, &e.TaxDeductible); err != nil {
			return nil, err
		}
		if e.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ExpenseRepo) validate(ctx context.Context, e Expense) error {
	if err := validatePositive("amount", e.Amount); err != nil {
		return err
	}
	return checkCategoryKind(ctx, r.db, e.Category, CategoryExpense)
}
