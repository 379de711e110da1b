package repository

import (
	"context"
	"database/sql"
)

// IncomeRepo handles incomes.
type IncomeRepo struct {
	db *sql.DB
}

func NewIncomeRepo(db *sql.DB) *IncomeRepo { return &IncomeRepo{db: db} }

func (r *IncomeRepo) Create(ctx context.Context, in Income) (int64, error) {
	if err := r.validate(ctx, in); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO incomes(description, amount, date, category, recurring)
	VALUES (?, ?, ?, ?, ?)`,
		in.Description, in.Amount.String(), fmtDate(in.Date), in.Category, in.Recurring)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update replaces every mutable field. Updating a missing id is a no-op.
func (r *IncomeRepo) Update(ctx context.Context, in Income) error {
	if err := r.validate(ctx, in); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
	UPDATE incomes SET description = ?, amount = ?, date = ?, category = ?, recurring = ?
	WHERE id = ?`,
		in.Description, in.Amount.String(), fmtDate(in.Date), in.Category, in.Recurring, in.ID)
	return err
}

// Delete removes an income by id. Deleting a missing id is a no-op.
func (r *IncomeRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = ?`, id)
	return err
}

func (r *IncomeRepo) List(ctx context.Context) ([]Income, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, description, amount, date, category, recurring FROM incomes ORDER BY date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Income
	for rows.Next() {
		var (
			in   Income
			date string
		)
		if err := rows.Scan(&in.ID, &in.Description, &in.Amount, &date, &in.Category, &in.Recurring); err != nil {
			return nil, err
		}
		if in.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *IncomeRepo) validate(ctx context.Context, in Income) error {
	if err := validatePositive("amount", in.Amount); err != nil {
		return err
	}
	return checkCategoryKind(ctx, r.db, in.Category, CategoryIncome)
}
