package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
)

// GoalRepo handles goals.
type GoalRepo struct {
	db *sql.DB
}

func NewGoalRepo(db *sql.DB) *GoalRepo { return &GoalRepo{db: db} }

func (r *GoalRepo) Create(ctx context.Context, g Goal) (int64, error) {
	if err := validateGoal(g); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO goals(description, target_amount, deadline, progress, category)
	VALUES (?, ?, ?, ?, ?)`,
		g.Description, g.TargetAmount.String(), fmtDate(g.Deadline), g.Progress.String(), g.Category)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update replaces every mutable field. Updating a missing id is a no-op.
func (r *GoalRepo) Update(ctx context.Context, g Goal) error {
	if err := validateGoal(g); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
	UPDATE goals SET description = ?, target_amount = ?, deadline = ?, progress = ?, category = ?
	WHERE id = ?`,
		g.Description, g.TargetAmount.String(), fmtDate(g.Deadline), g.Progress.String(), g.Category, g.ID)
	return err
}

// Delete removes a goal by id. Deleting a missing id is a no-op.
func (r *GoalRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	return err
}

func (r *GoalRepo) List(ctx context.Context) ([]Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, description, target_amount, deadline, progress, category FROM goals ORDER BY deadline, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Goal
	for rows.Next() {
		var (
			g        Goal
			deadline string
		)
		if err := rows.Scan(&g.ID, &g.Description, &g.TargetAmount, &deadline, &g.Progress, &g.Category); err != nil {
			return nil, err
		}
		if g.Deadline, err = parseDate(deadline); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Contribute adds amount to the goal's progress. Progress may overshoot the
// target. Contributing to a missing id is a no-op.
func (r *GoalRepo) Contribute(ctx context.Context, id int64, amount decimal.Decimal) error {
	if err := validatePositive("amount", amount); err != nil {
		return err
	}
	goals, err := r.List(ctx)
	if err != nil {
		return err
	}
	for _, g := range goals {
		if g.ID == id {
			g.Progress = g.Progress.Add(amount)
			return r.Update(ctx, g)
		}
	}
	return nil
}

func validateGoal(g Goal) error {
	if err := validatePositive("target_amount", g.TargetAmount); err != nil {
		return err
	}
	return validateNonNegative("progress", g.Progress)
}
