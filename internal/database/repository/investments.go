package repository

import (
	"context"
	"database/sql"
)

// InvestmentRepo handles investments.
type InvestmentRepo struct {
	db *sql.DB
}

func NewInvestmentRepo(db *sql.DB) *InvestmentRepo { return &InvestmentRepo{db: db} }

func (r *InvestmentRepo) Create(ctx context.Context, inv Investment) (int64, error) {
	if err := validateInvestment(inv); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO investments(name, invest_type, amount_invested, current_value, start_date, institution)
	VALUES (?, ?, ?, ?, ?, ?)`,
		inv.Name, inv.InvestType, inv.AmountInvested.String(), inv.CurrentValue.String(),
		fmtDate(inv.StartDate), inv.Institution)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update replaces every mutable field. Updating a missing id is a no-op.
func (r *InvestmentRepo) Update(ctx context.Context, inv Investment) error {
	if err := validateInvestment(inv); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
	UPDATE investments SET name = ?, invest_type = ?, amount_invested = ?, current_value = ?,
	 start_date = ?, institution = ?
	WHERE id = ?`,
		inv.Name, inv.InvestType, inv.AmountInvested.String(), inv.CurrentValue.String(),
		fmtDate(inv.StartDate), inv.Institution, inv.ID)
	return err
}

// Delete removes an investment by id. Deleting a missing id is a no-op.
func (r *InvestmentRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM investments WHERE id = ?`, id)
	return err
}

func (r *InvestmentRepo) List(ctx context.Context) ([]Investment, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, invest_type, amount_invested, current_value, start_date, institution
	FROM investments ORDER BY start_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Investment
	for rows.Next() {
		var (
			inv   Investment
			start string
		)
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.InvestType, &inv.AmountInvested,
			&inv.CurrentValue, &start, &inv.Institution); err != nil {
			return nil, err
		}
		if inv.StartDate, err = parseDate(start); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func validateInvestment(inv Investment) error {
	if inv.Name == "" {
		return invalidf("name", "must not be empty")
	}
	if err := validateNonNegative("amount_invested", inv.AmountInvested); err != nil {
		return err
	}
	return validateNonNegative("current_value", inv.CurrentValue)
}
