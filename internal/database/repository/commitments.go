package repository

import (
	"context"
	"database/sql"
)

// CommitmentRepo handles the unified debt/installment obligations.
type CommitmentRepo struct {
	db *sql.DB
}

func NewCommitmentRepo(db *sql.DB) *CommitmentRepo { return &CommitmentRepo{db: db} }

func (r *CommitmentRepo) Create(ctx context.Context, c Commitment) (int64, error) {
	if err := validateCommitment(c); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO commitments(
	 description, total_amount, installment_amount, due_date, status, kind,
	 interest_rate, installments_total, installment_current)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Description, c.TotalAmount.String(), c.InstallmentAmount.String(), fmtDate(c.DueDate),
		c.Status, c.Kind, c.InterestRate.String(), c.InstallmentsTotal, c.InstallmentCurrent)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update replaces every mutable field. Updating a missing id is a no-op.
func (r *CommitmentRepo) Update(ctx context.Context, c Commitment) error {
	if err := validateCommitment(c); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
	UPDATE commitments SET description = ?, total_amount = ?, installment_amount = ?,
	 due_date = ?, status = ?, kind = ?, interest_rate = ?, installments_total = ?,
	 installment_current = ?
	WHERE id = ?`,
		c.Description, c.TotalAmount.String(), c.InstallmentAmount.String(), fmtDate(c.DueDate),
		c.Status, c.Kind, c.InterestRate.String(), c.InstallmentsTotal, c.InstallmentCurrent, c.ID)
	return err
}

// Delete removes a commitment by id. Deleting a missing id is a no-op.
func (r *CommitmentRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM commitments WHERE id = ?`, id)
	return err
}

func (r *CommitmentRepo) List(ctx context.Context) ([]Commitment, error) {
	return r.list(ctx, `SELECT id, description, total_amount, installment_amount, due_date,
	 status, kind, interest_rate, installments_total, installment_current
	FROM commitments ORDER BY due_date, id`)
}

// ListAsDebts projects commitments of kind debt back into the legacy debt
// shape. Derived, read-only: writes always go through the unified rows.
func (r *CommitmentRepo) ListAsDebts(ctx context.Context) ([]DebtView, error) {
	rows, err := r.list(ctx, `SELECT id, description, total_amount, installment_amount, due_date,
	 status, kind, interest_rate, installments_total, installment_current
	FROM commitments WHERE kind = 'debt' ORDER BY id`)
	if err != nil {
		return nil, err
	}
	out := make([]DebtView, len(rows))
	for i, c := range rows {
		out[i] = DebtView{
			ID:           c.ID,
			Description:  c.Description,
			Amount:       c.TotalAmount,
			InterestRate: c.InterestRate,
			TermMonths:   c.InstallmentsTotal,
		}
	}
	return out, nil
}

// ListAsInstallments projects commitments of kind installment back into the
// legacy installment shape. Derived, read-only.
func (r *CommitmentRepo) ListAsInstallments(ctx context.Context) ([]InstallmentView, error) {
	rows, err := r.list(ctx, `SELECT id, description, total_amount, installment_amount, due_date,
	 status, kind, interest_rate, installments_total, installment_current
	FROM commitments WHERE kind = 'installment' ORDER BY id`)
	if err != nil {
		return nil, err
	}
	out := make([]InstallmentView, len(rows))
	for i, c := range rows {
		out[i] = InstallmentView{
			ID:          c.ID,
			Description: c.Description,
			Amount:      c.InstallmentAmount,
			DueDate:     c.DueDate,
			Status:      c.Status,
		}
	}
	return out, nil
}

func (r *CommitmentRepo) list(ctx context.Context, query string) ([]Commitment, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Commitment
	for rows.Next() {
		var (
			c   Commitment
			due string
		)
		if err := rows.Scan(&c.ID, &c.Description, &c.TotalAmount, &c.InstallmentAmount, &due,
			&c.Status, &c.Kind, &c.InterestRate, &c.InstallmentsTotal, &c.InstallmentCurrent); err != nil {
			return nil, err
		}
		if c.DueDate, err = parseDate(due); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func validateCommitment(c Commitment) error {
	if err := validatePositive("total_amount", c.TotalAmount); err != nil {
		return err
	}
	if err := validateNonNegative("interest_rate", c.InterestRate); err != nil {
		return err
	}
	if !oneOf(c.Status, StatusPending, StatusPaid, StatusOverdue, StatusPartial) {
		return invalidf("status", "unknown status %q", c.Status)
	}
	if !oneOf(c.Kind, KindDebt, KindInstallment, KindFinancing, KindLoan, KindOther) {
		return invalidf("kind", "unknown kind %q", c.Kind)
	}
	if c.InstallmentsTotal < 1 {
		return invalidf("installments_total", "must be at least 1, got %d", c.InstallmentsTotal)
	}
	if c.InstallmentCurrent < 1 || c.InstallmentCurrent > c.InstallmentsTotal {
		return invalidf("installment_current", "must be between 1 and %d, got %d",
			c.InstallmentsTotal, c.InstallmentCurrent)
	}
	return nil
}
