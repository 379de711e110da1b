package repository

import (
	"context"
	"database/sql"
)

// AccountRepo handles accounts.
type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{db: db} }

func (r *AccountRepo) Create(ctx context.Context, a Account) (int64, error) {
	if err := validateAccount(a); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO accounts(name, balance, account_type, institution, created_at)
	VALUES (?, ?, ?, ?, ?)`,
		a.Name, a.Balance.String(), a.AccountType, a.Institution, fmtDate(a.CreatedAt))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update replaces every mutable field. Updating a missing id is a no-op.
func (r *AccountRepo) Update(ctx context.Context, a Account) error {
	if err := validateAccount(a); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
	UPDATE accounts SET name = ?, balance = ?, account_type = ?, institution = ?
	WHERE id = ?`,
		a.Name, a.Balance.String(), a.AccountType, a.Institution, a.ID)
	return err
}

// Delete removes an account by id. Deleting a missing id is a no-op.
func (r *AccountRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	return err
}

func (r *AccountRepo) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, balance, account_type, institution, created_at FROM accounts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Account
	for rows.Next() {
		var (
			a       Account
			created string
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.Balance, &a.AccountType, &a.Institution, &created); err != nil {
			return nil, err
		}
		if a.CreatedAt, err = parseDate(created); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func validateAccount(a Account) error {
	if a.Name == "" {
		return invalidf("name", "must not be empty")
	}
	if !oneOf(a.AccountType, AccountChecking, AccountSavings, AccountOther) {
		return invalidf("account_type", "unknown account type %q", a.AccountType)
	}
	return nil
}
