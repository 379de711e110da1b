package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/agnivade/levenshtein"
)

// CategoryRepo handles categories.
type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) Create(ctx context.Context, c Category) (int64, error) {
	if err := validateCategory(c); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories(name, kind, color, icon) VALUES (?, ?, ?, ?)`,
		c.Name, c.Kind, c.Color, c.Icon)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *CategoryRepo) Update(ctx context.Context, c Category) error {
	if err := validateCategory(c); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, kind = ?, color = ?, icon = ? WHERE id = ?`,
		c.Name, c.Kind, c.Color, c.Icon, c.ID)
	return err
}

func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return err
}

func (r *CategoryRepo) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, kind, color, icon FROM categories ORDER BY kind, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Kind, &c.Color, &c.Icon); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func validateCategory(c Category) error {
	if c.Name == "" {
		return invalidf("name", "must not be empty")
	}
	if !oneOf(c.Kind, CategoryExpense, CategoryIncome, CategoryInvestment) {
		return invalidf("kind", "unknown category kind %q", c.Kind)
	}
	return nil
}

// checkCategoryKind rejects a transaction whose category is registered under
// a different kind. Unregistered (free-text) categories are allowed: the
// original schema never constrained them. The error suggests the nearest
// registered name of the wanted kind.
func checkCategoryKind(ctx context.Context, db *sql.DB, name, wantKind string) error {
	if name == "" {
		return nil
	}
	var kind string
	err := db.QueryRowContext(ctx,
		`SELECT kind FROM categories WHERE lower(name) = lower(?) AND kind = ? LIMIT 1`,
		name, wantKind).Scan(&kind)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}
	err = db.QueryRowContext(ctx,
		`SELECT kind FROM categories WHERE lower(name) = lower(?) LIMIT 1`, name).Scan(&kind)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	msg := "category %q is registered as %s, not %s"
	if suggestion := nearestCategory(ctx, db, name, wantKind); suggestion != "" {
		return invalidf("category", msg+" (did you mean %q?)", name, kind, wantKind, suggestion)
	}
	return invalidf("category", msg, name, kind, wantKind)
}

// nearestCategory returns the registered category of the given kind closest
// to name by edit distance, or "" when none is close enough to be useful.
func nearestCategory(ctx context.Context, db *sql.DB, name, kind string) string {
	rows, err := db.QueryContext(ctx, `SELECT name FROM categories WHERE kind = ?`, kind)
	if err != nil {
		return ""
	}
	defer rows.Close()

	lower := strings.ToLower(name)
	best, bestDist := "", len(name)+1
	for rows.Next() {
		var candidate string
		if err := rows.Scan(&candidate); err != nil {
			return ""
		}
		dist := levenshtein.ComputeDistance(lower, strings.ToLower(candidate))
		if dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	if bestDist > len(name)/2+1 {
		return ""
	}
	return best
}
