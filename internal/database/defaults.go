package database

import (
	"context"
	"database/sql"
)

type defaultCategory struct {
	name  string
	kind  string
	color string
	icon  string
}

var defaultCategories = []defaultCategory{
	{"moradia", "expense", "#8A05BE", "home"},
	{"alimentação", "expense", "#F37529", "utensils"},
	{"transporte", "expense", "#2D9CDB", "car"},
	{"saúde", "expense", "#EB5757", "heart"},
	{"educação", "expense", "#27AE60", "book"},
	{"lazer", "expense", "#B5FF5A", "film"},
	{"vestuário", "expense", "#BB6BD9", "shirt"},
	{"outros", "expense", "#828282", "tag"},
	{"salário", "income", "#27AE60", "banknote"},
	{"freelance", "income", "#2D9CDB", "laptop"},
	{"investimentos", "income", "#F2C94C", "trending-up"},
	{"outros", "income", "#828282", "tag"},
	{"renda fixa", "investment", "#2D9CDB", "landmark"},
	{"ações", "investment", "#EB5757", "bar-chart"},
	{"fundos", "investment", "#27AE60", "pie-chart"},
	{"cripto", "investment", "#F2C94C", "bitcoin"},
}

// SeedDefaults inserts the baseline category set when the table is empty.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return WithTx(db, func(tx *sql.Tx) error {
		for _, c := range defaultCategories {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO categories(name, kind, color, icon) VALUES (?, ?, ?, ?)`,
				c.name, c.kind, c.color, c.icon); err != nil {
				return err
			}
		}
		return nil
	})
}
