package repository

import (
	"context"
	"database/sql"
)

// NotificationRepo handles notifications. The core only stores them; the
// presentation layer decides when and how to show them.
type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

func (r *NotificationRepo) Create(ctx context.Context, n Notification) (int64, error) {
	if n.Title == "" {
		return 0, invalidf("title", "must not be empty")
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications(title, message, date, read, kind) VALUES (?, ?, ?, ?, ?)`,
		n.Title, n.Message, fmtDate(n.Date), n.Read, n.Kind)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// MarkRead flags a notification as read. Marking a missing id is a no-op.
func (r *NotificationRepo) MarkRead(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE id = ?`, id)
	return err
}

// Delete removes a notification by id. Deleting a missing id is a no-op.
func (r *NotificationRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = ?`, id)
	return err
}

func (r *NotificationRepo) List(ctx context.Context) ([]Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, message, date, read, kind FROM notifications ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Notification
	for rows.Next() {
		var (
			n    Notification
			date string
		)
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &date, &n.Read, &n.Kind); err != nil {
			return nil, err
		}
		if n.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
