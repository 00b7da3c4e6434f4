package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// NewsletterRepository manages newsletter subscriptions.
type NewsletterRepository struct {
	DB *sql.DB
}

// NewNewsletterRepository creates a new NewsletterRepository instance.
func NewNewsletterRepository(db *sql.DB) *NewsletterRepository {
	return &NewsletterRepository{DB: db}
}

// Subscribe records a subscription for the email.  An unsubscribed
// address is reactivated; an already-active one returns ErrConflict.
func (r *NewsletterRepository) Subscribe(ctx context.Context, email, name string) error {
	var status string
	err := r.DB.QueryRowContext(ctx,
		`SELECT status FROM newsletter_subscribers WHERE email = ?`, email).Scan(&status)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = r.DB.ExecContext(ctx,
			`INSERT INTO newsletter_subscribers (email, name, status) VALUES (?, ?, 'active')`,
			email, name)
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	case err != nil:
		return err
	case status == "active":
		return ErrConflict
	default:
		_, err = r.DB.ExecContext(ctx,
			`UPDATE newsletter_subscribers SET status = 'active', name = ?, subscribed_at = NOW() WHERE email = ?`,
			name, email)
		return err
	}
}

// Unsubscribe marks the email inactive.
func (r *NewsletterRepository) Unsubscribe(ctx context.Context, email string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE newsletter_subscribers SET status = 'unsubscribed' WHERE email = ? AND status = 'active'`,
		email)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns subscribers with the given status, newest first.
func (r *NewsletterRepository) List(ctx context.Context, status string) ([]model.NewsletterSubscriber, error) {
	const q = `SELECT id, email, name, status, subscribed_at
	           FROM newsletter_subscribers WHERE status = ? ORDER BY subscribed_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.NewsletterSubscriber
	for rows.Next() {
		var s model.NewsletterSubscriber
		var name sql.NullString
		if err := rows.Scan(&s.ID, &s.Email, &name, &s.Status, &s.SubscribedAt); err != nil {
			return nil, err
		}
		if name.Valid {
			s.Name = name.String
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
