package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// CustomerRepository provides access to customer records.
type CustomerRepository struct {
	DB *sql.DB
}

// NewCustomerRepository creates a new CustomerRepository instance.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

const customerColumns = `id, name, email, phone, newsletter_signup, created_at, updated_at`

func scanCustomer(scan func(dest ...interface{}) error) (*model.Customer, error) {
	var c model.Customer
	var phone sql.NullString
	if err := scan(&c.ID, &c.Name, &c.Email, &phone, &c.NewsletterSignup,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if phone.Valid {
		c.Phone = phone.String
	}
	return &c, nil
}

// List returns customers, optionally filtered by a case-insensitive
// substring match on name or email.
func (r *CustomerRepository) List(ctx context.Context, search string) ([]model.Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers`
	var args []interface{}
	if search != "" {
		q += ` WHERE name LIKE ? OR email LIKE ?`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Customer
	for rows.Next() {
		c, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// GetByID fetches a customer or ErrNotFound.
func (r *CustomerRepository) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
	c, err := scanCustomer(r.DB.QueryRowContext(ctx, q, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Update rewrites a customer's contact fields.  A changed email must
// stay unique, which surfaces as ErrConflict.
func (r *CustomerRepository) Update(ctx context.Context, id uint64, name, email, phone string) error {
	const q = `UPDATE customers SET name = ?, email = ?, phone = ?, updated_at = NOW() WHERE id = ?`
	res, err := r.DB.ExecContext(ctx, q, name, email, phone, id)
	if isDuplicateKey(err) {
		return ErrConflict
	}
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

// Delete removes a customer.  Reservations reference customers with ON
// DELETE RESTRICT, so a customer with history cannot be removed; the
// foreign-key failure surfaces as ErrConflict.
func (r *CustomerRepository) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if isForeignKeyViolation(err) {
		return ErrConflict
	}
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
