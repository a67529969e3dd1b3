package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blog-cms-api/internal/database"
	"github.com/blog-cms-api/internal/models"
	"github.com/lib/pq"
)

// contactRepo is the concrete implementation of ContactRepository
type contactRepo struct {
	db *database.DB
}

// NewContactRepo creates a new contact repository
func NewContactRepo(db *database.DB) ContactRepository {
	return &contactRepo{db: db}
}

const contactColumns = `id, company_name, contact_name, email, phone, inquiry, privacy_policy, created_at, updated_at`

func scanContact(row scanner) (*models.Contact, error) {
	var c models.Contact
	err := row.Scan(&c.ID, &c.CompanyName, &c.ContactName, &c.Email, &c.Phone,
		&c.Inquiry, &c.PrivacyPolicy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns one page of live contacts, newest first
func (r *contactRepo) List(ctx context.Context, params models.ListParams) ([]*models.Contact, int, error) {
	q := &query{}
	q.where("deleted_at IS NULL")
	if params.Search != "" {
		p := q.arg(likePattern(params.Search))
		q.where("(company_name ILIKE " + p + " OR contact_name ILIKE " + p + " OR email ILIKE " + p + ")")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contacts"+q.sql(), q.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	where := q.sql()
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+contactColumns+" FROM contacts"+where+" ORDER BY created_at DESC, id DESC"+q.page(params),
		q.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, c)
	}
	return contacts, total, rows.Err()
}

// GetByID retrieves a live contact by ID
func (r *contactRepo) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	c, err := scanContact(r.db.QueryRowContext(ctx,
		"SELECT "+contactColumns+" FROM contacts WHERE id = $1 AND deleted_at IS NULL", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// Create inserts a new contact
func (r *contactRepo) Create(ctx context.Context, c *models.Contact) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contacts (id, company_name, contact_name, email, phone, inquiry,
			privacy_policy, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.CompanyName, c.ContactName, c.Email, c.Phone, c.Inquiry,
		c.PrivacyPolicy, c.CreatedAt, c.UpdatedAt,
	)
	return translate(err)
}

// Update writes the mutable columns of a live contact
func (r *contactRepo) Update(ctx context.Context, c *models.Contact) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE contacts SET company_name = $2, contact_name = $3, email = $4, phone = $5,
			inquiry = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL`,
		c.ID, c.CompanyName, c.ContactName, c.Email, c.Phone, c.Inquiry, c.UpdatedAt,
	)
	return err
}

// SoftDelete marks contacts deleted
func (r *contactRepo) SoftDelete(ctx context.Context, ids []string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE contacts SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = ANY($1) AND deleted_at IS NULL`, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
