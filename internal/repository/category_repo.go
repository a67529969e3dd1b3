package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blog-cms-api/internal/database"
	"github.com/blog-cms-api/internal/models"
	"github.com/lib/pq"
)

// categoryRepo is the concrete implementation of CategoryRepository
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = `id, name, slug, description, created_at, updated_at`

func scanCategory(row scanner) (*models.Category, error) {
	var (
		c    models.Category
		desc sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &desc, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		c.Description = &desc.String
	}
	return &c, nil
}

// List returns one page of live categories
func (r *categoryRepo) List(ctx context.Context, params models.ListParams) ([]*models.Category, int, error) {
	q := &query{}
	q.where("deleted_at IS NULL")
	if params.Search != "" {
		p := q.arg(likePattern(params.Search))
		q.where("(name ILIKE " + p + " OR slug ILIKE " + p + ")")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories"+q.sql(), q.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	where := q.sql()
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM categories"+where+" ORDER BY created_at DESC, id DESC"+q.page(params),
		q.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		categories = append(categories, c)
	}
	return categories, total, rows.Err()
}

// GetByID retrieves a live category by ID
func (r *categoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE id = $1 AND deleted_at IS NULL", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// Create inserts a new category
func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Slug, c.Description, c.CreatedAt, c.UpdatedAt,
	)
	return translate(err)
}

// Update writes the mutable columns of a live category
func (r *categoryRepo) Update(ctx context.Context, c *models.Category) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE categories SET name = $2, slug = $3, description = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL`,
		c.ID, c.Name, c.Slug, c.Description, c.UpdatedAt,
	)
	return translate(err)
}

// SlugExists checks if a live category other than excludeID uses slug
func (r *categoryRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM categories
		WHERE slug = $1 AND deleted_at IS NULL AND ($2::text = '' OR id::text <> $2::text))`,
		slug, excludeID).Scan(&exists)
	return exists, err
}

// SoftDelete marks categories deleted and detaches their articles
func (r *categoryRepo) SoftDelete(ctx context.Context, ids []string) (int64, error) {
	var n int64
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE categories SET deleted_at = NOW(), updated_at = NOW()
			WHERE id = ANY($1) AND deleted_at IS NULL`, pq.Array(ids))
		if err != nil {
			return err
		}
		if n, err = res.RowsAffected(); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"UPDATE articles SET category_id = NULL, updated_at = NOW() WHERE category_id = ANY($1)",
			pq.Array(ids))
		return err
	})
	return n, err
}
