package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blog-cms-api/internal/database"
	"github.com/blog-cms-api/internal/models"
	"github.com/lib/pq"
)

// tagRepo is the concrete implementation of TagRepository
type tagRepo struct {
	db *database.DB
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db *database.DB) TagRepository {
	return &tagRepo{db: db}
}

const tagColumns = `id, name, created_at, updated_at`

func scanTag(row scanner) (*models.Tag, error) {
	var t models.Tag
	if err := row.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTags(rows *sql.Rows) ([]*models.Tag, error) {
	defer rows.Close()
	var tags []*models.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// List returns one page of tags, newest first
func (r *tagRepo) List(ctx context.Context, params models.ListParams) ([]*models.Tag, int, error) {
	q := &query{}
	if params.Search != "" {
		q.where("name ILIKE " + q.arg(likePattern(params.Search)))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tags"+q.sql(), q.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tags: %w", err)
	}

	where := q.sql()
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+tagColumns+" FROM tags"+where+" ORDER BY created_at DESC, id DESC"+q.page(params),
		q.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tags: %w", err)
	}
	tags, err := collectTags(rows)
	return tags, total, err
}

// GetByID retrieves a tag by ID
func (r *tagRepo) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	t, err := scanTag(r.db.QueryRowContext(ctx, "SELECT "+tagColumns+" FROM tags WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

// GetByIDs returns the tags that exist among ids
func (r *tagRepo) GetByIDs(ctx context.Context, ids []string) ([]*models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+tagColumns+" FROM tags WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return collectTags(rows)
}

// Create inserts a new tag
func (r *tagRepo) Create(ctx context.Context, t *models.Tag) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tags (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)",
		t.ID, t.Name, t.CreatedAt, t.UpdatedAt)
	return translate(err)
}

// Update renames a tag
func (r *tagRepo) Update(ctx context.Context, t *models.Tag) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE tags SET name = $2, updated_at = $3 WHERE id = $1",
		t.ID, t.Name, t.UpdatedAt)
	return translate(err)
}

// NameExists checks if a tag other than excludeID uses name
func (r *tagRepo) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM tags
		WHERE name = $1 AND ($2::text = '' OR id::text <> $2::text))`,
		name, excludeID).Scan(&exists)
	return exists, err
}

// Delete physically removes tags; article links cascade
func (r *tagRepo) Delete(ctx context.Context, ids []string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
