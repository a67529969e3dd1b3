package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blog-cms-api/internal/database"
	"github.com/blog-cms-api/internal/models"
	"github.com/lib/pq"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

const commentColumns = `c.id, c.article_id, c.name, c.email, c.content, c.created_at`

func scanComment(row scanner) (*models.Comment, error) {
	var c models.Comment
	if err := row.Scan(&c.ID, &c.ArticleID, &c.Name, &c.Email, &c.Content, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns comments whose article is still live, newest first
func (r *commentRepo) List(ctx context.Context, filter models.CommentFilter) ([]*models.Comment, int, error) {
	q := &query{}
	q.where("a.deleted_at IS NULL")
	if filter.ArticleID != "" {
		q.where("c.article_id = " + q.arg(filter.ArticleID))
	}
	if filter.Search != "" {
		p := q.arg(likePattern(filter.Search))
		q.where("(c.content ILIKE " + p + " OR c.name ILIKE " + p + ")")
	}

	const from = " FROM comments c JOIN articles a ON a.id = c.article_id"

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+from+q.sql(), q.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	where := q.sql()
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+commentColumns+from+where+" ORDER BY c.created_at DESC, c.id DESC"+q.page(filter.ListParams),
		q.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, c)
	}
	return comments, total, rows.Err()
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx,
		"SELECT "+commentColumns+" FROM comments c WHERE c.id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// Create inserts the comment only while its article is live. The existence
// check and the insert are one statement, so a concurrent article delete
// cannot leave an orphan.
func (r *commentRepo) Create(ctx context.Context, c *models.Comment) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (id, article_id, name, email, content, created_at)
		SELECT $1::uuid, a.id, $3, $4, $5, $6::timestamptz FROM articles a
		WHERE a.id = $2 AND a.deleted_at IS NULL`,
		c.ID, c.ArticleID, c.Name, c.Email, c.Content, c.CreatedAt,
	)
	if err != nil {
		return false, translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Update edits a comment's name and content
func (r *commentRepo) Update(ctx context.Context, c *models.Comment) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE comments SET name = $2, content = $3 WHERE id = $1",
		c.ID, c.Name, c.Content)
	return err
}

// Delete physically removes comments
func (r *commentRepo) Delete(ctx context.Context, ids []string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
