package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blog-cms-api/internal/database"
	"github.com/blog-cms-api/internal/models"
	"github.com/lib/pq"
)

var (
	// ErrDuplicate is returned when a unique constraint rejects a write
	ErrDuplicate = errors.New("duplicate key")
	// ErrInvalidReference is returned when a foreign key points at a missing row
	ErrInvalidReference = errors.New("invalid reference")
)

// Getters return (nil, nil) when the row is absent or soft-deleted.

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, int, error)
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	Create(ctx context.Context, article *models.Article, tagIDs []string) error
	// Update writes every column of article; tagIDs nil leaves tags untouched
	Update(ctx context.Context, article *models.Article, tagIDs []string) error
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	SoftDelete(ctx context.Context, ids []string) (int64, error)
	// IncrementViews atomically creates or bumps the analytics row. found is
	// false when the article is absent or soft-deleted; nothing is written then.
	IncrementViews(ctx context.Context, id string, at time.Time) (count int64, found bool, err error)
	GetAnalytics(ctx context.Context, id string) (*models.Analytics, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	List(ctx context.Context, params models.ListParams) ([]*models.Category, int, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	SoftDelete(ctx context.Context, ids []string) (int64, error)
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	List(ctx context.Context, params models.ListParams) ([]*models.Tag, int, error)
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) error
	NameExists(ctx context.Context, name, excludeID string) (bool, error)
	Delete(ctx context.Context, ids []string) (int64, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	List(ctx context.Context, filter models.CommentFilter) ([]*models.Comment, int, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	// Create inserts only if the article exists and is not soft-deleted
	Create(ctx context.Context, comment *models.Comment) (bool, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, ids []string) (int64, error)
}

// ContactRepository defines the interface for contact data operations
type ContactRepository interface {
	List(ctx context.Context, params models.ListParams) ([]*models.Contact, int, error)
	GetByID(ctx context.Context, id string) (*models.Contact, error)
	Create(ctx context.Context, contact *models.Contact) error
	Update(ctx context.Context, contact *models.Contact) error
	SoftDelete(ctx context.Context, ids []string) (int64, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User     UserRepository
	Article  ArticleRepository
	Category CategoryRepository
	Tag      TagRepository
	Comment  CommentRepository
	Contact  ContactRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepo(db),
		Article:  NewArticleRepo(db),
		Category: NewCategoryRepo(db),
		Tag:      NewTagRepo(db),
		Comment:  NewCommentRepo(db),
		Contact:  NewContactRepo(db),
	}
}

// translate maps driver errors onto the package sentinels
func translate(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", ErrInvalidReference, pqErr.Constraint)
		}
	}
	return err
}

// query accumulates WHERE clauses with positional arguments
type query struct {
	clauses []string
	args    []interface{}
}

func (q *query) arg(v interface{}) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *query) where(clause string) {
	q.clauses = append(q.clauses, clause)
}

func (q *query) sql() string {
	if len(q.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.clauses, " AND ")
}

// page appends LIMIT/OFFSET for p
func (q *query) page(p models.ListParams) string {
	return fmt.Sprintf(" LIMIT %s OFFSET %s", q.arg(p.Limit), q.arg(p.Offset()))
}

// likePattern escapes LIKE metacharacters for a substring match
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}
