package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blog-cms-api/internal/database"
	"github.com/blog-cms-api/internal/models"
	"github.com/lib/pq"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleColumns = `
	a.id, a.title, a.slug, a.summary, a.content, a.thumbnail_url, a.status,
	a.author_id, a.category_id, COALESCE(an.views_count, 0), a.published_at,
	a.created_at, a.updated_at`

const articleFrom = ` FROM articles a LEFT JOIN analytics an ON an.article_id = a.id`

func scanArticle(row scanner) (*models.Article, error) {
	var (
		article     models.Article
		thumbnail   sql.NullString
		categoryID  sql.NullString
		publishedAt sql.NullTime
	)
	err := row.Scan(
		&article.ID, &article.Title, &article.Slug, &article.Summary, &article.Content,
		&thumbnail, &article.Status, &article.AuthorID, &categoryID, &article.ViewsCount,
		&publishedAt, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if thumbnail.Valid {
		article.ThumbnailURL = &thumbnail.String
	}
	if categoryID.Valid {
		article.CategoryID = &categoryID.String
	}
	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.Time
	}
	article.Tags = []models.Tag{}
	return &article, nil
}

// List returns one page of non-deleted articles, newest first
func (r *articleRepo) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, int, error) {
	q := &query{}
	q.where("a.deleted_at IS NULL")
	if filter.Status != "" {
		q.where("a.status = " + q.arg(string(filter.Status)))
	}
	if filter.CategoryID != "" {
		q.where("a.category_id = " + q.arg(filter.CategoryID))
	}
	if filter.TagID != "" {
		q.where("EXISTS (SELECT 1 FROM article_tags at WHERE at.article_id = a.id AND at.tag_id = " + q.arg(filter.TagID) + ")")
	}
	if filter.Search != "" {
		p := q.arg(likePattern(filter.Search))
		q.where("(a.title ILIKE " + p + " OR a.summary ILIKE " + p + ")")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles a"+q.sql(), q.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	where := q.sql()
	stmt := "SELECT" + articleColumns + articleFrom + where +
		" ORDER BY a.created_at DESC, a.id DESC" + q.page(filter.ListParams)

	rows, err := r.db.QueryContext(ctx, stmt, q.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachTags(ctx, articles); err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// attachTags loads tags for all articles in one query
func (r *articleRepo) attachTags(ctx context.Context, articles []*models.Article) error {
	if len(articles) == 0 {
		return nil
	}
	byID := make(map[string]*models.Article, len(articles))
	ids := make([]string, 0, len(articles))
	for _, a := range articles {
		byID[a.ID] = a
		ids = append(ids, a.ID)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT at.article_id, t.id, t.name, t.created_at, t.updated_at
		FROM article_tags at JOIN tags t ON t.id = at.tag_id
		WHERE at.article_id = ANY($1)
		ORDER BY t.name`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load article tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var articleID string
		var tag models.Tag
		if err := rows.Scan(&articleID, &tag.ID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt); err != nil {
			return err
		}
		if a := byID[articleID]; a != nil {
			a.Tags = append(a.Tags, tag)
		}
	}
	return rows.Err()
}

func (r *articleRepo) getOne(ctx context.Context, column, value string) (*models.Article, error) {
	stmt := "SELECT" + articleColumns + articleFrom +
		" WHERE a." + column + " = $1 AND a.deleted_at IS NULL"

	article, err := scanArticle(r.db.QueryRowContext(ctx, stmt, value))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get article by %s: %w", column, err)
	}

	if err := r.attachTags(ctx, []*models.Article{article}); err != nil {
		return nil, err
	}
	return article, nil
}

// GetByID retrieves a non-deleted article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return r.getOne(ctx, "id", id)
}

// GetBySlug retrieves a non-deleted article by slug
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return r.getOne(ctx, "slug", slug)
}

// Create inserts a new article and its tag links
func (r *articleRepo) Create(ctx context.Context, article *models.Article, tagIDs []string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO articles (id, title, slug, summary, content, thumbnail_url, status,
				author_id, category_id, published_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			article.ID, article.Title, article.Slug, article.Summary, article.Content,
			article.ThumbnailURL, article.Status, article.AuthorID, article.CategoryID,
			article.PublishedAt, article.CreatedAt, article.UpdatedAt,
		)
		if err != nil {
			return translate(err)
		}
		return replaceTags(ctx, tx, article.ID, tagIDs)
	})
}

// Update writes the mutable columns of a non-deleted article
func (r *articleRepo) Update(ctx context.Context, article *models.Article, tagIDs []string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			UPDATE articles SET title = $2, slug = $3, summary = $4, content = $5,
				thumbnail_url = $6, status = $7, category_id = $8, published_at = $9, updated_at = $10
			WHERE id = $1 AND deleted_at IS NULL`,
			article.ID, article.Title, article.Slug, article.Summary, article.Content,
			article.ThumbnailURL, article.Status, article.CategoryID, article.PublishedAt,
			article.UpdatedAt,
		)
		if err != nil {
			return translate(err)
		}
		if tagIDs == nil {
			return nil
		}
		return replaceTags(ctx, tx, article.ID, tagIDs)
	})
}

func replaceTags(ctx context.Context, tx *sql.Tx, articleID string, tagIDs []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM article_tags WHERE article_id = $1", articleID); err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO article_tags (article_id, tag_id)
		SELECT $1::uuid, unnest($2::uuid[])
		ON CONFLICT DO NOTHING`, articleID, pq.Array(tagIDs))
	return translate(err)
}

// SlugExists checks if a live article other than excludeID uses slug
func (r *articleRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM articles
		WHERE slug = $1 AND deleted_at IS NULL AND ($2::text = '' OR id::text <> $2::text))`,
		slug, excludeID).Scan(&exists)
	return exists, err
}

// SoftDelete marks articles deleted. Already deleted rows are left alone.
func (r *articleRepo) SoftDelete(ctx context.Context, ids []string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE articles SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = ANY($1) AND deleted_at IS NULL`, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// IncrementViews upserts the analytics row in a single statement
func (r *articleRepo) IncrementViews(ctx context.Context, id string, at time.Time) (int64, bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO analytics (article_id, views_count, last_viewed_at)
		SELECT a.id, 1, $2::timestamptz FROM articles a WHERE a.id = $1 AND a.deleted_at IS NULL
		ON CONFLICT (article_id) DO UPDATE
			SET views_count = analytics.views_count + 1,
			    last_viewed_at = EXCLUDED.last_viewed_at
		RETURNING views_count`, id, at).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

// GetAnalytics returns the analytics row of a live article, nil if never viewed
func (r *articleRepo) GetAnalytics(ctx context.Context, id string) (*models.Analytics, error) {
	var a models.Analytics
	err := r.db.QueryRowContext(ctx, `
		SELECT an.article_id, an.views_count, an.last_viewed_at
		FROM analytics an JOIN articles a ON a.id = an.article_id
		WHERE an.article_id = $1 AND a.deleted_at IS NULL`, id).Scan(&a.ArticleID, &a.ViewsCount, &a.LastViewedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
