package service

import (
	"context"
	"io"
	"time"

	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/notification"
	"github.com/blog-cms-api/internal/repository"
	"github.com/rs/zerolog"
)

// ArticleService defines the interface for article operations
type ArticleService interface {
	List(ctx context.Context, filter models.ArticleFilter) (*models.Page[*models.Article], error)
	Get(ctx context.Context, id string) (*models.Article, error)
	// GetPublished hides drafts and archived articles from readers
	GetPublished(ctx context.Context, id string) (*models.Article, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Article, error)
	Create(ctx context.Context, authorID string, in *models.ArticleCreateInput) (*models.Article, error)
	Update(ctx context.Context, id string, in *models.ArticleUpdateInput) (*models.Article, error)
	Delete(ctx context.Context, ids []string) (int64, error)
	RegisterView(ctx context.Context, id string) (*models.ViewResult, error)
	Analytics(ctx context.Context, id string) (*models.Analytics, error)
}

// CategoryService defines the interface for category operations
type CategoryService interface {
	List(ctx context.Context, params models.ListParams) (*models.Page[*models.Category], error)
	Get(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, in *models.CategoryCreateInput) (*models.Category, error)
	Update(ctx context.Context, id string, in *models.CategoryUpdateInput) (*models.Category, error)
	Delete(ctx context.Context, ids []string) (int64, error)
}

// TagService defines the interface for tag operations
type TagService interface {
	List(ctx context.Context, params models.ListParams) (*models.Page[*models.Tag], error)
	Get(ctx context.Context, id string) (*models.Tag, error)
	Create(ctx context.Context, in *models.TagCreateInput) (*models.Tag, error)
	Update(ctx context.Context, id string, in *models.TagUpdateInput) (*models.Tag, error)
	Delete(ctx context.Context, ids []string) (int64, error)
}

// CommentService defines the interface for comment operations
type CommentService interface {
	List(ctx context.Context, filter models.CommentFilter) (*models.Page[*models.Comment], error)
	// ListForArticle is the public listing; emails are stripped
	ListForArticle(ctx context.Context, articleID string, params models.ListParams) (*models.Page[models.PublicComment], error)
	Get(ctx context.Context, id string) (*models.Comment, error)
	Create(ctx context.Context, articleID string, in *models.CommentCreateInput) (*models.Comment, error)
	Update(ctx context.Context, id string, in *models.CommentUpdateInput) (*models.Comment, error)
	Delete(ctx context.Context, ids []string) (int64, error)
}

// ContactService defines the interface for contact inquiry operations
type ContactService interface {
	List(ctx context.Context, params models.ListParams) (*models.Page[*models.Contact], error)
	Get(ctx context.Context, id string) (*models.Contact, error)
	Create(ctx context.Context, in *models.ContactCreateInput) (*models.Contact, error)
	Update(ctx context.Context, id string, in *models.ContactUpdateInput) (*models.Contact, error)
	Delete(ctx context.Context, ids []string) (int64, error)
}

// AuthService defines the interface for login, logout and user provisioning
type AuthService interface {
	Login(ctx context.Context, in *models.LoginInput) (*models.LoginResult, error)
	Logout(ctx context.Context, session *models.Session) error
	CreateUser(ctx context.Context, in *models.UserCreateInput) (*models.User, error)
}

// UploadService defines the interface for image uploads
type UploadService interface {
	SaveArticleImage(ctx context.Context, filename string, size int64, r io.Reader) (*models.Upload, error)
}

// TokenIssuer signs a session token for a user
type TokenIssuer interface {
	Sign(user *models.User) (string, *models.Session, error)
}

// SessionRevoker invalidates a session before its expiry
type SessionRevoker interface {
	Revoke(ctx context.Context, session *models.Session) error
}

// Notifier dispatches mail without blocking the caller
type Notifier interface {
	Send(msg notification.Message)
}

// Deps are the collaborators services need beyond the repositories
type Deps struct {
	Tokens   TokenIssuer
	Sessions SessionRevoker
	Notifier Notifier
	Now      func() time.Time
}

// Services holds all service interfaces
type Services struct {
	Article  ArticleService
	Category CategoryService
	Tag      TagService
	Comment  CommentService
	Contact  ContactService
	Auth     AuthService
	Upload   UploadService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, deps Deps, log zerolog.Logger) *Services {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Services{
		Article:  newArticleService(repos, deps.Now, log),
		Category: newCategoryService(repos.Category, deps.Now, log),
		Tag:      newTagService(repos.Tag, deps.Now, log),
		Comment:  newCommentService(repos, deps.Now, log),
		Contact:  newContactService(repos.Contact, deps.Notifier, cfg.SMTP.AdminNotify, deps.Now, log),
		Auth:     newAuthService(repos.User, deps.Tokens, deps.Sessions, deps.Now, log),
		Upload:   newUploadService(cfg.Upload, log),
	}
}
