package api

import (
	"context"
	"net/http"
	"time"

	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/internal/docs"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
	"github.com/blog-cms-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// healthTimeout bounds the dependency check behind /health
const healthTimeout = 2 * time.Second

// Options carries the router's collaborators beyond the services
type Options struct {
	Resolver    SessionResolver
	Gate        Authorizer
	Docs        *docs.Handler
	HealthCheck func(ctx context.Context) error
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, opts Options, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.AllowedOrigins))
	router.Use(sessionMiddleware(opts.Resolver, cfg.Auth.CookieName))

	v := validation.NewValidator()

	// Handlers
	articleHandler := NewArticleHandler(services, v, log)
	categoryHandler := NewCategoryHandler(services, v, log)
	tagHandler := NewTagHandler(services, v, log)
	commentHandler := NewCommentHandler(services, v, log)
	contactHandler := NewContactHandler(services, v, log)
	authHandler := NewAuthHandler(services, cfg, v, log)
	uploadHandler := NewUploadHandler(services, cfg, log)

	docsHandler := opts.Docs
	if docsHandler == nil {
		docsHandler = docs.FromBytes(nil, log)
	}

	// Health check
	router.GET("/health", healthCheck(opts.HealthCheck))

	// Documentation
	router.GET("/api/docs", docsHandler.ServeYAML)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/api/docs")))

	if cfg.Upload.PublicURL != "" && cfg.Upload.Dir != "" {
		router.Static(cfg.Upload.PublicURL, cfg.Upload.Dir)
	}

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/session", authHandler.Session)
		}

		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.ListPublished)
			articles.GET("/slug/:slug", articleHandler.GetBySlug)
			articles.GET("/:id", articleHandler.GetPublished)
			articles.POST("/:id/view", articleHandler.RegisterView)
			articles.GET("/:id/comments", commentHandler.ListForArticle)
			articles.POST("/:id/comments", commentHandler.Create)
		}

		api.GET("/categories", categoryHandler.List)
		api.GET("/tags", tagHandler.List)
		api.POST("/contacts", contactHandler.Create)

		admin := api.Group("/admin", RequireRole(opts.Gate, models.RoleAdmin, log))
		{
			adminArticles := admin.Group("/articles")
			{
				adminArticles.GET("", articleHandler.List)
				adminArticles.POST("", articleHandler.Create)
				adminArticles.DELETE("", articleHandler.BulkDelete)
				adminArticles.GET("/:id", articleHandler.Get)
				adminArticles.PUT("/:id", articleHandler.Update)
				adminArticles.PATCH("/:id", articleHandler.Update)
				adminArticles.DELETE("/:id", articleHandler.Delete)
				adminArticles.GET("/:id/analytics", articleHandler.Analytics)
			}

			adminCategories := admin.Group("/categories")
			{
				adminCategories.GET("", categoryHandler.List)
				adminCategories.POST("", categoryHandler.Create)
				adminCategories.DELETE("", categoryHandler.BulkDelete)
				adminCategories.GET("/:id", categoryHandler.Get)
				adminCategories.PUT("/:id", categoryHandler.Update)
				adminCategories.PATCH("/:id", categoryHandler.Update)
				adminCategories.DELETE("/:id", categoryHandler.Delete)
			}

			adminTags := admin.Group("/tags")
			{
				adminTags.GET("", tagHandler.List)
				adminTags.POST("", tagHandler.Create)
				adminTags.DELETE("", tagHandler.BulkDelete)
				adminTags.GET("/:id", tagHandler.Get)
				adminTags.PUT("/:id", tagHandler.Update)
				adminTags.PATCH("/:id", tagHandler.Update)
				adminTags.DELETE("/:id", tagHandler.Delete)
			}

			adminComments := admin.Group("/comments")
			{
				adminComments.GET("", commentHandler.List)
				adminComments.DELETE("", commentHandler.BulkDelete)
				adminComments.GET("/:id", commentHandler.Get)
				adminComments.PUT("/:id", commentHandler.Update)
				adminComments.PATCH("/:id", commentHandler.Update)
				adminComments.DELETE("/:id", commentHandler.Delete)
			}

			adminContacts := admin.Group("/contacts")
			{
				adminContacts.GET("", contactHandler.List)
				adminContacts.DELETE("", contactHandler.BulkDelete)
				adminContacts.GET("/:id", contactHandler.Get)
				adminContacts.PUT("/:id", contactHandler.Update)
				adminContacts.PATCH("/:id", contactHandler.Update)
				adminContacts.DELETE("/:id", contactHandler.Delete)
			}

			admin.POST("/uploads/article-images", uploadHandler.ArticleImage)
		}
	}

	return router
}

// healthCheck godoc
// @Summary Health status
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func healthCheck(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if check != nil {
			ctx, cancel := contextWithTimeout(c, healthTimeout)
			defer cancel()
			if err := check(ctx); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "blog-cms-api",
		})
	}
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
