package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/blog-cms-api/internal/mocks"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/repository"
)

func newArticle(id, slug string, created time.Time) *models.Article {
	return &models.Article{
		ID:        id,
		Title:     "Title " + slug,
		Slug:      slug,
		Content:   "Body",
		Status:    models.StatusPublished,
		AuthorID:  "author-1",
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestMockUserRepository_DuplicateEmail(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	ctx := context.Background()

	user1 := &models.User{ID: "user-1", Email: "duplicate@test.com", Name: "User 1", Role: "admin", Active: true}
	if err := repo.Create(ctx, user1); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	exists, err := repo.EmailExists(ctx, "DUPLICATE@test.com")
	if err != nil {
		t.Fatalf("EmailExists failed: %v", err)
	}
	if !exists {
		t.Error("Expected email lookup to ignore case")
	}

	user2 := &models.User{ID: "user-2", Email: "duplicate@test.com", Name: "User 2", Role: "editor", Active: true}
	if err := repo.Create(ctx, user2); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}
}

func TestMockUserRepository_GetReturnsCopy(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	ctx := context.Background()
	repo.Create(ctx, &models.User{ID: "user-1", Email: "a@test.com", Role: "admin", Active: true})

	u, _ := repo.GetByID(ctx, "user-1")
	u.Role = "viewer"

	again, _ := repo.GetByID(ctx, "user-1")
	if again.Role != "admin" {
		t.Errorf("Expected stored role to be unchanged, got %s", again.Role)
	}

	missing, err := repo.GetByID(ctx, "nope")
	if missing != nil || err != nil {
		t.Errorf("Expected (nil, nil) for a missing user, got (%v, %v)", missing, err)
	}
}

func TestMockArticleRepository_SoftDelete(t *testing.T) {
	repos, _ := mocks.NewMockRepositories()
	ctx := context.Background()
	now := time.Now()

	for i, slug := range []string{"one", "two", "three"} {
		a := newArticle(string(rune('a'+i)), slug, now.Add(time.Duration(i)*time.Second))
		if err := repos.Article.Create(ctx, a, nil); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	n, err := repos.Article.SoftDelete(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 deleted, got %d", n)
	}

	n, _ = repos.Article.SoftDelete(ctx, []string{"a", "b"})
	if n != 0 {
		t.Errorf("Expected repeated delete to affect 0 rows, got %d", n)
	}

	if a, _ := repos.Article.GetByID(ctx, "a"); a != nil {
		t.Error("Expected soft-deleted article to be hidden")
	}
	items, total, _ := repos.Article.List(ctx, models.ArticleFilter{ListParams: models.ListParams{Page: 1, Limit: 10}})
	if total != 1 || len(items) != 1 || items[0].ID != "c" {
		t.Errorf("Expected only article c to remain, got total=%d items=%v", total, items)
	}

	// the slug of a deleted article is free again
	exists, _ := repos.Article.SlugExists(ctx, "one", "")
	if exists {
		t.Error("Expected slug of a deleted article to be reusable")
	}
}

func TestMockArticleRepository_ConcurrentViews(t *testing.T) {
	repos, _ := mocks.NewMockRepositories()
	ctx := context.Background()
	repos.Article.Create(ctx, newArticle("a", "popular", time.Now()), nil)

	const workers = 100
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, found, err := repos.Article.IncrementViews(ctx, "a", time.Now()); err != nil || !found {
				t.Errorf("IncrementViews: found=%v err=%v", found, err)
			}
		}()
	}
	wg.Wait()

	stats, err := repos.Article.GetAnalytics(ctx, "a")
	if err != nil {
		t.Fatalf("GetAnalytics failed: %v", err)
	}
	if stats.ViewsCount != workers {
		t.Errorf("Expected %d views, got %d", workers, stats.ViewsCount)
	}

	if _, found, _ := repos.Article.IncrementViews(ctx, "missing", time.Now()); found {
		t.Error("Expected missing article not to be found")
	}
	if stats, _ := repos.Article.GetAnalytics(ctx, "missing"); stats != nil {
		t.Error("Expected no analytics row for a missing article")
	}
}

func TestMockArticleRepository_Tags(t *testing.T) {
	repos, store := mocks.NewMockRepositories()
	ctx := context.Background()
	now := time.Now()

	repos.Tag.Create(ctx, &models.Tag{ID: "t1", Name: "go", CreatedAt: now})
	repos.Tag.Create(ctx, &models.Tag{ID: "t2", Name: "sql", CreatedAt: now})
	repos.Article.Create(ctx, newArticle("a", "tagged", now), []string{"t1", "t2"})

	a, _ := repos.Article.GetByID(ctx, "a")
	if len(a.Tags) != 2 {
		t.Fatalf("Expected 2 tags, got %d", len(a.Tags))
	}

	// nil keeps the links, an empty slice clears them
	if err := repos.Article.Update(ctx, a, nil); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if a, _ = repos.Article.GetByID(ctx, "a"); len(a.Tags) != 2 {
		t.Errorf("Expected tags untouched, got %d", len(a.Tags))
	}
	repos.Article.Update(ctx, a, []string{})
	if a, _ = repos.Article.GetByID(ctx, "a"); len(a.Tags) != 0 {
		t.Errorf("Expected tags cleared, got %d", len(a.Tags))
	}

	// deleting a tag drops it from articles
	repos.Article.Update(ctx, a, []string{"t1", "t2"})
	store.Tags.Delete(ctx, []string{"t2"})
	items, total, _ := repos.Article.List(ctx, models.ArticleFilter{
		ListParams: models.ListParams{Page: 1, Limit: 10},
		TagID:      "t1",
	})
	if total != 1 || len(items[0].Tags) != 1 || items[0].Tags[0].ID != "t1" {
		t.Errorf("Expected the article with only t1 left, got %+v", items)
	}
}

func TestMockCommentRepository_RequiresLiveArticle(t *testing.T) {
	repos, _ := mocks.NewMockRepositories()
	ctx := context.Background()
	now := time.Now()
	repos.Article.Create(ctx, newArticle("a", "commented", now), nil)

	ok, err := repos.Comment.Create(ctx, &models.Comment{ID: "c1", ArticleID: "a", Name: "N", Email: "n@test.com", Content: "Hi", CreatedAt: now})
	if err != nil || !ok {
		t.Fatalf("Expected comment on live article to be stored, got ok=%v err=%v", ok, err)
	}

	repos.Article.SoftDelete(ctx, []string{"a"})

	ok, err = repos.Comment.Create(ctx, &models.Comment{ID: "c2", ArticleID: "a", Name: "N", Email: "n@test.com", Content: "Hi", CreatedAt: now})
	if err != nil || ok {
		t.Errorf("Expected comment on deleted article to be refused, got ok=%v err=%v", ok, err)
	}

	_, total, _ := repos.Comment.List(ctx, models.CommentFilter{ListParams: models.ListParams{Page: 1, Limit: 10}})
	if total != 0 {
		t.Errorf("Expected comments of deleted articles to be hidden, got %d", total)
	}
}

func TestMockRepositories_Pagination(t *testing.T) {
	repos, _ := mocks.NewMockRepositories()
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 25; i++ {
		repos.Contact.Create(ctx, &models.Contact{
			ID:          string(rune('A' + i)),
			CompanyName: "Acme",
			Email:       "x@test.com",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}

	tests := []struct {
		page, limit int
		wantItems   int
		wantFirst   string
	}{
		{1, 10, 10, "Y"},
		{2, 10, 10, "O"},
		{3, 10, 5, "E"},
		{4, 10, 0, ""},
	}
	for _, tt := range tests {
		items, total, err := repos.Contact.List(ctx, models.ListParams{Page: tt.page, Limit: tt.limit})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if total != 25 {
			t.Errorf("page %d: expected total 25, got %d", tt.page, total)
		}
		if len(items) != tt.wantItems {
			t.Errorf("page %d: expected %d items, got %d", tt.page, tt.wantItems, len(items))
			continue
		}
		if tt.wantItems > 0 && items[0].ID != tt.wantFirst {
			t.Errorf("page %d: expected newest-first starting at %s, got %s", tt.page, tt.wantFirst, items[0].ID)
		}
	}
}

func TestMockTagRepository_DuplicateName(t *testing.T) {
	repo := mocks.NewMockTagRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, &models.Tag{ID: "t1", Name: "go"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, &models.Tag{ID: "t2", Name: "go"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}

	exists, _ := repo.NameExists(ctx, "go", "t1")
	if exists {
		t.Error("Expected a tag not to conflict with itself")
	}
}
