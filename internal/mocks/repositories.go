package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/repository"
)

// Verify interface compliance
var (
	_ repository.UserRepository     = (*MockUserRepository)(nil)
	_ repository.ArticleRepository  = (*MockArticleRepository)(nil)
	_ repository.CategoryRepository = (*MockCategoryRepository)(nil)
	_ repository.TagRepository      = (*MockTagRepository)(nil)
	_ repository.CommentRepository  = (*MockCommentRepository)(nil)
	_ repository.ContactRepository  = (*MockContactRepository)(nil)
)

// NewMockRepositories wires the mocks together the way the PostgreSQL
// repositories share one database: articles see tags, comments see articles.
func NewMockRepositories() (*repository.Repositories, *MockStore) {
	s := &MockStore{
		Users:      NewMockUserRepository(),
		Categories: NewMockCategoryRepository(),
		Tags:       NewMockTagRepository(),
		Contacts:   NewMockContactRepository(),
	}
	s.Articles = NewMockArticleRepository(s.Tags, s.Categories)
	s.Comments = NewMockCommentRepository(s.Articles)

	return &repository.Repositories{
		User:     s.Users,
		Article:  s.Articles,
		Category: s.Categories,
		Tag:      s.Tags,
		Comment:  s.Comments,
		Contact:  s.Contacts,
	}, s
}

// MockStore exposes the concrete mocks behind a Repositories value
type MockStore struct {
	Users      *MockUserRepository
	Articles   *MockArticleRepository
	Categories *MockCategoryRepository
	Tags       *MockTagRepository
	Comments   *MockCommentRepository
	Contacts   *MockContactRepository
}

type record interface {
	created() time.Time
	key() string
}

// paginate orders newest first and cuts one page
func paginate[T record](items []T, p models.ListParams) ([]T, int) {
	sort.Slice(items, func(i, j int) bool {
		ci, cj := items[i].created(), items[j].created()
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return items[i].key() > items[j].key()
	})
	total := len(items)
	start := p.Offset()
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total || p.Limit <= 0 {
		end = total
	}
	return items[start:end], total
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// ---- users ----

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mu          sync.Mutex
	Users       map[string]*models.User
	EmailToUser map[string]*models.User
	InsertError error
	GetError    error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[string]*models.User),
		EmailToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	email := strings.ToLower(user.Email)
	if _, ok := m.EmailToUser[email]; ok {
		return repository.ErrDuplicate
	}
	m.Users[user.ID] = user
	m.EmailToUser[email] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	if u, ok := m.Users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	if u, ok := m.EmailToUser[strings.ToLower(email)]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.EmailToUser[strings.ToLower(email)]
	return exists, nil
}

// SetRole changes a stored user's role, as an operator would in the database
func (m *MockUserRepository) SetRole(id, role string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Users[id]; ok {
		u.Role = role
	}
}

// ---- articles ----

type articleRow struct {
	article *models.Article
	tagIDs  []string
}

func (r *articleRow) created() time.Time { return r.article.CreatedAt }
func (r *articleRow) key() string        { return r.article.ID }

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	mu         sync.Mutex
	Articles   map[string]*articleRow
	Views      map[string]*models.Analytics
	tags       *MockTagRepository
	categories *MockCategoryRepository
	Error      error
}

func NewMockArticleRepository(tags *MockTagRepository, categories *MockCategoryRepository) *MockArticleRepository {
	return &MockArticleRepository{
		Articles:   make(map[string]*articleRow),
		Views:      make(map[string]*models.Analytics),
		tags:       tags,
		categories: categories,
	}
}

// view assembles the read model; callers hold m.mu
func (m *MockArticleRepository) view(row *articleRow) *models.Article {
	a := *row.article
	a.Tags = []models.Tag{}
	if m.tags != nil {
		for _, id := range row.tagIDs {
			if t, _ := m.tags.GetByID(context.Background(), id); t != nil {
				a.Tags = append(a.Tags, *t)
			}
		}
	}
	if a.CategoryID != nil && m.categories != nil && !m.categories.exists(*a.CategoryID) {
		a.CategoryID = nil
	}
	if v, ok := m.Views[a.ID]; ok {
		a.ViewsCount = v.ViewsCount
	}
	return &a
}

func (m *MockArticleRepository) live(id string) (*articleRow, bool) {
	row, ok := m.Articles[id]
	if !ok || row.article.DeletedAt != nil {
		return nil, false
	}
	return row, true
}

func (m *MockArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return nil, 0, m.Error
	}

	var rows []*articleRow
	for _, row := range m.Articles {
		a := row.article
		if a.DeletedAt != nil {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.CategoryID != "" && (a.CategoryID == nil || *a.CategoryID != filter.CategoryID) {
			continue
		}
		if filter.TagID != "" && !idSet(row.tagIDs)[filter.TagID] {
			continue
		}
		if filter.Search != "" && !contains(a.Title, filter.Search) && !contains(a.Summary, filter.Search) {
			continue
		}
		rows = append(rows, row)
	}

	page, total := paginate(rows, filter.ListParams)
	out := make([]*models.Article, 0, len(page))
	for _, row := range page {
		out = append(out, m.view(row))
	}
	return out, total, nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return nil, m.Error
	}
	if row, ok := m.live(id); ok {
		return m.view(row), nil
	}
	return nil, nil
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return nil, m.Error
	}
	for _, row := range m.Articles {
		if row.article.DeletedAt == nil && row.article.Slug == slug {
			return m.view(row), nil
		}
	}
	return nil, nil
}

func (m *MockArticleRepository) slugTaken(slug, excludeID string) bool {
	for id, row := range m.Articles {
		if row.article.DeletedAt == nil && row.article.Slug == slug && id != excludeID {
			return true
		}
	}
	return false
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article, tagIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return m.Error
	}
	if m.slugTaken(article.Slug, "") {
		return repository.ErrDuplicate
	}
	cp := *article
	m.Articles[article.ID] = &articleRow{article: &cp, tagIDs: append([]string(nil), tagIDs...)}
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article, tagIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return m.Error
	}
	row, ok := m.live(article.ID)
	if !ok {
		return nil
	}
	if m.slugTaken(article.Slug, article.ID) {
		return repository.ErrDuplicate
	}
	cp := *article
	cp.DeletedAt = nil
	row.article = &cp
	if tagIDs != nil {
		row.tagIDs = append([]string(nil), tagIDs...)
	}
	return nil
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slugTaken(slug, excludeID), m.Error
}

func (m *MockArticleRepository) SoftDelete(ctx context.Context, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return 0, m.Error
	}
	now := time.Now()
	var n int64
	for _, id := range ids {
		if row, ok := m.live(id); ok {
			row.article.DeletedAt = &now
			n++
		}
	}
	return n, nil
}

func (m *MockArticleRepository) IncrementViews(ctx context.Context, id string, at time.Time) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return 0, false, m.Error
	}
	if _, ok := m.live(id); !ok {
		return 0, false, nil
	}
	v, ok := m.Views[id]
	if !ok {
		v = &models.Analytics{ArticleID: id}
		m.Views[id] = v
	}
	v.ViewsCount++
	t := at
	v.LastViewedAt = &t
	return v.ViewsCount, true, nil
}

func (m *MockArticleRepository) GetAnalytics(ctx context.Context, id string) (*models.Analytics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return nil, m.Error
	}
	if _, ok := m.live(id); !ok {
		return nil, nil
	}
	if v, ok := m.Views[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

// ---- categories ----

type categoryRow models.Category

func (r *categoryRow) created() time.Time { return r.CreatedAt }
func (r *categoryRow) key() string        { return r.ID }

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mu         sync.Mutex
	Categories map[string]*models.Category
	Error      error
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[string]*models.Category)}
}

func (m *MockCategoryRepository) exists(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Categories[id]
	return ok && c.DeletedAt == nil
}

func (m *MockCategoryRepository) List(ctx context.Context, params models.ListParams) ([]*models.Category, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return nil, 0, m.Error
	}
	var rows []*categoryRow
	for _, c := range m.Categories {
		if c.DeletedAt != nil {
			continue
		}
		if params.Search != "" && !contains(c.Name, params.Search) && !contains(c.Slug, params.Search) {
			continue
		}
		cp := categoryRow(*c)
		rows = append(rows, &cp)
	}
	page, total := paginate(rows, params)
	out := make([]*models.Category, 0, len(page))
	for _, r := range page {
		c := models.Category(*r)
		out = append(out, &c)
	}
	return out, total, nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return nil, m.Error
	}
	if c, ok := m.Categories[id]; ok && c.DeletedAt == nil {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *MockCategoryRepository) slugTaken(slug, excludeID string) bool {
	for id, c := range m.Categories {
		if c.DeletedAt == nil && c.Slug == slug && id != excludeID {
			return true
		}
	}
	return false
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return m.Error
	}
	if m.slugTaken(c.Slug, "") {
		return repository.ErrDuplicate
	}
	cp := *c
	m.Categories[c.ID] = &cp
	return nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return m.Error
	}
	if m.slugTaken(c.Slug, c.ID) {
		return repository.ErrDuplicate
	}
	if cur, ok := m.Categories[c.ID]; ok && cur.DeletedAt == nil {
		cp := *c
		m.Categories[c.ID] = &cp
	}
	return nil
}

func (m *MockCategoryRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slugTaken(slug, excludeID), m.Error
}

func (m *MockCategoryRepository) SoftDelete(ctx context.Context, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return 0, m.Error
	}
	now := time.Now()
	var n int64
	for _, id := range ids {
		if c, ok := m.Categories[id]; ok && c.DeletedAt == nil {
			c.DeletedAt = &now
			n++
		}
	}
	return n, nil
}

// ---- tags ----

type tagRow models.Tag

func (r *tagRow) created() time.Time { return r.CreatedAt }
func (r *tagRow) key() string        { return r.ID }

// MockTagRepository is a mock implementation of TagRepository
type MockTagRepository struct {
	mu    sync.Mutex
	Tags  map[string]*models.Tag
	Error error
}

func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{Tags: make(map[string]*models.Tag)}
}

func (m *MockTagRepository) List(ctx context.Context, params models.ListParams) ([]*models.Tag, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return nil, 0, m.Error
	}
	var rows []*tagRow
	for _, t := range m.Tags {
		if params.Search != "" && !contains(t.Name, params.Search) {
			continue
		}
		cp := tagRow(*t)
		rows = append(rows, &cp)
	}
	page, total := paginate(rows, params)
	out := make([]*models.Tag, 0, len(page))
	for _, r := range page {
		t := models.Tag(*r)
		out = append(out, &t)
	}
	return out, total, nil
}

func (m *MockTagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return nil, m.Error
	}
	if t, ok := m.Tags[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (m *MockTagRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return nil, m.Error
	}
	var out []*models.Tag
	for id := range idSet(ids) {
		if t, ok := m.Tags[id]; ok {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockTagRepository) nameTaken(name, excludeID string) bool {
	for id, t := range m.Tags {
		if t.Name == name && id != excludeID {
			return true
		}
	}
	return false
}

func (m *MockTagRepository) Create(ctx context.Context, t *models.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return m.Error
	}
	if m.nameTaken(t.Name, "") {
		return repository.ErrDuplicate
	}
	cp := *t
	m.Tags[t.ID] = &cp
	return nil
}

func (m *MockTagRepository) Update(ctx context.Context, t *models.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return m.Error
	}
	if m.nameTaken(t.Name, t.ID) {
		return repository.ErrDuplicate
	}
	if _, ok := m.Tags[t.ID]; ok {
		cp := *t
		m.Tags[t.ID] = &cp
	}
	return nil
}

func (m *MockTagRepository) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nameTaken(name, excludeID), m.Error
}

func (m *MockTagRepository) Delete(ctx context.Context, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return 0, m.Error
	}
	var n int64
	for _, id := range ids {
		if _, ok := m.Tags[id]; ok {
			delete(m.Tags, id)
			n++
		}
	}
	return n, nil
}

// ---- comments ----

type commentRow models.Comment

func (r *commentRow) created() time.Time { return r.CreatedAt }
func (r *commentRow) key() string        { return r.ID }

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mu       sync.Mutex
	Comments map[string]*models.Comment
	articles *MockArticleRepository
	Error    error
}

func NewMockCommentRepository(articles *MockArticleRepository) *MockCommentRepository {
	return &MockCommentRepository{Comments: make(map[string]*models.Comment), articles: articles}
}

func (m *MockCommentRepository) articleLive(id string) bool {
	if m.articles == nil {
		return true
	}
	a, _ := m.articles.GetByID(context.Background(), id)
	return a != nil
}

func (m *MockCommentRepository) List(ctx context.Context, filter models.CommentFilter) ([]*models.Comment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return nil, 0, m.Error
	}
	var rows []*commentRow
	for _, c := range m.Comments {
		if filter.ArticleID != "" && c.ArticleID != filter.ArticleID {
			continue
		}
		if filter.Search != "" && !contains(c.Content, filter.Search) && !contains(c.Name, filter.Search) {
			continue
		}
		if !m.articleLive(c.ArticleID) {
			continue
		}
		cp := commentRow(*c)
		rows = append(rows, &cp)
	}
	page, total := paginate(rows, filter.ListParams)
	out := make([]*models.Comment, 0, len(page))
	for _, r := range page {
		c := models.Comment(*r)
		out = append(out, &c)
	}
	return out, total, nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return nil, m.Error
	}
	if c, ok := m.Comments[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *MockCommentRepository) Create(ctx context.Context, c *models.Comment) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return false, m.Error
	}
	if !m.articleLive(c.ArticleID) {
		return false, nil
	}
	cp := *c
	m.Comments[c.ID] = &cp
	return true, nil
}

func (m *MockCommentRepository) Update(ctx context.Context, c *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return m.Error
	}
	if _, ok := m.Comments[c.ID]; ok {
		cp := *c
		m.Comments[c.ID] = &cp
	}
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return 0, m.Error
	}
	var n int64
	for _, id := range ids {
		if _, ok := m.Comments[id]; ok {
			delete(m.Comments, id)
			n++
		}
	}
	return n, nil
}

// ---- contacts ----

type contactRow models.Contact

func (r *contactRow) created() time.Time { return r.CreatedAt }
func (r *contactRow) key() string        { return r.ID }

// MockContactRepository is a mock implementation of ContactRepository
type MockContactRepository struct {
	mu       sync.Mutex
	Contacts map[string]*models.Contact
	Error    error
}

func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{Contacts: make(map[string]*models.Contact)}
}

func (m *MockContactRepository) List(ctx context.Context, params models.ListParams) ([]*models.Contact, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return nil, 0, m.Error
	}
	var rows []*contactRow
	for _, c := range m.Contacts {
		if c.DeletedAt != nil {
			continue
		}
		if params.Search != "" && !contains(c.CompanyName, params.Search) &&
			!contains(c.ContactName, params.Search) && !contains(c.Email, params.Search) {
			continue
		}
		cp := contactRow(*c)
		rows = append(rows, &cp)
	}
	page, total := paginate(rows, params)
	out := make([]*models.Contact, 0, len(page))
	for _, r := range page {
		c := models.Contact(*r)
		out = append(out, &c)
	}
	return out, total, nil
}

func (m *MockContactRepository) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return nil, m.Error
	}
	if c, ok := m.Contacts[id]; ok && c.DeletedAt == nil {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *MockContactRepository) Create(ctx context.Context, c *models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return m.Error
	}
	cp := *c
	m.Contacts[c.ID] = &cp
	return nil
}

func (m *MockContactRepository) Update(ctx context.Context, c *models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return m.Error
	}
	if cur, ok := m.Contacts[c.ID]; ok && cur.DeletedAt == nil {
		cp := *c
		m.Contacts[c.ID] = &cp
	}
	return nil
}

func (m *MockContactRepository) SoftDelete(ctx context.Context, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return 0, m.Error
	}
	now := time.Now()
	var n int64
	for _, id := range ids {
		if c, ok := m.Contacts[id]; ok && c.DeletedAt == nil {
			c.DeletedAt = &now
			n++
		}
	}
	return n, nil
}
