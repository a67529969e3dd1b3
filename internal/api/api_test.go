package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blog-cms-api/internal/api"
	"github.com/blog-cms-api/internal/auth"
	"github.com/blog-cms-api/internal/cache"
	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/internal/docs"
	"github.com/blog-cms-api/internal/mocks"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const testCookie = "session_token"

type testEnv struct {
	router  *gin.Engine
	store   *mocks.MockStore
	uploads *mocks.MockUploadService
	jwt     auth.JWT
	now     time.Time
}

func (e *testEnv) clock() time.Time { return e.now }

func setupTestRouter(t *testing.T, doc []byte) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	repos, store := mocks.NewMockRepositories()
	env.store = store

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080", AllowedOrigins: []string{"https://blog.example.com"}},
		Auth:   config.AuthConfig{CookieName: testCookie, SessionTTL: time.Hour},
		Upload: config.UploadConfig{Dir: t.TempDir(), MaxSize: 1 << 20, PublicURL: "/uploads"},
	}

	env.jwt = auth.JWT{
		Secret:   []byte("0123456789abcdef0123456789abcdef"),
		TokenTTL: time.Hour,
		Issuer:   "test",
		Now:      env.clock,
	}
	resolver := auth.NewResolver(env.jwt, cache.NewMemoryStore(), zerolog.Nop()).WithClock(env.clock)

	log := zerolog.Nop()
	services := service.NewServices(repos, cfg, service.Deps{
		Tokens:   env.jwt,
		Sessions: resolver,
		Notifier: mocks.NewMockNotifier(),
		Now:      env.clock,
	}, log)
	env.uploads = mocks.NewMockUploadService()
	services.Upload = env.uploads

	env.router = api.NewRouter(services, api.Options{
		Resolver: resolver,
		Gate:     auth.NewGate(repos.User),
		Docs:     docs.FromBytes(doc, log),
	}, cfg, log)
	return env
}

// addUser stores a user and returns a signed token for it
func (e *testEnv) addUser(t *testing.T, role, password string) (*models.User, string) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        role + "-" + uuid.New().String()[:8] + "@example.com",
		Name:         "Test " + role,
		Role:         role,
		Active:       true,
		PasswordHash: hash,
		CreatedAt:    e.now,
		UpdatedAt:    e.now,
	}
	if err := e.store.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, _, err := e.jwt.Sign(user)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return user, token
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp api.ErrorResponse
	decode(t, w, &resp)
	return resp.Error
}

func detailFields(t *testing.T, w *httptest.ResponseRecorder) map[string]bool {
	t.Helper()
	var resp api.ValidationErrorResponse
	decode(t, w, &resp)
	if resp.Error != "Validation failed" {
		t.Fatalf("Expected 'Validation failed', got %q", resp.Error)
	}
	fields := make(map[string]bool)
	for _, d := range resp.Details {
		fields[strings.Join(d.Path, ".")] = true
	}
	return fields
}

func (e *testEnv) createArticle(t *testing.T, token, slug string, status models.ArticleStatus) *models.Article {
	t.Helper()
	w := e.do(http.MethodPost, "/api/admin/articles", token, map[string]interface{}{
		"title":   "Title " + slug,
		"slug":    slug,
		"content": "Body",
		"status":  status,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create article: status %d: %s", w.Code, w.Body.String())
	}
	var a models.Article
	decode(t, w, &a)
	return &a
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestRouter(t, nil)

	w := env.do(http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	decode(t, w, &response)
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "blog-cms-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestAdminRoutes_NoSession(t *testing.T) {
	env := setupTestRouter(t, nil)

	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/admin/articles"},
		{http.MethodPost, "/api/admin/tags"},
		{http.MethodDelete, "/api/admin/contacts/" + uuid.New().String()},
		{http.MethodGet, "/api/admin/articles/" + uuid.New().String() + "/analytics"},
		{http.MethodPost, "/api/admin/uploads/article-images"},
	}
	for _, p := range paths {
		w := env.do(p.method, p.path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", p.method, p.path, w.Code)
			continue
		}
		if got := errorOf(t, w); got != "no valid session" {
			t.Errorf("%s %s: expected 'no valid session', got %q", p.method, p.path, got)
		}
	}
}

func TestAdminRoutes_GarbageToken(t *testing.T) {
	env := setupTestRouter(t, nil)

	w := env.do(http.MethodGet, "/api/admin/tags", "not-a-jwt", nil)
	if w.Code != http.StatusUnauthorized || errorOf(t, w) != "no valid session" {
		t.Errorf("Expected 401 no valid session, got %d %s", w.Code, w.Body.String())
	}
}

func TestAdminRoutes_ExpiredSession(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := env.addUser(t, models.RoleAdmin, "password123")

	if w := env.do(http.MethodGet, "/api/admin/tags", token, nil); w.Code != http.StatusOK {
		t.Fatalf("Expected 200 before expiry, got %d", w.Code)
	}

	env.now = env.now.Add(time.Hour)
	w := env.do(http.MethodGet, "/api/admin/tags", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 at expiry, got %d", w.Code)
	}
	if got := errorOf(t, w); got != "no valid session" {
		t.Errorf("Expected 'no valid session', got %q", got)
	}
}

func TestAdminRoutes_InsufficientRole(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := env.addUser(t, "editor", "password123")

	w := env.do(http.MethodGet, "/api/admin/articles", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", w.Code)
	}
	if got := errorOf(t, w); got != "insufficient role" {
		t.Errorf("Expected 'insufficient role', got %q", got)
	}
}

func TestAdminRoutes_RoleDowngradeTakesEffect(t *testing.T) {
	env := setupTestRouter(t, nil)
	user, token := env.addUser(t, models.RoleAdmin, "password123")

	if w := env.do(http.MethodGet, "/api/admin/contacts", token, nil); w.Code != http.StatusOK {
		t.Fatalf("Expected 200 as admin, got %d", w.Code)
	}

	env.store.Users.SetRole(user.ID, "viewer")

	w := env.do(http.MethodGet, "/api/admin/contacts", token, nil)
	if w.Code != http.StatusUnauthorized || errorOf(t, w) != "insufficient role" {
		t.Errorf("Expected 401 insufficient role after downgrade, got %d %s", w.Code, w.Body.String())
	}
}

func TestAdminRoutes_CookieSession(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := env.addUser(t, models.RoleAdmin, "password123")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/tags", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with session cookie, got %d", w.Code)
	}
}

func TestLoginSessionLogout(t *testing.T) {
	env := setupTestRouter(t, nil)
	user, _ := env.addUser(t, models.RoleAdmin, "correct-horse")

	w := env.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": user.Email, "password": "wrong-horse"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 for a wrong password, got %d", w.Code)
	}

	w = env.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": user.Email, "password": "correct-horse"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result models.LoginResult
	decode(t, w, &result)
	if result.Token == "" {
		t.Fatal("Expected a token")
	}
	var cookieSet bool
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie && c.Value == result.Token && c.HttpOnly {
			cookieSet = true
		}
	}
	if !cookieSet {
		t.Error("Expected an HttpOnly session cookie carrying the token")
	}

	w = env.do(http.MethodGet, "/api/auth/session", result.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected session 200, got %d", w.Code)
	}
	var session models.Session
	decode(t, w, &session)
	if session.UserID != user.ID {
		t.Errorf("Expected session for %s, got %s", user.ID, session.UserID)
	}

	if w = env.do(http.MethodPost, "/api/auth/logout", result.Token, nil); w.Code != http.StatusOK {
		t.Fatalf("Expected logout 200, got %d", w.Code)
	}

	w = env.do(http.MethodGet, "/api/auth/session", result.Token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected revoked token to be rejected, got %d", w.Code)
	}
}

func TestCreateArticle_ValidationDetails(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := env.addUser(t, models.RoleAdmin, "password123")

	w := env.do(http.MethodPost, "/api/admin/articles", token, map[string]interface{}{
		"title":  "",
		"slug":   "Not A Slug",
		"status": "deleted",
		"tagIds": []string{uuid.New().String(), "nope"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	fields := detailFields(t, w)
	for _, want := range []string{"title", "slug", "content", "status", "tagIds.1"} {
		if !fields[want] {
			t.Errorf("Expected a detail for %s, got %v", want, fields)
		}
	}
}

func TestCreateArticle_MalformedBody(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := env.addUser(t, models.RoleAdmin, "password123")

	w := env.do(http.MethodPost, "/api/admin/articles", token, "{not json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	var resp api.ValidationErrorResponse
	decode(t, w, &resp)
	if resp.Details == nil {
		t.Error("Expected details to be an array, never null")
	}
}

func TestArticleLifecycle(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := env.addUser(t, models.RoleAdmin, "password123")

	draft := env.createArticle(t, token, "hello-world", models.StatusDraft)

	if w := env.do(http.MethodGet, "/api/articles/"+draft.ID, "", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected drafts hidden from readers, got %d", w.Code)
	}

	w := env.do(http.MethodPatch, "/api/admin/articles/"+draft.ID, token, map[string]string{"status": "published"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on publish, got %d: %s", w.Code, w.Body.String())
	}

	w = env.do(http.MethodGet, "/api/articles/slug/hello-world", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected published article by slug, got %d", w.Code)
	}
	var got models.Article
	decode(t, w, &got)
	if got.ID != draft.ID || got.PublishedAt == nil {
		t.Errorf("Expected published article %s with publishedAt, got %+v", draft.ID, got)
	}

	w = env.do(http.MethodPost, "/api/admin/articles", token, map[string]string{"title": "Dup", "slug": "hello-world", "content": "x"})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for a duplicate slug, got %d", w.Code)
	}
}

func TestUpdateArticle_ClearCategory(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := env.addUser(t, models.RoleAdmin, "password123")

	w := env.do(http.MethodPost, "/api/admin/categories", token, map[string]string{"name": "News", "slug": "news"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create category: status %d: %s", w.Code, w.Body.String())
	}
	var category models.Category
	decode(t, w, &category)

	article := env.createArticle(t, token, "filed", models.StatusDraft)
	w = env.do(http.MethodPatch, "/api/admin/articles/"+article.ID, token, map[string]string{"categoryId": category.ID})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), category.ID) {
		t.Fatalf("Expected category attached, got %d: %s", w.Code, w.Body.String())
	}

	w = env.do(http.MethodPatch, "/api/admin/articles/"+article.ID, token, `{"categoryId":""}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 when clearing the category, got %d: %s", w.Code, w.Body.String())
	}
	var raw map[string]interface{}
	decode(t, w, &raw)
	if _, ok := raw["categoryId"]; ok {
		t.Errorf("Expected categoryId absent, got %v", raw["categoryId"])
	}

	w = env.do(http.MethodPatch, "/api/admin/articles/"+article.ID, token, `{"categoryId":"42"}`)
	if w.Code != http.StatusBadRequest || !detailFields(t, w)["categoryId"] {
		t.Errorf("Expected categoryId validation error, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetArticle_NonCanonicalID(t *testing.T) {
	env := setupTestRouter(t, nil)

	w := env.do(http.MethodGet, "/api/articles/urn:uuid:"+uuid.New().String(), "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a urn-form id, got %d", w.Code)
	}
}

func TestListPagination_HugePage(t *testing.T) {
	env := setupTestRouter(t, nil)

	w := env.do(http.MethodGet, "/api/categories?page=9223372036854775807", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for a far page, got %d: %s", w.Code, w.Body.String())
	}
	var page models.Page[models.Category]
	decode(t, w, &page)
	if len(page.Items) != 0 || page.Page != models.MaxPage {
		t.Errorf("Expected an empty page %d, got %+v", models.MaxPage, page)
	}
}

func TestRegisterView(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := env.addUser(t, models.RoleAdmin, "password123")
	article := env.createArticle(t, token, "counted", models.StatusPublished)

	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantViews  int64
	}{
		{"malformed id", "123", http.StatusBadRequest, 0},
		{"unknown article", uuid.New().String(), http.StatusNotFound, 0},
		{"first view", article.ID, http.StatusOK, 1},
		{"second view", article.ID, http.StatusOK, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/articles/"+tt.id+"/view", "", nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var result models.ViewResult
			decode(t, w, &result)
			if result.ViewsCount != tt.wantViews {
				t.Errorf("Expected %d views, got %d", tt.wantViews, result.ViewsCount)
			}
		})
	}

	w := env.do(http.MethodGet, "/api/admin/articles/"+article.ID+"/analytics", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected analytics 200, got %d", w.Code)
	}
	var stats models.Analytics
	decode(t, w, &stats)
	if stats.ViewsCount != 2 || stats.LastViewedAt == nil {
		t.Errorf("Expected 2 views with a timestamp, got %+v", stats)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := env.addUser(t, models.RoleAdmin, "password123")
	article := env.createArticle(t, token, "short-lived", models.StatusPublished)

	for i, want := range []int64{1, 0} {
		w := env.do(http.MethodDelete, "/api/admin/articles/"+article.ID, token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("delete #%d: expected 200, got %d", i+1, w.Code)
		}
		var result models.DeleteResult
		decode(t, w, &result)
		if result.Deleted != want {
			t.Errorf("delete #%d: expected deleted=%d, got %d", i+1, want, result.Deleted)
		}
	}

	if w := env.do(http.MethodGet, "/api/admin/articles/"+article.ID, token, nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected soft-deleted article to be gone, got %d", w.Code)
	}

	if w := env.do(http.MethodDelete, "/api/admin/articles/nope", token, nil); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed id, got %d", w.Code)
	}
}

func TestBulkDelete(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := env.addUser(t, models.RoleAdmin, "password123")

	var ids []string
	for _, name := range []string{"go", "rust", "zig"} {
		w := env.do(http.MethodPost, "/api/admin/tags", token, map[string]string{"name": name})
		if w.Code != http.StatusCreated {
			t.Fatalf("create tag: %d", w.Code)
		}
		var tag models.Tag
		decode(t, w, &tag)
		ids = append(ids, tag.ID)
	}

	w := env.do(http.MethodDelete, "/api/admin/tags", token, map[string][]string{"ids": {ids[0], ids[1], uuid.New().String()}})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result models.DeleteResult
	decode(t, w, &result)
	if result.Deleted != 2 {
		t.Errorf("Expected 2 deleted, got %d", result.Deleted)
	}

	w = env.do(http.MethodDelete, "/api/admin/tags", token, map[string][]string{"ids": {}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty ids, got %d", w.Code)
	}
}

func TestListPagination(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := env.addUser(t, models.RoleAdmin, "password123")
	for i := 0; i < 12; i++ {
		w := env.do(http.MethodPost, "/api/admin/categories", token, map[string]string{
			"name": "Category " + string(rune('a'+i)),
			"slug": "category-" + string(rune('a'+i)),
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create category: %d %s", w.Code, w.Body.String())
		}
	}

	tests := []struct {
		query                string
		wantPage, wantLimit  int
		wantItems, wantPages int
	}{
		{"", 1, 10, 10, 2},
		{"?page=2", 2, 10, 2, 2},
		{"?page=0&limit=500", 1, 10, 10, 2},
		{"?limit=5&page=3", 3, 5, 2, 3},
	}
	for _, tt := range tests {
		w := env.do(http.MethodGet, "/api/categories"+tt.query, "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%q: expected 200, got %d", tt.query, w.Code)
		}
		var page models.Page[models.Category]
		decode(t, w, &page)
		if page.Page != tt.wantPage || page.Limit != tt.wantLimit || len(page.Items) != tt.wantItems || page.TotalPages != tt.wantPages {
			t.Errorf("%q: got page=%d limit=%d items=%d pages=%d", tt.query, page.Page, page.Limit, len(page.Items), page.TotalPages)
		}
		if page.Total != 12 {
			t.Errorf("%q: expected total 12, got %d", tt.query, page.Total)
		}
	}
}

func TestComments_PublicViewHidesEmail(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := env.addUser(t, models.RoleAdmin, "password123")
	article := env.createArticle(t, token, "discussed", models.StatusPublished)

	w := env.do(http.MethodPost, "/api/articles/"+article.ID+"/comments", "", map[string]string{
		"name":    "Reader",
		"email":   "reader@example.com",
		"content": "Nice post",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "reader@example.com") {
		t.Error("Expected email to be omitted from the public response")
	}

	w = env.do(http.MethodGet, "/api/articles/"+article.ID+"/comments", "", nil)
	if w.Code != http.StatusOK || strings.Contains(w.Body.String(), "reader@example.com") {
		t.Errorf("Expected public list without emails, got %d %s", w.Code, w.Body.String())
	}

	w = env.do(http.MethodGet, "/api/admin/comments?articleId="+article.ID, token, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "reader@example.com") {
		t.Errorf("Expected admin list with emails, got %d %s", w.Code, w.Body.String())
	}

	w = env.do(http.MethodPost, "/api/articles/"+uuid.New().String()+"/comments", "", map[string]string{
		"name": "Reader", "email": "reader@example.com", "content": "Hello?",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for a comment on a missing article, got %d", w.Code)
	}
}

func TestContact_PrivacyPolicyMustBeBoolean(t *testing.T) {
	env := setupTestRouter(t, nil)

	w := env.do(http.MethodPost, "/api/contacts", "", `{
		"companyName": "Acme",
		"contactName": "Jane Doe",
		"email": "jane@example.com",
		"phone": "03-1234-5678",
		"inquiry": "Hello",
		"privacyPolicy": "yes"
	}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	var resp api.ValidationErrorResponse
	decode(t, w, &resp)
	if len(resp.Details) != 1 || strings.Join(resp.Details[0].Path, ".") != "privacyPolicy" {
		t.Fatalf("Expected one privacyPolicy detail, got %+v", resp.Details)
	}
	if resp.Details[0].Message != "must be of type boolean" {
		t.Errorf("Expected a type message, got %q", resp.Details[0].Message)
	}
}

func TestContact_Create(t *testing.T) {
	env := setupTestRouter(t, nil)

	w := env.do(http.MethodPost, "/api/contacts", "", map[string]interface{}{
		"companyName":   "Acme",
		"contactName":   "Jane Doe",
		"email":         "jane@example.com",
		"phone":         "03-1234-5678",
		"inquiry":       "Hello",
		"privacyPolicy": true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDocsEndpoint(t *testing.T) {
	env := setupTestRouter(t, []byte("openapi: 3.0.0\ninfo:\n  title: Blog CMS API\n"))

	w := env.do(http.MethodGet, "/api/docs", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != docs.ContentTypeYAML {
		t.Errorf("Expected %s, got %s", docs.ContentTypeYAML, ct)
	}
	if !strings.Contains(w.Body.String(), "Blog CMS API") {
		t.Errorf("Expected document body, got %s", w.Body.String())
	}
}

func TestDocsEndpoint_MissingArtifact(t *testing.T) {
	env := setupTestRouter(t, nil)

	if w := env.do(http.MethodGet, "/api/docs", "", nil); w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", w.Code)
	}
	if w := env.do(http.MethodGet, "/api/tags", "", nil); w.Code != http.StatusOK {
		t.Errorf("Expected other routes unaffected, got %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	env := setupTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/admin/articles", nil)
	req.Header.Set("Origin", "https://blog.example.com")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://blog.example.com" {
		t.Errorf("Expected allowed origin echoed, got %q", got)
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "DELETE") {
		t.Errorf("Expected DELETE among allowed methods, got %q", w.Header().Get("Access-Control-Allow-Methods"))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no allow-origin for unknown origin, got %q", got)
	}
}

func multipartImage(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, "cover.png")
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadArticleImage(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := env.addUser(t, models.RoleAdmin, "password123")

	body, contentType := multipartImage(t, "file", []byte("\x89PNG\r\n\x1a\n"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads/article-images", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp api.UploadResponse
	decode(t, w, &resp)
	if resp.URL != "/uploads/articles/cover.png" {
		t.Errorf("Expected url, got %q", resp.URL)
	}
}

func TestUploadArticleImage_MissingFile(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := env.addUser(t, models.RoleAdmin, "password123")

	body, contentType := multipartImage(t, "image", []byte("data"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads/article-images", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if !detailFields(t, w)["file"] {
		t.Error("Expected a detail for file")
	}
}

func TestUploadArticleImage_StorageFailure(t *testing.T) {
	env := setupTestRouter(t, nil)
	_, token := env.addUser(t, models.RoleAdmin, "password123")
	env.uploads.SaveFunc = func(context.Context, string, int64, io.Reader) (*models.Upload, error) {
		return nil, errors.New("disk full")
	}

	body, contentType := multipartImage(t, "file", []byte("\x89PNG\r\n\x1a\n"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads/article-images", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}
	var resp api.UploadErrorResponse
	decode(t, w, &resp)
	if resp.Message == "" {
		t.Error("Expected a message")
	}
	if strings.Contains(w.Body.String(), "disk full") {
		t.Error("Expected the cause to stay out of the response")
	}
}
