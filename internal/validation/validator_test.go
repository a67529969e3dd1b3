package validation

import (
	"strings"
	"testing"

	"github.com/blog-cms-api/internal/apperr"
	"github.com/blog-cms-api/internal/models"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func hasField(errs []apperr.FieldError, field string) bool {
	for _, e := range errs {
		if len(e.Path) > 0 && e.Path[0] == field {
			return true
		}
	}
	return false
}

func TestValidateTag(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		input      *models.TagCreateInput
		wantErrors int
		wantFields []string
	}{
		{name: "single character", input: &models.TagCreateInput{Name: "g"}, wantErrors: 0},
		{name: "exactly 100 characters", input: &models.TagCreateInput{Name: strings.Repeat("a", 100)}, wantErrors: 0},
		{name: "multibyte within bound", input: &models.TagCreateInput{Name: strings.Repeat("語", 100)}, wantErrors: 0},
		{name: "empty name", input: &models.TagCreateInput{Name: ""}, wantErrors: 1, wantFields: []string{"name"}},
		{name: "101 characters", input: &models.TagCreateInput{Name: strings.Repeat("a", 101)}, wantErrors: 1, wantFields: []string{"name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.Check(tt.input)
			if len(errors) != tt.wantErrors {
				t.Errorf("Check() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
			for _, wantField := range tt.wantFields {
				if !hasField(errors, wantField) {
					t.Errorf("Expected error for field '%s' but not found", wantField)
				}
			}
		})
	}
}

func validContact() *models.ContactCreateInput {
	return &models.ContactCreateInput{
		CompanyName:   "Acme",
		ContactName:   "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "03-1234-5678",
		Inquiry:       "We would like a quote.",
		PrivacyPolicy: boolPtr(true),
	}
}

func TestValidateContact(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		mutate     func(*models.ContactCreateInput)
		wantErrors int
		wantFields []string
	}{
		{name: "valid contact", mutate: func(c *models.ContactCreateInput) {}, wantErrors: 0},
		{name: "digits only phone", mutate: func(c *models.ContactCreateInput) { c.Phone = "0312345678" }, wantErrors: 0},
		{name: "letters in phone", mutate: func(c *models.ContactCreateInput) { c.Phone = "abc1234567" }, wantErrors: 1, wantFields: []string{"phone"}},
		{name: "three digit phone", mutate: func(c *models.ContactCreateInput) { c.Phone = "123" }, wantErrors: 1, wantFields: []string{"phone"}},
		{name: "14 character phone", mutate: func(c *models.ContactCreateInput) { c.Phone = "03-1234-5678-9" }, wantErrors: 1, wantFields: []string{"phone"}},
		{name: "privacy policy false", mutate: func(c *models.ContactCreateInput) { c.PrivacyPolicy = boolPtr(false) }, wantErrors: 1, wantFields: []string{"privacyPolicy"}},
		{name: "privacy policy missing", mutate: func(c *models.ContactCreateInput) { c.PrivacyPolicy = nil }, wantErrors: 1, wantFields: []string{"privacyPolicy"}},
		{name: "invalid email", mutate: func(c *models.ContactCreateInput) { c.Email = "not-an-email" }, wantErrors: 1, wantFields: []string{"email"}},
		{
			name: "every field wrong",
			mutate: func(c *models.ContactCreateInput) {
				*c = models.ContactCreateInput{Email: "bad", Phone: "x"}
			},
			wantErrors: 6,
			wantFields: []string{"companyName", "contactName", "email", "phone", "inquiry", "privacyPolicy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validContact()
			tt.mutate(input)
			errors := validator.Check(input)
			if len(errors) != tt.wantErrors {
				t.Errorf("Check() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
			for _, wantField := range tt.wantFields {
				if !hasField(errors, wantField) {
					t.Errorf("Expected error for field '%s' but not found", wantField)
				}
			}
		})
	}
}

func TestValidateArticle(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		input      *models.ArticleCreateInput
		wantErrors int
		wantFields []string
	}{
		{
			name: "valid published article",
			input: &models.ArticleCreateInput{
				Title:   "My First Article",
				Slug:    "my-first-article",
				Content: "Body",
				Status:  models.StatusPublished,
				TagIDs:  []string{"550e8400-e29b-41d4-a716-446655440000"},
			},
			wantErrors: 0,
		},
		{
			name:       "invalid slug - not kebab-case",
			input:      &models.ArticleCreateInput{Title: "T", Slug: "My_First_Article", Content: "Body"},
			wantErrors: 1,
			wantFields: []string{"slug"},
		},
		{
			name:       "invalid status",
			input:      &models.ArticleCreateInput{Title: "T", Slug: "t", Content: "Body", Status: "deleted"},
			wantErrors: 1,
			wantFields: []string{"status"},
		},
		{
			name:       "invalid category id",
			input:      &models.ArticleCreateInput{Title: "T", Slug: "t", Content: "Body", CategoryID: strPtr("42")},
			wantErrors: 1,
			wantFields: []string{"categoryId"},
		},
		{
			name:       "missing required fields",
			input:      &models.ArticleCreateInput{},
			wantErrors: 3, // title, slug, content
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.Check(tt.input)
			if len(errors) != tt.wantErrors {
				t.Errorf("Check() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
			for _, wantField := range tt.wantFields {
				if !hasField(errors, wantField) {
					t.Errorf("Expected error for field '%s' but not found", wantField)
				}
			}
		})
	}
}

func TestValidateArticle_DefaultStatus(t *testing.T) {
	validator := NewValidator()
	input := &models.ArticleCreateInput{Title: "T", Slug: "t", Content: "Body"}

	if errors := validator.Check(input); len(errors) != 0 {
		t.Fatalf("Expected no errors, got %v", errors)
	}
	if input.Status != models.StatusDraft {
		t.Errorf("Expected default status draft, got %s", input.Status)
	}
}

func TestValidateArticle_NestedPath(t *testing.T) {
	validator := NewValidator()
	input := &models.ArticleCreateInput{
		Title:   "T",
		Slug:    "t",
		Content: "Body",
		TagIDs:  []string{"550e8400-e29b-41d4-a716-446655440000", "nope"},
	}

	errors := validator.Check(input)
	if len(errors) != 1 {
		t.Fatalf("Expected 1 error, got %v", errors)
	}
	want := []string{"tagIds", "1"}
	if strings.Join(errors[0].Path, ".") != strings.Join(want, ".") {
		t.Errorf("Expected path %v, got %v", want, errors[0].Path)
	}
}

func TestValidateUpdate_PartialFields(t *testing.T) {
	validator := NewValidator()

	if errors := validator.Check(&models.TagUpdateInput{}); len(errors) != 0 {
		t.Errorf("Empty update should be valid, got %v", errors)
	}
	errors := validator.Check(&models.TagUpdateInput{Name: strPtr("")})
	if !hasField(errors, "name") {
		t.Errorf("Explicit empty name should fail, got %v", errors)
	}
	errors = validator.Check(&models.CategoryUpdateInput{Slug: strPtr("Bad Slug")})
	if !hasField(errors, "slug") {
		t.Errorf("Invalid slug should fail, got %v", errors)
	}
}

func TestValidateArticleUpdate_CategoryID(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name      string
		body      string
		wantError bool
	}{
		{name: "empty string clears", body: `{"categoryId":""}`},
		{name: "uuid", body: `{"categoryId":"550e8400-e29b-41d4-a716-446655440000"}`},
		{name: "omitted", body: `{"title":"T"}`},
		{name: "not a uuid", body: `{"categoryId":"42"}`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.DecodeAndValidate(strings.NewReader(tt.body), &models.ArticleUpdateInput{})
			if tt.wantError {
				e, ok := apperr.As(err)
				if !ok || !hasField(e.Details, "categoryId") {
					t.Errorf("Expected categoryId error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Expected nil, got %v", err)
			}
		})
	}
}

func TestValidate_ReturnsValidationError(t *testing.T) {
	validator := NewValidator()

	err := validator.Validate(&models.TagCreateInput{})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if err := validator.Validate(&models.TagCreateInput{Name: "go"}); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}
}

func TestBulkDeleteInput(t *testing.T) {
	validator := NewValidator()

	if errors := validator.Check(&models.BulkDeleteInput{}); !hasField(errors, "ids") {
		t.Errorf("Missing ids should fail, got %v", errors)
	}
	errors := validator.Check(&models.BulkDeleteInput{IDs: []string{"x"}})
	if !hasField(errors, "ids") {
		t.Errorf("Invalid id should fail, got %v", errors)
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		page, limit         string
		wantPage, wantLimit int
	}{
		{"", "", 1, 10},
		{"3", "25", 3, 25},
		{"0", "0", 1, 10},
		{"-2", "101", 1, 10},
		{"abc", "1e3", 1, 10},
		{"1", "100", 1, 100},
		{"1", "1", 1, 1},
		{" 2 ", " 5 ", 2, 5},
		{"9223372036854775807", "10", models.MaxPage, 10},
		{"99999999999999999999", "10", 1, 10},
	}

	for _, tt := range tests {
		p := ParsePagination(tt.page, tt.limit, "  golang ")
		if p.Page != tt.wantPage || p.Limit != tt.wantLimit {
			t.Errorf("ParsePagination(%q, %q) = %d/%d, want %d/%d", tt.page, tt.limit, p.Page, p.Limit, tt.wantPage, tt.wantLimit)
		}
		if p.Offset() < 0 {
			t.Errorf("ParsePagination(%q, %q) offset %d is negative", tt.page, tt.limit, p.Offset())
		}
		if p.Search != "golang" {
			t.Errorf("Expected trimmed search, got %q", p.Search)
		}
	}
}

func TestParseID(t *testing.T) {
	if err := ParseID("550e8400-e29b-41d4-a716-446655440000"); err != nil {
		t.Errorf("Expected valid UUID, got %v", err)
	}
	for _, id := range []string{
		"123",
		"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
		"{550e8400-e29b-41d4-a716-446655440000}",
		"550e8400e29b41d4a716446655440000",
	} {
		if err := ParseID(id); !apperr.Is(err, apperr.KindValidation) {
			t.Errorf("ParseID(%q): expected validation error, got %v", id, err)
		}
	}
}

func TestParseIDs(t *testing.T) {
	valid := "550e8400-e29b-41d4-a716-446655440000"
	if err := ParseIDs([]string{valid, valid}); err != nil {
		t.Errorf("Expected valid ids, got %v", err)
	}

	err := ParseIDs([]string{valid, "nope", "also-nope"})
	e, ok := apperr.As(err)
	if !ok {
		t.Fatalf("Expected *apperr.Error, got %v", err)
	}
	if len(e.Details) != 2 {
		t.Fatalf("Expected 2 details, got %d", len(e.Details))
	}
	if got := strings.Join(e.Details[1].Path, "."); got != "ids.2" {
		t.Errorf("Expected path ids.2, got %s", got)
	}

	if err := ParseIDs(nil); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("Expected validation error for empty ids, got %v", err)
	}
}

func TestFieldPath(t *testing.T) {
	tests := map[string]string{
		"TagCreateInput.name":          "name",
		"ArticleCreateInput.tagIds[2]": "tagIds.2",
		"Outer.items[0].name":          "items.0.name",
		"Outer.matrix[1][2]":           "matrix.1.2",
	}
	for ns, want := range tests {
		if got := strings.Join(fieldPath(ns), "."); got != want {
			t.Errorf("fieldPath(%q) = %q, want %q", ns, got, want)
		}
	}
}
