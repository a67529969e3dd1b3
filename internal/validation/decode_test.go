package validation

import (
	"strings"
	"testing"

	"github.com/blog-cms-api/internal/apperr"
	"github.com/blog-cms-api/internal/models"
)

func TestDecodeAndValidate(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		body       string
		wantErr    bool
		wantFields []string
	}{
		{
			name: "valid contact",
			body: `{"companyName":"Acme","contactName":"Jane","email":"jane@example.com","phone":"0312345678","inquiry":"hi","privacyPolicy":true}`,
		},
		{
			name:       "privacy policy as string",
			body:       `{"companyName":"Acme","contactName":"Jane","email":"jane@example.com","phone":"0312345678","inquiry":"hi","privacyPolicy":"true"}`,
			wantErr:    true,
			wantFields: []string{"privacyPolicy"},
		},
		{
			name:       "privacy policy as number plus bad phone",
			body:       `{"companyName":"Acme","contactName":"Jane","email":"jane@example.com","phone":"abc1234567","inquiry":"hi","privacyPolicy":1}`,
			wantErr:    true,
			wantFields: []string{"privacyPolicy", "phone"},
		},
		{
			name:    "empty body",
			body:    ``,
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			body:    `{"companyName":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var input models.ContactCreateInput
			err := validator.DecodeAndValidate(strings.NewReader(tt.body), &input)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}

			e, ok := apperr.As(err)
			if !ok || e.Kind != apperr.KindValidation {
				t.Fatalf("Expected validation error, got %v", err)
			}
			for _, wantField := range tt.wantFields {
				if !hasField(e.Details, wantField) {
					t.Errorf("Expected error for field '%s', got %v", wantField, e.Details)
				}
			}
		})
	}
}

func TestDecodeAndValidate_NoDuplicateForTypeError(t *testing.T) {
	validator := NewValidator()
	body := `{"companyName":"Acme","contactName":"Jane","email":"jane@example.com","phone":"0312345678","inquiry":"hi","privacyPolicy":"yes"}`

	var input models.ContactCreateInput
	err := validator.DecodeAndValidate(strings.NewReader(body), &input)
	e, ok := apperr.As(err)
	if !ok {
		t.Fatalf("Expected apperr, got %v", err)
	}
	if len(e.Details) != 1 {
		t.Errorf("Expected exactly one detail for privacyPolicy, got %v", e.Details)
	}
}
