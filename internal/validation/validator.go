package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/blog-cms-api/internal/apperr"
	"github.com/blog-cms-api/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	phoneRegex = regexp.MustCompile(`^[0-9-]{10,13}$`)
)

// Defaulter is implemented by inputs with optional fields that take a default
type Defaulter interface {
	ApplyDefaults()
}

// Validator checks request payloads against their declared shapes.
// It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a new validator instance with the custom rules registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	mustRegister(v, "slug", func(fl validator.FieldLevel) bool {
		return slugRegex.MatchString(fl.Field().String())
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
	// "" is allowed so updates can clear an optional reference
	mustRegister(v, "uuid_or_empty", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || isValidUUID(s)
	})
	mustRegister(v, "mustbetrue", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		switch f.Kind() {
		case reflect.Bool:
			return f.Bool()
		case reflect.Ptr:
			return !f.IsNil() && f.Elem().Kind() == reflect.Bool && f.Elem().Bool()
		}
		return false
	})

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// Check applies defaults and returns every violation found in input.
// An empty result means input is valid.
func (val *Validator) Check(input interface{}) []apperr.FieldError {
	if d, ok := input.(Defaulter); ok {
		d.ApplyDefaults()
	}

	err := val.v.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperr.FieldError{{Path: []string{}, Message: err.Error()}}
	}

	out := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperr.FieldError{
			Path:    fieldPath(fe.Namespace()),
			Message: message(fe),
		})
	}
	return out
}

// Validate is Check returning a ValidationError, or nil when input is valid
func (val *Validator) Validate(input interface{}) error {
	if details := val.Check(input); len(details) > 0 {
		return apperr.Validation(details)
	}
	return nil
}

// DecodeAndValidate reads a JSON body into dst and validates it. Type
// mismatches reported by the decoder are merged with the rule violations so
// the caller sees every offending field at once.
func (val *Validator) DecodeAndValidate(r io.Reader, dst interface{}) error {
	var details []apperr.FieldError
	seen := make(map[string]bool)

	dec := json.NewDecoder(r)
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.Validation([]apperr.FieldError{{Path: []string{}, Message: "request body is required"}})
		case errors.As(err, &typeErr):
			path := []string{}
			if typeErr.Field != "" {
				path = strings.Split(typeErr.Field, ".")
			}
			seen[strings.Join(path, ".")] = true
			details = append(details, apperr.FieldError{
				Path:    path,
				Message: "must be of type " + jsonKind(typeErr.Type),
			})
		default:
			return apperr.Validation([]apperr.FieldError{{Path: []string{}, Message: "malformed JSON body"}})
		}
	}

	for _, fe := range val.Check(dst) {
		if seen[strings.Join(fe.Path, ".")] {
			continue
		}
		details = append(details, fe)
	}

	if len(details) > 0 {
		return apperr.Validation(details)
	}
	return nil
}

// ParsePagination coerces page/limit query strings. Anything unparsable or
// out of range falls back to the defaults.
func ParsePagination(page, limit, search string) models.ListParams {
	p := models.ListParams{
		Page:   models.DefaultPage,
		Limit:  models.DefaultLimit,
		Search: strings.TrimSpace(search),
	}
	if n, err := strconv.Atoi(strings.TrimSpace(page)); err == nil && n >= 1 {
		p.Page = min(n, models.MaxPage)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil && n >= 1 && n <= models.MaxLimit {
		p.Limit = n
	}
	return p
}

// ParseID checks that an identifier taken from the URL is a UUID
func ParseID(id string) error {
	if !isValidUUID(id) {
		return apperr.InvalidField("id", "must be a valid UUID")
	}
	return nil
}

// ParseIDs checks every identifier of a bulk request
func ParseIDs(ids []string) error {
	if len(ids) == 0 {
		return apperr.InvalidField("ids", "is required")
	}
	var details []apperr.FieldError
	for i, id := range ids {
		if !isValidUUID(id) {
			details = append(details, apperr.FieldError{
				Path:    []string{"ids", strconv.Itoa(i)},
				Message: "must be a valid UUID",
			})
		}
	}
	if len(details) > 0 {
		return apperr.Validation(details)
	}
	return nil
}

// fieldPath turns "ArticleCreateInput.tagIds[1]" into ["tagIds", "1"]
func fieldPath(namespace string) []string {
	segments := strings.Split(namespace, ".")
	if len(segments) > 1 {
		segments = segments[1:]
	}

	path := make([]string, 0, len(segments))
	for _, seg := range segments {
		for seg != "" {
			open := strings.IndexByte(seg, '[')
			if open < 0 {
				path = append(path, seg)
				break
			}
			if open > 0 {
				path = append(path, seg[:open])
			}
			end := strings.IndexByte(seg[open:], ']')
			if end < 0 {
				path = append(path, seg[open:])
				break
			}
			path = append(path, seg[open+1:open+end])
			seg = seg[open+end+1:]
		}
	}
	return path
}

func message(fe validator.FieldError) string {
	unit := "characters"
	switch fe.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = "items"
	}

	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s %s", fe.Param(), unit)
	case "max":
		return fmt.Sprintf("must contain at most %s %s", fe.Param(), unit)
	case "email":
		return "must be a valid email address"
	case "uuid", "uuid4", "uuid_or_empty":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "slug":
		return "must contain only lowercase letters, numbers and single hyphens"
	case "phone":
		return "must be 10 to 13 digits or hyphens"
	case "mustbetrue":
		return "must be accepted"
	case "gt", "gte":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	}
	return t.Kind().String()
}

// isValidUUID accepts only the canonical 36 character form, which is what
// PostgreSQL's uuid type stores
func isValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
