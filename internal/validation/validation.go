// Package validation checks request bodies against per-entity schemas. A
// schema is shared by the create and update paths: create enforces required
// keys, update accepts any subset. Either way the outcome is a Result holding
// the accepted patch or the field errors, never a panic.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/store"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes one rejected field. Field is a dotted JSON path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of validating a body
type Result struct {
	Patch  store.Patch
	Errors []FieldError
}

// OK reports whether the body passed
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Message aggregates the field errors into one human-readable line
func (r Result) Message() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		if e.Field == "" {
			parts = append(parts, e.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s at %q", e.Message, e.Field))
	}
	return "Validation error: " + strings.Join(parts, "; ")
}

// Decode writes the accepted patch into dst, typically a models entity
func (r Result) Decode(dst any) error {
	raw, err := json.Marshal(r.Patch)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// Schema validates bodies for one entity kind. The fields struct lists every
// client-writable key: pointer fields with `validate` rules, and a
// `null:"true"` tag on fields that may be explicitly cleared.
type Schema struct {
	name     string
	fields   reflect.Type
	keys     map[string]bool
	nullable map[string]bool
	required []string
}

// NewSchema builds a schema from a fields struct and the keys required on create
func NewSchema(name string, fields any, required ...string) *Schema {
	typ := reflect.TypeOf(fields)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	s := &Schema{
		name:     name,
		fields:   typ,
		keys:     make(map[string]bool),
		nullable: make(map[string]bool),
		required: required,
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		key := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if key == "" || key == "-" {
			continue
		}
		s.keys[key] = true
		if f.Tag.Get("null") == "true" {
			s.nullable[key] = true
		}
	}
	return s
}

// Name returns the entity kind the schema validates
func (s *Schema) Name() string {
	return s.name
}

// Create validates a full payload for a new record
func (s *Schema) Create(body []byte) Result {
	return s.check(body, false)
}

// Update validates a partial payload for an existing record
func (s *Schema) Update(body []byte) Result {
	return s.check(body, true)
}

func (s *Schema) check(body []byte, partial bool) Result {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return Result{Errors: []FieldError{{Message: "Expected a JSON object"}}}
	}

	// unknown and server-controlled keys are dropped, not rejected
	patch := make(store.Patch, len(raw))
	for k, v := range raw {
		if s.keys[k] {
			patch[k] = v
		}
	}

	var errs []FieldError
	if !partial {
		for _, key := range s.required {
			if _, ok := patch[key]; !ok {
				errs = append(errs, FieldError{Field: key, Message: "Required"})
			}
		}
	}
	for key, v := range patch {
		if isNull(v) && !s.nullable[key] {
			errs = append(errs, FieldError{Field: key, Message: "Expected a value, received null"})
		}
	}
	if len(errs) > 0 {
		sortErrors(errs)
		return Result{Errors: errs}
	}

	inst := reflect.New(s.fields)
	encoded, err := json.Marshal(patch)
	if err != nil {
		return Result{Errors: []FieldError{{Message: "Expected a JSON object"}}}
	}
	if err := json.Unmarshal(encoded, inst.Interface()); err != nil {
		return Result{Errors: []FieldError{decodeError(err)}}
	}

	if err := validate.Struct(inst.Interface()); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Result{Errors: []FieldError{{Message: err.Error()}}}
		}
		for _, fe := range verrs {
			errs = append(errs, FieldError{Field: fieldPath(fe), Message: describe(fe)})
		}
		sortErrors(errs)
		return Result{Errors: errs}
	}

	return Result{Patch: patch}
}

func isNull(v json.RawMessage) bool {
	return len(v) == 0 || strings.TrimSpace(string(v)) == "null"
}

func decodeError(err error) FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return FieldError{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("Expected %s, received %s", jsonKind(typeErr.Type), typeErr.Value),
		}
	}
	return FieldError{Message: "Invalid value: " + err.Error()}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

// fieldPath drops the root struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "min":
		if fe.Param() == "1" && fe.Kind() == reflect.String {
			return "Must not be empty"
		}
		return "Must be at least " + fe.Param()
	case "max":
		return "Must be at most " + fe.Param()
	case "gte":
		return "Must be greater than or equal to " + fe.Param()
	case "lte":
		return "Must be less than or equal to " + fe.Param()
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "Invalid email"
	default:
		return "Invalid value"
	}
}

func sortErrors(errs []FieldError) {
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
}
