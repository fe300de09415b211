package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	reflector "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders JSON Schema error kinds.
var printer = message.NewPrinter(language.English)

// constraints checks `validate` tags. validator.Validate caches struct
// metadata and is safe for concurrent use.
var constraints = newConstraintValidator()

func newConstraintValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their external json name, e.g. "multimedia.path".
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("relpath", isRelativePath); err != nil {
		panic(fmt.Sprintf("schema: registering relpath rule: %v", err))
	}
	return v
}

// isRelativePath accepts a non-empty, lexically local path: not absolute
// and never escaping its base through "..".
func isRelativePath(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s != "" && filepath.IsLocal(s)
}

// StructType is a Type backed by the Go struct T.
type StructType[T any] struct {
	name     string
	document []byte
	compiled *jsonschema.Schema
}

// NewStruct reflects a JSON Schema from T and compiles it.
//
// Parameters:
//   - name: The type name resolved by the registry, e.g. "CameraConfig"
//
// Returns:
//   - *StructType[T]: Ready to validate
//   - error: If T is not a struct or its schema does not compile
func NewStruct[T any](name string) (*StructType[T], error) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is %s, not a struct", ErrInvalidModule, name, t.Kind())
	}

	r := &reflector.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	document, err := json.MarshalIndent(r.ReflectFromType(t), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("reflecting schema for %s: %w", name, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("parsing schema for %s: %w", name, err)
	}

	location := name + ".schema.json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(location, doc); err != nil {
		return nil, fmt.Errorf("adding schema for %s: %w", name, err)
	}
	compiled, err := c.Compile(location)
	if err != nil {
		return nil, fmt.Errorf("compiling schema for %s: %w", name, err)
	}

	return &StructType[T]{
		name:     name,
		document: document,
		compiled: compiled,
	}, nil
}

// MustStruct is like NewStruct but panics on error.
func MustStruct[T any](name string) *StructType[T] {
	st, err := NewStruct[T](name)
	if err != nil {
		panic(err)
	}
	return st
}

// Name returns the type name.
func (s *StructType[T]) Name() string {
	return s.name
}

// JSONSchema returns the reflected JSON Schema document.
func (s *StructType[T]) JSONSchema() []byte {
	return bytes.Clone(s.document)
}

// Validate checks raw against the schema and returns a *T.
// Any failure is returned as a *ValidationError.
func (s *StructType[T]) Validate(raw []byte) (any, error) {
	return s.Decode(raw)
}

// Decode is the typed form of Validate.
func (s *StructType[T]) Decode(raw []byte) (*T, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, &ValidationError{Type: s.name, Fields: []FieldError{{Message: "malformed JSON: " + err.Error()}}}
	}

	if err := s.compiled.Validate(inst); err != nil {
		var verr *jsonschema.ValidationError
		if !errors.As(err, &verr) {
			return nil, fmt.Errorf("validating %s: %w", s.name, err)
		}
		return nil, &ValidationError{Type: s.name, Fields: schemaFieldErrors(verr)}
	}

	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, &ValidationError{Type: s.name, Fields: []FieldError{decodeFieldError(err)}}
	}

	if err := constraints.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("checking constraints for %s: %w", s.name, err)
		}
		return nil, &ValidationError{Type: s.name, Fields: constraintFieldErrors(verrs)}
	}

	return v, nil
}

// schemaFieldErrors flattens a JSON Schema error tree into its leaves.
func schemaFieldErrors(verr *jsonschema.ValidationError) []FieldError {
	if len(verr.Causes) > 0 {
		var out []FieldError
		for _, cause := range verr.Causes {
			out = append(out, schemaFieldErrors(cause)...)
		}
		return out
	}

	msg := verr.ErrorKind.LocalizedString(printer)
	if req, ok := verr.ErrorKind.(*kind.Required); ok {
		out := make([]FieldError, 0, len(req.Missing))
		for _, missing := range req.Missing {
			loc := append(append([]string(nil), verr.InstanceLocation...), missing)
			out = append(out, FieldError{Field: strings.Join(loc, "/"), Message: msg})
		}
		return out
	}

	return []FieldError{{Field: strings.Join(verr.InstanceLocation, "/"), Message: msg}}
}

func decodeFieldError(err error) FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return FieldError{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("cannot use %s value as %s", typeErr.Value, typeErr.Type),
		}
	}
	return FieldError{Message: err.Error()}
}

func constraintFieldErrors(verrs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := "failed " + fe.Tag() + " constraint"
		if fe.Param() != "" {
			msg += " (" + fe.Param() + ")"
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}
