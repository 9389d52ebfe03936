package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"weatherdash/internal/db/weatherrecord"
)

// FieldError names one offending field and why it was rejected.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries the full list of offending fields for a candidate
// record.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "validation failed: " + strings.Join(names, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields under their JSON names so API clients can match errors
	// to the payload they sent.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// ValidateRecord checks a candidate record against the canonical schema.
// It has no network or storage side effects.
func ValidateRecord(record *weatherrecord.WeatherRecord) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, FieldError{
			Field:  fieldPath(fe),
			Reason: reason(fe),
		})
	}
	return verr
}

// MissingField builds a ValidationError for a field absent from the request
// itself, e.g. a fetch with no city and no configured default.
func MissingField(field, why string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Reason: why}}}
}

// fieldPath strips the struct name prefix, e.g.
// "WeatherRecord.coordinates.lon" -> "coordinates.lon".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}
