package player

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var (
	ErrValidation  = errors.New("player validation failed")
	ErrUnknownTeam = errors.New("player references unknown team")
)

const (
	MaxFullNameLength = 100
	MaxPositionLength = 50
	MinHeight         = 30
	MaxHeight         = 300
	MinWeight         = 30
	MaxWeight         = 200
	MinJerseyNumber   = 0
	MaxJerseyNumber   = 99
)

// Input carries the writable player fields for create and update. Every field is required; pointers
// distinguish an absent field from a zero value such as jersey number 0.
type Input struct {
	FullName     *string  `json:"full_name" validate:"required,min=1,max=100"`
	Height       *float64 `json:"height" validate:"required,gte=30,lte=300"`
	Weight       *float64 `json:"weight" validate:"required,gte=30,lte=200"`
	Position     *string  `json:"position" validate:"required,min=1,max=50"`
	JerseyNumber *int     `json:"jersey_number" validate:"required,gte=0,lte=99"`
	TeamID       *string  `json:"team_id" validate:"required,min=1"`
}

// FieldViolation describes one failed field constraint. Field is the json field name.
type FieldViolation struct {
	Field   string
	Rule    string
	Message string
}

type ValidationError struct {
	Fields []FieldViolation
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func (e *ValidationError) Add(field, rule, message string) {
	e.Fields = append(e.Fields, FieldViolation{Field: field, Rule: rule, Message: message})
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func fieldValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Normalize trims surrounding whitespace from string fields.
func (in Input) Normalize() Input {
	in.FullName = trimmed(in.FullName)
	in.Position = trimmed(in.Position)
	in.TeamID = trimmed(in.TeamID)
	return in
}

// Validate checks every field bound and returns *ValidationError listing each violation.
func (in Input) Validate() error {
	err := fieldValidator().Struct(in)
	if err == nil {
		return nil
	}
	return ValidationErrorFrom(err)
}

// Apply copies the input fields onto p. Call only after Validate succeeds.
func (in Input) Apply(p *Player) {
	p.FullName = deref(in.FullName)
	p.Height = deref(in.Height)
	p.Weight = deref(in.Weight)
	p.Position = deref(in.Position)
	p.JerseyNumber = deref(in.JerseyNumber)
	p.TeamID = deref(in.TeamID)
}

func (in Input) TeamRef() string {
	return deref(in.TeamID)
}

// ValidationErrorFrom converts validator errors into *ValidationError. Other errors are returned as is.
func ValidationErrorFrom(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldViolation, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), fe.Tag(), violationMessage(fe))
	}
	return out
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Param() == "1" {
			return "is required"
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must not be greater than %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must not be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	return &s
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
