// Package inputval validates request payloads with struct tags and turns
// failures into messages fit to show a user.
//
// Fields are named in messages by their `label` tag, falling back to the Go
// field name. Besides the stock validator rules, these are registered:
//
//	role      Student, CR or Faculty (any case)
//	privacy   Open or Invite-only
//	chatmode  everyone, admin-only or permission-based
package inputval

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Message string
}

// Result collects every failed rule from one Validate call.
type Result struct {
	Errors []FieldError
}

func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			return f.Name
		})
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
			case "student", "cr", "faculty":
				return true
			}
			return false
		})
		_ = v.RegisterValidation("privacy", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == string(models.PrivacyOpen) || s == string(models.PrivacyInviteOnly)
		})
		_ = v.RegisterValidation("chatmode", func(fl validator.FieldLevel) bool {
			_, ok := models.ParseChatMode(fl.Field().String())
			return ok
		})
		validate = v
	})
	return validate
}

// Validate runs the struct's validate tags. A non-struct argument is reported
// as a single error rather than a panic.
func Validate(s any) *Result {
	res := &Result{}
	err := instance().Struct(s)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Errors = append(res.Errors, FieldError{Message: err.Error()})
		return res
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return res
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	case "email":
		return "A valid email address is required."
	case "oneof", "role", "privacy", "chatmode":
		return fmt.Sprintf("%s is not a valid choice.", label)
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}
