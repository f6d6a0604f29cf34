package graph

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/storelane/customer-accounts/internal/core/ports"
)

var validate = validator.New()

type signupInput struct {
	Email                string `validate:"required,email"`
	Password             string `validate:"required"`
	PasswordConfirmation string `validate:"required"`
}

type activateInput struct {
	Email          string `validate:"required,email"`
	Password       string `validate:"required"`
	ActivationCode string `validate:"required"`
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// validateInput runs struct validation and flattens the result into a
// single readable message.
func validateInput(i any) error {
	err := validate.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return err
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func argMap(args map[string]interface{}, key string) map[string]interface{} {
	m, _ := args[key].(map[string]interface{})
	return m
}

func stringArg(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func intArg(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// timeArg reads a Unix-millisecond timestamp argument.
func timeArg(m map[string]interface{}, key string) *time.Time {
	var ms int64
	switch v := m[key].(type) {
	case int:
		ms = int64(v)
	case float64:
		ms = int64(v)
	default:
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}

// decodeListParams maps the customers(data: ...) argument onto repository
// list parameters.
func decodeListParams(m map[string]interface{}) ports.ListParams {
	var params ports.ListParams
	if m == nil {
		return params
	}

	params.Skip = intArg(m, "skip")
	params.Take = intArg(m, "take")

	if cursor := argMap(m, "cursor"); cursor != nil {
		params.Cursor = stringArg(cursor, "id")
	}
	if where := argMap(m, "where"); where != nil {
		params.Where = &ports.CustomerFilter{
			ID:        stringArg(where, "id"),
			Email:     stringArg(where, "email"),
			CreatedAt: timeArg(where, "createdAt"),
			UpdatedAt: timeArg(where, "updatedAt"),
		}
	}
	if orderBy := argMap(m, "orderBy"); orderBy != nil {
		if dir := stringArg(orderBy, "createdAt"); dir != "" {
			params.OrderBy = &ports.OrderBy{CreatedAt: dir}
		}
	}

	return params
}
