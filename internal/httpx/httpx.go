// Package httpx holds the echo plumbing shared by every HTTP handler:
// request validation and the error-to-response mapping.
package httpx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fekuna/goldsmith-catalog-service/internal/apperror"
	"github.com/fekuna/goldsmith-catalog-service/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MessageResponse is the body of plain acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// ErrorHandler renders AppErrors with their status, validation failures as
// 400 with per-field messages and anything else as an opaque 500.
func ErrorHandler(log logger.ZapLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status >= http.StatusInternalServerError {
			log.Error("request error", zap.String("path", c.Request().URL.Path), zap.Error(err))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.Error("failed to write error response", zap.Error(writeErr))
		}
	}
}

func render(err error) (int, ErrorResponse) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := ErrorResponse{Message: "Validation failed"}
		for _, fe := range verrs {
			out.Errors = append(out.Errors, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		return http.StatusBadRequest, out
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, ErrorResponse{Message: fmt.Sprint(he.Message)}
	}

	status, msg := apperror.StatusOf(err)
	return status, ErrorResponse{Message: msg}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return "Invalid " + fe.Field() + " value"
	case "numeric":
		return fe.Field() + " must be a number"
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
