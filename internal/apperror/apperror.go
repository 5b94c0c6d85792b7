package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrRateNotSet   = errors.New("gold rate not set for this karat")
	ErrNotFound     = errors.New("not found")
	ErrUploadFailed = errors.New("image upload failed")
	ErrPersistence  = errors.New("persistence failure")
)

// SystemErrorMessage is what clients see for persistence and unknown failures.
const SystemErrorMessage = "internal server error"

// AppError carries one of the sentinel kinds, the HTTP status it maps to and
// a message that is safe to return to clients.
type AppError struct {
	Kind    error
	Err     error
	Status  int
	Message string
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinel as well as anything in the wrapped chain.
func (e *AppError) Is(target error) bool {
	return target == e.Kind
}

func InvalidInput(message string) *AppError {
	return &AppError{Kind: ErrInvalidInput, Status: http.StatusBadRequest, Message: message}
}

func RateNotSet() *AppError {
	return &AppError{Kind: ErrRateNotSet, Status: http.StatusBadRequest, Message: "Gold rate not set for this karat."}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: ErrNotFound, Status: http.StatusNotFound, Message: message}
}

func UploadFailed(err error) *AppError {
	return &AppError{Kind: ErrUploadFailed, Err: err, Status: http.StatusInternalServerError, Message: "Image upload failed"}
}

func Persistence(err error) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Kind: ErrPersistence, Err: err, Status: http.StatusInternalServerError, Message: SystemErrorMessage}
}

// StatusOf resolves the HTTP status and client message for err.
func StatusOf(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}
	return http.StatusInternalServerError, SystemErrorMessage
}
