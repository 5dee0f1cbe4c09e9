// Package errors provides user-specific error definitions for goUserRegistry.
// Every error maps to an HTTP status and is rendered as {"message": "..."}.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// User-specific error codes
const (
	// Validation errors (400 Bad Request)
	ErrCodeInvalidUsername     = "USER_INVALID_USERNAME"
	ErrCodeInvalidDateOfBirth  = "USER_INVALID_DOB"
	ErrCodeInvalidGender       = "USER_INVALID_GENDER"
	ErrCodeInvalidPagination   = "USER_INVALID_PAGINATION"
	ErrCodeInvalidGenderFilter = "USER_INVALID_GENDER_FILTER"

	// Conflicts (409 Conflict)
	ErrCodeUserAlreadyExists = "USER_ALREADY_EXISTS"

	// Transport errors
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodePayloadTooLarge   = "PAYLOAD_TOO_LARGE"
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// User-facing messages
const (
	MsgInvalidUsername     = "Username không hợp lệ. Chỉ chấp nhận chữ, số và gạch dưới"
	MsgUserAlreadyExists   = "Username đã tồn tại."
	MsgInvalidDateOfBirth  = "Ngày sinh không hợp lệ hoặc ở tương lai"
	MsgInvalidGender       = "Giới tính không hợp lệ"
	MsgInvalidPagination   = "Tham số phân trang không hợp lệ. Page và limit phải lớn hơn 0"
	MsgInvalidGenderFilter = "Giới tính không hợp lệ để lọc"

	MsgInvalidJSON       = "Dữ liệu JSON không hợp lệ"
	MsgPayloadTooLarge   = "Nội dung yêu cầu quá lớn"
	MsgMethodNotAllowed  = "Phương thức không được hỗ trợ"
	MsgRateLimitExceeded = "Quá nhiều yêu cầu"
	MsgInternal          = "Lỗi máy chủ nội bộ"
)

// UserError represents a user-specific error with HTTP status mapping
type UserError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

// Error implements the error interface
func (e *UserError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// GetHTTPStatus returns the HTTP status code for the error
func (e *UserError) GetHTTPStatus() int {
	return e.HTTPStatus
}

// Is reports whether target carries the same code, so sentinel values
// below work with errors.Is.
func (e *UserError) Is(target error) bool {
	t, ok := target.(*UserError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewUserValidationError creates validation errors (400 Bad Request)
func NewUserValidationError(errCode, message string) *UserError {
	return &UserError{
		Code:       errCode,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUserConflictError creates conflict errors (409 Conflict)
func NewUserConflictError(errCode, message string) *UserError {
	return &UserError{
		Code:       errCode,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// Sentinel errors for the user operations.
var (
	ErrInvalidUsername     = NewUserValidationError(ErrCodeInvalidUsername, MsgInvalidUsername)
	ErrDuplicateUsername   = NewUserConflictError(ErrCodeUserAlreadyExists, MsgUserAlreadyExists)
	ErrInvalidDateOfBirth  = NewUserValidationError(ErrCodeInvalidDateOfBirth, MsgInvalidDateOfBirth)
	ErrInvalidGender       = NewUserValidationError(ErrCodeInvalidGender, MsgInvalidGender)
	ErrInvalidPagination   = NewUserValidationError(ErrCodeInvalidPagination, MsgInvalidPagination)
	ErrInvalidGenderFilter = NewUserValidationError(ErrCodeInvalidGenderFilter, MsgInvalidGenderFilter)

	ErrInvalidJSON     = NewUserValidationError(ErrCodeInvalidJSON, MsgInvalidJSON)
	ErrPayloadTooLarge = &UserError{
		Code:       ErrCodePayloadTooLarge,
		Message:    MsgPayloadTooLarge,
		HTTPStatus: http.StatusRequestEntityTooLarge,
	}
	ErrMethodNotAllowed = &UserError{
		Code:       ErrCodeMethodNotAllowed,
		Message:    MsgMethodNotAllowed,
		HTTPStatus: http.StatusMethodNotAllowed,
	}
	ErrRateLimitExceeded = &UserError{
		Code:       ErrCodeRateLimitExceeded,
		Message:    MsgRateLimitExceeded,
		HTTPStatus: http.StatusTooManyRequests,
	}
	ErrInternal = &UserError{
		Code:       ErrCodeInternal,
		Message:    MsgInternal,
		HTTPStatus: http.StatusInternalServerError,
	}
)

// IsUserError checks if error is a UserError
func IsUserError(err error) bool {
	_, ok := GetUserError(err)
	return ok
}

// GetUserError extracts UserError from error, unwrapping as needed
func GetUserError(err error) (*UserError, bool) {
	var userErr *UserError
	if stderrors.As(err, &userErr) {
		return userErr, true
	}
	return nil, false
}
