package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode представляет код ошибки
type ErrorCode string

const (
	// Общие ошибки
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"
	ErrCodeMethod       ErrorCode = "METHOD_NOT_ALLOWED"

	// Ошибки удаленного шлюза
	ErrCodeNetwork ErrorCode = "NETWORK_ERROR"
	ErrCodeRemote  ErrorCode = "REMOTE_ERROR"
	ErrCodeDecode  ErrorCode = "DECODE_ERROR"

	// Ошибки хранилища сессии
	ErrCodeSession ErrorCode = "SESSION_ERROR"
)

// AppError представляет типизированную ошибку приложения
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Status    int                    `json:"status,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	Cause     error                  `json:"-"`
}

// Error возвращает строковое представление ошибки
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap возвращает причину ошибки
func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsNotFound проверяет, является ли ошибка ошибкой "не найдено"
func (e *AppError) IsNotFound() bool {
	return e.Code == ErrCodeNotFound
}

// IsValidation проверяет, является ли ошибка ошибкой валидации
func (e *AppError) IsValidation() bool {
	return e.Code == ErrCodeValidation || e.Code == ErrCodeDecode
}

// IsTransport проверяет, что запрос не дошел до сервера или ответ не был получен
func (e *AppError) IsTransport() bool {
	return e.Code == ErrCodeNetwork
}

// WithDetail добавляет детальную информацию к ошибке
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithRequestID добавляет ID запроса к ошибке
func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

// WithStatus запоминает HTTP статус ответа
func (e *AppError) WithStatus(status int) *AppError {
	e.Status = status
	return e
}

// New создает новую ошибку приложения
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Wrap оборачивает существующую ошибку
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// Wrapf оборачивает существующую ошибку с форматированием
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// Конструкторы для часто используемых ошибок

// NewValidationError создает ошибку валидации
func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

// NewNotFoundError создает ошибку "не найдено"
func NewNotFoundError(resource, id interface{}) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource)).
		WithDetail("resource", resource).
		WithDetail("id", id)
}

// NewNetworkError создает ошибку транспорта
func NewNetworkError(endpoint string, err error) *AppError {
	return Wrap(err, ErrCodeNetwork, fmt.Sprintf("Request to %s failed", endpoint)).
		WithDetail("endpoint", endpoint)
}

// NewRemoteError создает ошибку по HTTP статусу ответа шлюза.
// message — текст, присланный сервером (может быть пустым).
func NewRemoteError(status int, message string) *AppError {
	code := ErrCodeRemote
	switch status {
	case http.StatusNotFound:
		code = ErrCodeNotFound
	case http.StatusUnauthorized:
		code = ErrCodeUnauthorized
	case http.StatusForbidden:
		code = ErrCodeForbidden
	case http.StatusConflict:
		code = ErrCodeConflict
	case http.StatusBadRequest:
		code = ErrCodeBadRequest
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return New(code, message).WithStatus(status)
}

// HTTPStatus возвращает HTTP статус код для ошибки
func HTTPStatus(appErr *AppError) int {
	if appErr.Status != 0 {
		return appErr.Status
	}
	switch appErr.Code {
	case ErrCodeValidation, ErrCodeBadRequest, ErrCodeDecode:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeMethod:
		return http.StatusMethodNotAllowed
	case ErrCodeNetwork, ErrCodeRemote:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// AsAppError приводит ошибку к AppError, в том числе обернутую через %w
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err == nil || !stderrors.As(err, &appErr) {
		return nil, false
	}
	return appErr, true
}

// HasCode проверяет код ошибки в цепочке
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsNotFound проверяет, что ошибка в цепочке означает "не найдено"
func IsNotFound(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsNotFound()
}
