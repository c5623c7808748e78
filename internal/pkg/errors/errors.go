package errors

import (
	"fmt"
	"maps"
)

type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	StatusCode int               `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails возвращает копию ошибки с деталями; исходная (часто глобальная) не меняется
func (e *AppError) WithDetails(details map[string]string) *AppError {
	cp := *e
	cp.Details = maps.Clone(details)
	return &cp
}

// WithDetail - копия ошибки с одной деталью вида поле -> сообщение
func (e *AppError) WithDetail(field, message string) *AppError {
	return e.WithDetails(map[string]string{field: message})
}
