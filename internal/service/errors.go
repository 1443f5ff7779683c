package service

import (
	"errors"
	"strconv"
	"strings"
)

// Классы ошибок; хендлеры маппят их в HTTP-коды через errors.Is
var (
	ErrValidation      = errors.New("validation error")
	ErrAuthentication  = errors.New("authentication error")
	ErrAuthorization   = errors.New("authorization error")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrExternalService = errors.New("external service error")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newKindError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

var (
	ErrEmailTaken         = newKindError(ErrConflict, "email already registered")
	ErrInvalidCredentials = newKindError(ErrAuthentication, "invalid email or password")
	ErrInvalidResetToken  = newKindError(ErrValidation, "invalid or expired reset token")
	ErrWrongPassword      = newKindError(ErrValidation, "current password is incorrect")
	ErrUserNotFound       = newKindError(ErrNotFound, "user not found")
	ErrItemNotFound       = newKindError(ErrNotFound, "item not found")
	ErrBillNotFound       = newKindError(ErrNotFound, "bill not found")
)

// FieldError ошибка одного поля; Index задан для элементов пачки
type FieldError struct {
	Index   *int   `json:"index,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError набор ошибок валидации входных данных
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		p := f.Field + " " + f.Message
		if f.Index != nil {
			p = "[" + strconv.Itoa(*f.Index) + "] " + p
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: msg}}}
}

// withIndex проставляет номер строки пачки всем ошибкам
func withIndex(fields []FieldError, idx int) []FieldError {
	out := make([]FieldError, len(fields))
	for i, f := range fields {
		n := idx
		f.Index = &n
		out[i] = f
	}
	return out
}

// appendFieldError дополняет ошибку валидации ещё одним полем
func appendFieldError(err error, field, msg string) error {
	if err == nil {
		return fieldError(field, msg)
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		ve.Fields = append(ve.Fields, FieldError{Field: field, Message: msg})
		return ve
	}
	return err
}
