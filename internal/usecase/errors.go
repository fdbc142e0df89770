package usecase

import "errors"

// DomainError covers business-rule rejections (validation above all).
// Fields carries the per-field breakdown when the code is VALIDATION_ERROR.
type DomainError struct {
	Code    string
	Message string
	Fields  []FieldError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError covers downstream failures: database, storage, PDF render,
// email provider. The code tells the caller which stage broke.
type TechnicalError struct {
	Code    string
	Message string
	Cause   error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Cause
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeStorageFailed = "STORAGE_FAILED"
	CodeDatabase      = "DATABASE_ERROR"
	CodeRenderFailed  = "RENDER_FAILED"
	CodeEmailFailed   = "EMAIL_FAILED"
)
