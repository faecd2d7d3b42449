package usecase

import "errors"

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeParse         = "PARSE_ERROR"
	CodeOrderNotFound = "ORDER_NOT_FOUND"
	CodeInvalidStatus = "INVALID_STATUS"
	CodeDatabase      = "DATABASE_ERROR"
	CodeOrderConflict = "ORDER_CONFLICT"
)

// DomainError é um erro de entrada reconhecido: nada foi gravado.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError embrulha falhas do banco durante a escrita principal.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func newParseError(msg string) *DomainError {
	return &DomainError{Code: CodeParse, Message: msg}
}

func newStoreError(msg string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeDatabase, Message: msg, Err: err}
}
