package usecase

import "errors"

const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeAuthentication      = "AUTHENTICATION_ERROR"
	CodeConfiguration       = "CONFIGURATION_ERROR"
	CodeTemplateNotFound    = "TEMPLATE_NOT_FOUND"
	CodeOfferConfigNotFound = "OFFER_CONFIG_NOT_FOUND"
	CodeLeadNotFound        = "LEAD_NOT_FOUND"
	CodeDatabase            = "DATABASE_ERROR"
)

type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// ErrorCode returns the code of a DomainError or TechnicalError found in
// err's chain, or "" for anything else.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func validationFailed(message string, fields ...ValidationError) *DomainError {
	return &DomainError{Code: CodeValidation, Message: message, Fields: fields}
}

func authFailed(message string) *DomainError {
	return &DomainError{Code: CodeAuthentication, Message: message}
}

func databaseError(message string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeDatabase, Message: message + ": " + err.Error(), Err: err}
}
