package usecase

// Error taxonomy. DomainError is a business-rule rejection (safe to show to
// the caller), AuthorizationError a role failure, ValidationError a bad
// input field, TechnicalError an infrastructure fault.

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func IsAuthorizationError(err error) bool {
	_, ok := err.(*AuthorizationError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Well-known domain error codes.
const (
	CodeCustomQuote       = "CUSTOM_QUOTE_REQUIRED"
	CodeServiceNotFound   = "SERVICE_NOT_FOUND"
	CodeSessionNotFound   = "SESSION_NOT_FOUND"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeValidation        = "VALIDATION_ERROR"
)
