package shared

// DomainError is an error with a stable machine-readable code.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code, so errors built with
// NewDomainError still satisfy errors.Is against the sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// NewValidationError returns an INVALID_INPUT error with a specific message.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrInvalidInput.Code, message)
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrPersistence  = NewDomainError("PERSISTENCE_ERROR", "Storage operation failed")
	ErrUnauthorized = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden    = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrUnavailable  = NewDomainError("UNAVAILABLE", "Upstream service unavailable")
)

// PersistenceError wraps a storage failure. errors.Is(err, ErrPersistence)
// holds for every PersistenceError, and the driver error stays reachable
// through Unwrap.
type PersistenceError struct {
	Op  string
	Err error
}

// NewPersistenceError wraps err as a failed store operation.
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
