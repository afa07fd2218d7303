package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrNotAuthenticated   = NewDomainError("NOT_AUTHENTICATED", "No active session")
	ErrNoCustomer         = NewDomainError("NO_CUSTOMER", "A customer must be selected")
	ErrInvalidAmount      = NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	ErrNothingAllocated   = NewDomainError("NOTHING_ALLOCATED", "The payment must be applied to at least one sale")
	ErrOverAllocated      = NewDomainError("OVER_ALLOCATED", "Total applied cannot exceed the payment amount")
	ErrConfirmationNeeded = NewDomainError("CONFIRMATION_NEEDED", "Amount exceeds total outstanding debt and requires confirmation")
)
