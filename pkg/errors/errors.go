package custom_error

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Postgres error codes the stores translate.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
	CodeInsufficientStock   = "insufficient_stock"
)

// ValidationError reports required draft fields left empty or unreadable.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("Missing Information: please fill in all required fields (%s)", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("Invalid Information: check the values of %s", strings.Join(e.Invalid, ", "))
}

func (e *ValidationError) Title() string {
	if len(e.Missing) > 0 {
		return "Missing Information"
	}
	return "Invalid Information"
}

// InsufficientStockError is raised before any create call when a draft asks
// for more than the item currently holds.
type InsufficientStockError struct {
	ItemCode  string
	Unit      string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	amount := strings.TrimSpace(e.Available.String() + " " + e.Unit)
	return fmt.Sprintf("Only %s available in stock.", amount)
}

func (e *InsufficientStockError) Title() string {
	return "Insufficient Stock"
}

// RemoteError wraps a rejection from the storage collaborator. Message is
// safe to show to the user verbatim.
type RemoteError struct {
	Message string
	Code    string
	Err     error
}

func NewRemoteError(message string, err error) *RemoteError {
	return &RemoteError{Message: message, Err: err}
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (code: %s)", e.Message, e.Code)
	}
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func (e *RemoteError) Title() string {
	return "Request Failed"
}

// IsConstraintViolation reports whether the collaborator refused the write
// because of a data constraint rather than an outage.
func (e *RemoteError) IsConstraintViolation() bool {
	switch e.Code {
	case CodeUniqueViolation, CodeForeignKeyViolation, CodeCheckViolation, CodeInsufficientStock:
		return true
	default:
		return false
	}
}

func WrapDBError(message, code string) error {
	switch code {
	case CodeUniqueViolation:
		return &RemoteError{Message: message + ": record already exists", Code: code}
	case CodeForeignKeyViolation:
		return &RemoteError{Message: message + ": referenced record does not exist", Code: code}
	case CodeCheckViolation:
		return &RemoteError{Message: message + ": value outside the allowed range", Code: code}
	default:
		return &RemoteError{Message: fmt.Sprintf("%s: uncategorized error occurred with code %s", message, code), Code: code}
	}
}

// AsRemote returns err as a RemoteError, wrapping it with message when it is
// some other failure.
func AsRemote(message string, err error) *RemoteError {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote
	}
	return NewRemoteError(message, err)
}
