// Package storeerr holds the error taxonomy shared by every storage backend.
//
// Backends never leak driver errors: integrity failures are classified into a
// Kind, and each Kind carries the HTTP status the route layer should answer with.
package storeerr

import (
	"fmt"
	"net/http"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindReferenceIntegrity
	KindRequiredField
	KindIntegrityOther
)

var (
	ErrInternal           = crerr.New("internal storage failure")
	ErrNotFound           = crerr.New("resource not found")
	ErrConflict           = crerr.New("conflict")
	ErrReferenceIntegrity = crerr.New("referenced resource does not exist")
	ErrRequiredField      = crerr.New("required field is missing")
	ErrIntegrityOther     = crerr.New("integrity constraint violated")
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindReferenceIntegrity:
		return "reference_integrity"
	case KindRequiredField:
		return "required_field"
	case KindIntegrityOther:
		return "integrity_other"
	default:
		return "internal"
	}
}

// HTTPStatus is the transport hint for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindReferenceIntegrity, KindIntegrityOther:
		return http.StatusConflict
	case KindRequiredField:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindReferenceIntegrity:
		return ErrReferenceIntegrity
	case KindRequiredField:
		return ErrRequiredField
	case KindIntegrityOther:
		return ErrIntegrityOther
	default:
		return ErrInternal
	}
}

// Error is the typed failure returned by every repository operation.
type Error struct {
	Kind Kind
	// Field is the column or record field involved, when derivable.
	Field string
	// Constraint is the database constraint name, relational backend only.
	Constraint string
	Message    string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.sentinel().Error()
	}
	if e.Kind == KindInternal && e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, storeerr.ErrConflict) match any Conflict-kind error.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (e *Error) HTTPStatus() int { return e.Kind.HTTPStatus() }

func Conflict(field, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("%s already exists", field)
	}
	return &Error{Kind: KindConflict, Field: field, Message: message}
}

func Reference(field, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("referenced %s does not exist", field)
	}
	return &Error{Kind: KindReferenceIntegrity, Field: field, Message: message}
}

// MissingReference names the parent a foreign key points at:
// "team_id" becomes "referenced team does not exist".
func MissingReference(foreignKey string) *Error {
	parent := strings.ReplaceAll(strings.TrimSuffix(foreignKey, "_id"), "_", " ")
	return Reference(foreignKey, fmt.Sprintf("referenced %s does not exist", parent))
}

func Required(field string) *Error {
	return &Error{Kind: KindRequiredField, Field: field, Message: fmt.Sprintf("%s is required", field)}
}

func Integrity(field, message string) *Error {
	if message == "" {
		message = ErrIntegrityOther.Error()
	}
	return &Error{Kind: KindIntegrityOther, Field: field, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal wraps an unexpected failure. op names what was being attempted.
func Internal(err error, op string) *Error {
	return &Error{Kind: KindInternal, Message: op, Err: crerr.WithStack(err)}
}

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var target *Error
	if crerr.As(err, &target) {
		return target, true
	}
	return nil, false
}

// KindOf reports the kind of err. Errors outside the taxonomy are Internal.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps err to its transport status; nil maps to 200.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return KindOf(err).HTTPStatus()
}

// Normalize guarantees err belongs to the taxonomy, wrapping foreign errors as Internal.
func Normalize(err error, op string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	return Internal(err, op)
}
