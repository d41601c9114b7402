package shared

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure. One message for unknown
	// email and wrong password so neither field is confirmed to an attacker.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrValidation indicates malformed input to a mutating operation.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a mutation blocked by a referential constraint.
	ErrConflict = errors.New("conflict")
	// ErrForbidden indicates the principal lacks the required permission.
	ErrForbidden = errors.New("forbidden")
	// ErrCSRFTokenMissing occurs when the CSRF token is absent.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

// UserSafeMessage maps an error to copy that can be rendered to the user
// without leaking internals.
func UserSafeMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrNotFound):
		return "The requested record was not found"
	case errors.Is(err, ErrConflict), errors.Is(err, ErrValidation):
		return err.Error()
	case errors.Is(err, ErrForbidden):
		return "Access denied. You do not have permission to perform this action."
	default:
		return "Something went wrong. Please try again."
	}
}
