package performance

import "github.com/go-faster/errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNotFound          = errors.New("not found")
)

// Error pairs one of the sentinel kinds with the message shown to the user.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func validationError(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func forbidden(action Action) error {
	return &Error{Kind: ErrForbidden, Message: "not allowed to " + string(action)}
}

func invalidTransition(entity Entity, action Action, status string) error {
	return &Error{Kind: ErrInvalidTransition, Message: string(action) + " is not permitted on " + string(entity) + " in status " + status}
}

func notFound(entity Entity, id string) error {
	return &Error{Kind: ErrNotFound, Message: string(entity) + " " + id + " not found"}
}

// Message returns the user-facing text of a core error, or "" for foreign errors.
func Message(err error) string {
	var coreErr *Error
	if errors.As(err, &coreErr) {
		return coreErr.Error()
	}
	return ""
}
