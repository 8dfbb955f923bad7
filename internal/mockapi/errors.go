package mockapi

import "errors"

// Failure classes raised by the data access layer. Callers classify with
// errors.Is; the wrapped message is suitable for direct display.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrRateLimited        = errors.New("too many attempts, slow down")
)

var knownErrors = []error{
	ErrNotFound,
	ErrValidation,
	ErrInvalidCredentials,
	ErrDuplicateEmail,
	ErrRateLimited,
}

// Humanize picks the user-facing message for err: the error's own message when
// it belongs to one of the typed failure classes, otherwise the fallback.
func Humanize(err error, fallback string) string {
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return err.Error()
		}
	}
	return fallback
}
