package libemit

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidPattern is returned when a regexp or glob key does not compile.
	ErrInvalidPattern = errors.New("invalid event pattern")

	// ErrUnhandledError is returned by strict emitters when "error" is emitted without listeners.
	ErrUnhandledError = errors.New("unhandled error event")

	// ErrNilListener is the panic value of NewListener when given a nil func.
	ErrNilListener = errors.New("listener func cannot be nil")
)

// unhandledError builds the error returned by a strict emitter when "error" is emitted and
// nobody listens. If the first argument is itself an error it is kept as the cause.
func unhandledError(args []any) error {
	if len(args) > 0 {
		if err, ok := args[0].(error); ok && err != nil {
			return errors.Wrapf(ErrUnhandledError, "%s", err)
		}
		return errors.Wrapf(ErrUnhandledError, "%v", args[0])
	}
	return ErrUnhandledError
}
