package libemit

const (
	// DefaultMaxListeners is the listener count per event at which a possible leak is reported.
	DefaultMaxListeners = 10

	// EventNewListener is emitted after a listener has been inserted, with the event name and
	// the *Listener as arguments.
	EventNewListener = "newListener"

	// EventError is the name that strict emitters refuse to emit without listeners.
	EventError = "error"
)

// Option configures an Emitter.
type Option func(*config)

type config struct {
	logger          Logger
	maxListeners    int
	onceReturnValue any
	strictErrors    bool
}

func defaultConfig() config {
	return config{
		logger:          nil,
		maxListeners:    DefaultMaxListeners,
		onceReturnValue: true,
		strictErrors:    false,
	}
}

// WithLogger sets the logger diagnostics are reported to. Defaults to the logrus standard logger.
func WithLogger(l Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxListeners sets the soft cap. Zero disables the check, negative values are ignored.
func WithMaxListeners(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxListeners = n
		}
	}
}

// WithOnceReturnValue sets the value that, returned by a listener, removes it after it fired.
func WithOnceReturnValue(v any) Option {
	return func(c *config) {
		c.onceReturnValue = v
	}
}

// WithStrictErrors makes emitting "error" with no listeners fail with ErrUnhandledError.
func WithStrictErrors(strict bool) Option {
	return func(c *config) {
		c.strictErrors = strict
	}
}
