package libemit

import (
	"sync"
	"sync/atomic"
)

type (
	// Func is a listener callback. The value it returns is compared with the emitter's once
	// return value; a non-nil error aborts the emission and is handed back to the caller of Emit.
	Func func(args ...any) (any, error)

	// Listener is a registered callback. Listeners are compared by identity: registering the
	// same *Listener twice for a name is a no-op and removal matches the pointer.
	Listener struct {
		fn Func
	}

	// Record is a listener together with its fire-once flag.
	Record struct {
		Listener *Listener
		Once     bool
	}

	record struct {
		listener *Listener
		once     bool
		// spent is set once the record has been consumed by a once or sentinel removal, so
		// snapshots taken by outer emissions skip it.
		spent atomic.Bool
	}

	// Listeners is the live listener sequence of one event name. It is the same object the
	// emitter dispatches from, so a caller holding it observes later additions and removals.
	Listeners struct {
		mu      *sync.RWMutex
		name    string
		records []*record
		// warned tracks whether the soft cap diagnostic was already reported.
		warned bool
	}
)

// NewListener wraps fn into a listener handle. It panics if fn is nil.
func NewListener(fn Func) *Listener {
	if fn == nil {
		panic(ErrNilListener)
	}
	return &Listener{fn: fn}
}

// Listen is shorthand for NewListener(Handler(fn)).
func Listen(fn func(args ...any)) *Listener {
	return NewListener(Handler(fn))
}

// Handler adapts a callback with no results.
func Handler(fn func(args ...any)) Func {
	if fn == nil {
		return nil
	}
	return func(args ...any) (any, error) {
		fn(args...)
		return nil, nil
	}
}

// ErrorHandler adapts a callback that may fail.
func ErrorHandler(fn func(args ...any) error) Func {
	if fn == nil {
		return nil
	}
	return func(args ...any) (any, error) {
		return nil, fn(args...)
	}
}

// Call invokes the underlying callback directly, outside of any emission.
func (l *Listener) Call(args ...any) (any, error) {
	return l.fn(args...)
}

func newListeners(mu *sync.RWMutex, name string) *Listeners {
	return &Listeners{mu: mu, name: name}
}

// Name returns the event name this sequence belongs to.
func (l *Listeners) Name() string { return l.name }

// Len returns the number of registered listeners.
func (l *Listeners) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.records)
}

// Handles returns the registered listeners in dispatch order.
func (l *Listeners) Handles() []*Listener {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*Listener, len(l.records))
	for i, r := range l.records {
		result[i] = r.listener
	}
	return result
}

// Records returns the registered records in dispatch order.
func (l *Listeners) Records() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]Record, len(l.records))
	for i, r := range l.records {
		result[i] = Record{Listener: r.listener, Once: r.once}
	}
	return result
}

// Has reports whether listener is registered in this sequence.
func (l *Listeners) Has(listener *Listener) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.indexOf(listener) >= 0
}

// The methods below expect the emitter lock to be held.

func (l *Listeners) indexOf(listener *Listener) int {
	for i, r := range l.records {
		if r.listener == listener {
			return i
		}
	}
	return -1
}

func (l *Listeners) insert(r *record) bool {
	if l.indexOf(r.listener) >= 0 {
		return false
	}
	l.records = append(l.records, r)
	return true
}

func (l *Listeners) remove(listener *Listener) bool {
	idx := l.indexOf(listener)
	if idx < 0 {
		return false
	}
	l.records = append(l.records[:idx:idx], l.records[idx+1:]...)
	return true
}

func (l *Listeners) removeRecord(target *record) bool {
	for i, r := range l.records {
		if r == target {
			l.records = append(l.records[:i:i], l.records[i+1:]...)
			return true
		}
	}
	return false
}

// rearm resets the soft cap diagnostic once the count is back under limit.
func (l *Listeners) rearm(limit int) {
	if limit <= 0 || len(l.records) < limit {
		l.warned = false
	}
}

func (l *Listeners) clear() {
	l.records = nil
	l.warned = false
}

func (l *Listeners) snapshot() []*record {
	if len(l.records) == 0 {
		return nil
	}
	result := make([]*record, len(l.records))
	copy(result, l.records)
	return result
}
