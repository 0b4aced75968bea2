package libemit

import (
	"sync"
)

// Publisher is the producing side of an Emitter. Components that only fire events should
// depend on it rather than on *Emitter.
type Publisher interface {
	Emit(key Key, args ...any) error
	EmitEvent(key Key, args []any) error
}

var _ Publisher = (*Emitter)(nil)

// Emitter is a synchronous, in-process listener registry. Every instance owns its own
// listeners; nothing is shared between emitters.
//
// All methods are safe for concurrent use. Listeners are always invoked without the internal
// lock held, so they may freely add, remove or emit on the same emitter.
type Emitter struct {
	mu     sync.RWMutex
	events map[string]*Listeners
	// order keeps event names in creation order so pattern resolution is deterministic.
	order  []string
	cfg    config
	logger Logger
}

// New creates an Emitter configured by opts.
func New(opts ...Option) *Emitter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = defaultLogger()
	}

	return &Emitter{
		events: make(map[string]*Listeners),
		cfg:    cfg,
		logger: logger,
	}
}

// Listeners returns the live listener sequence for name, creating an empty one if the name was
// never seen before.
func (e *Emitter) Listeners(name string) *Listeners {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.entry(name)
}

// ListenersFor returns the live sequences addressed by key, indexed by event name. An exact key
// yields a single entry, created if needed; a pattern yields every stored name it matches.
func (e *Emitter) ListenersFor(key Key) map[string]*Listeners {
	if isNilKey(key) {
		return map[string]*Listeners{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	targets := e.resolve(key, true)
	result := make(map[string]*Listeners, len(targets))
	for _, l := range targets {
		result[l.name] = l
	}
	return result
}

// DefineEvent makes sure name exists without touching its listeners.
func (e *Emitter) DefineEvent(name string) *Emitter {
	return e.DefineEvents(name)
}

// DefineEvents is DefineEvent for several names.
func (e *Emitter) DefineEvents(names ...string) *Emitter {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, name := range names {
		e.entry(name)
	}
	return e
}

// HasEvent reports whether name has an entry, empty or not.
func (e *Emitter) HasEvent(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	_, ok := e.events[name]
	return ok
}

// EventNames returns the known event names in creation order.
func (e *Emitter) EventNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, len(e.order))
	copy(names, e.order)
	return names
}

// ListenerCount returns how many listeners key addresses, summed over every matched name.
// Unlike Listeners it never creates an entry.
func (e *Emitter) ListenerCount(key Key) int {
	if isNilKey(key) {
		return 0
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	count := 0
	for _, l := range e.resolve(key, false) {
		count += len(l.records)
	}
	return count
}

// SetMaxListeners changes the soft cap. Zero disables it. The diagnostic is reported once per
// event when its count reaches n, and re-armed when the count drops back under n.
func (e *Emitter) SetMaxListeners(n int) *Emitter {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cfg.maxListeners = n
	return e
}

// SetOnceReturnValue changes the value that makes a listener remove itself by returning it.
// Setting nil disables the behaviour.
func (e *Emitter) SetOnceReturnValue(v any) *Emitter {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cfg.onceReturnValue = v
	return e
}

// entry returns the sequence for name, creating it. Lock must be held for writing.
func (e *Emitter) entry(name string) *Listeners {
	if l, ok := e.events[name]; ok {
		return l
	}

	l := newListeners(&e.mu, name)
	e.events[name] = l
	e.order = append(e.order, name)
	e.logger.WithField("event", name).Debug("event defined")
	return l
}

// resolve maps key to the sequences it addresses. Only an exact key with create set may add an
// entry, so create requires the write lock.
func (e *Emitter) resolve(key Key, create bool) []*Listeners {
	if name, ok := key.exact(); ok {
		if create {
			return []*Listeners{e.entry(name)}
		}
		if l, found := e.events[name]; found {
			return []*Listeners{l}
		}
		return nil
	}

	var result []*Listeners
	for _, name := range e.order {
		if key.Match(name) {
			result = append(result, e.events[name])
		}
	}

	e.logger.WithField("pattern", key.String()).Debugf("pattern resolved to %d events", len(result))
	return result
}
