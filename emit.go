package libemit

import (
	"reflect"
)

// Emit is EmitEvent with the arguments given inline.
func (e *Emitter) Emit(key Key, args ...any) error {
	return e.EmitEvent(key, args)
}

// Trigger is an alias of EmitEvent.
func (e *Emitter) Trigger(key Key, args []any) error {
	return e.EmitEvent(key, args)
}

// EmitEvent synchronously calls the listeners addressed by key with args. A pattern key
// dispatches every stored name it matches, in the order the names were first seen.
//
// Each name is dispatched from a snapshot taken when its turn comes: listeners added meanwhile
// wait for the next emission, and listeners removed meanwhile by other code still run if the
// snapshot has them. Once listeners, and listeners returning the once return value, are removed
// from the live sequence as they fire and never run again.
//
// The first error returned by a listener stops the emission and is returned as is. Listeners
// that already ran keep their bookkeeping; the remaining listeners and names are not called.
func (e *Emitter) EmitEvent(key Key, args []any) error {
	if isNilKey(key) {
		return nil
	}

	targets, total, strict := e.targets(key)

	if strict && total == 0 {
		if name, ok := key.exact(); ok && name == EventError {
			return unhandledError(args)
		}
	}

	for _, l := range targets {
		if err := e.dispatch(l, args); err != nil {
			return err
		}
	}
	return nil
}

// targets resolves key for an emission and counts the listeners it currently addresses.
func (e *Emitter) targets(key Key) (targets []*Listeners, total int, strict bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	targets = e.resolve(key, true)
	for _, l := range targets {
		total += len(l.records)
	}
	return targets, total, e.cfg.strictErrors
}

func (e *Emitter) dispatch(l *Listeners, args []any) error {
	snapshot, sentinel := e.snapshot(l)

	for _, r := range snapshot {
		if r.spent.Load() {
			continue
		}

		// Once records are consumed before running so that nested emissions skip them.
		if r.once {
			if !r.spent.CompareAndSwap(false, true) {
				continue
			}
			e.detach(l, r)
		}

		result, err := r.listener.fn(args...)
		if err != nil {
			return err
		}

		if !r.once && sameValue(result, sentinel) && r.spent.CompareAndSwap(false, true) {
			e.detach(l, r)
		}
	}
	return nil
}

func (e *Emitter) snapshot(l *Listeners) ([]*record, any) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return l.snapshot(), e.cfg.onceReturnValue
}

func (e *Emitter) detach(l *Listeners, r *record) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if l.removeRecord(r) {
		l.rearm(e.cfg.maxListeners)
	}
}

// sameValue compares a listener result with the once return value. Nil never matches, and
// values of different or non comparable types are simply not equal.
func sameValue(result, sentinel any) bool {
	if result == nil || sentinel == nil {
		return false
	}

	rv, sv := reflect.ValueOf(result), reflect.ValueOf(sentinel)
	if rv.Type() != sv.Type() || !rv.Comparable() || !sv.Comparable() {
		return false
	}
	return result == sentinel
}
