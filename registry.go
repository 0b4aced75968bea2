package libemit

import (
	"sort"
)

// Batch maps exact event names to the listeners to add or remove for each of them.
type Batch map[string][]*Listener

type softCapNotice struct {
	name  string
	count int
	limit int
}

// AddListener registers listener for key. A pattern key registers it on every stored name it
// matches at call time. Registering a listener that is already present for a name does nothing.
//
// After each actual insertion the "newListener" event is emitted with the name and listener, so
// its handlers already see the new listener in Listeners(name).
func (e *Emitter) AddListener(key Key, listener *Listener) *Emitter {
	return e.AddRecord(key, Record{Listener: listener})
}

// On is an alias of AddListener.
func (e *Emitter) On(key Key, listener *Listener) *Emitter {
	return e.AddListener(key, listener)
}

// AddOnceListener registers listener so that it is removed the first time it fires.
func (e *Emitter) AddOnceListener(key Key, listener *Listener) *Emitter {
	return e.AddRecord(key, Record{Listener: listener, Once: true})
}

// Once is an alias of AddOnceListener.
func (e *Emitter) Once(key Key, listener *Listener) *Emitter {
	return e.AddOnceListener(key, listener)
}

// AddRecord registers a pre-built record. See AddListener.
func (e *Emitter) AddRecord(key Key, rec Record) *Emitter {
	if isNilKey(key) || rec.Listener == nil {
		return e
	}

	added, notices := e.add(key, rec)

	e.report(notices)
	for _, name := range added {
		e.notifyNewListener(name, rec.Listener)
	}
	return e
}

// RemoveListener removes listener from key, or from every stored name a pattern key matches.
// Unknown names and listeners are ignored.
func (e *Emitter) RemoveListener(key Key, listener *Listener) *Emitter {
	if isNilKey(key) || listener == nil {
		return e
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.remove(key, listener)
	return e
}

// Off is an alias of RemoveListener.
func (e *Emitter) Off(key Key, listener *Listener) *Emitter {
	return e.RemoveListener(key, listener)
}

// RemoveEvent drops every listener of the given keys. Without keys it drops every listener of
// every event. Entries are emptied in place and kept, so sequences previously returned by
// Listeners stay valid and become empty.
func (e *Emitter) RemoveEvent(keys ...Key) *Emitter {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(keys) == 0 {
		for _, name := range e.order {
			e.events[name].clear()
		}
		return e
	}

	for _, key := range keys {
		if isNilKey(key) {
			continue
		}
		for _, l := range e.resolve(key, false) {
			l.clear()
		}
	}
	return e
}

// RemoveAllListeners is an alias of RemoveEvent.
func (e *Emitter) RemoveAllListeners(keys ...Key) *Emitter {
	return e.RemoveEvent(keys...)
}

// AddListeners registers each listener for key, in order. Dispatch order follows the order
// given here.
func (e *Emitter) AddListeners(key Key, listeners ...*Listener) *Emitter {
	return e.ManipulateListeners(false, key, listeners...)
}

// RemoveListeners removes each listener from key.
func (e *Emitter) RemoveListeners(key Key, listeners ...*Listener) *Emitter {
	return e.ManipulateListeners(true, key, listeners...)
}

// AddBatch registers the listeners of every name in batch.
func (e *Emitter) AddBatch(batch Batch) *Emitter {
	return e.ManipulateBatch(false, batch)
}

// RemoveBatch removes the listeners of every name in batch.
func (e *Emitter) RemoveBatch(batch Batch) *Emitter {
	return e.ManipulateBatch(true, batch)
}

// ManipulateListeners adds (remove=false) or removes (remove=true) listeners for key, one at a
// time in the given order.
func (e *Emitter) ManipulateListeners(remove bool, key Key, listeners ...*Listener) *Emitter {
	for _, listener := range listeners {
		if remove {
			e.RemoveListener(key, listener)
		} else {
			e.AddListener(key, listener)
		}
	}
	return e
}

// ManipulateBatch applies ManipulateListeners to every entry of batch. Names are processed in
// sorted order so the outcome, including "newListener" notifications, is reproducible.
func (e *Emitter) ManipulateBatch(remove bool, batch Batch) *Emitter {
	names := make([]string, 0, len(batch))
	for name := range batch {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		e.ManipulateListeners(remove, Name(name), batch[name]...)
	}
	return e
}

// add inserts rec into every sequence key addresses.
func (e *Emitter) add(key Key, rec Record) (added []string, notices []softCapNotice) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, l := range e.resolve(key, true) {
		if !l.insert(&record{listener: rec.Listener, once: rec.Once}) {
			continue
		}
		added = append(added, l.name)

		if limit := e.cfg.maxListeners; limit > 0 && !l.warned && len(l.records) >= limit {
			l.warned = true
			notices = append(notices, softCapNotice{name: l.name, count: len(l.records), limit: limit})
		}
	}
	return added, notices
}

// remove drops listener from every sequence key addresses. Lock must be held for writing.
func (e *Emitter) remove(key Key, listener *Listener) {
	for _, l := range e.resolve(key, false) {
		if l.remove(listener) {
			l.rearm(e.cfg.maxListeners)
		}
	}
}

func (e *Emitter) report(notices []softCapNotice) {
	for _, n := range notices {
		e.logger.
			WithField("event", n.name).
			WithField("count", n.count).
			WithField("max", n.limit).
			Warnf("possible listener leak detected: %d listeners registered for %q, use SetMaxListeners to raise the limit", n.count, n.name)
	}
}

// notifyNewListener emits the meta event, unless nobody ever asked for it. Registrations on the
// meta event itself are not announced.
func (e *Emitter) notifyNewListener(name string, listener *Listener) {
	if name == EventNewListener || !e.HasEvent(EventNewListener) {
		return
	}

	if err := e.Emit(Name(EventNewListener), name, listener); err != nil {
		e.logger.WithField("event", name).Warnf("newListener handler failed: %s", err)
	}
}
