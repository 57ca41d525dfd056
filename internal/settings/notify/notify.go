// Package notify provides change notification for settings updates.
//
// Components subscribe to the notifier and receive callbacks when a
// setting changes or the settings files are reloaded from disk.
package notify

import (
	"sync"
)

// EventType represents the type of settings change.
type EventType int

const (
	// EventSet indicates a single setting was set or updated.
	EventSet EventType = iota

	// EventReload indicates the settings were reloaded from disk.
	EventReload
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventSet:
		return "set"
	case EventReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Event represents a settings change.
type Event struct {
	// Key is the settings document key that changed.
	// Empty for reload events.
	Key string

	// Type is the type of change.
	Type EventType

	// Old is the previous value (may be nil).
	Old any

	// New is the new value (may be nil).
	New any

	// Source identifies where the change came from (layer name or
	// file path for reloads).
	Source string
}

// Observer is called when a settings change occurs.
type Observer func(event Event)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages settings change subscriptions. Delivery is
// synchronous; observers run on the notifying goroutine, outside the
// notifier's lock.
type Notifier struct {
	mu sync.RWMutex

	// Observers that receive all events
	observers map[uint64]Observer

	// Key-specific observers
	keyObservers map[string]map[uint64]Observer

	// Next subscription ID
	nextID uint64
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{
		observers:    make(map[uint64]Observer),
		keyObservers: make(map[string]map[uint64]Observer),
	}
}

// Subscribe registers an observer for all events.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// SubscribeKey registers an observer for changes to a specific settings
// key. Key observers also receive reload events.
func (n *Notifier) SubscribeKey(key string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if n.keyObservers[key] == nil {
		n.keyObservers[key] = make(map[uint64]Observer)
	}
	n.keyObservers[key][id] = observer

	return &Subscription{id: id, notifier: n}
}

// NotifySet delivers a set event for key.
func (n *Notifier) NotifySet(key string, old, new any, source string) {
	n.deliver(Event{
		Key:    key,
		Type:   EventSet,
		Old:    old,
		New:    new,
		Source: source,
	})
}

// NotifyReload delivers a reload event.
func (n *Notifier) NotifyReload(source string) {
	n.deliver(Event{
		Type:   EventReload,
		Source: source,
	})
}

// unsubscribe removes an observer by ID.
func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.observers, id)

	for key, observers := range n.keyObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.keyObservers, key)
		}
	}
}

// deliver sends an event to all matching observers.
func (n *Notifier) deliver(event Event) {
	n.mu.RLock()

	var observers []Observer
	for _, obs := range n.observers {
		observers = append(observers, obs)
	}

	if event.Key != "" {
		if keyObs, ok := n.keyObservers[event.Key]; ok {
			for _, obs := range keyObs {
				observers = append(observers, obs)
			}
		}
	} else {
		// Reload events go to every key observer.
		for _, keyObs := range n.keyObservers {
			for _, obs := range keyObs {
				observers = append(observers, obs)
			}
		}
	}

	n.mu.RUnlock()

	for _, obs := range observers {
		obs(event)
	}
}
