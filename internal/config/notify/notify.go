// Package notify tells interested components which options changed when the
// configuration is reloaded.
//
// A reload never modifies the old settings; instead the two value sets are
// compared with Diff and the resulting changes are published to observers.
package notify

import (
	"strings"
	"sync"

	"github.com/dshills/alatty/internal/config/layer"
)

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeSet indicates a value was added or updated.
	ChangeSet ChangeType = iota

	// ChangeDelete indicates a value was removed.
	ChangeDelete

	// ChangeReload marks the end of a reload. It is delivered to every
	// observer after the individual changes, even when nothing changed.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeDelete:
		return "delete"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents a configuration change event.
type Change struct {
	// Name is the option that changed. Empty for reload events.
	Name string

	Type     ChangeType
	OldValue any
	NewValue any

	// Source identifies what caused the change, usually a file path.
	Source string
}

// Diff returns the changes that turn old into new, sorted by option name
// within each kind: additions and updates first, then removals.
func Diff(old, new map[string]any, source string) []Change {
	set, removed := layer.Changed(old, new)

	changes := make([]Change, 0, len(set)+len(removed))
	for _, name := range set {
		changes = append(changes, Change{
			Name:     name,
			Type:     ChangeSet,
			OldValue: old[name],
			NewValue: new[name],
			Source:   source,
		})
	}
	for _, name := range removed {
		changes = append(changes, Change{
			Name:     name,
			Type:     ChangeDelete,
			OldValue: old[name],
			Source:   source,
		})
	}
	return changes
}

// Observer is called when configuration changes occur.
type Observer func(change Change)

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

// Notifier manages change subscriptions. Delivery is synchronous, in the
// goroutine that calls Publish.
type Notifier struct {
	mu     sync.RWMutex
	nextID uint64
	closed bool

	global map[uint64]Observer
	byName map[string]map[uint64]Observer
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{
		global: make(map[uint64]Observer),
		byName: make(map[string]map[uint64]Observer),
	}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.global[id] = observer
	return &Subscription{id: id, notifier: n}
}

// SubscribeOption registers an observer for one option. A dotted prefix such
// as "colors" also matches "colors.background". The observer also receives
// reload events.
func (n *Notifier) SubscribeOption(name string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	if n.byName[name] == nil {
		n.byName[name] = make(map[uint64]Observer)
	}
	n.byName[name][id] = observer
	return &Subscription{id: id, notifier: n}
}

// Publish delivers changes in order, then a reload event from source.
func (n *Notifier) Publish(changes []Change, source string) {
	for _, c := range changes {
		n.deliver(c)
	}
	n.deliver(Change{Type: ChangeReload, Source: source})
}

// Close stops all further delivery. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.global, id)
	for name, observers := range n.byName {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.byName, name)
		}
	}
}

// deliver sends a change to every matching observer.
func (n *Notifier) deliver(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}

	var observers []Observer
	for _, obs := range n.global {
		observers = append(observers, obs)
	}
	for name, named := range n.byName {
		if change.Type == ChangeReload || matches(name, change.Name) {
			for _, obs := range named {
				observers = append(observers, obs)
			}
		}
	}
	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(change)
	}
}

// matches reports whether a subscription name covers an option.
func matches(name, option string) bool {
	if name == option {
		return true
	}
	return strings.HasPrefix(option, name+".")
}
