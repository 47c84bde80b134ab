package canopy

import (
	"fmt"
	"log/slog"
)

// unsubscriber is implemented by every Event instantiation so node teardown
// can cancel subscriptions without knowing the payload type.
type unsubscriber interface {
	UnsubscribeAll(owner *Node)
}

type subscriber[T any] struct {
	owner   Ref
	owned   bool
	fn      func(T)
	removed bool
}

// alive reports whether the subscriber may still be invoked.
func (s *subscriber[T]) alive() bool {
	return !s.removed && (!s.owned || s.owner.Alive())
}

// Event is a typed publish/subscribe channel. Subscriptions are tied to an
// owner node and die with it: Trigger never invokes a callback whose owner
// has been destroyed. Delivery is synchronous and single-threaded.
//
// The zero value is ready to use. A panic in a subscriber is logged to the
// logger of the UI whose node first subscribed, or the one given to
// SetLogger.
type Event[T any] struct {
	subs   []*subscriber[T]
	logger *slog.Logger
}

// Signal is an Event without a payload.
type Signal = Event[struct{}]

// Subscription identifies a single registration on an Event.
type Subscription struct {
	cancel func()
}

// Cancel removes the subscription. Safe to call more than once.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Subscribe registers fn to run on every Trigger while owner is alive.
// A nil owner never expires. The owner is used only for liveness checks.
func (e *Event[T]) Subscribe(owner *Node, fn func(T)) Subscription {
	s := &subscriber[T]{fn: fn}
	if owner != nil {
		if owner.disposed {
			owner.ui.structural("Subscribe: owner %q is destroyed", owner.Name)
			return Subscription{}
		}
		s.owner = owner.ref
		s.owned = true
		owner.trackSubscription(e)
		if e.logger == nil {
			e.logger = owner.ui.logger
		}
	}
	e.subs = append(e.subs, s)
	return Subscription{cancel: func() { e.remove(s) }}
}

// Sub is Subscribe for callbacks that ignore the payload.
func (e *Event[T]) Sub(owner *Node, fn func()) Subscription {
	return e.Subscribe(owner, func(T) { fn() })
}

// Trigger prunes subscribers whose owner is gone, then invokes the rest in
// subscription order. Subscriptions added while a Trigger is running are
// first invoked by the next Trigger.
func (e *Event[T]) Trigger(v T) {
	e.prune()
	if len(e.subs) == 0 {
		return
	}
	snapshot := make([]*subscriber[T], len(e.subs))
	copy(snapshot, e.subs)
	for _, s := range snapshot {
		// Earlier callbacks may have destroyed this owner or unsubscribed.
		if !s.alive() {
			continue
		}
		e.invoke(s, v)
	}
}

// UnsubscribeAll removes every subscription owned by owner.
func (e *Event[T]) UnsubscribeAll(owner *Node) {
	if owner == nil {
		return
	}
	kept := e.subs[:0]
	for _, s := range e.subs {
		if s.owned && s.owner == owner.ref {
			s.removed = true
			continue
		}
		kept = append(kept, s)
	}
	clear(e.subs[len(kept):])
	e.subs = kept
}

// SetLogger sets the logger used for panics in subscribers without an owner.
func (e *Event[T]) SetLogger(l *slog.Logger) {
	e.logger = l
}

// Len returns the number of registered subscriptions, including any whose
// owner died since the last Trigger.
func (e *Event[T]) Len() int {
	return len(e.subs)
}

func (e *Event[T]) remove(target *subscriber[T]) {
	target.removed = true
	for i, s := range e.subs {
		if s == target {
			copy(e.subs[i:], e.subs[i+1:])
			e.subs[len(e.subs)-1] = nil
			e.subs = e.subs[:len(e.subs)-1]
			return
		}
	}
}

func (e *Event[T]) prune() {
	kept := e.subs[:0]
	for _, s := range e.subs {
		if s.alive() {
			kept = append(kept, s)
		}
	}
	clear(e.subs[len(kept):])
	e.subs = kept
}

// invoke calls one subscriber, isolating a panic to that subscriber.
func (e *Event[T]) invoke(s *subscriber[T], v T) {
	if n := s.owner.Node(); n != nil {
		n.ui.guard(n, "event", func() { s.fn(v) })
		return
	}
	defer func() {
		if r := recover(); r != nil {
			l := e.logger
			if l == nil {
				l = slog.Default()
			}
			l.Error("event subscriber panicked",
				"payload", fmt.Sprintf("%T", v), "panic", r)
		}
	}()
	s.fn(v)
}
