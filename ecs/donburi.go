package ecs

import (
	"github.com/phanxgames/canopy"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TouchEventType is the Donburi event type for dispatched touches.
var TouchEventType = events.NewEventType[canopy.TouchEvent]()

// StoreOption configures a store created by NewDonburiStore.
type StoreOption func(*donburiStore)

// WithPhases limits the store to touches in the given phases. Systems that
// only react to taps can drop the Moved stream this way.
func WithPhases(phases ...canopy.Phase) StoreOption {
	return func(s *donburiStore) {
		s.phases = make(map[canopy.Phase]bool, len(phases))
		for _, p := range phases {
			s.phases[p] = true
		}
	}
}

type donburiStore struct {
	world  donburi.World
	phases map[canopy.Phase]bool
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Touch events are queued on TouchEventType and delivered by
// ProcessEvents. Without options every phase is published.
func NewDonburiStore(world donburi.World, opts ...StoreOption) canopy.EntityStore {
	s := &donburiStore{world: world}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *donburiStore) EmitEvent(event canopy.TouchEvent) {
	if s.phases != nil && !s.phases[event.Touch.Phase] {
		return
	}
	TouchEventType.Publish(s.world, event)
}

// SubscribePhase subscribes fn to touches of a single phase for one entity.
// An entity of 0 matches every entity.
func SubscribePhase(world donburi.World, phase canopy.Phase, entity uint32, fn func(canopy.TouchEvent)) {
	TouchEventType.Subscribe(world, func(w donburi.World, e canopy.TouchEvent) {
		if e.Touch.Phase != phase || (entity != 0 && e.EntityID != entity) {
			return
		}
		fn(e)
	})
}
