package stride

import "github.com/voxelforge/stride/block"

const (
	EVENT_LAND EventType = iota
	EVENT_TAKEOFF
	EVENT_BLOCK_CONTACT
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// LandEvent fires the tick an entity transitions into the ground
// state. Block is the supporting block when one was found.
type LandEvent struct {
	Entity   *Entity
	Block    block.Pos
	HasBlock bool
}

func (e LandEvent) Type() EventType { return EVENT_LAND }

// TakeoffEvent fires the tick an entity leaves the ground state.
type TakeoffEvent struct {
	Entity *Entity
}

func (e TakeoffEvent) Type() EventType { return EVENT_TAKEOFF }

// BlockContactEvent fires when a grounded entity's supporting block
// changes, including the first one after landing.
type BlockContactEvent struct {
	Entity *Entity
	Block  block.Pos
	State  block.State
}

func (e BlockContactEvent) Type() EventType { return EVENT_BLOCK_CONTACT }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Ground state tracking for Land/Takeoff detection
	groundStates map[*Entity]bool

	// Last known supporting block per grounded entity
	supports map[*Entity]block.Pos
}

func NewEvents() Events {
	return Events{
		listeners:    make(map[EventType][]EventListener),
		buffer:       make([]Event, 0, 64),
		groundStates: make(map[*Entity]bool),
		supports:     make(map[*Entity]block.Pos),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// processGroundEvents compares each entity's ground state against the
// previous tick to detect Land and Takeoff transitions, and tracks the
// supporting block to emit contact events. Called once per tick after
// all entities moved.
func (e *Events) processGroundEvents(entities []*Entity) {
	for _, entity := range entities {
		wasOnGround := e.groundStates[entity]
		onGround := entity.OnGround()
		e.groundStates[entity] = onGround

		support, hasSupport := entity.SupportingBlock()

		if onGround && !wasOnGround {
			e.buffer = append(e.buffer, LandEvent{
				Entity:   entity,
				Block:    support,
				HasBlock: hasSupport,
			})
		} else if !onGround && wasOnGround {
			e.buffer = append(e.buffer, TakeoffEvent{Entity: entity})
		}

		if !onGround || !hasSupport {
			delete(e.supports, entity)
			continue
		}
		if previous, tracked := e.supports[entity]; !tracked || previous != support {
			e.supports[entity] = support
			e.buffer = append(e.buffer, BlockContactEvent{
				Entity: entity,
				Block:  support,
				State:  entity.world.BlockState(support),
			})
		}
	}
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
