package planar

import (
	"bytes"
	"slices"

	"github.com/akmonengine/planar/actor"
)

const (
	OVERLAP_ENTER EventType = iota
	OVERLAP_STAY
	OVERLAP_EXIT
	PROXIMITY_ENTER
	PROXIMITY_EXIT
)

type pairKey struct {
	bodyA *actor.Body
	bodyB *actor.Body
}

// makePairKey creates a normalized pair key, the body with the smallest ID first
func makePairKey(bodyA, bodyB *actor.Body) pairKey {
	if bytes.Compare(bodyB.ID[:], bodyA.ID[:]) < 0 {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

func comparePairKeys(a, b pairKey) int {
	if c := bytes.Compare(a.bodyA.ID[:], b.bodyA.ID[:]); c != 0 {
		return c
	}
	return bytes.Compare(a.bodyB.ID[:], b.bodyB.ID[:])
}

type EventType uint8

func (t EventType) String() string {
	switch t {
	case OVERLAP_ENTER:
		return "overlap_enter"
	case OVERLAP_STAY:
		return "overlap_stay"
	case OVERLAP_EXIT:
		return "overlap_exit"
	case PROXIMITY_ENTER:
		return "proximity_enter"
	case PROXIMITY_EXIT:
		return "proximity_exit"
	}
	return "unknown"
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Overlap events
type OverlapEnterEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e OverlapEnterEvent) Type() EventType { return OVERLAP_ENTER }

type OverlapStayEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e OverlapStayEvent) Type() EventType { return OVERLAP_STAY }

type OverlapExitEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e OverlapExitEvent) Type() EventType { return OVERLAP_EXIT }

// Proximity events: a pair came within the world margin (overlapping included), or left it
type ProximityEnterEvent struct {
	BodyA    *actor.Body
	BodyB    *actor.Body
	Distance float64
}

func (e ProximityEnterEvent) Type() EventType { return PROXIMITY_ENTER }

type ProximityExitEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e ProximityExitEvent) Type() EventType { return PROXIMITY_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events dispatches the pair events of successive Detect passes
type Events struct {
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Pairs of the previous and current pass, tracked for Enter/Stay/Exit detection.
	// The value is true when the pair overlaps.
	previousPairs map[pairKey]bool
	currentPairs  map[pairKey]bool
	// currentOrder keeps the sorted order of the current pass
	currentOrder []pairKey
	distances    map[pairKey]float64
}

func NewEvents() Events {
	return Events{
		listeners:     make(map[EventType][]EventListener),
		buffer:        make([]Event, 0, 256),
		previousPairs: make(map[pairKey]bool),
		currentPairs:  make(map[pairKey]bool),
		distances:     make(map[pairKey]float64),
	}
}

// lazyInit makes the zero value usable
func (e *Events) lazyInit() {
	if e.listeners == nil {
		*e = NewEvents()
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.lazyInit()
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordProximities registers the pairs found by a Detect pass
func (e *Events) recordProximities(proximities []Proximity) {
	e.lazyInit()

	for _, p := range proximities {
		pair := makePairKey(p.BodyA, p.BodyB)
		if _, ok := e.currentPairs[pair]; !ok {
			e.currentOrder = append(e.currentOrder, pair)
		}
		e.currentPairs[pair] = e.currentPairs[pair] || p.Overlapping
		e.distances[pair] = p.Distance
	}
}

// processPairEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processPairEvents() {
	for _, pair := range e.currentOrder {
		overlapping := e.currentPairs[pair]
		wasOverlapping, wasNear := e.previousPairs[pair]

		if !wasNear {
			e.buffer = append(e.buffer, ProximityEnterEvent{
				BodyA:    pair.bodyA,
				BodyB:    pair.bodyB,
				Distance: e.distances[pair],
			})
		}

		switch {
		case overlapping && wasOverlapping:
			e.buffer = append(e.buffer, OverlapStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		case overlapping:
			e.buffer = append(e.buffer, OverlapEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		case wasOverlapping:
			e.buffer = append(e.buffer, OverlapExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	// Pairs gone from the current pass
	var gone []pairKey
	for pair := range e.previousPairs {
		if _, ok := e.currentPairs[pair]; !ok {
			gone = append(gone, pair)
		}
	}
	slices.SortFunc(gone, comparePairKeys)

	for _, pair := range gone {
		if e.previousPairs[pair] {
			e.buffer = append(e.buffer, OverlapExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
		e.buffer = append(e.buffer, ProximityExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
	}

	// Swap for next pass and clear current
	e.previousPairs, e.currentPairs = e.currentPairs, e.previousPairs
	clear(e.currentPairs)
	clear(e.distances)
	e.currentOrder = e.currentOrder[:0]
}

// forget drops every tracked pair involving body, without emitting exit events
func (e *Events) forget(body *actor.Body) {
	for pair := range e.previousPairs {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.previousPairs, pair)
		}
	}
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processPairEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
