package aircraft

import (
	"github.com/wildfire/dispatch-sim/pkg/geo"
	"github.com/wildfire/dispatch-sim/pkg/scenario"
)

// TargetKind tags which of the three entity kinds an Event.Target refers to.
// All three carry an id and a location; code paths below dispatch on the
// tag rather than relying on a shared base type.
type TargetKind int

const (
	TargetBase TargetKind = iota
	TargetWaterTank
	TargetLightning
)

// EventTarget is a tagged union over the three kinds of location an
// aircraft can queue a visit to.
type EventTarget struct {
	Kind   TargetKind
	base   *scenario.Base
	tank   *scenario.WaterTank
	strike *scenario.Lightning
}

// ToBase wraps a Base as an EventTarget.
func ToBase(b *scenario.Base) EventTarget { return EventTarget{Kind: TargetBase, base: b} }

// ToWaterTank wraps a WaterTank as an EventTarget.
func ToWaterTank(t *scenario.WaterTank) EventTarget { return EventTarget{Kind: TargetWaterTank, tank: t} }

// ToStrike wraps a Lightning strike as an EventTarget.
func ToStrike(s *scenario.Lightning) EventTarget { return EventTarget{Kind: TargetLightning, strike: s} }

// Location returns the target's location regardless of kind.
func (t EventTarget) Location() geo.Location {
	switch t.Kind {
	case TargetBase:
		return t.base.Location
	case TargetWaterTank:
		return t.tank.Location
	default:
		return t.strike.Location
	}
}

// Base returns the underlying Base, or nil if this target is not a base.
func (t EventTarget) Base() *scenario.Base { return t.base }

// Tank returns the underlying WaterTank, or nil if this target is not a tank.
func (t EventTarget) Tank() *scenario.WaterTank { return t.tank }

// Strike returns the underlying Lightning, or nil if this target is not a strike.
func (t EventTarget) Strike() *scenario.Lightning { return t.strike }

// Event is one queued task for an aircraft: a target plus the departure,
// arrival and completion snapshots (times, status, fuel, water-on-board).
type Event struct {
	Target EventTarget

	DepartureTime   float64
	DepartureStatus scenario.Status

	ArrivalTime   float64
	ArrivalStatus scenario.Status
	ArrivalFuel   float64

	CompletionTime   float64
	CompletionStatus scenario.Status
	CompletionFuel   float64
	WaterOnBoard     float64 // meaningful for WaterBomber only
}

// UpdateEvent is one entry in an aircraft's append-only past-event log.
type UpdateEvent struct {
	Name                       string
	Location                   geo.Location
	Time                       float64
	Status                     scenario.Status
	DistanceTravelledSinceLast float64
	FuelFraction               float64
	CurrentRange               float64
	DistanceHoveredSinceLast   float64
	WaterOnBoard               float64
	NextEventsSummary          string
}
