package scenario

import "github.com/wildfire/dispatch-sim/pkg/geo"

// Lightning is a single strike: a spawn-time-ordered event with a location, an
// optional ignition flag, and a risk rating consumed by prioritisation
// functions. The ignition coin-flip is sampled upstream by the scenario
// builder, not by Lightning itself.
type Lightning struct {
	ID         int
	Location   geo.Location
	SpawnTime  float64 // seconds on the simulation clock
	Ignition   bool
	RiskRating float64 // in [0,1]

	inspectedTime  *float64
	suppressedTime *float64
}

// NewLightning constructs a strike.
func NewLightning(id int, loc geo.Location, spawnTime float64, ignition bool, risk float64) *Lightning {
	return &Lightning{ID: id, Location: loc, SpawnTime: spawnTime, Ignition: ignition, RiskRating: risk}
}

// Inspected marks the strike as inspected at time t. Called at most once.
func (l *Lightning) Inspected(t float64) {
	checkInvariant("Lightning.Inspected", l.inspectedTime == nil, "strike inspected twice")
	checkInvariant("Lightning.Inspected", t >= l.SpawnTime, "inspected before spawn")
	l.inspectedTime = &t
}

// Suppressed marks the ignition as suppressed at time t. Called at most once,
// and only for strikes that ignited.
func (l *Lightning) Suppressed(t float64) {
	checkInvariant("Lightning.Suppressed", l.suppressedTime == nil, "strike suppressed twice")
	checkInvariant("Lightning.Suppressed", l.inspectedTime != nil && t >= *l.inspectedTime,
		"suppressed before inspected")
	l.suppressedTime = &t
}

// IsInspected reports whether the strike has been inspected.
func (l *Lightning) IsInspected() bool { return l.inspectedTime != nil }

// IsSuppressed reports whether the ignition has been suppressed.
func (l *Lightning) IsSuppressed() bool { return l.suppressedTime != nil }

// InspectedTime returns the inspection time and whether it is set.
func (l *Lightning) InspectedTime() (float64, bool) {
	if l.inspectedTime == nil {
		return 0, false
	}
	return *l.inspectedTime, true
}

// SuppressedTime returns the suppression time and whether it is set.
func (l *Lightning) SuppressedTime() (float64, bool) {
	if l.suppressedTime == nil {
		return 0, false
	}
	return *l.suppressedTime, true
}

// InspectionLatency returns inspected_time - spawn_time. Only valid once inspected.
func (l *Lightning) InspectionLatency() float64 {
	if l.inspectedTime == nil {
		return 0
	}
	return *l.inspectedTime - l.SpawnTime
}

// SuppressionLatency returns suppressed_time - spawn_time. Only valid once suppressed.
func (l *Lightning) SuppressionLatency() float64 {
	if l.suppressedTime == nil {
		return 0
	}
	return *l.suppressedTime - l.SpawnTime
}
