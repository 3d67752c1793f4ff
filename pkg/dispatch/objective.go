package dispatch

import "github.com/wildfire/dispatch-sim/pkg/aircraft"

// Objective wraps a configured Prioritisation into the scoring function every
// coordinator compares insertion candidates with.
type Objective struct {
	prioritisation Prioritisation
	threshold      ThresholdConfig
	score          aircraft.PrioritisationFunc
}

// NewObjective builds an Objective from a named prioritisation and its
// threshold parameters (the latter ignored unless p is PrioritiseThreshold).
func NewObjective(p Prioritisation, threshold ThresholdConfig) *Objective {
	return &Objective{prioritisation: p, threshold: threshold, score: p.Func(threshold)}
}

// Score transforms (latency, risk) into the scalar a coordinator minimises.
func (o *Objective) Score(latency, risk float64) float64 { return o.score(latency, risk) }

// Func returns the underlying aircraft.PrioritisationFunc closure, for
// passing directly to Aircraft.EnoughFuel.
func (o *Objective) Func() aircraft.PrioritisationFunc { return o.score }

// Better reports whether candidate is a strict improvement over best. Every
// prioritisation policy minimises its score, so this is a plain less-than,
// but it is named so the comparison direction is never silently inverted at
// a call site.
func (o *Objective) Better(candidate, best float64) bool { return candidate < best }
