// Package dispatch implements the insertion-based coordinators that decide
// which aircraft responds to which strike.
package dispatch

import "github.com/wildfire/dispatch-sim/pkg/aircraft"

// Prioritisation names the closed set of latency-weighting functions a
// coordinator can be configured with.
type Prioritisation string

const (
	PrioritiseTime       Prioritisation = "time"
	PrioritiseTimeRisk   Prioritisation = "time_risk"
	PrioritiseTimeRisk2  Prioritisation = "time_risk_squared"
	PrioritiseTimeRisk3  Prioritisation = "time_risk_cubed"
	PrioritiseThreshold  Prioritisation = "threshold"
)

// ThresholdConfig parameterises PrioritiseThreshold: latencies at or below
// Cutoff score as-is, latencies above it are scored at Cutoff plus Penalty
// times the overrun.
type ThresholdConfig struct {
	Cutoff  float64
	Penalty float64
}

// Func builds the aircraft.PrioritisationFunc closure named by p. threshold
// is only consulted for PrioritiseThreshold and may be the zero value
// otherwise.
func (p Prioritisation) Func(threshold ThresholdConfig) aircraft.PrioritisationFunc {
	switch p {
	case PrioritiseTimeRisk:
		return func(latency, risk float64) float64 { return latency * risk }
	case PrioritiseTimeRisk2:
		return func(latency, risk float64) float64 { return latency * risk * risk }
	case PrioritiseTimeRisk3:
		return func(latency, risk float64) float64 { return latency * risk * risk * risk }
	case PrioritiseThreshold:
		return func(latency, risk float64) float64 {
			if latency <= threshold.Cutoff {
				return latency
			}
			return threshold.Cutoff + threshold.Penalty*(latency-threshold.Cutoff)
		}
	default: // PrioritiseTime
		return func(latency, _ float64) float64 { return latency }
	}
}
