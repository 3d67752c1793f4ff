// Package geo provides geographic points, great-circle geometry, and the
// dimensioned scalar types used throughout the dispatch core.
package geo

// Conversion factor tables, mirroring the closed set of units the core ever
// needs to reason about. Distance is stored internally in metres, Duration in
// seconds, Speed in metres/second, Volume in litres.
var (
	distanceFactors = map[string]float64{"mm": 0.001, "cm": 0.01, "m": 1.0, "km": 1000}
	durationFactors = map[string]float64{
		"ms": 0.001, "s": 1.0, "min": 60, "hr": 3600, "day": 86400, "year": 31536000,
	}
	volumeFactors = map[string]float64{"mL": 0.001, "L": 1.0, "kL": 1000, "ML": 1000000}
)

// Distance is a dimensioned length, stored internally in metres.
type Distance struct{ metres float64 }

// NewDistance constructs a Distance from a value in the given unit ("km" if empty).
func NewDistance(value float64, unit string) Distance {
	if unit == "" {
		unit = "km"
	}
	return Distance{metres: value * distanceFactors[unit]}
}

// Metres returns the distance in metres.
func (d Distance) Metres() float64 { return d.metres }

// Get returns the distance converted to the given unit.
func (d Distance) Get(unit string) float64 { return d.metres / distanceFactors[unit] }

// Add returns the sum of two distances.
func (d Distance) Add(o Distance) Distance { return Distance{d.metres + o.metres} }

// Sub returns the difference of two distances.
func (d Distance) Sub(o Distance) Distance { return Distance{d.metres - o.metres} }

// DivBySpeed returns the time needed to cover this distance at the given speed.
// A zero speed never divides by zero: it reports a zero duration instead of
// inf/NaN.
func (d Distance) DivBySpeed(s Speed) Duration {
	if s.metresPerSecond == 0 {
		return Duration{}
	}
	return Duration{seconds: d.metres / s.metresPerSecond}
}

// Duration is a dimensioned span of time, stored internally in seconds.
type Duration struct{ seconds float64 }

// NewDuration constructs a Duration from a value in the given unit ("s" if empty).
func NewDuration(value float64, unit string) Duration {
	if unit == "" {
		unit = "s"
	}
	return Duration{seconds: value * durationFactors[unit]}
}

// Seconds returns the duration in seconds.
func (d Duration) Seconds() float64 { return d.seconds }

// Get returns the duration converted to the given unit.
func (d Duration) Get(unit string) float64 { return d.seconds / durationFactors[unit] }

// Add returns the sum of two durations.
func (d Duration) Add(o Duration) Duration { return Duration{d.seconds + o.seconds} }

// Sub returns the difference of two durations.
func (d Duration) Sub(o Duration) Duration { return Duration{d.seconds - o.seconds} }

// MulBySpeed returns the distance covered travelling at the given speed for this duration.
func (d Duration) MulBySpeed(s Speed) Distance {
	return Distance{metres: d.seconds * s.metresPerSecond}
}

// Speed is a dimensioned rate, stored internally in metres/second.
type Speed struct{ metresPerSecond float64 }

// NewSpeed constructs a Speed from distance and time units ("km"/"hr" if empty).
func NewSpeed(value float64, distanceUnit, timeUnit string) Speed {
	if distanceUnit == "" {
		distanceUnit = "km"
	}
	if timeUnit == "" {
		timeUnit = "hr"
	}
	return Speed{metresPerSecond: value * distanceFactors[distanceUnit] / durationFactors[timeUnit]}
}

// MetresPerSecond returns the speed in metres/second.
func (s Speed) MetresPerSecond() float64 { return s.metresPerSecond }

// Volume is a dimensioned quantity, stored internally in litres.
type Volume struct{ litres float64 }

// NewVolume constructs a Volume from a value in the given unit ("L" if empty).
func NewVolume(value float64, unit string) Volume {
	if unit == "" {
		unit = "L"
	}
	return Volume{litres: value * volumeFactors[unit]}
}

// Litres returns the volume in litres.
func (v Volume) Litres() float64 { return v.litres }

// Add returns the sum of two volumes.
func (v Volume) Add(o Volume) Volume { return Volume{v.litres + o.litres} }

// Sub returns the difference of two volumes.
func (v Volume) Sub(o Volume) Volume { return Volume{v.litres - o.litres} }

// Less reports whether v is strictly smaller than o.
func (v Volume) Less(o Volume) bool { return v.litres < o.litres }
