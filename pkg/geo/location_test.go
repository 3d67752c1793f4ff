package geo

import (
	"math"
	"testing"
)

func TestDistanceZeroForIdenticalPoints(t *testing.T) {
	a := Location{Lat: 10, Lon: 20}
	if got := a.Distance(a).Metres(); got != 0 {
		t.Fatalf("expected zero distance for identical points, got %f", got)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Location{Lat: 0, Lon: 0}
	b := Location{Lat: 0, Lon: 0.9}
	d1 := a.Distance(b).Get("km")
	d2 := b.Distance(a).Get("km")
	if math.Abs(d1-d2) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", d1, d2)
	}
	// ~0.9 degrees of longitude at the equator is approximately 100 km.
	if d1 < 95 || d1 > 105 {
		t.Fatalf("expected approximately 100km, got %f", d1)
	}
}

func TestIntermediatePointEndpoints(t *testing.T) {
	a := Location{Lat: 0, Lon: 0}
	b := Location{Lat: 10, Lon: 10}
	if got := a.IntermediatePoint(b, 0); got != a {
		t.Fatalf("f=0 should return start, got %+v", got)
	}
	if got := a.IntermediatePoint(b, 1); got != b {
		t.Fatalf("f=1 should return end, got %+v", got)
	}
}

func TestUnitConversionRoundTrip(t *testing.T) {
	d := NewDistance(5, "km")
	if got := d.Get("m"); math.Abs(got-5000) > 1e-9 {
		t.Fatalf("expected 5000m, got %f", got)
	}
	speed := NewSpeed(50, "km", "hr")
	dist := NewDuration(1, "hr").MulBySpeed(speed)
	if math.Abs(dist.Get("km")-50) > 1e-9 {
		t.Fatalf("expected 50km, got %f", dist.Get("km"))
	}
}

func TestDivBySpeedZeroSpeedNoPanic(t *testing.T) {
	d := NewDistance(5, "km")
	dur := d.DivBySpeed(Speed{})
	if dur.Seconds() != 0 {
		t.Fatalf("expected zero duration for zero speed, got %f", dur.Seconds())
	}
}
