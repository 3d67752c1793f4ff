package scenario

import "github.com/wildfire/dispatch-sim/pkg/geo"

// WaterTank is a refill site for water bombers with finite capacity. Its
// bookkeeping distinguishes committed draws (Remaining) from reserved-but-not
// -yet-drawn volume (Reserved), so that two aircraft can never plan to draw
// the same marginal litres: a coordinator reserves water the moment it
// queues a tank visit, and the aircraft commits the draw only when it
// actually completes that event.
type WaterTank struct {
	ID       int
	Name     string
	Location geo.Location

	capacity  geo.Volume
	remaining geo.Volume
	reserved  geo.Volume
}

// NewWaterTank constructs a WaterTank at full capacity. Negative capacity is
// an input inconsistency, fatal at construction.
func NewWaterTank(id int, name string, loc geo.Location, capacity geo.Volume) (*WaterTank, error) {
	if capacity.Litres() < 0 {
		return nil, &ErrInputInconsistent{Entity: "WaterTank", Reason: "negative capacity"}
	}
	return &WaterTank{
		ID: id, Name: name, Location: loc,
		capacity: capacity, remaining: capacity,
	}, nil
}

// Capacity returns the tank's total capacity.
func (t *WaterTank) Capacity() geo.Volume { return t.capacity }

// Remaining returns the volume physically left in the tank (committed draws
// already subtracted; reservations not yet subtracted).
func (t *WaterTank) Remaining() geo.Volume { return t.remaining }

// Reserved returns the volume currently reserved but not yet drawn.
func (t *WaterTank) Reserved() geo.Volume { return t.reserved }

// Available returns the volume a new reservation could still claim.
func (t *WaterTank) Available() geo.Volume { return t.remaining.Sub(t.reserved) }

// Reserve claims v litres against future use without yet drawing them down.
// Fails if it would push Reserved above Remaining.
func (t *WaterTank) Reserve(v geo.Volume) bool {
	if t.reserved.Add(v).Litres() > t.remaining.Litres()+1e-9 {
		return false
	}
	t.reserved = t.reserved.Add(v)
	checkInvariant("WaterTank.Reserve", t.reserved.Litres() >= -1e-9, "reserved went negative")
	return true
}

// ReleaseReservation releases a previously-reserved volume without drawing it
// down, e.g. when a coordinator truncates a queued tank visit that never
// executed. Truncating a queued WaterTank event always releases its
// reservation.
func (t *WaterTank) ReleaseReservation(v geo.Volume) {
	r := t.reserved.Sub(v)
	if r.Litres() < 0 {
		r = geo.Volume{}
	}
	t.reserved = r
}

// Draw commits a previously-reserved volume: it is removed from both Reserved
// and Remaining. The tank's Remaining must never fall below zero; a
// zero-volume draw is a no-op, never a division concern.
func (t *WaterTank) Draw(v geo.Volume) {
	if v.Litres() <= 0 {
		return
	}
	t.remaining = t.remaining.Sub(v)
	checkInvariant("WaterTank.Draw", t.remaining.Litres() >= -1e-6, "remaining capacity went negative")
	t.ReleaseReservation(v)
}
