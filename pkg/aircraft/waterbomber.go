package aircraft

import "github.com/wildfire/dispatch-sim/pkg/scenario"

// WaterBomber is a suppression aircraft: its range depends on how much water
// it is carrying, and it draws down a shared WaterTank to refill.
type WaterBomber struct {
	*Aircraft
}

// NewWaterBomber constructs a water bomber starting at its starting base
// with the fuel fraction given by attrs.InitialFuel and a full water tank.
func NewWaterBomber(id int, name string, attrs Attributes) *WaterBomber {
	return &WaterBomber{Aircraft: newAircraft(id, name, ClassWaterBomber, attrs)}
}

// EnoughWater walks path from start the same way EnoughFuel does, but tracks
// the water ledger instead of the fuel ledger, failing if a suppression stop
// would draw the tank below zero.
func (w *WaterBomber) EnoughWater(path []EventTarget, start StartState) bool {
	cur := w.resolveStart(start)
	for _, target := range path {
		ev, after, ok := w.buildEvent(cur, target, cur.time)
		if !ok {
			return false
		}
		if after.water < -feasibilityEpsilon {
			return false
		}
		cur = after
		_ = ev
	}
	return true
}

// CheckWaterTank reports whether tank currently holds enough available
// (unreserved) capacity to top this aircraft back up to full.
func (w *WaterBomber) CheckWaterTank(tank *scenario.WaterTank) bool {
	deficit := w.Attributes.WaterCapacity.Litres() - w.water
	return tank.Available().Litres() >= deficit
}

// GoToWaterIfNecessary queues a trip to the nearest water tank with enough
// available capacity once the aircraft is idle and out of water (see
// SPEC_FULL.md, Supplemented Features). A bomber with any water left is not
// sent to a tank.
func (w *WaterBomber) GoToWaterIfNecessary(tanks []*scenario.WaterTank, now float64) {
	if w.status != scenario.Hovering && w.status != scenario.Unassigned {
		return
	}
	if w.water > 0 {
		return
	}
	var nearest *scenario.WaterTank
	var bestMetres float64
	for _, t := range tanks {
		if !w.CheckWaterTank(t) {
			continue
		}
		d := w.position.Distance(t.Location).Metres()
		if nearest == nil || d < bestMetres {
			nearest, bestMetres = t, d
		}
	}
	if nearest == nil {
		return
	}
	w.AddLocationToQueue(ToWaterTank(nearest), now)
}

// GoToBaseWhenNecessary arranges a return-to-base once the aircraft is idle
// and running low on fuel, exactly as for a UAV.
func (w *WaterBomber) GoToBaseWhenNecessary(bases []*scenario.Base, now float64) {
	w.Aircraft.GoToBaseWhenNecessary(bases, now)
}
