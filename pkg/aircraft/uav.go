package aircraft

import "github.com/wildfire/dispatch-sim/pkg/scenario"

// UAV is an inspection aircraft: it carries no water and its range is
// constant regardless of fuel state.
type UAV struct {
	*Aircraft
}

// NewUAV constructs a UAV starting at its starting base with the fuel
// fraction given by attrs.InitialFuel.
func NewUAV(id int, name string, attrs Attributes) *UAV {
	return &UAV{Aircraft: newAircraft(id, name, ClassUAV, attrs)}
}

// EnoughWater is always true for a UAV: it never carries suppression water,
// so no insertion candidate can be rejected on water grounds.
func (u *UAV) EnoughWater([]EventTarget, StartState) bool { return true }

// GoToBaseWhenNecessary arranges a return-to-base once the UAV is idle
// (Hovering after an inspection, or Unassigned) and running low on fuel.
func (u *UAV) GoToBaseWhenNecessary(bases []*scenario.Base, now float64) {
	u.Aircraft.GoToBaseWhenNecessary(bases, now)
}
