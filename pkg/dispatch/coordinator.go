package dispatch

import (
	"github.com/wildfire/dispatch-sim/pkg/aircraft"
	"github.com/wildfire/dispatch-sim/pkg/geo"
	"github.com/wildfire/dispatch-sim/pkg/precomputed"
	"github.com/wildfire/dispatch-sim/pkg/scenario"
)

// UAVCoordinator is notified of every new strike and decides which, if any,
// UAV inspects it. RecordInspected drains the strikes the simulator reports
// as inspected from the coordinator's own uninspected bookkeeping.
type UAVCoordinator interface {
	ProcessNewStrike(lightning *scenario.Lightning)
	RecordInspected(strikes []*scenario.Lightning)
}

// WBCoordinator is notified of every new strike (so it can track it as
// uninspected) and every ignition found on inspection (so it can dispatch a
// water bomber). RecordSuppressed drains the strikes the simulator reports
// as suppressed from the coordinator's unsuppressed bookkeeping.
type WBCoordinator interface {
	ProcessNewStrike(lightning *scenario.Lightning)
	ProcessNewIgnition(ignition *scenario.Lightning)
	RecordSuppressed(strikes []*scenario.Lightning)
}

// UAVCoordinatorBase is the shared state every UAV coordinator policy
// embeds: the fleet, its bases, the objective function, and the bookkeeping
// of strikes still awaiting inspection.
type UAVCoordinatorBase struct {
	UAVs        []*aircraft.UAV
	Bases       []*scenario.Base
	Precomputed *precomputed.Distances
	Objective   *Objective

	Uninspected map[int]*scenario.Lightning
}

// NewUAVCoordinatorBase constructs the shared embedding for a UAV policy.
func NewUAVCoordinatorBase(uavs []*aircraft.UAV, bases []*scenario.Base, objective *Objective, pre *precomputed.Distances) UAVCoordinatorBase {
	return UAVCoordinatorBase{UAVs: uavs, Bases: bases, Precomputed: pre, Objective: objective, Uninspected: make(map[int]*scenario.Lightning)}
}

// RecordStrike marks a strike as awaiting inspection. Call before
// ProcessNewStrike.
func (b *UAVCoordinatorBase) RecordStrike(l *scenario.Lightning) { b.Uninspected[l.ID] = l }

// RecordInspected removes strikes from the uninspected set once the
// simulator reports them inspected.
func (b *UAVCoordinatorBase) RecordInspected(strikes []*scenario.Lightning) {
	for _, s := range strikes {
		if _, ok := b.Uninspected[s.ID]; !ok {
			panic(&scenario.InvariantViolation{
				Component: "UAVCoordinator",
				Reason:    "strike inspected but absent from the uninspected set",
			})
		}
		delete(b.Uninspected, s.ID)
	}
}

func (b *UAVCoordinatorBase) nearestBase(l *scenario.Lightning) *scenario.Base {
	if b.Precomputed != nil {
		return b.Precomputed.ClosestUAVBase(l)
	}
	if len(b.Bases) == 0 {
		return nil
	}
	best := b.Bases[0]
	bestDist := l.Location.Distance(best.Location).Metres()
	for _, base := range b.Bases[1:] {
		if d := l.Location.Distance(base.Location).Metres(); d < bestDist {
			best, bestDist = base, d
		}
	}
	return best
}

func (b *UAVCoordinatorBase) nearestBaseToLoc(loc geo.Location) *scenario.Base {
	if len(b.Bases) == 0 {
		return nil
	}
	best := b.Bases[0]
	bestDist := loc.Distance(best.Location).Metres()
	for _, base := range b.Bases[1:] {
		if d := loc.Distance(base.Location).Metres(); d < bestDist {
			best, bestDist = base, d
		}
	}
	return best
}

// settleFleet gives every UAV a chance to queue a return-to-base trip once
// it has gone idle.
func (b *UAVCoordinatorBase) settleFleet(now float64) {
	for _, u := range b.UAVs {
		u.GoToBaseWhenNecessary(b.Bases, now)
	}
}

// WBCoordinatorBase is the water-bomber analog of UAVCoordinatorBase.
type WBCoordinatorBase struct {
	WaterBombers  []*aircraft.WaterBomber
	BasesByType   map[string][]*scenario.Base
	Tanks         []*scenario.WaterTank
	Precomputed   *precomputed.Distances
	Objective     *Objective

	Uninspected  map[int]*scenario.Lightning
	Unsuppressed map[int]*scenario.Lightning
}

// NewWBCoordinatorBase constructs the shared embedding for a WB policy.
func NewWBCoordinatorBase(
	wbs []*aircraft.WaterBomber, basesByType map[string][]*scenario.Base,
	tanks []*scenario.WaterTank, objective *Objective, pre *precomputed.Distances,
) WBCoordinatorBase {
	return WBCoordinatorBase{
		WaterBombers: wbs, BasesByType: basesByType, Tanks: tanks,
		Precomputed: pre, Objective: objective,
		Uninspected: make(map[int]*scenario.Lightning), Unsuppressed: make(map[int]*scenario.Lightning),
	}
}

// RecordStrike mirrors UAVCoordinatorBase.RecordStrike.
func (b *WBCoordinatorBase) RecordStrike(l *scenario.Lightning) { b.Uninspected[l.ID] = l }

// RecordIgnition marks an inspected ignition as awaiting suppression.
func (b *WBCoordinatorBase) RecordIgnition(l *scenario.Lightning) { b.Unsuppressed[l.ID] = l }

// RecordSuppressed removes strikes from the unsuppressed set.
func (b *WBCoordinatorBase) RecordSuppressed(strikes []*scenario.Lightning) {
	for _, s := range strikes {
		delete(b.Unsuppressed, s.ID)
	}
}

func (b *WBCoordinatorBase) nearestBase(l *scenario.Lightning, typeTag string) *scenario.Base {
	if b.Precomputed != nil {
		return b.Precomputed.ClosestWBBase(l, typeTag)
	}
	bases := b.BasesByType[typeTag]
	if len(bases) == 0 {
		return nil
	}
	best := bases[0]
	bestDist := l.Location.Distance(best.Location).Metres()
	for _, base := range bases[1:] {
		if d := l.Location.Distance(base.Location).Metres(); d < bestDist {
			best, bestDist = base, d
		}
	}
	return best
}

func (b *WBCoordinatorBase) nearestBaseToLoc(loc geo.Location, typeTag string) *scenario.Base {
	bases := b.BasesByType[typeTag]
	if len(bases) == 0 {
		return nil
	}
	best := bases[0]
	bestDist := loc.Distance(best.Location).Metres()
	for _, base := range bases[1:] {
		if d := loc.Distance(base.Location).Metres(); d < bestDist {
			best, bestDist = base, d
		}
	}
	return best
}

func (b *WBCoordinatorBase) settleFleet(now float64) {
	for _, wb := range b.WaterBombers {
		bases := b.BasesByType[wb.Attributes.TypeTag]
		wb.GoToBaseWhenNecessary(bases, now)
		wb.GoToWaterIfNecessary(b.Tanks, now)
	}
}
