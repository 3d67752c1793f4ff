// Package simulator drives the discrete-event loop that pops lightning
// strikes in spawn order, advances every aircraft to that time, and notifies
// the configured coordinators.
package simulator

import (
	"sort"

	"github.com/wildfire/dispatch-sim/pkg/aircraft"
	"github.com/wildfire/dispatch-sim/pkg/dispatch"
	"github.com/wildfire/dispatch-sim/pkg/scenario"
)

// Result is the full output of a scenario run: the ordered per-aircraft
// event logs and the final state of every strike.
type Result struct {
	UAVHistory         map[int][]aircraft.UpdateEvent
	WaterBomberHistory map[int][]aircraft.UpdateEvent
	Strikes            []*scenario.Lightning
}

// Simulator owns the fleet and coordinators for one scenario run.
type Simulator struct {
	UAVs         []*aircraft.UAV
	WaterBombers []*aircraft.WaterBomber
	Tanks        []*scenario.WaterTank

	UAVCoordinator dispatch.UAVCoordinator
	WBCoordinator  dispatch.WBCoordinator

	strikes []*scenario.Lightning
}

// New constructs a Simulator for a fixed set of strikes, sorted by spawn time
// so Run always processes them in chronological order.
func New(
	uavs []*aircraft.UAV, wbs []*aircraft.WaterBomber, tanks []*scenario.WaterTank,
	uavCoord dispatch.UAVCoordinator, wbCoord dispatch.WBCoordinator,
	strikes []*scenario.Lightning,
) *Simulator {
	sorted := append([]*scenario.Lightning{}, strikes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SpawnTime < sorted[j].SpawnTime })
	return &Simulator{
		UAVs: uavs, WaterBombers: wbs, Tanks: tanks,
		UAVCoordinator: uavCoord, WBCoordinator: wbCoord, strikes: sorted,
	}
}

// Run replays every strike in spawn order: advances the UAV fleet to the
// strike's spawn time, hands the inspections that advance reveals to the UAV
// coordinator, and notifies both coordinators of the new strike. Every
// inspected strike that turns out to be an ignition is queued for a second
// phase, run only once every strike has spawned and the UAV fleet has been
// run out to its last queued completion: the water-bomber fleet is advanced
// to each ignition's own inspected time, in the order strikes were inspected,
// before the ignition is handed to the water-bomber coordinator. This mirrors
// the two-phase replay of the original simulator, where suppression can only
// be evaluated once every ignition that can be known about is known.
func (s *Simulator) Run() Result {
	var ignitions []*scenario.Lightning

	recordIgnitions := func(inspected []*scenario.Lightning) {
		s.UAVCoordinator.RecordInspected(inspected)
		for _, insp := range inspected {
			if insp.Ignition {
				ignitions = append(ignitions, insp)
			}
		}
	}

	for _, strike := range s.strikes {
		recordIgnitions(s.advanceUAVsTo(strike.SpawnTime))

		s.UAVCoordinator.ProcessNewStrike(strike)
		s.WBCoordinator.ProcessNewStrike(strike)
	}
	recordIgnitions(s.advanceUAVsTo(s.finalTime()))

	sort.SliceStable(ignitions, func(i, j int) bool {
		ti, _ := ignitions[i].InspectedTime()
		tj, _ := ignitions[j].InspectedTime()
		return ti < tj
	})
	for _, ignition := range ignitions {
		inspectedTime, _ := ignition.InspectedTime()
		s.WBCoordinator.RecordSuppressed(s.advanceWaterBombersTo(inspectedTime))
		s.WBCoordinator.ProcessNewIgnition(ignition)
	}
	s.WBCoordinator.RecordSuppressed(s.advanceWaterBombersTo(s.finalTime()))

	return s.collect()
}

// advanceUAVsTo advances every UAV to t and returns the strikes that
// inspection completed during the advance.
func (s *Simulator) advanceUAVsTo(t float64) []*scenario.Lightning {
	var inspected []*scenario.Lightning
	for _, u := range s.UAVs {
		ins, _ := u.UpdateToTime(t)
		inspected = append(inspected, ins...)
	}
	return inspected
}

// advanceWaterBombersTo advances every water bomber to t and returns the
// strikes that suppression completed during the advance.
func (s *Simulator) advanceWaterBombersTo(t float64) []*scenario.Lightning {
	var suppressed []*scenario.Lightning
	for _, wb := range s.WaterBombers {
		_, supp := wb.UpdateToTime(t)
		suppressed = append(suppressed, supp...)
	}
	return suppressed
}

func (s *Simulator) finalTime() float64 {
	last := 0.0
	for _, u := range s.UAVs {
		if e, ok := u.Queue().PeekLast(); ok && e.CompletionTime > last {
			last = e.CompletionTime
		}
	}
	for _, wb := range s.WaterBombers {
		if e, ok := wb.Queue().PeekLast(); ok && e.CompletionTime > last {
			last = e.CompletionTime
		}
	}
	return last
}

func (s *Simulator) collect() Result {
	r := Result{
		UAVHistory:         make(map[int][]aircraft.UpdateEvent, len(s.UAVs)),
		WaterBomberHistory: make(map[int][]aircraft.UpdateEvent, len(s.WaterBombers)),
		Strikes:            s.strikes,
	}
	for _, u := range s.UAVs {
		r.UAVHistory[u.ID] = u.History()
	}
	for _, wb := range s.WaterBombers {
		r.WaterBomberHistory[wb.ID] = wb.History()
	}
	return r
}
