package dispatch

import (
	"github.com/wildfire/dispatch-sim/pkg/aircraft"
	"github.com/wildfire/dispatch-sim/pkg/scenario"
)

// candidate is one feasible way to service a strike: the sequence of targets
// to queue, and where in the aircraft's existing queue to splice them in.
// truncate is false for a plain tail-append (existing queue kept intact).
type candidate struct {
	path      []aircraft.EventTarget
	truncate  bool
	truncNode *aircraft.Node[*aircraft.Event]
}

// InsertionUAVCoordinator tries, for every UAV, every boundary in its
// existing queue (as well as a plain tail append, with or without a refuel
// stop first) as an insertion point for the new strike, and commits to
// whichever feasible placement, across the whole fleet, minimises the
// objective. Grounded on coordinators/insertion_coordinator.py's
// InsertionUAVCoordinator.process_new_strike.
type InsertionUAVCoordinator struct {
	UAVCoordinatorBase
}

// NewInsertionUAVCoordinator constructs the Insertion UAV policy.
func NewInsertionUAVCoordinator(base UAVCoordinatorBase) *InsertionUAVCoordinator {
	return &InsertionUAVCoordinator{UAVCoordinatorBase: base}
}

// ProcessNewStrike implements UAVCoordinator.
func (c *InsertionUAVCoordinator) ProcessNewStrike(l *scenario.Lightning) {
	c.RecordStrike(l)
	newTarget := aircraft.ToStrike(l)
	returnBase := c.nearestBase(l)

	var best *aircraft.UAV
	var bestCandidate candidate
	bestScore := 0.0
	consider := func(u *aircraft.UAV, cand candidate, score float64) {
		if best == nil || c.Objective.Better(score, bestScore) {
			best, bestCandidate, bestScore = u, cand, score
		}
	}

	for _, u := range c.UAVs {
		q := u.Queue()
		if !q.IsEmpty() {
			last, _ := q.PeekLast()
			var tailToBase []aircraft.EventTarget
			if last.Target.Kind == aircraft.TargetLightning {
				tailToBase = []aircraft.EventTarget{aircraft.ToBase(c.nearestBaseToLoc(last.Target.Location()))}
			}
			var future []aircraft.EventTarget
			for ev, prev := range q.Backward() {
				future = append([]aircraft.EventTarget{ev.Target}, future...)
				start := aircraft.StartState{}
				var truncNode *aircraft.Node[*aircraft.Event]
				if prev != nil {
					start = aircraft.FromEvent(prev.Value)
					truncNode = prev
				}
				path := append([]aircraft.EventTarget{newTarget}, future...)
				path = append(path, tailToBase...)
				score, ok := u.EnoughFuel(path, c.Objective.Func(), start)
				if ok {
					consider(u, candidate{
						path:      append([]aircraft.EventTarget{newTarget}, future...),
						truncate:  true,
						truncNode: truncNode,
					}, score)
				}
			}
		}

		tailStart := aircraft.StartState{}
		if last, ok := q.PeekLast(); ok {
			tailStart = aircraft.FromEvent(last)
		}
		directPath := []aircraft.EventTarget{newTarget, aircraft.ToBase(returnBase)}
		if score, ok := u.EnoughFuel(directPath, c.Objective.Func(), tailStart); ok {
			consider(u, candidate{path: []aircraft.EventTarget{newTarget}}, score)
		} else {
			for _, b := range c.Bases {
				viaBase := []aircraft.EventTarget{aircraft.ToBase(b), newTarget, aircraft.ToBase(returnBase)}
				if score, ok := u.EnoughFuel(viaBase, c.Objective.Func(), tailStart); ok {
					consider(u, candidate{path: []aircraft.EventTarget{aircraft.ToBase(b), newTarget}}, score)
				}
			}
		}
	}

	if best != nil {
		if bestCandidate.truncate {
			best.TruncateQueueAfter(bestCandidate.truncNode)
		}
		for _, target := range bestCandidate.path {
			best.AddLocationToQueue(target, l.SpawnTime)
		}
	}
	c.settleFleet(l.SpawnTime)
}

// InsertionWBCoordinator is the water-bomber analog of
// InsertionUAVCoordinator, additionally enumerating the water-shortage
// branches (go via a tank, or via a tank then a base) from
// coordinators/insertion_coordinator.py's InsertionWBCoordinator.
type InsertionWBCoordinator struct {
	WBCoordinatorBase
}

// NewInsertionWBCoordinator constructs the Insertion water-bomber policy.
func NewInsertionWBCoordinator(base WBCoordinatorBase) *InsertionWBCoordinator {
	return &InsertionWBCoordinator{WBCoordinatorBase: base}
}

// ProcessNewStrike implements WBCoordinator: water bombers only act once a
// strike is confirmed an ignition.
func (c *InsertionWBCoordinator) ProcessNewStrike(l *scenario.Lightning) { c.RecordStrike(l) }

// ProcessNewIgnition implements WBCoordinator.
func (c *InsertionWBCoordinator) ProcessNewIgnition(ignition *scenario.Lightning) {
	c.RecordIgnition(ignition)
	newTarget := aircraft.ToStrike(ignition)

	var best *aircraft.WaterBomber
	var bestCandidate candidate
	bestScore := 0.0
	consider := func(wb *aircraft.WaterBomber, cand candidate, score float64) {
		if best == nil || c.Objective.Better(score, bestScore) {
			best, bestCandidate, bestScore = wb, cand, score
		}
	}

	for _, wb := range c.WaterBombers {
		typeTag := wb.Attributes.TypeTag
		returnBase := c.nearestBase(ignition, typeTag)
		q := wb.Queue()

		if !q.IsEmpty() {
			last, _ := q.PeekLast()
			var tailToBase []aircraft.EventTarget
			if last.Target.Kind != aircraft.TargetBase {
				tailToBase = []aircraft.EventTarget{aircraft.ToBase(c.nearestBaseToLoc(last.Target.Location(), typeTag))}
			}
			var future []aircraft.EventTarget
			for ev, prev := range q.Backward() {
				future = append([]aircraft.EventTarget{ev.Target}, future...)
				start := aircraft.StartState{}
				var truncNode *aircraft.Node[*aircraft.Event]
				if prev != nil {
					start = aircraft.FromEvent(prev.Value)
					truncNode = prev
				}
				waterPath := append([]aircraft.EventTarget{newTarget}, future...)
				if !wb.EnoughWater(waterPath, start) {
					continue
				}
				fuelPath := append(append([]aircraft.EventTarget{}, waterPath...), tailToBase...)
				if score, ok := wb.EnoughFuel(fuelPath, c.Objective.Func(), start); ok {
					consider(wb, candidate{
						path:      append([]aircraft.EventTarget{newTarget}, future...),
						truncate:  true,
						truncNode: truncNode,
					}, score)
				}
			}
		}

		tailStart := aircraft.StartState{}
		if last, ok := q.PeekLast(); ok {
			tailStart = aircraft.FromEvent(last)
		}

		if wb.EnoughWater([]aircraft.EventTarget{newTarget}, tailStart) {
			direct := []aircraft.EventTarget{newTarget, aircraft.ToBase(returnBase)}
			if score, ok := wb.EnoughFuel(direct, c.Objective.Func(), tailStart); ok {
				consider(wb, candidate{path: []aircraft.EventTarget{newTarget}}, score)
			} else {
				for _, b := range c.BasesByType[typeTag] {
					viaBase := []aircraft.EventTarget{aircraft.ToBase(b), newTarget, aircraft.ToBase(returnBase)}
					if score, ok := wb.EnoughFuel(viaBase, c.Objective.Func(), tailStart); ok {
						consider(wb, candidate{path: []aircraft.EventTarget{aircraft.ToBase(b), newTarget}}, score)
					}
				}
			}
			continue
		}

		for _, tank := range c.Tanks {
			if !wb.CheckWaterTank(tank) {
				continue
			}
			viaTank := []aircraft.EventTarget{aircraft.ToWaterTank(tank), newTarget, aircraft.ToBase(returnBase)}
			if score, ok := wb.EnoughFuel(viaTank, c.Objective.Func(), tailStart); ok {
				consider(wb, candidate{path: []aircraft.EventTarget{aircraft.ToWaterTank(tank), newTarget}}, score)
			}
		}
		for _, tank := range c.Tanks {
			if !wb.CheckWaterTank(tank) {
				continue
			}
			for _, b := range c.BasesByType[typeTag] {
				viaTankBase := []aircraft.EventTarget{aircraft.ToWaterTank(tank), aircraft.ToBase(b), newTarget, aircraft.ToBase(returnBase)}
				if score, ok := wb.EnoughFuel(viaTankBase, c.Objective.Func(), tailStart); ok {
					consider(wb, candidate{path: []aircraft.EventTarget{aircraft.ToWaterTank(tank), aircraft.ToBase(b), newTarget}}, score)
				}
				viaBaseTank := []aircraft.EventTarget{aircraft.ToBase(b), aircraft.ToWaterTank(tank), newTarget, aircraft.ToBase(returnBase)}
				if score, ok := wb.EnoughFuel(viaBaseTank, c.Objective.Func(), tailStart); ok {
					consider(wb, candidate{path: []aircraft.EventTarget{aircraft.ToBase(b), aircraft.ToWaterTank(tank), newTarget}}, score)
				}
			}
		}
	}

	if best != nil {
		if bestCandidate.truncate {
			best.TruncateQueueAfter(bestCandidate.truncNode)
		}
		for _, target := range bestCandidate.path {
			best.AddLocationToQueue(target, ignition.SpawnTime)
		}
	}
	c.settleFleet(ignition.SpawnTime)
}
