package dispatch

import (
	"github.com/wildfire/dispatch-sim/pkg/aircraft"
	"github.com/wildfire/dispatch-sim/pkg/scenario"
)

// MinimiseMeanTimeWBCoordinator is the water-bomber analog of
// MinimiseMeanTimeUAVCoordinator, built on the same water-shortage branch
// enumeration as InsertionWBCoordinator.
type MinimiseMeanTimeWBCoordinator struct {
	WBCoordinatorBase
	TargetLatency float64

	reprocessMax      bool
	reprocessing      bool
	worstLatencySoFar float64
}

// NewMinimiseMeanTimeWBCoordinator constructs the policy.
func NewMinimiseMeanTimeWBCoordinator(base WBCoordinatorBase, targetLatency float64) *MinimiseMeanTimeWBCoordinator {
	return &MinimiseMeanTimeWBCoordinator{WBCoordinatorBase: base, TargetLatency: targetLatency}
}

type tieredWBCandidate struct {
	aircraft     *aircraft.WaterBomber
	cand         candidate
	score        float64
	withinTarget bool
}

func betterWB(a, b tieredWBCandidate) bool {
	if a.withinTarget != b.withinTarget {
		return a.withinTarget
	}
	return a.score < b.score
}

// ProcessNewStrike implements WBCoordinator.
func (c *MinimiseMeanTimeWBCoordinator) ProcessNewStrike(l *scenario.Lightning) { c.RecordStrike(l) }

// ProcessNewIgnition implements WBCoordinator.
func (c *MinimiseMeanTimeWBCoordinator) ProcessNewIgnition(ignition *scenario.Lightning) {
	c.RecordIgnition(ignition)
	newTarget := aircraft.ToStrike(ignition)

	var best *tieredWBCandidate
	consider := func(wb *aircraft.WaterBomber, cand candidate, score, arrival float64) {
		withinTarget := arrival-ignition.SpawnTime <= c.TargetLatency
		tc := tieredWBCandidate{aircraft: wb, cand: cand, score: score, withinTarget: withinTarget}
		if best == nil || betterWB(tc, *best) {
			best = &tc
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
				score, ok := wb.EnoughFuel(fuelPath, c.Objective.Func(), start)
				if !ok {
					continue
				}
				arrival := wb.ArrivalTime([]aircraft.EventTarget{newTarget}, start)
				consider(wb, candidate{path: append([]aircraft.EventTarget{newTarget}, future...), truncate: true, truncNode: truncNode}, score, arrival)
			}
		}

		tailStart := aircraft.StartState{}
		if last, ok := q.PeekLast(); ok {
			tailStart = aircraft.FromEvent(last)
		}

		if wb.EnoughWater([]aircraft.EventTarget{newTarget}, tailStart) {
			direct := []aircraft.EventTarget{newTarget, aircraft.ToBase(returnBase)}
			if score, ok := wb.EnoughFuel(direct, c.Objective.Func(), tailStart); ok {
				arrival := wb.ArrivalTime([]aircraft.EventTarget{newTarget}, tailStart)
				consider(wb, candidate{path: []aircraft.EventTarget{newTarget}}, score, arrival)
			} else {
				for _, b := range c.BasesByType[typeTag] {
					viaBase := []aircraft.EventTarget{aircraft.ToBase(b), newTarget, aircraft.ToBase(returnBase)}
					if score, ok := wb.EnoughFuel(viaBase, c.Objective.Func(), tailStart); ok {
						arrival := wb.ArrivalTime([]aircraft.EventTarget{aircraft.ToBase(b), newTarget}, tailStart)
						consider(wb, candidate{path: []aircraft.EventTarget{aircraft.ToBase(b), newTarget}}, score, arrival)
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
				arrival := wb.ArrivalTime([]aircraft.EventTarget{aircraft.ToWaterTank(tank), newTarget}, tailStart)
				consider(wb, candidate{path: []aircraft.EventTarget{aircraft.ToWaterTank(tank), newTarget}}, score, arrival)
			}
		}
		for _, tank := range c.Tanks {
			if !wb.CheckWaterTank(tank) {
				continue
			}
			for _, b := range c.BasesByType[typeTag] {
				viaTankBase := []aircraft.EventTarget{aircraft.ToWaterTank(tank), aircraft.ToBase(b), newTarget, aircraft.ToBase(returnBase)}
				if score, ok := wb.EnoughFuel(viaTankBase, c.Objective.Func(), tailStart); ok {
					arrival := wb.ArrivalTime([]aircraft.EventTarget{aircraft.ToWaterTank(tank), aircraft.ToBase(b), newTarget}, tailStart)
					consider(wb, candidate{path: []aircraft.EventTarget{aircraft.ToWaterTank(tank), aircraft.ToBase(b), newTarget}}, score, arrival)
				}
				viaBaseTank := []aircraft.EventTarget{aircraft.ToBase(b), aircraft.ToWaterTank(tank), newTarget, aircraft.ToBase(returnBase)}
				if score, ok := wb.EnoughFuel(viaBaseTank, c.Objective.Func(), tailStart); ok {
					arrival := wb.ArrivalTime([]aircraft.EventTarget{aircraft.ToBase(b), aircraft.ToWaterTank(tank), newTarget}, tailStart)
					consider(wb, candidate{path: []aircraft.EventTarget{aircraft.ToBase(b), aircraft.ToWaterTank(tank), newTarget}}, score, arrival)
				}
			}
		}
	}

	if best != nil {
		if best.cand.truncate {
			best.aircraft.TruncateQueueAfter(best.cand.truncNode)
		}
		for _, target := range best.cand.path {
			best.aircraft.AddLocationToQueue(target, ignition.SpawnTime)
		}
	}
	c.settleFleet(ignition.SpawnTime)

	if !c.reprocessMax || c.reprocessing {
		return
	}
	c.reprocessWorstStrike(ignition.SpawnTime)
}

// reprocessWorstStrike mirrors MinimiseMeanTimeUAVCoordinator's reprocess
// pass for the water-bomber fleet.
func (c *MinimiseMeanTimeWBCoordinator) reprocessWorstStrike(now float64) {
	var worstStrike *scenario.Lightning
	var worstLatency float64
	var worstWB *aircraft.WaterBomber
	var worstNode *aircraft.Node[*aircraft.Event]
	var worstEvent *aircraft.Event

	for _, wb := range c.WaterBombers {
		for ev, prev := range wb.Queue().Backward() {
			if ev.Target.Kind != aircraft.TargetLightning {
				continue
			}
			strike := ev.Target.Strike()
			latency := ev.ArrivalTime - strike.SpawnTime
			if worstStrike == nil || latency > worstLatency {
				worstStrike, worstLatency, worstWB, worstNode, worstEvent = strike, latency, wb, prev, ev
			}
		}
	}
	if worstStrike == nil || worstLatency <= c.worstLatencySoFar {
		return
	}
	c.worstLatencySoFar = worstLatency

	// Keep the targets queued after the worst strike so that only the strike
	// itself leaves the queue.
	var rest []aircraft.EventTarget
	seen := false
	for ev := range worstWB.Queue().Forward() {
		if seen {
			rest = append(rest, ev.Target)
		}
		seen = seen || ev == worstEvent
	}
	worstWB.TruncateQueueAfter(worstNode)
	for _, target := range rest {
		worstWB.AddLocationToQueue(target, now)
	}
	c.reprocessing = true
	c.ProcessNewIgnition(worstStrike)
	c.reprocessing = false
}
