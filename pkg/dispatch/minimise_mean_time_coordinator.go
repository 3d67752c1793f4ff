package dispatch

import (
	"github.com/wildfire/dispatch-sim/pkg/aircraft"
	"github.com/wildfire/dispatch-sim/pkg/scenario"
)

// MinimiseMeanTimeUAVCoordinator extends the insertion search with a
// two-tier target-latency band: any candidate that keeps the new strike's
// latency at or under TargetLatency is preferred over every candidate that
// does not, regardless of raw score; within a tier, the lowest score wins.
// Grounded on coordinators/minimise_mean_time_coordinator.py's
// min_arrival_time / min_arr_time_above_target dual tracking.
type MinimiseMeanTimeUAVCoordinator struct {
	UAVCoordinatorBase
	TargetLatency float64

	// reprocessMax gates the single extra reprocess pass ReprocessMaxTime
	// enables; false here, true for ReprocessMaxTimeUAVCoordinator. Guarded
	// while a reprocess itself is running so it can never recurse, matching
	// the source's consider_max_inspection_time flag (DESIGN.md Open
	// Question #5).
	reprocessMax      bool
	reprocessing      bool
	worstLatencySoFar float64
}

// NewMinimiseMeanTimeUAVCoordinator constructs the policy.
func NewMinimiseMeanTimeUAVCoordinator(base UAVCoordinatorBase, targetLatency float64) *MinimiseMeanTimeUAVCoordinator {
	return &MinimiseMeanTimeUAVCoordinator{UAVCoordinatorBase: base, TargetLatency: targetLatency}
}

type tieredCandidate struct {
	aircraft     *aircraft.UAV
	cand         candidate
	score        float64
	withinTarget bool
}

// ProcessNewStrike implements UAVCoordinator.
func (c *MinimiseMeanTimeUAVCoordinator) ProcessNewStrike(l *scenario.Lightning) {
	c.RecordStrike(l)
	newTarget := aircraft.ToStrike(l)
	returnBase := c.nearestBase(l)

	var best *tieredCandidate
	consider := func(u *aircraft.UAV, cand candidate, score float64, arrival float64) {
		withinTarget := arrival-l.SpawnTime <= c.TargetLatency
		tc := tieredCandidate{aircraft: u, cand: cand, score: score, withinTarget: withinTarget}
		if best == nil || better(tc, *best) {
			best = &tc
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
				path := append(append([]aircraft.EventTarget{newTarget}, future...), tailToBase...)
				score, ok := u.EnoughFuel(path, c.Objective.Func(), start)
				if !ok {
					continue
				}
				arrival := u.ArrivalTime([]aircraft.EventTarget{newTarget}, start)
				consider(u, candidate{path: append([]aircraft.EventTarget{newTarget}, future...), truncate: true, truncNode: truncNode}, score, arrival)
			}
		}
		tailStart := aircraft.StartState{}
		if last, ok := q.PeekLast(); ok {
			tailStart = aircraft.FromEvent(last)
		}
		direct := []aircraft.EventTarget{newTarget, aircraft.ToBase(returnBase)}
		if score, ok := u.EnoughFuel(direct, c.Objective.Func(), tailStart); ok {
			arrival := u.ArrivalTime([]aircraft.EventTarget{newTarget}, tailStart)
			consider(u, candidate{path: []aircraft.EventTarget{newTarget}}, score, arrival)
		} else {
			for _, b := range c.Bases {
				viaBase := []aircraft.EventTarget{aircraft.ToBase(b), newTarget, aircraft.ToBase(returnBase)}
				if score, ok := u.EnoughFuel(viaBase, c.Objective.Func(), tailStart); ok {
					arrival := u.ArrivalTime([]aircraft.EventTarget{aircraft.ToBase(b), newTarget}, tailStart)
					consider(u, candidate{path: []aircraft.EventTarget{aircraft.ToBase(b), newTarget}}, score, arrival)
				}
			}
		}
	}

	if best != nil {
		if best.cand.truncate {
			best.aircraft.TruncateQueueAfter(best.cand.truncNode)
		}
		for _, target := range best.cand.path {
			best.aircraft.AddLocationToQueue(target, l.SpawnTime)
		}
	}
	c.settleFleet(l.SpawnTime)

	if !c.reprocessMax || c.reprocessing {
		return
	}
	c.reprocessWorstStrike(l.SpawnTime)
}

func better(a, b tieredCandidate) bool {
	if a.withinTarget != b.withinTarget {
		return a.withinTarget
	}
	return a.score < b.score
}

// reprocessWorstStrike implements the ReprocessMaxTime refinement shared by
// both the UAV and WB variants (via the reprocessMax flag): find the
// strike still queued with the worst projected latency, and if it exceeds
// the coordinator's prior high-water mark, pull it out and reinsert it once.
func (c *MinimiseMeanTimeUAVCoordinator) reprocessWorstStrike(now float64) {
	var worstStrike *scenario.Lightning
	var worstLatency float64
	var worstUAV *aircraft.UAV
	var worstNode *aircraft.Node[*aircraft.Event]
	var worstEvent *aircraft.Event

	for _, u := range c.UAVs {
		for ev, prev := range u.Queue().Backward() {
			if ev.Target.Kind != aircraft.TargetLightning {
				continue
			}
			strike := ev.Target.Strike()
			latency := ev.ArrivalTime - strike.SpawnTime
			if worstStrike == nil || latency > worstLatency {
				worstStrike, worstLatency, worstUAV, worstNode, worstEvent = strike, latency, u, prev, ev
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
	for ev := range worstUAV.Queue().Forward() {
		if seen {
			rest = append(rest, ev.Target)
		}
		seen = seen || ev == worstEvent
	}
	worstUAV.TruncateQueueAfter(worstNode)
	for _, target := range rest {
		worstUAV.AddLocationToQueue(target, now)
	}
	c.reprocessing = true
	c.ProcessNewStrike(worstStrike)
	c.reprocessing = false
}
