package dispatch

import (
	"github.com/wildfire/dispatch-sim/pkg/aircraft"
	"github.com/wildfire/dispatch-sim/pkg/scenario"
)

// SimpleUAVCoordinator assigns each new strike to whichever UAV can reach it
// (and then its nearest base) with the best objective score, appending to the
// tail of that UAV's queue. It never considers splicing the strike in
// between already-queued tasks — that refinement is InsertionUAVCoordinator.
type SimpleUAVCoordinator struct {
	UAVCoordinatorBase
}

// NewSimpleUAVCoordinator constructs the Simple UAV policy.
func NewSimpleUAVCoordinator(base UAVCoordinatorBase) *SimpleUAVCoordinator {
	return &SimpleUAVCoordinator{UAVCoordinatorBase: base}
}

// ProcessNewStrike implements UAVCoordinator.
func (c *SimpleUAVCoordinator) ProcessNewStrike(l *scenario.Lightning) {
	c.RecordStrike(l)
	var best *aircraft.UAV
	bestScore := 0.0

	path := []aircraft.EventTarget{aircraft.ToStrike(l)}
	if returnBase := c.nearestBase(l); returnBase != nil {
		path = append(path, aircraft.ToBase(returnBase))
	}

	for _, u := range c.UAVs {
		tailStart := aircraft.StartState{}
		if last, ok := u.Queue().PeekLast(); ok {
			tailStart = aircraft.FromEvent(last)
		}
		score, ok := u.EnoughFuel(path, c.Objective.Func(), tailStart)
		if !ok {
			continue
		}
		if best == nil || c.Objective.Better(score, bestScore) {
			best, bestScore = u, score
		}
	}
	if best != nil {
		best.AddLocationToQueue(aircraft.ToStrike(l), l.SpawnTime)
	}
	c.settleFleet(l.SpawnTime)
}

// SimpleWBCoordinator is the water-bomber analog of SimpleUAVCoordinator.
type SimpleWBCoordinator struct {
	WBCoordinatorBase
}

// NewSimpleWBCoordinator constructs the Simple water-bomber policy.
func NewSimpleWBCoordinator(base WBCoordinatorBase) *SimpleWBCoordinator {
	return &SimpleWBCoordinator{WBCoordinatorBase: base}
}

// ProcessNewStrike implements WBCoordinator: water bombers only act once a
// strike is confirmed an ignition, so this only records the strike.
func (c *SimpleWBCoordinator) ProcessNewStrike(l *scenario.Lightning) { c.RecordStrike(l) }

// ProcessNewIgnition implements WBCoordinator.
func (c *SimpleWBCoordinator) ProcessNewIgnition(ignition *scenario.Lightning) {
	c.RecordIgnition(ignition)
	var best *aircraft.WaterBomber
	bestScore := 0.0

	for _, wb := range c.WaterBombers {
		tailStart := aircraft.StartState{}
		if last, ok := wb.Queue().PeekLast(); ok {
			tailStart = aircraft.FromEvent(last)
		}
		path := []aircraft.EventTarget{aircraft.ToStrike(ignition)}
		if returnBase := c.nearestBase(ignition, wb.Attributes.TypeTag); returnBase != nil {
			path = append(path, aircraft.ToBase(returnBase))
		}
		if !wb.EnoughWater(path, tailStart) {
			continue
		}
		score, ok := wb.EnoughFuel(path, c.Objective.Func(), tailStart)
		if !ok {
			continue
		}
		if best == nil || c.Objective.Better(score, bestScore) {
			best, bestScore = wb, score
		}
	}
	if best != nil {
		best.AddLocationToQueue(aircraft.ToStrike(ignition), ignition.SpawnTime)
	}
	c.settleFleet(ignition.SpawnTime)
}
