package dispatch

import "github.com/wildfire/dispatch-sim/pkg/scenario"

// ReprocessMaxTimeUAVCoordinator is MinimiseMeanTimeUAVCoordinator with the
// reprocess pass enabled. Grounded on
// coordinators/reprocess_max_time_coordinator.py's
// ReprocessMaxTimeUAVCoordinator, a one-line subclass that just sets
// reprocess_max=True in its constructor.
type ReprocessMaxTimeUAVCoordinator struct {
	*MinimiseMeanTimeUAVCoordinator
}

// NewReprocessMaxTimeUAVCoordinator constructs the policy.
func NewReprocessMaxTimeUAVCoordinator(base UAVCoordinatorBase, targetLatency float64) *ReprocessMaxTimeUAVCoordinator {
	c := NewMinimiseMeanTimeUAVCoordinator(base, targetLatency)
	c.reprocessMax = true
	return &ReprocessMaxTimeUAVCoordinator{MinimiseMeanTimeUAVCoordinator: c}
}

// ProcessNewStrike implements UAVCoordinator by delegating straight to the
// embedded MinimiseMeanTime implementation.
func (c *ReprocessMaxTimeUAVCoordinator) ProcessNewStrike(l *scenario.Lightning) {
	c.MinimiseMeanTimeUAVCoordinator.ProcessNewStrike(l)
}

// ReprocessMaxTimeWBCoordinator is the water-bomber analog.
type ReprocessMaxTimeWBCoordinator struct {
	*MinimiseMeanTimeWBCoordinator
}

// NewReprocessMaxTimeWBCoordinator constructs the policy.
func NewReprocessMaxTimeWBCoordinator(base WBCoordinatorBase, targetLatency float64) *ReprocessMaxTimeWBCoordinator {
	c := NewMinimiseMeanTimeWBCoordinator(base, targetLatency)
	c.reprocessMax = true
	return &ReprocessMaxTimeWBCoordinator{MinimiseMeanTimeWBCoordinator: c}
}

// ProcessNewStrike implements WBCoordinator.
func (c *ReprocessMaxTimeWBCoordinator) ProcessNewStrike(l *scenario.Lightning) {
	c.MinimiseMeanTimeWBCoordinator.ProcessNewStrike(l)
}

// ProcessNewIgnition implements WBCoordinator.
func (c *ReprocessMaxTimeWBCoordinator) ProcessNewIgnition(ignition *scenario.Lightning) {
	c.MinimiseMeanTimeWBCoordinator.ProcessNewIgnition(ignition)
}
