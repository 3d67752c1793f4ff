package dispatch

import (
	"testing"

	"github.com/wildfire/dispatch-sim/pkg/aircraft"
	"github.com/wildfire/dispatch-sim/pkg/geo"
	"github.com/wildfire/dispatch-sim/pkg/scenario"
)

func testUAVAttrs(base *scenario.Base) aircraft.Attributes {
	return aircraft.Attributes{
		FlightSpeed:    geo.NewSpeed(200, "km", "hr"),
		FuelRefillTime: geo.NewDuration(10, "min"),
		Range:          geo.NewDistance(500, "km"),
		InspectionTime: geo.NewDuration(5, "min"),
		PctFuelCutoff:  0.1,
		InitialFuel:    1.0,
		StartingBase:   base,
	}
}

func TestPrioritisationFunc(t *testing.T) {
	f := PrioritiseTimeRisk.Func(ThresholdConfig{})
	if got := f(10, 2); got != 20 {
		t.Fatalf("expected time*risk = 20, got %f", got)
	}
	thr := PrioritiseThreshold.Func(ThresholdConfig{Cutoff: 100, Penalty: 2})
	if got := thr(50, 0); got != 50 {
		t.Fatalf("expected unpenalised latency under cutoff, got %f", got)
	}
	if got := thr(150, 0); got != 200 { // 100 + 2*(150-100)
		t.Fatalf("expected penalised latency over cutoff, got %f", got)
	}
}

func TestSimpleUAVCoordinatorAssignsNearestFeasibleUAV(t *testing.T) {
	near := scenario.NewBase(1, "near", geo.Location{Lat: 0, Lon: 0})
	far := scenario.NewBase(2, "far", geo.Location{Lat: 5, Lon: 5})

	uavNear := aircraft.NewUAV(1, "uav-near", testUAVAttrs(&near))
	uavFar := aircraft.NewUAV(2, "uav-far", testUAVAttrs(&far))

	objective := NewObjective(PrioritiseTime, ThresholdConfig{})
	base := NewUAVCoordinatorBase([]*aircraft.UAV{uavNear, uavFar}, []*scenario.Base{&near, &far}, objective, nil)
	coord := NewSimpleUAVCoordinator(base)

	strike := scenario.NewLightning(1, geo.Location{Lat: 0.05, Lon: 0.05}, 0, false, 0.2)
	coord.ProcessNewStrike(strike)

	if uavNear.Queue().IsEmpty() {
		t.Fatalf("expected the nearer UAV to be assigned the strike")
	}
	if !uavFar.Queue().IsEmpty() {
		t.Fatalf("expected the farther UAV to remain unassigned")
	}
}

func TestInsertionUAVCoordinatorSplicesBetweenQueuedStrikes(t *testing.T) {
	base := scenario.NewBase(1, "base-1", geo.Location{Lat: 0, Lon: 0})
	uav := aircraft.NewUAV(1, "uav-1", testUAVAttrs(&base))

	objective := NewObjective(PrioritiseTime, ThresholdConfig{})
	coordBase := NewUAVCoordinatorBase([]*aircraft.UAV{uav}, []*scenario.Base{&base}, objective, nil)
	coord := NewInsertionUAVCoordinator(coordBase)

	first := scenario.NewLightning(1, geo.Location{Lat: 0.2, Lon: 0.2}, 0, false, 0.1)
	coord.ProcessNewStrike(first)
	if uav.Queue().Len() != 1 {
		t.Fatalf("expected one queued event after the first strike, got %d", uav.Queue().Len())
	}

	closer := scenario.NewLightning(2, geo.Location{Lat: 0.02, Lon: 0.02}, 1, false, 0.1)
	coord.ProcessNewStrike(closer)
	if uav.Queue().Len() < 2 {
		t.Fatalf("expected the second strike to be queued as well, got length %d", uav.Queue().Len())
	}
}

func TestWBCoordinatorOnlyActsOnIgnitions(t *testing.T) {
	base := scenario.NewBase(1, "base-1", geo.Location{})
	attrs := aircraft.Attributes{
		FlightSpeed:         geo.NewSpeed(150, "km", "hr"),
		FuelRefillTime:      geo.NewDuration(15, "min"),
		RangeEmpty:          geo.NewDistance(800, "km"),
		RangeLoaded:         geo.NewDistance(400, "km"),
		WaterCapacity:       geo.NewVolume(3000, "L"),
		WaterRefillTime:     geo.NewDuration(20, "min"),
		SuppressionTime:     geo.NewDuration(10, "min"),
		WaterPerSuppression: geo.NewVolume(2000, "L"),
		PctFuelCutoff:       0.1,
		InitialFuel:         1.0,
		StartingBase:        &base,
		TypeTag:             "type-1",
	}
	wb := aircraft.NewWaterBomber(1, "wb-1", attrs)

	objective := NewObjective(PrioritiseTime, ThresholdConfig{})
	byType := map[string][]*scenario.Base{"type-1": {&base}}
	coordBase := NewWBCoordinatorBase([]*aircraft.WaterBomber{wb}, byType, nil, objective, nil)
	coord := NewSimpleWBCoordinator(coordBase)

	nonIgnition := scenario.NewLightning(1, geo.Location{Lat: 0.01, Lon: 0.01}, 0, false, 0.1)
	coord.ProcessNewStrike(nonIgnition)
	if !wb.Queue().IsEmpty() {
		t.Fatalf("a strike that did not ignite should never dispatch a water bomber")
	}

	ignition := scenario.NewLightning(2, geo.Location{Lat: 0.01, Lon: 0.01}, 0, true, 0.5)
	coord.ProcessNewIgnition(ignition)
	if wb.Queue().IsEmpty() {
		t.Fatalf("expected the water bomber to be dispatched to the ignition")
	}
}
