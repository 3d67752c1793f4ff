package simulator

import (
	"testing"

	"github.com/wildfire/dispatch-sim/pkg/aircraft"
	"github.com/wildfire/dispatch-sim/pkg/dispatch"
	"github.com/wildfire/dispatch-sim/pkg/geo"
	"github.com/wildfire/dispatch-sim/pkg/scenario"
)

func TestSimulatorInspectsAndSuppressesASingleIgnition(t *testing.T) {
	uavBase := scenario.NewBase(1, "uav-base", geo.Location{Lat: 0, Lon: 0})
	wbBase := scenario.NewBase(2, "wb-base", geo.Location{Lat: 0, Lon: 0})

	uav := aircraft.NewUAV(1, "uav-1", aircraft.Attributes{
		FlightSpeed: geo.NewSpeed(200, "km", "hr"), FuelRefillTime: geo.NewDuration(10, "min"),
		Range: geo.NewDistance(500, "km"), InspectionTime: geo.NewDuration(5, "min"),
		PctFuelCutoff: 0.1, InitialFuel: 1.0, StartingBase: &uavBase,
	})
	wb := aircraft.NewWaterBomber(1, "wb-1", aircraft.Attributes{
		FlightSpeed: geo.NewSpeed(150, "km", "hr"), FuelRefillTime: geo.NewDuration(15, "min"),
		RangeEmpty: geo.NewDistance(800, "km"), RangeLoaded: geo.NewDistance(400, "km"),
		WaterCapacity: geo.NewVolume(3000, "L"), WaterRefillTime: geo.NewDuration(20, "min"),
		SuppressionTime: geo.NewDuration(10, "min"), WaterPerSuppression: geo.NewVolume(2000, "L"),
		PctFuelCutoff: 0.1, InitialFuel: 1.0, StartingBase: &wbBase, TypeTag: "standard",
	})

	objective := dispatch.NewObjective(dispatch.PrioritiseTime, dispatch.ThresholdConfig{})
	uavCoord := dispatch.NewSimpleUAVCoordinator(
		dispatch.NewUAVCoordinatorBase([]*aircraft.UAV{uav}, []*scenario.Base{&uavBase}, objective, nil))
	wbCoord := dispatch.NewSimpleWBCoordinator(
		dispatch.NewWBCoordinatorBase([]*aircraft.WaterBomber{wb},
			map[string][]*scenario.Base{"standard": {&wbBase}}, nil, objective, nil))

	strike := scenario.NewLightning(1, geo.Location{Lat: 0.05, Lon: 0.05}, 0, true, 0.4)
	sim := New([]*aircraft.UAV{uav}, []*aircraft.WaterBomber{wb}, nil, uavCoord, wbCoord, []*scenario.Lightning{strike})

	result := sim.Run()

	if !strike.IsInspected() {
		t.Fatalf("expected the strike to be inspected by the end of the run")
	}
	if !strike.IsSuppressed() {
		t.Fatalf("expected the ignition to be suppressed by the end of the run")
	}
	if len(result.UAVHistory[uav.ID]) == 0 {
		t.Fatalf("expected a non-empty UAV history")
	}
	if len(result.WaterBomberHistory[wb.ID]) == 0 {
		t.Fatalf("expected a non-empty water bomber history")
	}
}
