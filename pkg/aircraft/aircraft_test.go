package aircraft

import (
	"testing"

	"github.com/wildfire/dispatch-sim/pkg/geo"
	"github.com/wildfire/dispatch-sim/pkg/scenario"
)

func uavAttrs(base *scenario.Base) Attributes {
	return Attributes{
		FlightSpeed:    geo.NewSpeed(200, "km", "hr"),
		FuelRefillTime: geo.NewDuration(10, "min"),
		Range:          geo.NewDistance(500, "km"),
		InspectionTime: geo.NewDuration(5, "min"),
		PctFuelCutoff:  0.1,
		InitialFuel:    1.0,
		StartingBase:   base,
	}
}

// TestSingleStrikePlentyOfFuel covers scenario S1: one strike well within
// range, enough fuel for the round trip, aircraft ends Hovering at the
// strike with fuel still positive.
func TestSingleStrikePlentyOfFuel(t *testing.T) {
	base := scenario.NewBase(1, "base-1", geo.Location{Lat: 0, Lon: 0})
	uav := NewUAV(1, "uav-1", uavAttrs(&base))

	strike := scenario.NewLightning(1, geo.Location{Lat: 0.05, Lon: 0.05}, 0, false, 0.2)
	ev, ok := uav.AddLocationToQueue(ToStrike(strike), 0)
	if !ok {
		t.Fatalf("expected feasible insertion for a nearby strike")
	}
	if ev.ArrivalFuel <= 0 || ev.ArrivalFuel >= 1 {
		t.Fatalf("expected arrival fuel strictly between 0 and 1, got %f", ev.ArrivalFuel)
	}

	inspected, _ := uav.UpdateToTime(ev.CompletionTime)
	if len(inspected) != 1 || inspected[0] != strike {
		t.Fatalf("expected the strike to be inspected, got %v", inspected)
	}
	if uav.StatusNow() != scenario.Hovering {
		t.Fatalf("expected status Hovering after inspection, got %v", uav.StatusNow())
	}
	if uav.Fuel() < 0 {
		t.Fatalf("fuel went negative: %f", uav.Fuel())
	}
	if !strike.IsInspected() {
		t.Fatalf("expected strike to record inspection")
	}
}

// TestRefuelRequiredAndRejected covers scenario S2: a strike far enough away
// that the aircraft cannot reach it and return to base, so insertion must be
// rejected as infeasible rather than silently dispatched.
func TestRefuelRequiredAndRejected(t *testing.T) {
	base := scenario.NewBase(1, "base-1", geo.Location{Lat: 0, Lon: 0})
	attrs := uavAttrs(&base)
	attrs.Range = geo.NewDistance(50, "km") // much shorter range
	attrs.InitialFuel = 0.05
	uav := NewUAV(1, "uav-1", attrs)

	strike := scenario.NewLightning(1, geo.Location{Lat: 2.0, Lon: 2.0}, 0, false, 0.2)
	_, ok := uav.AddLocationToQueue(ToStrike(strike), 0)
	if ok {
		t.Fatalf("expected infeasible insertion for an out-of-range strike with low fuel")
	}
	if uav.Queue().Len() != 0 {
		t.Fatalf("rejected insertion must not mutate the queue")
	}
}

func TestUpdateToTimeIdempotentForNonAdvancingTime(t *testing.T) {
	base := scenario.NewBase(1, "base-1", geo.Location{})
	uav := NewUAV(1, "uav-1", uavAttrs(&base))
	strike := scenario.NewLightning(1, geo.Location{Lat: 0.01, Lon: 0.01}, 0, false, 0.1)
	ev, ok := uav.AddLocationToQueue(ToStrike(strike), 0)
	if !ok {
		t.Fatalf("expected feasible insertion")
	}
	uav.UpdateToTime(ev.CompletionTime)
	fuelAfter := uav.Fuel()
	timeAfter := uav.Time()

	uav.UpdateToTime(ev.CompletionTime - 1) // non-advancing, should be a no-op
	if uav.Fuel() != fuelAfter || uav.Time() != timeAfter {
		t.Fatalf("expected no state change for a non-advancing UpdateToTime call")
	}
}

func TestFuelNeverNegativeAcrossMultipleStrikes(t *testing.T) {
	base := scenario.NewBase(1, "base-1", geo.Location{})
	uav := NewUAV(1, "uav-1", uavAttrs(&base))

	strikes := []*scenario.Lightning{
		scenario.NewLightning(1, geo.Location{Lat: 0.05, Lon: 0.0}, 0, false, 0.1),
		scenario.NewLightning(2, geo.Location{Lat: 0.1, Lon: 0.05}, 100, false, 0.3),
	}
	for _, s := range strikes {
		ev, ok := uav.AddLocationToQueue(ToStrike(s), s.SpawnTime)
		if !ok {
			t.Fatalf("expected feasible insertion for strike %d", s.ID)
		}
		if ev.ArrivalFuel < 0 || ev.CompletionFuel < 0 {
			t.Fatalf("negative fuel computed for strike %d", s.ID)
		}
	}
	last, _ := uav.Queue().PeekLast()
	uav.UpdateToTime(last.CompletionTime)
	if uav.Fuel() < 0 {
		t.Fatalf("aircraft fuel went negative: %f", uav.Fuel())
	}
}

func TestWaterBomberRangeVariesWithWaterLoad(t *testing.T) {
	base := scenario.NewBase(1, "base-1", geo.Location{})
	attrs := Attributes{
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
	}
	wb := NewWaterBomber(1, "wb-1", attrs)

	fullRange := wb.rangeAt(attrs.WaterCapacity.Litres())
	emptyRange := wb.rangeAt(0)
	if fullRange.Metres() >= emptyRange.Metres() {
		t.Fatalf("expected loaded range (%f) to be less than empty range (%f)",
			fullRange.Metres(), emptyRange.Metres())
	}
}

func TestWaterBomberSuppressionDrainsTank(t *testing.T) {
	base := scenario.NewBase(1, "base-1", geo.Location{})
	attrs := Attributes{
		FlightSpeed:         geo.NewSpeed(150, "km", "hr"),
		FuelRefillTime:      geo.NewDuration(15, "min"),
		RangeEmpty:          geo.NewDistance(800, "km"),
		RangeLoaded:         geo.NewDistance(600, "km"),
		WaterCapacity:       geo.NewVolume(3000, "L"),
		WaterRefillTime:     geo.NewDuration(20, "min"),
		SuppressionTime:     geo.NewDuration(10, "min"),
		WaterPerSuppression: geo.NewVolume(2000, "L"),
		PctFuelCutoff:       0.1,
		InitialFuel:         1.0,
		StartingBase:        &base,
	}
	wb := NewWaterBomber(1, "wb-1", attrs)
	ignition := scenario.NewLightning(1, geo.Location{Lat: 0.05, Lon: 0.05}, 0, true, 0.5)
	// Only an inspected ignition can be suppressed.
	ignition.Inspected(0)

	ev, ok := wb.AddLocationToQueue(ToStrike(ignition), 0)
	if !ok {
		t.Fatalf("expected feasible suppression insertion")
	}
	if ev.WaterOnBoard != attrs.WaterCapacity.Litres()-attrs.WaterPerSuppression.Litres() {
		t.Fatalf("expected water on board to drop by WaterPerSuppression, got %f", ev.WaterOnBoard)
	}

	_, suppressed := wb.UpdateToTime(ev.CompletionTime)
	if len(suppressed) != 1 || suppressed[0] != ignition {
		t.Fatalf("expected the ignition to be suppressed")
	}
}

func TestWaterBomberEnoughWaterRejectsSecondSuppressionWithoutRefill(t *testing.T) {
	base := scenario.NewBase(1, "base-1", geo.Location{})
	attrs := Attributes{
		FlightSpeed:         geo.NewSpeed(150, "km", "hr"),
		FuelRefillTime:      geo.NewDuration(15, "min"),
		RangeEmpty:          geo.NewDistance(800, "km"),
		RangeLoaded:         geo.NewDistance(600, "km"),
		WaterCapacity:       geo.NewVolume(3000, "L"),
		WaterRefillTime:     geo.NewDuration(20, "min"),
		SuppressionTime:     geo.NewDuration(10, "min"),
		WaterPerSuppression: geo.NewVolume(2000, "L"),
		PctFuelCutoff:       0.1,
		InitialFuel:         1.0,
		StartingBase:        &base,
	}
	wb := NewWaterBomber(1, "wb-1", attrs)

	path := []EventTarget{
		ToStrike(scenario.NewLightning(1, geo.Location{Lat: 0.02, Lon: 0.02}, 0, true, 0.5)),
		ToStrike(scenario.NewLightning(2, geo.Location{Lat: 0.04, Lon: 0.04}, 50, true, 0.5)),
	}
	if wb.EnoughWater(path, StartState{}) {
		t.Fatalf("expected insufficient water for two suppressions without an intervening refill")
	}
}
