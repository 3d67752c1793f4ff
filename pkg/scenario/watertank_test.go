package scenario

import (
	"testing"

	"github.com/wildfire/dispatch-sim/pkg/geo"
)

func TestWaterTankReserveDrawRelease(t *testing.T) {
	tank, err := NewWaterTank(1, "tank-1", geo.Location{}, geo.NewVolume(1500, "L"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !tank.Reserve(geo.NewVolume(800, "L")) {
		t.Fatalf("expected reservation of 800L to succeed against 1500L capacity")
	}
	if got := tank.Available().Litres(); got != 700 {
		t.Fatalf("expected 700L available, got %f", got)
	}
	if tank.Reserve(geo.NewVolume(800, "L")) {
		t.Fatalf("second 800L reservation should fail, only 700L available")
	}

	tank.Draw(geo.NewVolume(800, "L"))
	if got := tank.Remaining().Litres(); got != 700 {
		t.Fatalf("expected 700L remaining after draw, got %f", got)
	}
	if got := tank.Reserved().Litres(); got != 0 {
		t.Fatalf("expected reservation cleared after draw, got %f", got)
	}
}

func TestWaterTankReleaseReservation(t *testing.T) {
	tank, _ := NewWaterTank(1, "tank-1", geo.Location{}, geo.NewVolume(1000, "L"))
	tank.Reserve(geo.NewVolume(400, "L"))
	tank.ReleaseReservation(geo.NewVolume(400, "L"))
	if got := tank.Available().Litres(); got != 1000 {
		t.Fatalf("expected full availability after release, got %f", got)
	}
}

func TestWaterTankNegativeCapacityRejected(t *testing.T) {
	if _, err := NewWaterTank(1, "bad", geo.Location{}, geo.NewVolume(-1, "L")); err == nil {
		t.Fatalf("expected error constructing tank with negative capacity")
	}
}

func TestWaterTankNeverGoesNegative(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic drawing more than remaining capacity")
		}
	}()
	tank, _ := NewWaterTank(1, "tank-1", geo.Location{}, geo.NewVolume(100, "L"))
	tank.Draw(geo.NewVolume(200, "L"))
}
