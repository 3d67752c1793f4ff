package config

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/wildfire/dispatch-sim/pkg/aircraft"
	"github.com/wildfire/dispatch-sim/pkg/dispatch"
	"github.com/wildfire/dispatch-sim/pkg/geo"
	"github.com/wildfire/dispatch-sim/pkg/precomputed"
	"github.com/wildfire/dispatch-sim/pkg/scenario"
	"github.com/wildfire/dispatch-sim/pkg/simulator"
)

// Scenario is the fully-built, runnable form of a SimulationConfig: the
// entity model the simulator drives plus the pieces the reporting layer
// needs once the run finishes.
type Scenario struct {
	Sim        *simulator.Simulator
	UAVs       []*aircraft.UAV
	WaterBombers []*aircraft.WaterBomber
	Tanks      []*scenario.WaterTank
	Bases      []*scenario.Base
	Strikes    []*scenario.Lightning
}

// Build turns a validated SimulationConfig into a runnable Scenario: it
// constructs the fleet, bases, tanks, a synthetic strike list, and wires up
// the two coordinators named in Dispatch.
func (c *SimulationConfig) Build() (*Scenario, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	basesByID := make(map[int]*scenario.Base, len(c.Bases))
	var allBases []*scenario.Base
	uavBases := make([]*scenario.Base, 0)
	wbBasesByType := make(map[string][]*scenario.Base)
	for _, bc := range c.Bases {
		b := scenario.NewBase(bc.ID, bc.Name, geo.Location{Lat: bc.Location.Latitude, Lon: bc.Location.Longitude})
		basesByID[bc.ID] = &b
		allBases = append(allBases, &b)
		if len(bc.WaterBomberTypes) == 0 {
			uavBases = append(uavBases, &b)
		}
		for _, t := range bc.WaterBomberTypes {
			wbBasesByType[t] = append(wbBasesByType[t], &b)
		}
	}

	tanks := make([]*scenario.WaterTank, 0, len(c.WaterTanks))
	for _, tc := range c.WaterTanks {
		tank, err := scenario.NewWaterTank(tc.ID, tc.Name,
			geo.Location{Lat: tc.Location.Latitude, Lon: tc.Location.Longitude},
			geo.NewVolume(tc.CapacityLitres, "L"))
		if err != nil {
			return nil, fmt.Errorf("water tank %q: %w", tc.Name, err)
		}
		tanks = append(tanks, tank)
	}

	uavs := make([]*aircraft.UAV, 0, len(c.Fleet.UAVs))
	for _, uc := range c.Fleet.UAVs {
		base, ok := basesByID[uc.StartingBaseID]
		if !ok {
			return nil, fmt.Errorf("uav %q: unknown starting base %d", uc.Name, uc.StartingBaseID)
		}
		uavs = append(uavs, aircraft.NewUAV(uc.ID, uc.Name, aircraft.Attributes{
			FlightSpeed:    geo.NewSpeed(uc.FlightSpeedKmh, "km", "hr"),
			FuelRefillTime: geo.NewDuration(uc.FuelRefillTimeMin, "min"),
			Range:          geo.NewDistance(uc.RangeKm, "km"),
			InspectionTime: geo.NewDuration(uc.InspectionTimeMin, "min"),
			PctFuelCutoff:  uc.PctFuelCutoff,
			InitialFuel:    uc.InitialFuel,
			StartingBase:   base,
		}))
	}

	wbs := make([]*aircraft.WaterBomber, 0, len(c.Fleet.WaterBombers))
	for _, wc := range c.Fleet.WaterBombers {
		base, ok := basesByID[wc.StartingBaseID]
		if !ok {
			return nil, fmt.Errorf("water bomber %q: unknown starting base %d", wc.Name, wc.StartingBaseID)
		}
		wbs = append(wbs, aircraft.NewWaterBomber(wc.ID, wc.Name, aircraft.Attributes{
			FlightSpeed:         geo.NewSpeed(wc.FlightSpeedKmh, "km", "hr"),
			FuelRefillTime:      geo.NewDuration(wc.FuelRefillTimeMin, "min"),
			RangeEmpty:          geo.NewDistance(wc.RangeEmptyKm, "km"),
			RangeLoaded:         geo.NewDistance(wc.RangeLoadedKm, "km"),
			WaterCapacity:       geo.NewVolume(wc.WaterCapacityLitres, "L"),
			WaterRefillTime:     geo.NewDuration(wc.WaterRefillTimeMin, "min"),
			SuppressionTime:     geo.NewDuration(wc.SuppressionTimeMin, "min"),
			WaterPerSuppression: geo.NewVolume(wc.WaterPerSuppressionLitres, "L"),
			PctFuelCutoff:       wc.PctFuelCutoff,
			InitialFuel:         wc.InitialFuel,
			StartingBase:        base,
			TypeTag:             wc.TypeTag,
		}))
	}

	strikes := c.generateStrikes()

	pre := precomputed.NewDistances(strikes, uavBases, wbBasesByType)
	objective := c.buildObjective()

	uavCoord, err := c.buildUAVCoordinator(uavs, uavBases, objective, pre)
	if err != nil {
		return nil, err
	}
	wbCoord, err := c.buildWBCoordinator(wbs, wbBasesByType, tanks, objective, pre)
	if err != nil {
		return nil, err
	}

	sim := simulator.New(uavs, wbs, tanks, uavCoord, wbCoord, strikes)

	return &Scenario{
		Sim: sim, UAVs: uavs, WaterBombers: wbs, Tanks: tanks, Bases: allBases, Strikes: strikes,
	}, nil
}

// generateStrikes builds a synthetic, spawn-time-ordered lightning list
// scattered uniformly around Scenario.CenterLocation.
func (c *SimulationConfig) generateStrikes() []*scenario.Lightning {
	s := c.Scenario
	strikes := make([]*scenario.Lightning, 0, s.NumStrikes)
	for i := 0; i < s.NumStrikes; i++ {
		lat := s.CenterLocation.Latitude + (rand.Float64()*2-1)*s.SpreadDegrees
		lon := s.CenterLocation.Longitude + (rand.Float64()*2-1)*s.SpreadDegrees
		spawn := rand.Float64() * s.SpawnWindowHours * 3600
		ignites := rand.Float64() < s.IgnitionProbability
		risk := s.RiskMin + rand.Float64()*(s.RiskMax-s.RiskMin)
		strikes = append(strikes, scenario.NewLightning(i+1, geo.Location{Lat: lat, Lon: lon}, spawn, ignites, risk))
	}
	return strikes
}

func (c *SimulationConfig) buildObjective() *dispatch.Objective {
	d := c.Dispatch
	var p dispatch.Prioritisation
	switch d.Prioritisation {
	case "product":
		p = dispatch.PrioritiseTimeRisk
	case "p_sq":
		p = dispatch.PrioritiseTimeRisk2
	case "p_cub":
		p = dispatch.PrioritiseTimeRisk3
	case "thresh":
		p = dispatch.PrioritiseThreshold
	default:
		p = dispatch.PrioritiseTime
	}
	threshold := dispatch.ThresholdConfig{
		Cutoff:  d.ThresholdCutoffHours * 3600,
		Penalty: d.ThresholdPenalty,
	}
	return dispatch.NewObjective(p, threshold)
}

func targetLatencySeconds(raw string) float64 {
	if raw == "" || raw == "unbounded" {
		return math.Inf(1)
	}
	var hours float64
	if _, err := fmt.Sscanf(raw, "%f", &hours); err != nil {
		return math.Inf(1)
	}
	return hours * 3600
}

func (c *SimulationConfig) buildUAVCoordinator(
	uavs []*aircraft.UAV, bases []*scenario.Base, objective *dispatch.Objective, pre *precomputed.Distances,
) (dispatch.UAVCoordinator, error) {
	base := dispatch.NewUAVCoordinatorBase(uavs, bases, objective, pre)
	target := targetLatencySeconds(c.Dispatch.TargetMaxLatencyHours)
	switch c.Dispatch.UAVCoordinator {
	case "simple":
		return dispatch.NewSimpleUAVCoordinator(base), nil
	case "insertion":
		return dispatch.NewInsertionUAVCoordinator(base), nil
	case "minimise_mean_time":
		return dispatch.NewMinimiseMeanTimeUAVCoordinator(base, target), nil
	case "reprocess_max_time":
		return dispatch.NewReprocessMaxTimeUAVCoordinator(base, target), nil
	default:
		return nil, fmt.Errorf("unknown uav coordinator %q", c.Dispatch.UAVCoordinator)
	}
}

func (c *SimulationConfig) buildWBCoordinator(
	wbs []*aircraft.WaterBomber, basesByType map[string][]*scenario.Base, tanks []*scenario.WaterTank,
	objective *dispatch.Objective, pre *precomputed.Distances,
) (dispatch.WBCoordinator, error) {
	base := dispatch.NewWBCoordinatorBase(wbs, basesByType, tanks, objective, pre)
	target := targetLatencySeconds(c.Dispatch.TargetMaxLatencyHours)
	switch c.Dispatch.WBCoordinator {
	case "simple":
		return dispatch.NewSimpleWBCoordinator(base), nil
	case "insertion":
		return dispatch.NewInsertionWBCoordinator(base), nil
	case "minimise_mean_time":
		return dispatch.NewMinimiseMeanTimeWBCoordinator(base, target), nil
	case "reprocess_max_time":
		return dispatch.NewReprocessMaxTimeWBCoordinator(base, target), nil
	default:
		return nil, fmt.Errorf("unknown wb coordinator %q", c.Dispatch.WBCoordinator)
	}
}
