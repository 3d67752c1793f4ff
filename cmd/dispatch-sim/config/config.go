// Package config holds the synthetic scenario configuration for the
// dispatch-sim plugin: fleet composition, bases, water tanks, and the
// lightning generator used to build a runnable scenario.
package config

import (
	"fmt"
	"strings"
	"time"
)

// LocationConfig is a YAML-friendly lat/lon pair.
type LocationConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// SimulationSettings holds top level metadata about the scenario run.
type SimulationSettings struct {
	Name           string        `yaml:"name"`
	Description    string        `yaml:"description"`
	UpdateInterval time.Duration `yaml:"update_interval"`
}

// BaseConfig describes one refuel base. WaterBomberTypes lists the
// water-bomber type tags allowed to use it; an empty list means UAV-only.
type BaseConfig struct {
	ID               int            `yaml:"id"`
	Name             string         `yaml:"name"`
	Location         LocationConfig `yaml:"location"`
	WaterBomberTypes []string       `yaml:"water_bomber_types"`
}

// WaterTankConfig describes one water-bomber refill tank.
type WaterTankConfig struct {
	ID             int            `yaml:"id"`
	Name           string         `yaml:"name"`
	Location       LocationConfig `yaml:"location"`
	CapacityLitres float64        `yaml:"capacity_litres"`
}

// UAVConfig describes one inspection aircraft.
type UAVConfig struct {
	ID                int     `yaml:"id"`
	Name              string  `yaml:"name"`
	FlightSpeedKmh    float64 `yaml:"flight_speed_kmh"`
	FuelRefillTimeMin float64 `yaml:"fuel_refill_time_min"`
	RangeKm           float64 `yaml:"range_km"`
	InspectionTimeMin float64 `yaml:"inspection_time_min"`
	PctFuelCutoff     float64 `yaml:"pct_fuel_cutoff"`
	InitialFuel       float64 `yaml:"initial_fuel"`
	StartingBaseID    int     `yaml:"starting_base_id"`
}

// WaterBomberConfig describes one suppression aircraft: a UAVConfig plus the
// water-specific fields.
type WaterBomberConfig struct {
	ID                        int     `yaml:"id"`
	Name                      string  `yaml:"name"`
	TypeTag                   string  `yaml:"type_tag"`
	FlightSpeedKmh            float64 `yaml:"flight_speed_kmh"`
	FuelRefillTimeMin         float64 `yaml:"fuel_refill_time_min"`
	RangeEmptyKm              float64 `yaml:"range_empty_km"`
	RangeLoadedKm             float64 `yaml:"range_loaded_km"`
	InspectionTimeMin         float64 `yaml:"inspection_time_min"`
	PctFuelCutoff             float64 `yaml:"pct_fuel_cutoff"`
	InitialFuel               float64 `yaml:"initial_fuel"`
	StartingBaseID            int     `yaml:"starting_base_id"`
	WaterCapacityLitres       float64 `yaml:"water_capacity_litres"`
	WaterRefillTimeMin        float64 `yaml:"water_refill_time_min"`
	SuppressionTimeMin        float64 `yaml:"suppression_time_min"`
	WaterPerSuppressionLitres float64 `yaml:"water_per_suppression_litres"`
}

// FleetConfig is the full aircraft roster.
type FleetConfig struct {
	UAVs         []UAVConfig         `yaml:"uavs"`
	WaterBombers []WaterBomberConfig `yaml:"water_bombers"`
}

// ScenarioConfig parameterises the synthetic lightning generator used by
// the CLI demo.
type ScenarioConfig struct {
	NumStrikes          int            `yaml:"num_strikes"`
	CenterLocation      LocationConfig `yaml:"center_location"`
	SpreadDegrees       float64        `yaml:"spread_degrees"`
	SpawnWindowHours    float64        `yaml:"spawn_window_hours"`
	IgnitionProbability float64        `yaml:"ignition_probability"`
	RiskMin             float64        `yaml:"risk_min"`
	RiskMax             float64        `yaml:"risk_max"`
}

// DispatchConfig selects the coordinator family and objective: which
// coordinator policy each aircraft class uses, the prioritisation function
// they score candidates with, and that function's threshold parameters.
type DispatchConfig struct {
	UAVCoordinator        string  `yaml:"uav_coordinator"`
	WBCoordinator         string  `yaml:"wb_coordinator"`
	Prioritisation        string  `yaml:"prioritisation"`
	ThresholdCutoffHours  float64 `yaml:"threshold_cutoff_hours"`
	ThresholdPenalty      float64 `yaml:"threshold_penalty"`
	TargetMaxLatencyHours string  `yaml:"target_max_latency_hours"` // numeric string, or "unbounded"
	MeanTimePower         float64 `yaml:"mean_time_power"`
}

// LoggingConfig controls console verbosity and the after-action report.
type LoggingConfig struct {
	ConsoleLevel     string `yaml:"console_level"`
	EnableReport     bool   `yaml:"enable_report"`
	ReportOutputPath string `yaml:"report_output_path"`
}

// AdvancedConfig holds settings that most scenarios never need to touch.
type AdvancedConfig struct {
	VerboseLogging bool  `yaml:"verbose_logging"`
	RandomSeed     int64 `yaml:"random_seed"`
}

// SimulationConfig is the full, YAML-serialisable scenario description that
// cmd/dispatch-sim builds a Simulator from.
type SimulationConfig struct {
	Simulation SimulationSettings `yaml:"simulation"`
	Bases      []BaseConfig       `yaml:"bases"`
	WaterTanks []WaterTankConfig  `yaml:"water_tanks"`
	Fleet      FleetConfig        `yaml:"fleet"`
	Scenario   ScenarioConfig     `yaml:"scenario"`
	Dispatch   DispatchConfig     `yaml:"dispatch"`
	Logging    LoggingConfig      `yaml:"logging"`
	Advanced   AdvancedConfig     `yaml:"advanced"`
}

var (
	validCoordinators    = []string{"simple", "insertion", "minimise_mean_time", "reprocess_max_time"}
	validPrioritisations = []string{"time", "product", "p_sq", "p_cub", "thresh"}
)

// Validate catches input inconsistencies up front: every field the
// simulator core would otherwise discover was broken only once aircraft
// start flying.
func (c *SimulationConfig) Validate() error {
	if c.Simulation.Name == "" {
		return fmt.Errorf("simulation name is required")
	}
	if c.Simulation.UpdateInterval < 0 {
		return fmt.Errorf("update interval must not be negative")
	}
	if len(c.Fleet.UAVs) == 0 && len(c.Fleet.WaterBombers) == 0 {
		return fmt.Errorf("fleet must contain at least one aircraft")
	}
	if len(c.Bases) == 0 {
		return fmt.Errorf("at least one base is required")
	}

	baseIDs := make(map[int]bool, len(c.Bases))
	for _, b := range c.Bases {
		baseIDs[b.ID] = true
	}

	for _, u := range c.Fleet.UAVs {
		if err := validatePctFuelCutoff(u.PctFuelCutoff); err != nil {
			return fmt.Errorf("uav %q: %w", u.Name, err)
		}
		if u.RangeKm <= 0 {
			return fmt.Errorf("uav %q: range must be positive", u.Name)
		}
		if !baseIDs[u.StartingBaseID] {
			return fmt.Errorf("uav %q: starting base %d is not in bases", u.Name, u.StartingBaseID)
		}
	}
	for _, wb := range c.Fleet.WaterBombers {
		if err := validatePctFuelCutoff(wb.PctFuelCutoff); err != nil {
			return fmt.Errorf("water bomber %q: %w", wb.Name, err)
		}
		if wb.RangeEmptyKm <= 0 || wb.RangeLoadedKm <= 0 {
			return fmt.Errorf("water bomber %q: range_empty_km and range_loaded_km must be positive", wb.Name)
		}
		if wb.WaterCapacityLitres <= 0 {
			return fmt.Errorf("water bomber %q: water capacity must be positive", wb.Name)
		}
		if wb.TypeTag == "" {
			return fmt.Errorf("water bomber %q: type_tag is required", wb.Name)
		}
		if !baseIDs[wb.StartingBaseID] {
			return fmt.Errorf("water bomber %q: starting base %d is not in bases", wb.Name, wb.StartingBaseID)
		}
	}
	for _, t := range c.WaterTanks {
		if t.CapacityLitres < 0 {
			return fmt.Errorf("water tank %q: capacity must not be negative", t.Name)
		}
	}

	if c.Scenario.NumStrikes < 0 {
		return fmt.Errorf("scenario num_strikes must not be negative")
	}
	if c.Scenario.IgnitionProbability < 0 || c.Scenario.IgnitionProbability > 1 {
		return fmt.Errorf("scenario ignition_probability must be in [0,1]")
	}
	if c.Scenario.RiskMin < 0 || c.Scenario.RiskMax > 1 || c.Scenario.RiskMin > c.Scenario.RiskMax {
		return fmt.Errorf("scenario risk range must satisfy 0 <= risk_min <= risk_max <= 1")
	}

	if !oneOf(c.Dispatch.UAVCoordinator, validCoordinators) {
		return fmt.Errorf("dispatch.uav_coordinator %q is not one of %v", c.Dispatch.UAVCoordinator, validCoordinators)
	}
	if !oneOf(c.Dispatch.WBCoordinator, validCoordinators) {
		return fmt.Errorf("dispatch.wb_coordinator %q is not one of %v", c.Dispatch.WBCoordinator, validCoordinators)
	}
	if !oneOf(c.Dispatch.Prioritisation, validPrioritisations) {
		return fmt.Errorf("dispatch.prioritisation %q is not one of %v", c.Dispatch.Prioritisation, validPrioritisations)
	}

	return nil
}

func validatePctFuelCutoff(v float64) error {
	if v <= 0 || v > 1 {
		return fmt.Errorf("pct_fuel_cutoff must be in (0,1], got %f", v)
	}
	return nil
}

func oneOf(v string, options []string) bool {
	for _, o := range options {
		if strings.EqualFold(v, o) {
			return true
		}
	}
	return false
}

// String renders a human-readable summary of the configuration.
func (c *SimulationConfig) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scenario: %s\n", c.Simulation.Name)
	fmt.Fprintf(&b, "  %s\n", c.Simulation.Description)
	fmt.Fprintf(&b, "  Bases: %d, Water tanks: %d\n", len(c.Bases), len(c.WaterTanks))
	fmt.Fprintf(&b, "  Fleet: %d UAVs, %d water bombers\n", len(c.Fleet.UAVs), len(c.Fleet.WaterBombers))
	fmt.Fprintf(&b, "  Strikes: %d (ignition p=%.2f, risk [%.2f,%.2f])\n",
		c.Scenario.NumStrikes, c.Scenario.IgnitionProbability, c.Scenario.RiskMin, c.Scenario.RiskMax)
	fmt.Fprintf(&b, "  Dispatch: uav=%s wb=%s prioritisation=%s target_max_latency=%s\n",
		c.Dispatch.UAVCoordinator, c.Dispatch.WBCoordinator, c.Dispatch.Prioritisation, c.Dispatch.TargetMaxLatencyHours)
	return b.String()
}

// GetDefaultConfig returns the scenario used when no config file is found:
// two bases, one water tank, one UAV, one water bomber, and a handful of
// synthetic strikes.
func GetDefaultConfig() *SimulationConfig {
	return &SimulationConfig{
		Simulation: SimulationSettings{
			Name:           "wildfire-dispatch",
			Description:    "Lightning-ignition inspection and suppression dispatch",
			UpdateInterval: 3 * time.Second,
		},
		Bases: []BaseConfig{
			{ID: 1, Name: "uav-base", Location: LocationConfig{Latitude: 0, Longitude: 0}},
			{ID: 2, Name: "wb-base", Location: LocationConfig{Latitude: 0, Longitude: 0}, WaterBomberTypes: []string{"standard"}},
		},
		WaterTanks: []WaterTankConfig{
			{ID: 1, Name: "tank-1", Location: LocationConfig{Latitude: 0.1, Longitude: 0.1}, CapacityLitres: 1500},
		},
		Fleet: FleetConfig{
			UAVs: []UAVConfig{
				{
					ID: 1, Name: "uav-1", FlightSpeedKmh: 200, FuelRefillTimeMin: 10,
					RangeKm: 500, InspectionTimeMin: 5, PctFuelCutoff: 0.1, InitialFuel: 1.0,
					StartingBaseID: 1,
				},
			},
			WaterBombers: []WaterBomberConfig{
				{
					ID: 1, Name: "wb-1", TypeTag: "standard", FlightSpeedKmh: 150, FuelRefillTimeMin: 15,
					RangeEmptyKm: 800, RangeLoadedKm: 400, PctFuelCutoff: 0.1, InitialFuel: 1.0,
					StartingBaseID: 2, WaterCapacityLitres: 1000, WaterRefillTimeMin: 20,
					SuppressionTimeMin: 10, WaterPerSuppressionLitres: 800,
				},
			},
		},
		Scenario: ScenarioConfig{
			NumStrikes:          10,
			CenterLocation:      LocationConfig{Latitude: 0, Longitude: 0},
			SpreadDegrees:       0.5,
			SpawnWindowHours:    6,
			IgnitionProbability: 0.3,
			RiskMin:             0.1,
			RiskMax:             0.9,
		},
		Dispatch: DispatchConfig{
			UAVCoordinator:        "insertion",
			WBCoordinator:         "insertion",
			Prioritisation:        "time",
			TargetMaxLatencyHours: "unbounded",
			MeanTimePower:         1,
		},
		Logging: LoggingConfig{
			ConsoleLevel:     "info",
			EnableReport:     true,
			ReportOutputPath: "reports",
		},
		Advanced: AdvancedConfig{},
	}
}
