package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := GetDefaultConfig()

	if err := config.Validate(); err != nil {
		t.Fatalf("default config validation failed: %v", err)
	}

	if config.Simulation.Name != "wildfire-dispatch" {
		t.Errorf("expected default simulation name 'wildfire-dispatch', got %q", config.Simulation.Name)
	}
	if len(config.Fleet.UAVs) == 0 {
		t.Errorf("default config must have at least one UAV")
	}
	if len(config.Fleet.WaterBombers) == 0 {
		t.Errorf("default config must have at least one water bomber")
	}
	if config.Scenario.NumStrikes <= 0 {
		t.Errorf("default config must generate at least one strike")
	}
}

func TestDefaultConfigBuildsARunnableScenario(t *testing.T) {
	config := GetDefaultConfig()
	scn, err := config.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if scn.Sim == nil {
		t.Fatalf("expected a built Simulator")
	}
	if len(scn.Strikes) != config.Scenario.NumStrikes {
		t.Errorf("expected %d generated strikes, got %d", config.Scenario.NumStrikes, len(scn.Strikes))
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		config *SimulationConfig
		hasErr bool
	}{
		{
			name:   "empty config",
			config: &SimulationConfig{},
			hasErr: true,
		},
		{
			name: "negative update interval",
			config: &SimulationConfig{
				Simulation: SimulationSettings{Name: "test", UpdateInterval: -1 * time.Second},
				Bases:      []BaseConfig{{ID: 1}},
				Fleet:      FleetConfig{UAVs: []UAVConfig{{ID: 1, PctFuelCutoff: 0.1, RangeKm: 100, StartingBaseID: 1}}},
			},
			hasErr: true,
		},
		{
			name: "no aircraft",
			config: &SimulationConfig{
				Simulation: SimulationSettings{Name: "test"},
				Bases:      []BaseConfig{{ID: 1}},
			},
			hasErr: true,
		},
		{
			name: "uav with invalid pct_fuel_cutoff",
			config: &SimulationConfig{
				Simulation: SimulationSettings{Name: "test"},
				Bases:      []BaseConfig{{ID: 1}},
				Fleet: FleetConfig{UAVs: []UAVConfig{
					{ID: 1, Name: "u1", RangeKm: 100, PctFuelCutoff: 1.5, StartingBaseID: 1},
				}},
				Dispatch: DispatchConfig{UAVCoordinator: "simple", WBCoordinator: "simple", Prioritisation: "time"},
			},
			hasErr: true,
		},
		{
			name:   "valid default config",
			config: GetDefaultConfig(),
			hasErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.hasErr && err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
			if !tt.hasErr && err != nil {
				t.Errorf("unexpected validation error for %s: %v", tt.name, err)
			}
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	config := GetDefaultConfig()
	originalStrikes := config.Scenario.NumStrikes

	t.Setenv("NUM_STRIKES", "42")
	t.Setenv("PRIORITISATION", "product")
	t.Setenv("LOG_LEVEL", "debug")

	MergeWithEnvironment(config)

	if config.Scenario.NumStrikes == originalStrikes {
		t.Errorf("environment override for NUM_STRIKES failed")
	}
	if config.Scenario.NumStrikes != 42 {
		t.Errorf("expected 42 strikes, got %d", config.Scenario.NumStrikes)
	}
	if config.Dispatch.Prioritisation != "product" {
		t.Errorf("expected prioritisation 'product', got %q", config.Dispatch.Prioritisation)
	}
	if config.Logging.ConsoleLevel != "debug" {
		t.Errorf("expected log level 'debug', got %q", config.Logging.ConsoleLevel)
	}
}

func TestCLIOverrides(t *testing.T) {
	config := GetDefaultConfig()

	overrides := map[string]interface{}{
		"num_strikes":    15,
		"uav_coordinator": "simple",
		"wb_coordinator":  "reprocess_max_time",
		"verbose_logging": true,
	}

	MergeWithCLIOverrides(config, overrides)

	if config.Scenario.NumStrikes != 15 {
		t.Errorf("expected 15 strikes, got %d", config.Scenario.NumStrikes)
	}
	if config.Dispatch.UAVCoordinator != "simple" {
		t.Errorf("expected uav coordinator 'simple', got %q", config.Dispatch.UAVCoordinator)
	}
	if config.Dispatch.WBCoordinator != "reprocess_max_time" {
		t.Errorf("expected wb coordinator 'reprocess_max_time', got %q", config.Dispatch.WBCoordinator)
	}
	if !config.Advanced.VerboseLogging {
		t.Errorf("expected verbose logging to be enabled")
	}
}
