package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*SimulationConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config SimulationConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadConfigOrDefault loads config from file or returns the default scenario,
// with environment overrides always applied afterwards.
func LoadConfigOrDefault(path string) (*SimulationConfig, error) {
	var config *SimulationConfig

	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			fmt.Printf("Warning: Could not load config from %s: %v\n", path, err)
		} else {
			config = loaded
		}
	}

	if config == nil {
		defaultPaths := []string{
			"scenario.yaml",
			"dispatch-sim.yaml",
			filepath.Join("cmd", "dispatch-sim", "scenario.yaml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				if loaded, err := LoadConfig(p); err == nil {
					fmt.Printf("Loaded config from: %s\n", p)
					config = loaded
					break
				}
			}
		}
	}

	if config == nil {
		fmt.Println("Using default scenario")
		config = GetDefaultConfig()
	}

	MergeWithEnvironment(config)

	return config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *SimulationConfig, path string) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// MergeWithCLIOverrides applies CLI parameter overrides to the configuration.
func MergeWithCLIOverrides(config *SimulationConfig, overrides map[string]interface{}) {
	for key, value := range overrides {
		switch key {
		case "num_strikes":
			if count, ok := value.(int); ok && count > 0 {
				config.Scenario.NumStrikes = count
			}
		case "ignition_probability":
			if p, ok := value.(float64); ok && p >= 0 && p <= 1 {
				config.Scenario.IgnitionProbability = p
			}
		case "uav_coordinator":
			if v, ok := value.(string); ok {
				config.Dispatch.UAVCoordinator = v
			}
		case "wb_coordinator":
			if v, ok := value.(string); ok {
				config.Dispatch.WBCoordinator = v
			}
		case "prioritisation":
			if v, ok := value.(string); ok {
				config.Dispatch.Prioritisation = v
			}
		case "target_max_latency_hours":
			if v, ok := value.(string); ok {
				config.Dispatch.TargetMaxLatencyHours = v
			}
		case "verbose_logging":
			if verbose, ok := value.(bool); ok {
				config.Advanced.VerboseLogging = verbose
			}
		case "log_level":
			if level, ok := value.(string); ok {
				validLevels := []string{"debug", "info", "warn", "error"}
				for _, valid := range validLevels {
					if level == valid {
						config.Logging.ConsoleLevel = level
						break
					}
				}
			}
		}
	}
}

// LoadConfigWithOverrides loads config and applies both environment and CLI overrides.
func LoadConfigWithOverrides(path string, cliOverrides map[string]interface{}) (*SimulationConfig, error) {
	config, err := LoadConfigOrDefault(path)
	if err != nil {
		return nil, err
	}

	if cliOverrides != nil {
		MergeWithCLIOverrides(config, cliOverrides)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed after overrides: %w", err)
	}

	return config, nil
}

// MergeWithEnvironment merges config with environment variables.
func MergeWithEnvironment(config *SimulationConfig) {
	if numStrikes := os.Getenv("NUM_STRIKES"); numStrikes != "" {
		if count, err := strconv.Atoi(numStrikes); err == nil && count > 0 {
			config.Scenario.NumStrikes = count
		}
	}

	if ignitionP := os.Getenv("IGNITION_PROBABILITY"); ignitionP != "" {
		if p, err := strconv.ParseFloat(ignitionP, 64); err == nil && p >= 0 && p <= 1 {
			config.Scenario.IgnitionProbability = p
		}
	}

	if uavCoord := os.Getenv("UAV_COORDINATOR"); uavCoord != "" {
		config.Dispatch.UAVCoordinator = uavCoord
	}

	if wbCoord := os.Getenv("WB_COORDINATOR"); wbCoord != "" {
		config.Dispatch.WBCoordinator = wbCoord
	}

	if prioritisation := os.Getenv("PRIORITISATION"); prioritisation != "" {
		config.Dispatch.Prioritisation = prioritisation
	}

	if targetLatency := os.Getenv("TARGET_MAX_LATENCY_HOURS"); targetLatency != "" {
		config.Dispatch.TargetMaxLatencyHours = targetLatency
	}

	if lat := os.Getenv("CENTER_LATITUDE"); lat != "" {
		if latitude, err := strconv.ParseFloat(lat, 64); err == nil {
			config.Scenario.CenterLocation.Latitude = latitude
		}
	}

	if lon := os.Getenv("CENTER_LONGITUDE"); lon != "" {
		if longitude, err := strconv.ParseFloat(lon, 64); err == nil {
			config.Scenario.CenterLocation.Longitude = longitude
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		validLevels := []string{"debug", "info", "warn", "error"}
		for _, valid := range validLevels {
			if logLevel == valid {
				config.Logging.ConsoleLevel = valid
				break
			}
		}
	}

	if enableReport := os.Getenv("ENABLE_REPORT"); enableReport != "" {
		if enable, err := strconv.ParseBool(enableReport); err == nil {
			config.Logging.EnableReport = enable
		}
	}

	if reportPath := os.Getenv("REPORT_OUTPUT_PATH"); reportPath != "" {
		config.Logging.ReportOutputPath = reportPath
	}

	if verboseLogging := os.Getenv("VERBOSE_LOGGING"); verboseLogging != "" {
		if enable, err := strconv.ParseBool(verboseLogging); err == nil {
			config.Advanced.VerboseLogging = enable
		}
	}
}
