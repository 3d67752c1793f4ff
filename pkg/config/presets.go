package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DispatchPreset is a named, reusable dispatch policy combination: which
// coordinator each aircraft class runs and which latency objective drives
// both.
type DispatchPreset struct {
	Name                  string  `yaml:"name"`
	UAVCoordinator        string  `yaml:"uav_coordinator"`
	WBCoordinator         string  `yaml:"wb_coordinator"`
	Prioritisation        string  `yaml:"prioritisation"`
	ThresholdCutoffHours  float64 `yaml:"threshold_cutoff_hours,omitempty"`
	ThresholdPenalty      float64 `yaml:"threshold_penalty,omitempty"`
	TargetMaxLatencyHours string  `yaml:"target_max_latency_hours,omitempty"`
}

// PresetFile holds the set of saved dispatch presets.
type PresetFile struct {
	Presets []DispatchPreset `yaml:"presets"`
}

// LoadPresets loads saved dispatch presets from the default location.
func LoadPresets() (*PresetFile, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	path := filepath.Join(homeDir, ".dispatch-sim", "presets.yaml")
	return LoadPresetsFromFile(path)
}

// LoadPresetsFromFile loads saved dispatch presets from a specific file.
func LoadPresetsFromFile(path string) (*PresetFile, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return defaultPresets(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var pf PresetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse presets file: %w", err)
	}

	return &pf, nil
}

// SavePresets saves the preset file to the default location.
func SavePresets(pf *PresetFile) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".dispatch-sim")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(configDir, "presets.yaml")
	data, err := yaml.Marshal(pf)
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write presets file: %w", err)
	}

	return nil
}

// defaultPresets returns the built-in preset choices shipped with the CLI.
func defaultPresets() *PresetFile {
	return &PresetFile{
		Presets: []DispatchPreset{
			{
				Name: "balanced", UAVCoordinator: "insertion", WBCoordinator: "insertion",
				Prioritisation: "time", TargetMaxLatencyHours: "unbounded",
			},
			{
				Name: "fast-greedy", UAVCoordinator: "simple", WBCoordinator: "simple",
				Prioritisation: "time", TargetMaxLatencyHours: "unbounded",
			},
			{
				Name: "risk-weighted", UAVCoordinator: "insertion", WBCoordinator: "insertion",
				Prioritisation: "p_sq", TargetMaxLatencyHours: "unbounded",
			},
		},
	}
}
