package simulation

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/wildfire/dispatch-sim/cmd/dispatch-sim/config"
	"github.com/wildfire/dispatch-sim/pkg/logger"
	"github.com/wildfire/dispatch-sim/pkg/reporting"
	"github.com/wildfire/dispatch-sim/pkg/simulation"
	"github.com/wildfire/dispatch-sim/pkg/simulator"
)

// DispatchSimulation runs a single wildfire dispatch scenario end to end:
// build the fleet and strike list from config, run the discrete-event
// simulator, and emit a SimulationLogger/AAR report. There is no external
// platform to stream telemetry to, so the only outputs are the console
// log and the after-action report written to disk.
type DispatchSimulation struct {
	config config.SimulationConfig

	simLogger    *reporting.SimulationLogger
	aarGenerator *reporting.AARGenerator

	mu       sync.RWMutex
	result   simulator.Result
	stopChan chan struct{}
}

// NewDispatchSimulation creates a new instance of the dispatch simulation.
func NewDispatchSimulation() simulation.Simulation {
	return &DispatchSimulation{
		stopChan: make(chan struct{}),
	}
}

// Name returns the simulation name.
func (s *DispatchSimulation) Name() string {
	return "Wildfire Dispatch"
}

// Description returns a brief description of the simulation.
func (s *DispatchSimulation) Description() string {
	return "Discrete-event simulation of UAV inspection and water-bomber suppression dispatch against geo-temporal lightning strikes"
}

// Configure sets up the simulation from CLI/env-overridden parameters.
func (s *DispatchSimulation) Configure(params map[string]interface{}) error {
	logger.Info("Configuring wildfire dispatch simulation...")

	cfgPath, _ := params["config_path"].(string)
	cfg, err := config.LoadConfigOrDefault(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	config.MergeWithCLIOverrides(cfg, params)

	if val, ok := params["log_level"].(string); ok {
		logger.Infof("Setting log level to: %s", val)
		logger.SetLevel(logger.ParseLevel(val))
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	s.config = *cfg

	logger.Infof("Configuration: %d strikes, uav coordinator=%s, wb coordinator=%s, prioritisation=%s",
		cfg.Scenario.NumStrikes, cfg.Dispatch.UAVCoordinator, cfg.Dispatch.WBCoordinator, cfg.Dispatch.Prioritisation)

	return nil
}

// Run builds the scenario and drives the simulator to completion.
func (s *DispatchSimulation) Run(ctx context.Context) error {
	logger.Infof("Starting %s simulation", s.Name())

	scn, err := s.config.Build()
	if err != nil {
		return fmt.Errorf("failed to build scenario: %w", err)
	}

	detailLevel := "summary"
	if s.config.Advanced.VerboseLogging {
		detailLevel = "full"
	}
	runID := fmt.Sprintf("%s-%s", s.config.Simulation.Name, uuid.New())
	s.simLogger = reporting.NewSimulationLogger(runID)
	s.aarGenerator = reporting.NewAARGenerator(s.simLogger, reporting.AARConfig{
		OutputDir:   s.config.Logging.ReportOutputPath,
		Format:      "json",
		DetailLevel: detailLevel,
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	done := make(chan simulator.Result, 1)
	go func() {
		done <- scn.Sim.Run()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopChan:
		return fmt.Errorf("simulation stopped before completion")
	case result := <-done:
		s.mu.Lock()
		s.result = result
		s.mu.Unlock()
	}

	s.logResult()

	if s.config.Logging.EnableReport {
		if err := s.generateAAR(scn); err != nil {
			logger.Warnf("Failed to generate after-action report: %v", err)
		}
	}

	s.simLogger.PrintSummary()
	logger.Infof("%s simulation complete", s.Name())
	return nil
}

func (s *DispatchSimulation) logResult() {
	for _, strike := range s.result.Strikes {
		if t, ok := strike.InspectedTime(); ok {
			s.simLogger.LogInspected(strike.ID, t-strike.SpawnTime, strike.Ignition)
			if strike.Ignition {
				if st, ok := strike.SuppressedTime(); ok {
					s.simLogger.LogSuppressed(strike.ID, st-strike.SpawnTime)
				}
			}
		} else {
			s.simLogger.LogUnserviced(strike.ID, "never inspected by a UAV")
		}
	}
}

func (s *DispatchSimulation) generateAAR(scn *config.Scenario) error {
	aar, err := s.aarGenerator.GenerateAAR(s.result.Strikes, s.result.UAVHistory, s.result.WaterBomberHistory, scn.Tanks)
	if err != nil {
		return fmt.Errorf("failed to generate AAR: %w", err)
	}
	if err := s.aarGenerator.SaveAAR(aar); err != nil {
		return fmt.Errorf("failed to save AAR: %w", err)
	}
	return nil
}

// Stop signals the simulation to halt. The simulator itself is a single
// synchronous event loop with no natural preemption point, so this only
// stops Run from waiting on results that would otherwise be discarded.
func (s *DispatchSimulation) Stop() error {
	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}
	return nil
}

func init() {
	if err := simulation.DefaultRegistry.Register("Wildfire Dispatch", NewDispatchSimulation); err != nil {
		logger.Errorf("Failed to register wildfire dispatch simulation: %v", err)
	}
}
