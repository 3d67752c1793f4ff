package reporting

import (
	"fmt"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/wildfire/dispatch-sim/pkg/logger"
)

// SimulationLogger handles scenario-run event logging and metric tracking.
type SimulationLogger struct {
	scenarioID string
	startTime  time.Time
	events     []SimulationEvent
	metrics    map[string]Metric
	mu         sync.RWMutex
}

// SimulationEvent represents a logged scenario event.
type SimulationEvent struct {
	Timestamp time.Time
	Type      string
	Severity  string
	AircraftID int
	Message   string
	Details   map[string]interface{}
}

// Metric represents a tracked metric, e.g. mean inspection latency.
type Metric struct {
	Name        string
	Value       float64
	Unit        string
	LastUpdated time.Time
	History     []MetricPoint
}

// MetricPoint represents a metric value at a point in time.
type MetricPoint struct {
	Timestamp time.Time
	Value     float64
}

// Event type constants, one per dispatch/inspection/suppression lifecycle
// moment worth surfacing to an operator watching a scenario run.
const (
	EventTypeDispatch       = "dispatch"
	EventTypeInspected      = "inspected"
	EventTypeIgnition       = "ignition"
	EventTypeSuppressed     = "suppressed"
	EventTypeUnserviced     = "unserviced"
	EventTypeRefuel         = "refuel"
	EventTypeTankDraw       = "tank_draw"
	EventTypeTankDepleted   = "tank_depleted"
	EventTypeReprocess      = "reprocess"
	EventTypeSystem         = "system"
)

// Severity constants.
const (
	SeverityDebug    = "debug"
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

var (
	colorDebug    = color.New(color.FgHiBlack)
	colorInfo     = color.New(color.FgCyan)
	colorWarning  = color.New(color.FgYellow)
	colorError    = color.New(color.FgRed)
	colorCritical = color.New(color.FgRed, color.Bold)
	colorUAV      = color.New(color.FgCyan, color.Bold)
	colorWB       = color.New(color.FgBlue, color.Bold)
	colorSuccess  = color.New(color.FgGreen)
)

// NewSimulationLogger creates a logger for one scenario run.
func NewSimulationLogger(scenarioID string) *SimulationLogger {
	sl := &SimulationLogger{
		scenarioID: scenarioID,
		startTime:  time.Now(),
		events:     make([]SimulationEvent, 0),
		metrics:    make(map[string]Metric),
	}
	sl.logColoredMessage(SeverityInfo, "Scenario Started",
		fmt.Sprintf("ID: %s | Time: %s", scenarioID, sl.startTime.Format("15:04:05")))
	return sl
}

// LogDispatch logs a coordinator assigning an aircraft to a strike.
func (sl *SimulationLogger) LogDispatch(aircraftID int, aircraftName string, strikeID int, eta float64) {
	sl.logEvent(SimulationEvent{
		Timestamp:  time.Now(),
		Type:       EventTypeDispatch,
		Severity:   SeverityInfo,
		AircraftID: aircraftID,
		Message:    fmt.Sprintf("%s dispatched to strike %d, eta %.0fs", aircraftName, strikeID, eta),
		Details:    map[string]interface{}{"strike_id": strikeID, "eta_seconds": eta},
	})
}

// LogInspected logs a UAV completing an inspection.
func (sl *SimulationLogger) LogInspected(strikeID int, latencySeconds float64, ignition bool) {
	sl.logEvent(SimulationEvent{
		Timestamp: time.Now(),
		Type:      EventTypeInspected,
		Severity:  SeverityInfo,
		Message:   fmt.Sprintf("Strike %d inspected after %.0fs (ignition=%t)", strikeID, latencySeconds, ignition),
		Details:   map[string]interface{}{"strike_id": strikeID, "latency_seconds": latencySeconds, "ignition": ignition},
	})
	if ignition {
		sl.logColoredMessage(SeverityWarning, "Ignition Confirmed",
			fmt.Sprintf("Strike %d, inspection latency %.0fs", strikeID, latencySeconds))
	}
}

// LogSuppressed logs a water bomber completing suppression of an ignition.
func (sl *SimulationLogger) LogSuppressed(strikeID int, latencySeconds float64) {
	sl.logEvent(SimulationEvent{
		Timestamp: time.Now(),
		Type:      EventTypeSuppressed,
		Severity:  SeverityInfo,
		Message:   fmt.Sprintf("Strike %d suppressed after %.0fs", strikeID, latencySeconds),
		Details:   map[string]interface{}{"strike_id": strikeID, "latency_seconds": latencySeconds},
	})
	sl.logColoredMessage(SeverityInfo, "Suppressed",
		fmt.Sprintf("Strike %d, suppression latency %.0fs", strikeID, latencySeconds))
}

// LogUnserviced logs a strike the coordinators could never assign an
// aircraft to. This is informational, not fatal: an unserviceable strike
// simply never gets an inspection or suppression timestamp.
func (sl *SimulationLogger) LogUnserviced(strikeID int, reason string) {
	sl.logEvent(SimulationEvent{
		Timestamp: time.Now(),
		Type:      EventTypeUnserviced,
		Severity:  SeverityWarning,
		Message:   fmt.Sprintf("Strike %d left unserviced: %s", strikeID, reason),
		Details:   map[string]interface{}{"strike_id": strikeID, "reason": reason},
	})
}

// LogTankDraw logs a water bomber drawing from a tank.
func (sl *SimulationLogger) LogTankDraw(tankID int, litres, remaining float64) {
	sl.logEvent(SimulationEvent{
		Timestamp: time.Now(),
		Type:      EventTypeTankDraw,
		Severity:  SeverityDebug,
		Message:   fmt.Sprintf("Tank %d drawn %.0fL, %.0fL remaining", tankID, litres, remaining),
		Details:   map[string]interface{}{"tank_id": tankID, "litres": litres, "remaining": remaining},
	})
	if remaining <= 0 {
		sl.logEvent(SimulationEvent{
			Timestamp: time.Now(),
			Type:      EventTypeTankDepleted,
			Severity:  SeverityCritical,
			Message:   fmt.Sprintf("Tank %d depleted", tankID),
			Details:   map[string]interface{}{"tank_id": tankID},
		})
		sl.logColoredMessage(SeverityCritical, "Tank Depleted", fmt.Sprintf("Tank %d is empty", tankID))
	}
}

// LogReprocess logs a ReprocessMaxTime coordinator unassigning and
// re-inserting the worst-latency queued strike.
func (sl *SimulationLogger) LogReprocess(strikeID int, oldLatency, newLatency float64) {
	sl.logEvent(SimulationEvent{
		Timestamp: time.Now(),
		Type:      EventTypeReprocess,
		Severity:  SeverityInfo,
		Message:   fmt.Sprintf("Strike %d reprocessed: latency %.0fs -> %.0fs", strikeID, oldLatency, newLatency),
		Details:   map[string]interface{}{"strike_id": strikeID, "old_latency": oldLatency, "new_latency": newLatency},
	})
}

// LogError logs an error event.
func (sl *SimulationLogger) LogError(message string, err error, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["error"] = err.Error()

	sl.logEvent(SimulationEvent{
		Timestamp: time.Now(),
		Type:      EventTypeSystem,
		Severity:  SeverityError,
		Message:   message,
		Details:   details,
	})

	logger.Errorf("%s: %v", message, err)
}

// UpdateMetric updates a named metric value, e.g. "mean_inspection_latency".
func (sl *SimulationLogger) UpdateMetric(name string, value float64, unit string) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	metric, exists := sl.metrics[name]
	if !exists {
		metric = Metric{Name: name, Unit: unit, History: make([]MetricPoint, 0)}
	}
	metric.Value = value
	metric.LastUpdated = time.Now()
	metric.History = append(metric.History, MetricPoint{Timestamp: time.Now(), Value: value})
	if len(metric.History) > 1000 {
		metric.History = metric.History[len(metric.History)-1000:]
	}
	sl.metrics[name] = metric
}

// GetEvents returns all logged events.
func (sl *SimulationLogger) GetEvents() []SimulationEvent {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	events := make([]SimulationEvent, len(sl.events))
	copy(events, sl.events)
	return events
}

// GetMetrics returns current metrics.
func (sl *SimulationLogger) GetMetrics() map[string]Metric {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	metrics := make(map[string]Metric, len(sl.metrics))
	for k, v := range sl.metrics {
		metrics[k] = v
	}
	return metrics
}

// SimulationSummary summarises a scenario run for the console and the
// after-action report.
type SimulationSummary struct {
	ScenarioID  string
	StartTime   time.Time
	Duration    time.Duration
	TotalEvents int
	EventCounts map[string]int
	Metrics     map[string]Metric
}

// GetSummary returns a scenario summary.
func (sl *SimulationLogger) GetSummary() SimulationSummary {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	eventCounts := make(map[string]int)
	for _, event := range sl.events {
		eventCounts[event.Type]++
	}

	return SimulationSummary{
		ScenarioID:  sl.scenarioID,
		StartTime:   sl.startTime,
		Duration:    time.Since(sl.startTime),
		TotalEvents: len(sl.events),
		EventCounts: eventCounts,
		Metrics:     sl.metrics,
	}
}

func (sl *SimulationLogger) logEvent(event SimulationEvent) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	sl.events = append(sl.events, event)
	if len(sl.events) > 10000 {
		sl.events = sl.events[len(sl.events)-10000:]
	}
}

func (sl *SimulationLogger) logColoredMessage(severity, eventType, message string) {
	timestamp := time.Now().Format("15:04:05.000")

	var severityColor *color.Color
	switch severity {
	case SeverityDebug:
		severityColor = colorDebug
	case SeverityInfo:
		severityColor = colorInfo
	case SeverityWarning:
		severityColor = colorWarning
	case SeverityError:
		severityColor = colorError
	case SeverityCritical:
		severityColor = colorCritical
	default:
		severityColor = colorInfo
	}

	fmt.Printf("[%s] %s %s | %s\n",
		timestamp, severityColor.Sprint(fmt.Sprintf("%-8s", severity)), eventType, message)
}

// PrintSummary prints a formatted summary to the console.
func (sl *SimulationLogger) PrintSummary() {
	summary := sl.GetSummary()

	colorSuccess.Println("\n==================== SCENARIO SUMMARY ====================")
	fmt.Printf("Scenario: %s\n", summary.ScenarioID)
	fmt.Printf("Duration: %v | Total Events: %d\n", summary.Duration, summary.TotalEvents)

	fmt.Println("\nEvent distribution:")
	for eventType, count := range summary.EventCounts {
		fmt.Printf("  %-20s: %d\n", eventType, count)
	}

	if len(summary.Metrics) > 0 {
		fmt.Println("\nMetrics:")
		for name, metric := range summary.Metrics {
			fmt.Printf("  %-28s: %.2f %s\n", name, metric.Value, metric.Unit)
		}
	}
	colorSuccess.Println("===========================================================")
}
