package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/wildfire/dispatch-sim/pkg/aircraft"
	"github.com/wildfire/dispatch-sim/pkg/logger"
	"github.com/wildfire/dispatch-sim/pkg/scenario"
)

// AARGenerator builds an after-action report for one scenario run: per-strike
// latency, per-aircraft event log, and per-tank remaining capacity.
type AARGenerator struct {
	logger *SimulationLogger
	config AARConfig
}

// AARConfig configures AAR generation.
type AARConfig struct {
	OutputDir   string
	Format      string // "json" or "markdown"
	DetailLevel string // "summary" or "full"
}

// AAR is the full after-action report for a scenario run.
type AAR struct {
	Metadata        AARMetadata        `json:"metadata"`
	Summary         ExecutiveSummary   `json:"summary"`
	Strikes         []StrikeRecord     `json:"strikes"`
	Aircraft        []AircraftSummary  `json:"aircraft"`
	Tanks           []TankSummary      `json:"tanks"`
	Timeline        []TimelineEntry    `json:"timeline"`
	EventLog        []EventLogEntry    `json:"event_log,omitempty"`
	Statistics      SummaryStatistics  `json:"statistics"`
	Recommendations []Recommendation   `json:"recommendations"`
}

// AARMetadata contains report metadata.
type AARMetadata struct {
	ScenarioID    string    `json:"scenario_id"`
	GeneratedAt   time.Time `json:"generated_at"`
	ScenarioStart time.Time `json:"scenario_start"`
	ScenarioEnd   time.Time `json:"scenario_end"`
	Duration      string    `json:"duration"`
	Version       string    `json:"version"`
}

// ExecutiveSummary gives a high level overview of a scenario run, rolling
// the per-strike and per-tank outputs up to scenario level.
type ExecutiveSummary struct {
	TotalStrikes               int      `json:"total_strikes"`
	TotalInspected             int      `json:"total_inspected"`
	TotalIgnitions             int      `json:"total_ignitions"`
	TotalSuppressed            int      `json:"total_suppressed"`
	TotalUnserviced            int      `json:"total_unserviced"`
	MeanInspectionLatencySecs  float64  `json:"mean_inspection_latency_seconds"`
	MeanSuppressionLatencySecs float64  `json:"mean_suppression_latency_seconds"`
	KeyEvents                  []string `json:"key_events"`
}

// StrikeRecord is one lightning strike's disposition and timing.
type StrikeRecord struct {
	ID             int      `json:"id"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	SpawnTime      float64  `json:"spawn_time"`
	Ignition       bool     `json:"ignition"`
	InspectedTime  *float64 `json:"inspected_time,omitempty"`
	SuppressedTime *float64 `json:"suppressed_time,omitempty"`
	RiskRating     float64  `json:"risk_rating"`
}

// AircraftSummary is the per-aircraft rollup of its UpdateEvent log.
type AircraftSummary struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Class       string  `json:"class"`
	EventCount  int     `json:"event_count"`
	FinalFuel   float64 `json:"final_fuel_fraction"`
	FinalWater  float64 `json:"final_water_on_board,omitempty"`
}

// TankSummary is one water tank's capacity and remaining volume at scenario end.
type TankSummary struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	CapacityLitres   float64 `json:"capacity_litres"`
	RemainingLitres  float64 `json:"remaining_litres"`
}

// TimelineEntry represents one notable event in chronological order.
type TimelineEntry struct {
	Timestamp   time.Time              `json:"timestamp"`
	ElapsedTime string                 `json:"elapsed_time"`
	EventType   string                 `json:"event_type"`
	Description string                 `json:"description"`
	Details     map[string]interface{} `json:"details,omitempty"`
}

// EventLogEntry is a detailed log entry included at DetailLevel "full".
type EventLogEntry struct {
	Timestamp   time.Time              `json:"timestamp"`
	EventType   string                 `json:"event_type"`
	Severity    string                 `json:"severity"`
	Description string                 `json:"description"`
	Details     map[string]interface{} `json:"details,omitempty"`
}

// SummaryStatistics contains overall scenario statistics.
type SummaryStatistics struct {
	InspectionRate  float64 `json:"inspection_rate"`
	SuppressionRate float64 `json:"suppression_rate"`
	TanksDepleted   int     `json:"tanks_depleted"`
}

// Recommendation is a suggested scenario or fleet adjustment.
type Recommendation struct {
	Priority        string `json:"priority"` // "High", "Medium", "Low"
	Title           string `json:"title"`
	Description     string `json:"description"`
	ExpectedBenefit string `json:"expected_benefit"`
}

// NewAARGenerator creates a new AAR generator.
func NewAARGenerator(logger *SimulationLogger, config AARConfig) *AARGenerator {
	return &AARGenerator{logger: logger, config: config}
}

// GenerateAAR builds the report from the scenario's final entity state and
// the logger's event history.
func (g *AARGenerator) GenerateAAR(
	strikes []*scenario.Lightning,
	uavHistory, wbHistory map[int][]aircraft.UpdateEvent,
	tanks []*scenario.WaterTank,
) (*AAR, error) {
	summary := g.logger.GetSummary()
	events := g.logger.GetEvents()

	aar := &AAR{
		Metadata: AARMetadata{
			ScenarioID:    summary.ScenarioID,
			GeneratedAt:   time.Now(),
			ScenarioStart: summary.StartTime,
			ScenarioEnd:   summary.StartTime.Add(summary.Duration),
			Duration:      summary.Duration.String(),
			Version:       "1.0",
		},
	}

	aar.Strikes = buildStrikeRecords(strikes)
	aar.Summary = g.buildExecutiveSummary(aar.Strikes, events)
	aar.Aircraft = buildAircraftSummaries(uavHistory, wbHistory)
	aar.Tanks = buildTankSummaries(tanks)
	aar.Timeline = g.buildTimeline(events, summary.StartTime)
	if g.config.DetailLevel == "full" {
		aar.EventLog = g.buildEventLog(events)
	}
	aar.Statistics = buildStatistics(aar.Strikes, aar.Tanks)
	aar.Recommendations = buildRecommendations(aar)

	return aar, nil
}

func buildStrikeRecords(strikes []*scenario.Lightning) []StrikeRecord {
	records := make([]StrikeRecord, 0, len(strikes))
	for _, s := range strikes {
		r := StrikeRecord{
			ID: s.ID, Latitude: s.Location.Lat, Longitude: s.Location.Lon,
			SpawnTime: s.SpawnTime, Ignition: s.Ignition, RiskRating: s.RiskRating,
		}
		if t, ok := s.InspectedTime(); ok {
			r.InspectedTime = &t
		}
		if t, ok := s.SuppressedTime(); ok {
			r.SuppressedTime = &t
		}
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records
}

func buildAircraftSummaries(uavHistory, wbHistory map[int][]aircraft.UpdateEvent) []AircraftSummary {
	var out []AircraftSummary
	for id, log := range uavHistory {
		out = append(out, summariseHistory(id, "uav", log))
	}
	for id, log := range wbHistory {
		out = append(out, summariseHistory(id, "water_bomber", log))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Class != out[j].Class {
			return out[i].Class < out[j].Class
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func summariseHistory(id int, class string, log []aircraft.UpdateEvent) AircraftSummary {
	s := AircraftSummary{ID: id, Class: class, EventCount: len(log)}
	if len(log) > 0 {
		last := log[len(log)-1]
		s.Name = last.Name
		s.FinalFuel = last.FuelFraction
		s.FinalWater = last.WaterOnBoard
	}
	return s
}

func buildTankSummaries(tanks []*scenario.WaterTank) []TankSummary {
	out := make([]TankSummary, 0, len(tanks))
	for _, t := range tanks {
		out = append(out, TankSummary{
			ID: t.ID, Name: t.Name,
			CapacityLitres:  t.Capacity().Litres(),
			RemainingLitres: t.Remaining().Litres(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (g *AARGenerator) buildExecutiveSummary(strikes []StrikeRecord, events []SimulationEvent) ExecutiveSummary {
	s := ExecutiveSummary{TotalStrikes: len(strikes)}
	var inspectionLatencySum, suppressionLatencySum float64
	for _, r := range strikes {
		if r.Ignition {
			s.TotalIgnitions++
		}
		if r.InspectedTime != nil {
			s.TotalInspected++
			inspectionLatencySum += *r.InspectedTime - r.SpawnTime
		} else {
			s.TotalUnserviced++
		}
		if r.SuppressedTime != nil {
			s.TotalSuppressed++
			suppressionLatencySum += *r.SuppressedTime - r.SpawnTime
		}
	}
	if s.TotalInspected > 0 {
		s.MeanInspectionLatencySecs = inspectionLatencySum / float64(s.TotalInspected)
	}
	if s.TotalSuppressed > 0 {
		s.MeanSuppressionLatencySecs = suppressionLatencySum / float64(s.TotalSuppressed)
	}

	for _, e := range events {
		if e.Severity == SeverityCritical || e.Type == EventTypeUnserviced {
			s.KeyEvents = append(s.KeyEvents, e.Message)
		}
	}
	return s
}

func (g *AARGenerator) buildTimeline(events []SimulationEvent, start time.Time) []TimelineEntry {
	timeline := make([]TimelineEntry, 0, len(events))
	for _, e := range events {
		timeline = append(timeline, TimelineEntry{
			Timestamp:   e.Timestamp,
			ElapsedTime: e.Timestamp.Sub(start).String(),
			EventType:   e.Type,
			Description: e.Message,
			Details:     e.Details,
		})
	}
	return timeline
}

func (g *AARGenerator) buildEventLog(events []SimulationEvent) []EventLogEntry {
	log := make([]EventLogEntry, 0, len(events))
	for _, e := range events {
		log = append(log, EventLogEntry{
			Timestamp: e.Timestamp, EventType: e.Type, Severity: e.Severity,
			Description: e.Message, Details: e.Details,
		})
	}
	return log
}

func buildStatistics(strikes []StrikeRecord, tanks []TankSummary) SummaryStatistics {
	var stats SummaryStatistics
	if len(strikes) > 0 {
		inspected, suppressed := 0, 0
		for _, r := range strikes {
			if r.InspectedTime != nil {
				inspected++
			}
			if r.SuppressedTime != nil {
				suppressed++
			}
		}
		stats.InspectionRate = float64(inspected) / float64(len(strikes))
		stats.SuppressionRate = float64(suppressed) / float64(len(strikes))
	}
	for _, t := range tanks {
		if t.RemainingLitres <= 0 {
			stats.TanksDepleted++
		}
	}
	return stats
}

func buildRecommendations(aar *AAR) []Recommendation {
	var recs []Recommendation
	if aar.Summary.TotalUnserviced > 0 {
		recs = append(recs, Recommendation{
			Priority:        "High",
			Title:           "Unserviced strikes remain",
			Description:     fmt.Sprintf("%d strikes were never inspected; consider adding UAVs or bases.", aar.Summary.TotalUnserviced),
			ExpectedBenefit: "Reduced mean inspection latency and fewer missed ignitions",
		})
	}
	if aar.Statistics.TanksDepleted > 0 {
		recs = append(recs, Recommendation{
			Priority:        "Medium",
			Title:           "Water tanks depleted during the run",
			Description:     fmt.Sprintf("%d tanks ran dry; consider higher capacity or more refill sites.", aar.Statistics.TanksDepleted),
			ExpectedBenefit: "Fewer water-bombers diverted to a base when a closer tank is dry",
		})
	}
	return recs
}

// SaveAAR saves the AAR to file.
func (g *AARGenerator) SaveAAR(aar *AAR) error {
	if err := os.MkdirAll(g.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	id := aar.Metadata.ScenarioID
	if len(id) > 8 {
		id = id[:8]
	}
	filename := fmt.Sprintf("AAR_%s_%s", id, timestamp)

	var err error
	switch g.config.Format {
	case "json", "":
		err = g.saveJSON(aar, filename)
	case "markdown":
		err = g.saveMarkdown(aar, filename)
	default:
		return fmt.Errorf("unsupported format: %s", g.config.Format)
	}

	if err == nil {
		ext := ".json"
		if g.config.Format == "markdown" {
			ext = ".md"
		}
		logger.Successf("AAR saved to: %s", filepath.Join(g.config.OutputDir, filename+ext))
	}
	return err
}

func (g *AARGenerator) saveJSON(aar *AAR, filename string) error {
	data, err := json.MarshalIndent(aar, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal AAR: %w", err)
	}
	path := filepath.Join(g.config.OutputDir, filename+".json")
	return os.WriteFile(path, data, 0644)
}

func (g *AARGenerator) saveMarkdown(aar *AAR, filename string) error {
	var sb strings.Builder

	sb.WriteString("# After Action Report\n\n")
	fmt.Fprintf(&sb, "**Scenario ID:** %s\n", aar.Metadata.ScenarioID)
	fmt.Fprintf(&sb, "**Generated:** %s\n", aar.Metadata.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "**Duration:** %s\n\n", aar.Metadata.Duration)

	sb.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&sb, "- Strikes: %d (inspected %d, ignitions %d, suppressed %d, unserviced %d)\n",
		aar.Summary.TotalStrikes, aar.Summary.TotalInspected, aar.Summary.TotalIgnitions,
		aar.Summary.TotalSuppressed, aar.Summary.TotalUnserviced)
	fmt.Fprintf(&sb, "- Mean inspection latency: %.0fs\n", aar.Summary.MeanInspectionLatencySecs)
	fmt.Fprintf(&sb, "- Mean suppression latency: %.0fs\n\n", aar.Summary.MeanSuppressionLatencySecs)

	if len(aar.Summary.KeyEvents) > 0 {
		sb.WriteString("### Key Events\n")
		for _, e := range aar.Summary.KeyEvents {
			fmt.Fprintf(&sb, "- %s\n", e)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Tanks\n\n")
	sb.WriteString("| Tank | Capacity (L) | Remaining (L) |\n|---|---|---|\n")
	for _, t := range aar.Tanks {
		fmt.Fprintf(&sb, "| %s | %.0f | %.0f |\n", t.Name, t.CapacityLitres, t.RemainingLitres)
	}

	if len(aar.Recommendations) > 0 {
		sb.WriteString("\n## Recommendations\n\n")
		for _, r := range aar.Recommendations {
			fmt.Fprintf(&sb, "### %s (%s)\n\n%s\n\n*Expected benefit: %s*\n\n", r.Title, r.Priority, r.Description, r.ExpectedBenefit)
		}
	}

	path := filepath.Join(g.config.OutputDir, filename+".md")
	return os.WriteFile(path, []byte(sb.String()), 0644)
}
