package aircraft

import (
	"math"

	"github.com/wildfire/dispatch-sim/pkg/geo"
	"github.com/wildfire/dispatch-sim/pkg/scenario"
)

// Class distinguishes the two aircraft variants sharing this engine. The
// split is a tag plus two thin wrapper types (UAV, WaterBomber) in
// uav.go/waterbomber.go that expose only the operations meaningful for
// their class, rather than a single type with sentinel-valued water methods.
type Class int

const (
	ClassUAV Class = iota
	ClassWaterBomber
)

// Attributes is the union of per-aircraft-class input fields. Fields
// meaningful only to one class are simply zero for the other.
type Attributes struct {
	FlightSpeed    geo.Speed
	FuelRefillTime geo.Duration
	Range          geo.Distance // UAV
	InspectionTime geo.Duration // UAV dwell at a strike
	PctFuelCutoff  float64
	InitialFuel    float64
	StartingBase   *scenario.Base

	RangeEmpty          geo.Distance // WaterBomber, water tank empty
	RangeLoaded         geo.Distance // WaterBomber, water tank full
	WaterCapacity       geo.Volume
	WaterRefillTime     geo.Duration
	SuppressionTime     geo.Duration // WaterBomber dwell at an ignition
	WaterPerSuppression geo.Volume
	TypeTag             string
}

// returnObligation is the latent "go to base by this deadline" pair set by
// GoToBaseWhenNecessary and consulted by subsequent UpdateToTime calls.
type returnObligation struct {
	base     *scenario.Base
	deadline float64
}

// Aircraft is the shared state machine for both UAVs and water bombers.
type Aircraft struct {
	ID         int
	Name       string
	Class      Class
	Attributes Attributes

	position    geo.Location
	currentTime float64
	fuel        float64 // fraction in [0,1]
	water       float64 // litres; always 0 for UAVs
	status      scenario.Status

	queue   *Queue[*Event]
	history []UpdateEvent

	requiredReturn *returnObligation
}

func newAircraft(id int, name string, class Class, attrs Attributes) *Aircraft {
	a := &Aircraft{
		ID: id, Name: name, Class: class, Attributes: attrs,
		fuel:   attrs.InitialFuel,
		status: scenario.WaitingAtBase,
		queue:  NewQueue[*Event](),
	}
	if attrs.StartingBase != nil {
		a.position = attrs.StartingBase.Location
	}
	if class == ClassWaterBomber {
		a.water = attrs.WaterCapacity.Litres()
	}
	return a
}

// Position returns the aircraft's current location.
func (a *Aircraft) Position() geo.Location { return a.position }

// Time returns the aircraft's current simulation time.
func (a *Aircraft) Time() float64 { return a.currentTime }

// Fuel returns the current fuel fraction.
func (a *Aircraft) Fuel() float64 { return a.fuel }

// Water returns the current water on board, in litres.
func (a *Aircraft) Water() float64 { return a.water }

// StatusNow returns the current operational status.
func (a *Aircraft) StatusNow() scenario.Status { return a.status }

// Queue returns the aircraft's event queue.
func (a *Aircraft) Queue() *Queue[*Event] { return a.queue }

// TruncateQueueAfter truncates the event queue after node (nil clears it),
// releasing any WaterTank reservations held by the discarded tail first. A
// coordinator that splices a new event into the middle of a queue drops the
// tail this way before re-appending it (plus the new event) with
// AddLocationToQueue, so without this the same litres would be reserved
// twice.
func (a *Aircraft) TruncateQueueAfter(node *Node[*Event]) {
	start := a.queue.first
	if node != nil {
		start = node.next
	}
	prevWater := a.water
	if node != nil {
		prevWater = node.Value.WaterOnBoard
	}
	for n := start; n != nil; n = n.next {
		ev := n.Value
		if ev.Target.Kind == TargetWaterTank {
			if refill := ev.WaterOnBoard - prevWater; refill > 0 {
				ev.Target.Tank().ReleaseReservation(geo.NewVolume(refill, "L"))
			}
		}
		prevWater = ev.WaterOnBoard
	}
	a.queue.TruncateAfter(node)
}

// History returns the append-only past-event log.
func (a *Aircraft) History() []UpdateEvent { return a.history }

// snapshot is the resource ledger at a point in (possibly hypothetical) time.
type snapshot struct {
	position geo.Location
	time     float64
	fuel     float64
	water    float64
	status   scenario.Status
}

func (a *Aircraft) currentSnapshot() snapshot {
	return snapshot{position: a.position, time: a.currentTime, fuel: a.fuel, water: a.water, status: a.status}
}

func eventAfter(ev *Event) snapshot {
	return snapshot{
		position: ev.Target.Location(), time: ev.CompletionTime,
		fuel: ev.CompletionFuel, water: ev.WaterOnBoard, status: ev.CompletionStatus,
	}
}

// StartState names the state a feasibility walk or queue-append departs from:
// the aircraft's live current state (the zero value), or the completion state
// of an event already sitting in its queue. This replaces the Python source's
// three-way None / "self" / Event sentinel — both None and "self" meant "use
// the aircraft's live state", so there are only two cases here.
type StartState struct {
	event *Event
}

// FromEvent builds a StartState departing from ev's completion state.
func FromEvent(ev *Event) StartState { return StartState{event: ev} }

func (a *Aircraft) resolveStart(start StartState) snapshot {
	if start.event == nil {
		return a.currentSnapshot()
	}
	return eventAfter(start.event)
}

// rangeAt returns the aircraft's current range given water-on-board (litres).
// Constant for UAVs; linear in water for water bombers:
// R(w) = R_empty + (R_loaded - R_empty) * w/W_cap.
func (a *Aircraft) rangeAt(water float64) geo.Distance {
	if a.Class != ClassWaterBomber {
		return a.Attributes.Range
	}
	cap := a.Attributes.WaterCapacity.Litres()
	if cap == 0 {
		return a.Attributes.RangeEmpty
	}
	frac := water / cap
	delta := a.Attributes.RangeLoaded.Metres() - a.Attributes.RangeEmpty.Metres()
	return geo.NewDistance(a.Attributes.RangeEmpty.Metres()+delta*frac, "m")
}

func fuelFractionBurn(d geo.Distance, rng geo.Distance) float64 {
	if rng.Metres() == 0 {
		return 0
	}
	return d.Metres() / rng.Metres()
}

// hoverFuelPerSecond is the flight-speed-equivalent fuel burn rate per second
// while hovering or inspecting/suppressing.
func (a *Aircraft) hoverFuelPerSecond(rng geo.Distance) float64 {
	if rng.Metres() == 0 {
		return 0
	}
	return a.Attributes.FlightSpeed.MetresPerSecond() / rng.Metres()
}

func (a *Aircraft) dwellSeconds() float64 {
	if a.Class == ClassUAV {
		return a.Attributes.InspectionTime.Seconds()
	}
	return a.Attributes.SuppressionTime.Seconds()
}

func transitStatusFor(kind TargetKind) scenario.Status {
	switch kind {
	case TargetBase:
		return scenario.GoingToBase
	case TargetWaterTank:
		return scenario.GoingToWater
	default:
		return scenario.GoingToStrike
	}
}

const feasibilityEpsilon = 1e-9

// buildEvent computes the Event that would result from departing snapshot
// `from` towards `target`, honoring earliestDeparture as a lower bound on
// the departure time: departure is
// max(earliestDeparture, completion time of the last queued event). Returns
// ok=false, never mutating anything, if fuel would go negative at arrival or
// completion.
func (a *Aircraft) buildEvent(from snapshot, target EventTarget, earliestDeparture float64) (*Event, snapshot, bool) {
	departureTime := math.Max(earliestDeparture, from.time)

	dist := from.position.Distance(target.Location())
	rng := a.rangeAt(from.water)
	arrivalFuel := from.fuel - fuelFractionBurn(dist, rng)
	if arrivalFuel < -feasibilityEpsilon {
		return nil, snapshot{}, false
	}
	travelTime := dist.DivBySpeed(a.Attributes.FlightSpeed).Seconds()
	arrivalTime := departureTime + travelTime
	arrivalStatus := transitStatusFor(target.Kind)

	completionTime, completionFuel, completionWater, completionStatus :=
		a.completionEffects(target, arrivalTime, arrivalFuel, from.water)
	if completionFuel < -feasibilityEpsilon {
		return nil, snapshot{}, false
	}

	ev := &Event{
		Target:           target,
		DepartureTime:    departureTime,
		DepartureStatus:  a.status,
		ArrivalTime:      arrivalTime,
		ArrivalStatus:    arrivalStatus,
		ArrivalFuel:      arrivalFuel,
		CompletionTime:   completionTime,
		CompletionStatus: completionStatus,
		CompletionFuel:   completionFuel,
		WaterOnBoard:     completionWater,
	}
	after := snapshot{position: target.Location(), time: completionTime, fuel: completionFuel, water: completionWater, status: completionStatus}
	return ev, after, true
}

func (a *Aircraft) completionEffects(
	target EventTarget, arrivalTime, arrivalFuel, fromWater float64,
) (completionTime, completionFuel, completionWater float64, completionStatus scenario.Status) {
	switch target.Kind {
	case TargetBase:
		completionTime = arrivalTime + a.Attributes.FuelRefillTime.Seconds()
		completionFuel = 1.0
		completionWater = fromWater
		completionStatus = scenario.WaitingAtBase
	case TargetWaterTank:
		completionTime = arrivalTime + a.Attributes.WaterRefillTime.Seconds()
		completionFuel = arrivalFuel
		completionWater = a.Attributes.WaterCapacity.Litres()
		completionStatus = scenario.WaitingAtWater
	default: // TargetLightning
		rng := a.rangeAt(fromWater)
		dwell := a.dwellSeconds()
		completionFuel = arrivalFuel - a.hoverFuelPerSecond(rng)*dwell
		completionTime = arrivalTime + dwell
		completionWater = fromWater
		if a.Class == ClassWaterBomber && target.Strike().Ignition {
			completionWater = fromWater - a.Attributes.WaterPerSuppression.Litres()
		}
		completionStatus = scenario.Hovering
	}
	return
}

// tailSnapshot returns the state a newly queued event would depart from: the
// completion state of the last queued event, or the aircraft's live state if
// the queue is empty.
func (a *Aircraft) tailSnapshot() snapshot {
	if last, ok := a.queue.PeekLast(); ok {
		return eventAfter(last)
	}
	return a.currentSnapshot()
}

// AddLocationToQueue appends target as a new queued Event. Reserves the
// tank's refill volume immediately for a WaterTank target (the reservation
// discipline resolved in DESIGN.md's Open Question #1).
func (a *Aircraft) AddLocationToQueue(target EventTarget, earliestDeparture float64) (*Event, bool) {
	from := a.tailSnapshot()
	ev, _, ok := a.buildEvent(from, target, earliestDeparture)
	if !ok {
		return nil, false
	}
	if target.Kind == TargetWaterTank {
		refill := ev.WaterOnBoard - from.water
		if refill > 0 {
			target.Tank().Reserve(geo.NewVolume(refill, "L"))
		}
	}
	a.queue.Append(ev)
	return ev, true
}

// PrioritisationFunc transforms (latency, risk) into a scalar score.
type PrioritisationFunc func(latency, risk float64) float64

// EnoughFuel simulates path departing from start and returns either the
// arrival time at the final target (if no Lightning appears in path) or that
// time at the last Lightning transformed via prioritise into a latency-based
// score. ok is false if fuel would go negative anywhere.
func (a *Aircraft) EnoughFuel(path []EventTarget, prioritise PrioritisationFunc, start StartState) (float64, bool) {
	cur := a.resolveStart(start)
	haveStrike := false
	var score float64
	lastArrival := cur.time
	for _, target := range path {
		ev, after, ok := a.buildEvent(cur, target, cur.time)
		if !ok {
			return 0, false
		}
		lastArrival = ev.ArrivalTime
		if target.Kind == TargetLightning {
			haveStrike = true
			latency := ev.ArrivalTime - target.Strike().SpawnTime
			score = prioritise(latency, target.Strike().RiskRating)
		}
		cur = after
	}
	if !haveStrike {
		return lastArrival, true
	}
	return score, true
}

// ArrivalTime returns the raw arrival time (no prioritisation transform) at
// the final target in path, or +Inf if path is infeasible.
func (a *Aircraft) ArrivalTime(path []EventTarget, start StartState) float64 {
	cur := a.resolveStart(start)
	last := cur.time
	for _, target := range path {
		ev, after, ok := a.buildEvent(cur, target, cur.time)
		if !ok {
			return math.Inf(1)
		}
		last = ev.ArrivalTime
		cur = after
	}
	return last
}

// appendHistory records a past-event log entry, computing
// distance/hover-deltas against the previous entry.
func (a *Aircraft) appendHistory(loc geo.Location, t float64, status scenario.Status, summary string) {
	var distSinceLast, hoverSinceLast float64
	if len(a.history) > 0 {
		prev := a.history[len(a.history)-1]
		if status == scenario.Hovering && prev.Status == scenario.Hovering {
			hoverSinceLast = t - prev.Time
		} else {
			distSinceLast = prev.Location.Distance(loc).Get("km")
		}
	}
	rng := a.rangeAt(a.water)
	a.history = append(a.history, UpdateEvent{
		Name: a.Name, Location: loc, Time: t, Status: status,
		DistanceTravelledSinceLast: distSinceLast,
		FuelFraction:               a.fuel,
		CurrentRange:               rng.Get("km"),
		DistanceHoveredSinceLast:   hoverSinceLast,
		WaterOnBoard:               a.water,
		NextEventsSummary:          summary,
	})
}

func (a *Aircraft) nextEventsSummary() string {
	if a.queue.IsEmpty() {
		return "idle"
	}
	v, _ := a.queue.PeekFirst()
	switch v.Target.Kind {
	case TargetBase:
		return "base:" + v.Target.Base().Name
	case TargetWaterTank:
		return "tank:" + v.Target.Tank().Name
	default:
		return "strike"
	}
}

// applyCompletion commits a popped event's effects to live aircraft state,
// draws down the target tank if applicable, and returns whether an inspected
// strike or a suppressed ignition resulted.
func (a *Aircraft) applyCompletion(ev *Event) (inspected, suppressed *scenario.Lightning) {
	a.position = ev.Target.Location()
	a.currentTime = ev.CompletionTime
	a.fuel = ev.CompletionFuel
	a.water = ev.WaterOnBoard
	a.status = ev.CompletionStatus

	switch ev.Target.Kind {
	case TargetLightning:
		strike := ev.Target.Strike()
		if a.Class == ClassUAV {
			strike.Inspected(ev.CompletionTime)
			inspected = strike
		} else if strike.Ignition {
			strike.Suppressed(ev.CompletionTime)
			suppressed = strike
		}
	}
	a.appendHistory(a.position, a.currentTime, a.status, a.nextEventsSummary())
	return inspected, suppressed
}

// UpdateToTime advances the aircraft to wall time t, completing every queued
// event whose completion time is ≤ t and partially executing the next
// segment otherwise. Idempotent for non-advancing t.
func (a *Aircraft) UpdateToTime(t float64) (inspected, suppressed []*scenario.Lightning) {
	if t <= a.currentTime {
		return nil, nil
	}
	for {
		ev, ok := a.queue.PeekFirst()
		if !ok || ev.CompletionTime > t {
			break
		}
		a.queue.PopFront()
		if ev.Target.Kind == TargetWaterTank {
			drawn := ev.WaterOnBoard - a.water // litres actually drawn at this completion
			if drawn > 0 {
				ev.Target.Tank().Draw(geo.NewVolume(drawn, "L"))
			}
		}
		ins, sup := a.applyCompletion(ev)
		if ins != nil {
			inspected = append(inspected, ins)
		}
		if sup != nil {
			suppressed = append(suppressed, sup)
		}
	}

	if next, ok := a.queue.PeekFirst(); ok {
		a.partiallyAdvance(next, t)
		return inspected, suppressed
	}
	a.idleAdvance(t)
	return inspected, suppressed
}

// partiallyAdvance moves the aircraft part-way along its next queued event,
// without completing it, interpolating position and fuel linearly.
func (a *Aircraft) partiallyAdvance(next *Event, t float64) {
	switch {
	case t <= next.DepartureTime:
		a.currentTime = t
	case t < next.ArrivalTime:
		span := next.ArrivalTime - next.DepartureTime
		frac := 0.0
		if span > 0 {
			frac = (t - next.DepartureTime) / span
		}
		a.position = a.position.IntermediatePoint(next.Target.Location(), frac)
		a.fuel = a.fuel - (a.fuel-next.ArrivalFuel)*frac
		a.status = next.ArrivalStatus
		a.currentTime = t
	default: // arrived, still completing (refuel/refill/dwell)
		a.position = next.Target.Location()
		span := next.CompletionTime - next.ArrivalTime
		frac := 0.0
		if span > 0 {
			frac = (t - next.ArrivalTime) / span
		}
		a.fuel = next.ArrivalFuel - (next.ArrivalFuel-next.CompletionFuel)*frac
		a.status = next.ArrivalStatus
		a.currentTime = t
	}
}

// idleAdvance advances an aircraft with an empty queue to t, burning hover
// fuel if it is airborne-idle, and honoring a pending required-return-to-base
// obligation by diverting if continuing to hover would miss the deadline.
func (a *Aircraft) idleAdvance(t float64) {
	if a.requiredReturn != nil && t > a.requiredReturn.deadline {
		base := a.requiredReturn.base
		a.requiredReturn = nil
		ev, after, ok := a.buildEvent(a.currentSnapshot(), ToBase(base), a.currentTime)
		if ok {
			if after.time <= t {
				a.queue.Append(ev)
				a.UpdateToTime(t)
				return
			}
			a.queue.Append(ev)
			a.partiallyAdvance(ev, t)
			return
		}
	}
	if a.status == scenario.Hovering {
		rng := a.rangeAt(a.water)
		a.fuel -= a.hoverFuelPerSecond(rng) * (t - a.currentTime)
	}
	a.currentTime = t
}

// GoToBaseWhenNecessary stores a latent return-to-base obligation when the
// aircraft is idle: the latest departure time that still leaves
// pct_fuel_cutoff * range * current_fuel of reserve on arrival.
func (a *Aircraft) GoToBaseWhenNecessary(bases []*scenario.Base, now float64) {
	if a.status != scenario.Hovering && a.status != scenario.Unassigned {
		return
	}
	if len(bases) == 0 {
		return
	}
	nearest := bases[0]
	best := a.position.Distance(nearest.Location)
	for _, b := range bases[1:] {
		if d := a.position.Distance(b.Location); d.Metres() < best.Metres() {
			nearest, best = b, d
		}
	}
	rng := a.rangeAt(a.water)
	reserve := a.Attributes.PctFuelCutoff * rng.Metres() * a.fuel
	fuelNeeded := (best.Metres() + reserve) / maxFloat(rng.Metres(), 1)
	burnRate := a.hoverFuelPerSecond(rng)
	var waitSeconds float64
	if burnRate > 0 {
		waitSeconds = (a.fuel - fuelNeeded) / burnRate
	}
	if waitSeconds < 0 {
		waitSeconds = 0
	}
	a.requiredReturn = &returnObligation{base: nearest, deadline: now + waitSeconds}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
