package scenario

import "fmt"

// ErrInputInconsistent is returned at scenario construction time when an
// entity's fields violate a structural invariant (negative tank capacity,
// pct_fuel_cutoff outside (0,1], etc). This is fatal at construction, not a
// recoverable per-strike outcome.
type ErrInputInconsistent struct {
	Entity string
	Reason string
}

func (e *ErrInputInconsistent) Error() string {
	return fmt.Sprintf("input inconsistent for %s: %s", e.Entity, e.Reason)
}

// InvariantViolation panics with a structured report when a logic invariant
// is breached after a commit (e.g. a resource ledger going negative). This
// is fatal and crashes the scenario — it is never expected to occur for any
// input that passed construction-time checks.
type InvariantViolation struct {
	Component string
	Reason    string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violated in %s: %s", e.Component, e.Reason)
}

// checkInvariant panics with a structured InvariantViolation if cond is false.
func checkInvariant(component string, cond bool, reason string) {
	if !cond {
		panic(&InvariantViolation{Component: component, Reason: reason})
	}
}
