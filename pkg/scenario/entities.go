// Package scenario holds the entity model shared by every scenario run: the
// things aircraft fly to and interact with.
package scenario

import "github.com/wildfire/dispatch-sim/pkg/geo"

// Base is a refuel site for one or more aircraft kinds. Which aircraft may use
// which bases is tracked externally (by the config that builds the fleet),
// not on Base itself — a base is just a stable, located identity.
type Base struct {
	ID       int
	Name     string
	Location geo.Location
}

// Target is an area-attraction point used by the unassigned-aircraft
// repositioning behaviour that this simulator does not implement. The core
// never reads or writes Target; it is kept only so the entity model stays
// complete.
type Target struct {
	ID       int
	Location geo.Location
}

// NewBase constructs a Base.
func NewBase(id int, name string, loc geo.Location) Base {
	return Base{ID: id, Name: name, Location: loc}
}
