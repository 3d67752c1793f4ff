// Package precomputed caches the closest-base lookups coordinators perform
// for every strike, so an O(n*m) distance scan is not repeated on every
// insertion-candidate evaluation.
package precomputed

import "github.com/wildfire/dispatch-sim/pkg/scenario"

// Distances memoizes, for a fixed set of strikes, which base (by class and,
// for water bombers, by aircraft type) is nearest. Grounded on
// coordinators/insertion_coordinator.py's repeated
// `self.precomputed.closest_uav_base(...)` / `closest_wb_base(...)` calls,
// which the Python source backs with an equivalent precomputed lookup table
// rather than a fresh argmin scan per call.
type Distances struct {
	uavBases      []*scenario.Base
	wbBasesByType map[string][]*scenario.Base

	closestUAVBase map[int]int
	closestWBBase  map[string]map[int]int
}

// NewDistances precomputes, for every strike, the index of its nearest UAV
// base and its nearest water-bomber base per aircraft type.
func NewDistances(
	strikes []*scenario.Lightning,
	uavBases []*scenario.Base,
	wbBasesByType map[string][]*scenario.Base,
) *Distances {
	d := &Distances{
		uavBases:       uavBases,
		wbBasesByType:  wbBasesByType,
		closestUAVBase: make(map[int]int, len(strikes)),
		closestWBBase:  make(map[string]map[int]int, len(wbBasesByType)),
	}
	for typeTag := range wbBasesByType {
		d.closestWBBase[typeTag] = make(map[int]int, len(strikes))
	}
	for _, s := range strikes {
		if len(uavBases) > 0 {
			d.closestUAVBase[s.ID] = nearestBaseIndex(s, uavBases)
		}
		for typeTag, bases := range wbBasesByType {
			if len(bases) > 0 {
				d.closestWBBase[typeTag][s.ID] = nearestBaseIndex(s, bases)
			}
		}
	}
	return d
}

func nearestBaseIndex(s *scenario.Lightning, bases []*scenario.Base) int {
	best := 0
	bestDist := s.Location.Distance(bases[0].Location).Metres()
	for i := 1; i < len(bases); i++ {
		d := s.Location.Distance(bases[i].Location).Metres()
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// ClosestUAVBase returns the UAV base nearest to s, falling back to a live
// scan if s was not covered at precompute time.
func (d *Distances) ClosestUAVBase(s *scenario.Lightning) *scenario.Base {
	if len(d.uavBases) == 0 {
		return nil
	}
	if idx, ok := d.closestUAVBase[s.ID]; ok {
		return d.uavBases[idx]
	}
	return d.uavBases[nearestBaseIndex(s, d.uavBases)]
}

// ClosestWBBase returns the water-bomber base of the given type nearest to s.
func (d *Distances) ClosestWBBase(s *scenario.Lightning, typeTag string) *scenario.Base {
	bases := d.wbBasesByType[typeTag]
	if len(bases) == 0 {
		return nil
	}
	if byType, ok := d.closestWBBase[typeTag]; ok {
		if idx, ok := byType[s.ID]; ok {
			return bases[idx]
		}
	}
	return bases[nearestBaseIndex(s, bases)]
}
