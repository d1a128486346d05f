package services

import (
	"bus-track/internal/journey-service/core/domain/model"
	"bus-track/internal/journey-service/core/geo"
)

// tieCountsAsForward fixes the undefined case where two nearby-index lookups
// land on the same route index. Pending product clarification; flipping this
// constant is the only change needed once clarified.
const tieCountsAsForward = false

// FirstIndexWithin returns the FIRST route index within thresholdMeters of
// point, or -1. First-match (not closest) is deliberate and assumes routes
// are simple, non-self-intersecting paths. The fare calculator uses
// ClosestIndex instead; keep the two distinct.
func FirstIndexWithin(point model.Coordinate, route []model.TrajectoryPoint, thresholdMeters float64) int {
	for i, tp := range route {
		if geo.IsNear(point, tp.Coordinates, thresholdMeters) {
			return i
		}
	}
	return -1
}

func isForward(from, to int) bool {
	if from == to {
		return tieCountsAsForward
	}
	return from < to
}

type Matcher struct {
	nearThresholdMeters float64
}

func NewMatcher(nearThresholdMeters float64) *Matcher {
	return &Matcher{nearThresholdMeters: nearThresholdMeters}
}

// FindDirect returns the device ids of every vehicle whose recorded path
// passes near both origin and destination in the order the vehicle is
// currently travelling. Input order is preserved so callers get a
// deterministic first pick.
func (m *Matcher) FindDirect(origin, destination model.Coordinate, tracks []model.VehicleTrack) []string {
	var matches []string
	for _, t := range tracks {
		if m.isDirectMatch(origin, destination, t) {
			matches = append(matches, t.DeviceID)
		}
	}
	return matches
}

func (m *Matcher) isDirectMatch(origin, destination model.Coordinate, t model.VehicleTrack) bool {
	fromIdx := FirstIndexWithin(origin, t.Route, m.nearThresholdMeters)
	toIdx := FirstIndexWithin(destination, t.Route, m.nearThresholdMeters)
	prevIdx := FirstIndexWithin(t.PreviousLocation.Coordinates, t.Route, m.nearThresholdMeters)
	curIdx := FirstIndexWithin(t.CurrentLocation.Coordinates, t.Route, m.nearThresholdMeters)

	if fromIdx == -1 || toIdx == -1 || prevIdx == -1 || curIdx == -1 {
		return false
	}

	// The rider's implied direction must equal the vehicle's current one,
	// otherwise we would suggest a bus driving away from the destination.
	return isForward(fromIdx, toIdx) == isForward(prevIdx, curIdx)
}

// DirectPath slices the travelled portion of a matched vehicle's route,
// bracketed by the rider's literal origin and destination.
func (m *Matcher) DirectPath(origin, destination model.Coordinate, t model.VehicleTrack) []model.Coordinate {
	fromIdx := FirstIndexWithin(origin, t.Route, m.nearThresholdMeters)
	toIdx := FirstIndexWithin(destination, t.Route, m.nearThresholdMeters)
	if fromIdx == -1 || toIdx == -1 {
		return nil
	}

	lo, hi := fromIdx, toIdx
	if lo > hi {
		lo, hi = hi, lo
	}

	path := make([]model.Coordinate, 0, hi-lo+3)
	path = append(path, origin)
	for i := lo; i <= hi; i++ {
		path = append(path, t.Route[i].Coordinates)
	}
	path = append(path, destination)
	return path
}
