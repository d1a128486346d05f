package services

import (
	"context"
	"strconv"

	"bus-track/internal/journey-service/core/domain/model"
	"bus-track/internal/journey-service/core/geo"
)

// Searcher runs the multi-hop breadth-first search over the implicit graph of
// (vehicle, route-index) pairs. It does not minimize distance or time; FIFO
// order gives a shortest-hop-count bias and the first state within range of
// the destination wins.
type Searcher struct {
	nearThresholdMeters     float64
	transferThresholdMeters float64
	maxQueuedStates         int
	maxHops                 int
}

func NewSearcher(nearThresholdMeters, transferThresholdMeters float64, maxQueuedStates, maxHops int) *Searcher {
	return &Searcher{
		nearThresholdMeters:     nearThresholdMeters,
		transferThresholdMeters: transferThresholdMeters,
		maxQueuedStates:         maxQueuedStates,
		maxHops:                 maxHops,
	}
}

// SearchStats reports how much work one search did.
type SearchStats struct {
	Found    bool
	Enqueued int
}

// Search explores outward from origin, switching vehicles at proximity
// matched stops, until a state lands within the near threshold of the
// destination. Exhausting the queue or the state budget is a normal negative
// outcome, not an error; only context cancellation returns one.
func (s *Searcher) Search(ctx context.Context, origin, destination model.Coordinate, tracks []model.VehicleTrack, idx *StopIndex) (model.SearchResult, SearchStats, error) {
	routesByID := make(map[string][]model.TrajectoryPoint, len(tracks))
	for _, t := range tracks {
		routesByID[t.DeviceID] = t.Route
	}

	queue := []model.SearchState{{
		CurrentPoint:   origin,
		PathSoFar:      []model.Coordinate{origin},
		LastRouteIndex: -1,
	}}
	visited := make(map[string]bool)
	stats := SearchStats{}

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return model.SearchResult{}, stats, ctx.Err()
		default:
		}

		state := queue[0]
		queue = queue[1:]

		if geo.IsNear(state.CurrentPoint, destination, s.nearThresholdMeters) {
			stats.Found = true
			return model.SearchResult{
				Path:         appendCoord(state.PathSoFar, destination),
				VehiclesUsed: state.VehiclesUsed,
			}, stats, nil
		}

		// O(#buckets) scan; acceptable at the data volumes in play.
		idx.Buckets(func(b *StopBucket) {
			d := geo.Distance(state.CurrentPoint, b.Point)
			if d > s.nearThresholdMeters {
				return
			}
			for _, entry := range b.Entries {
				// Boarding a different vehicle is a transfer and gets the
				// tighter radius so far-apart points don't manufacture
				// spurious connections. First boarding and staying on the
				// current vehicle use the general radius.
				if state.CurrentVehicleID != "" && entry.DeviceID != state.CurrentVehicleID && d > s.transferThresholdMeters {
					continue
				}

				// Riding the same vehicle backward along its own route is
				// disallowed.
				if state.CurrentVehicleID == entry.DeviceID && entry.RouteIndex <= state.LastRouteIndex {
					continue
				}

				hops := state.Hops
				if entry.DeviceID != state.CurrentVehicleID {
					hops++
				}
				if hops > s.maxHops {
					continue
				}

				// Claim the pair only once boarding here is actually
				// possible; an ineligible examination must not block a
				// later state that can board.
				visitKey := entry.DeviceID + "_" + strconv.Itoa(entry.RouteIndex)
				if visited[visitKey] {
					continue
				}
				visited[visitKey] = true

				route := routesByID[entry.DeviceID]
				for j := entry.RouteIndex + 1; j < len(route); j++ {
					if stats.Enqueued >= s.maxQueuedStates {
						return
					}
					queue = append(queue, model.SearchState{
						CurrentPoint:     route[j].Coordinates,
						PathSoFar:        appendCoord(state.PathSoFar, route[j].Coordinates),
						VehiclesUsed:     appendVehicle(state.VehiclesUsed, entry.DeviceID),
						LastRouteIndex:   j,
						CurrentVehicleID: entry.DeviceID,
						Hops:             hops,
					})
					stats.Enqueued++
				}
			}
		})
	}

	return model.SearchResult{}, stats, nil
}

// appendCoord copies before appending; queued states must not share backing
// arrays.
func appendCoord(path []model.Coordinate, c model.Coordinate) []model.Coordinate {
	out := make([]model.Coordinate, len(path), len(path)+1)
	copy(out, path)
	return append(out, c)
}

func appendVehicle(vehicles []string, id string) []string {
	out := make([]string, len(vehicles), len(vehicles)+1)
	copy(out, vehicles)
	return append(out, id)
}
