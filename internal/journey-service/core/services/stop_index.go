package services

import (
	"fmt"

	"bus-track/internal/journey-service/core/domain/model"
)

// StopEntry marks that one vehicle's route touches a bucket at a given index.
type StopEntry struct {
	DeviceID   string
	RouteIndex int
}

// StopBucket groups trajectory points from different vehicles that round to
// the same coordinate key.
type StopBucket struct {
	Point   model.Coordinate // representative coordinate for distance scans
	Entries []StopEntry
}

// StopIndex buckets every recorded trajectory point by its coordinate rounded
// to 6 decimal places. That precision (~0.1 m) makes it exact-match grouping,
// not a proximity structure: nearby-stop queries still scan all buckets with
// haversine. Rebuilt per search, never persisted.
type StopIndex struct {
	buckets map[string]*StopBucket
	order   []string // insertion order, keeps scans deterministic
}

func BuildStopIndex(tracks []model.VehicleTrack) *StopIndex {
	idx := &StopIndex{buckets: make(map[string]*StopBucket)}
	for _, t := range tracks {
		for i, tp := range t.Route {
			key := stopKey(tp.Coordinates)
			b, ok := idx.buckets[key]
			if !ok {
				b = &StopBucket{Point: tp.Coordinates}
				idx.buckets[key] = b
				idx.order = append(idx.order, key)
			}
			b.Entries = append(b.Entries, StopEntry{DeviceID: t.DeviceID, RouteIndex: i})
		}
	}
	return idx
}

func stopKey(c model.Coordinate) string {
	return fmt.Sprintf("%.6f_%.6f", c.Latitude, c.Longitude)
}

// Buckets iterates in insertion order.
func (idx *StopIndex) Buckets(fn func(b *StopBucket)) {
	for _, key := range idx.order {
		fn(idx.buckets[key])
	}
}

func (idx *StopIndex) Len() int {
	return len(idx.order)
}
