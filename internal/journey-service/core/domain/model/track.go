package model

import "time"

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TrajectoryPoint is one recorded fix for one vehicle. Immutable once
// recorded; insertion order doubles as route order.
type TrajectoryPoint struct {
	Coordinates Coordinate `json:"coordinates"`
	RecordedAt  time.Time  `json:"recordedAt,omitempty"`
}

// VehicleTrack is a vehicle's identity plus its accumulated trajectory and
// live position. PreviousLocation exists only to infer the direction of
// travel relative to the stored route ordering.
type VehicleTrack struct {
	DeviceID         string
	Route            []TrajectoryPoint
	CurrentLocation  TrajectoryPoint
	PreviousLocation TrajectoryPoint
	LastUpdated      time.Time
}
