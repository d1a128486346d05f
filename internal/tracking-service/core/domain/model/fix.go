package model

import "time"

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TrajectoryPoint matches the JSON shape the journey service reads back, so
// both services agree on what a recorded fix looks like.
type TrajectoryPoint struct {
	Coordinates Coordinate `json:"coordinates"`
	RecordedAt  time.Time  `json:"recordedAt,omitempty"`
}

// FixResult reports what one recorded fix did to the stored track.
type FixResult struct {
	DeviceID    string
	RoutePoints int
	UpdatedAt   time.Time
	Created     bool // true when this fix created the track
}

type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type VehicleProfile struct {
	DeviceID    string
	Name        string
	From        string
	To          string
	Driver      string
	TicketPrice float64
	TimeSlots   []TimeSlot
}
