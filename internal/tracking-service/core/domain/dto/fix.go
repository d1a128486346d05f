package dto

import "time"

type FixRequestDto struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type FixResponseDto struct {
	DeviceID    string    `json:"deviceId"`
	RoutePoints int       `json:"routePoints"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FixMessage is the broker payload shape published under bus.fix.<device_id>.
type FixMessage struct {
	DeviceID  string  `json:"deviceId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
