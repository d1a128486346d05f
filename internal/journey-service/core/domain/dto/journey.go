package dto

// Field names below are consumed verbatim by the frontend. Do not rename.

type CoordinateDto struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type TimeSlotDto struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type MatchedBusDto struct {
	DeviceID    string       `json:"deviceId"`
	Name        string       `json:"name"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	TicketPrice float64      `json:"ticketPrice"`
	NextSlot    *TimeSlotDto `json:"nextSlot"`
}

type PathAddressDto struct {
	Coordinates CoordinateDto `json:"coordinates"`
	Address     string        `json:"address"`
}

type JourneyResponseDto struct {
	Type            string           `json:"type"` // "direct" or "multi-hop"
	BusesUsed       []MatchedBusDto  `json:"busesUsed"`
	PathCoordinates []CoordinateDto  `json:"pathCoordinates"`
	PathAddresses   []PathAddressDto `json:"pathAddresses"`
}
