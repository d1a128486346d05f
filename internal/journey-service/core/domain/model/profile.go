package model

// TimeSlot is an operating window in wall-clock HH:MM, no date.
type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// VehicleProfile is the static metadata registered for a bus. Created once,
// updated rarely by an admin.
type VehicleProfile struct {
	DeviceID    string
	Name        string
	From        string
	To          string
	Driver      string
	TicketPrice float64
	TimeSlots   []TimeSlot
}
