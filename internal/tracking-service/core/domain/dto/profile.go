package dto

type TimeSlotDto struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type ProfileRequestDto struct {
	Name        string        `json:"name"`
	From        string        `json:"from"`
	To          string        `json:"to"`
	Driver      string        `json:"driver"`
	TicketPrice float64       `json:"ticketPrice"`
	TimeSlots   []TimeSlotDto `json:"timeSlots"`
}

type ProfileResponseDto struct {
	DeviceID string `json:"deviceId"`
	Message  string `json:"message"`
}
