package dto

type FareResponseDto struct {
	FromIndex         int     `json:"fromIndex"`
	ToIndex           int     `json:"toIndex"`
	TotalDistance     float64 `json:"totalDistance"`     // km, whole route
	PassengerDistance float64 `json:"passengerDistance"` // km, travelled sub-range
	TicketPrice       float64 `json:"ticketPrice"`
	PricePerKm        float64 `json:"pricePerKm"`
	Fare              float64 `json:"fare"`
}
