package services

import (
	"math"

	"bus-track/internal/journey-service/core/domain/dto"
	"bus-track/internal/journey-service/core/domain/model"
	"bus-track/internal/journey-service/core/geo"
	"bus-track/internal/journey-service/core/myerrors"
)

// ClosestIndex returns the route index nearest to point overall, or -1 for an
// empty route. The matcher deliberately uses FirstIndexWithin instead;
// unifying the two would silently move fare boundaries.
func ClosestIndex(point model.Coordinate, route []model.TrajectoryPoint) int {
	best := -1
	bestDist := math.Inf(1)
	for i, tp := range route {
		d := geo.Distance(point, tp.Coordinates)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// CalculateFare prices the travelled sub-range of a route proportionally to
// the flat full-route ticket price.
func CalculateFare(track model.VehicleTrack, profile model.VehicleProfile, origin, destination model.Coordinate) (dto.FareResponseDto, error) {
	if len(track.Route) < 2 {
		return dto.FareResponseDto{}, myerrors.ErrDegenerateRoute
	}

	fromIdx := ClosestIndex(origin, track.Route)
	toIdx := ClosestIndex(destination, track.Route)
	if fromIdx > toIdx {
		fromIdx, toIdx = toIdx, fromIdx
	}

	var totalMeters, passengerMeters float64
	for i := 0; i < len(track.Route)-1; i++ {
		leg := geo.Distance(track.Route[i].Coordinates, track.Route[i+1].Coordinates)
		totalMeters += leg
		if i >= fromIdx && i < toIdx {
			passengerMeters += leg
		}
	}

	totalKm := totalMeters / 1000
	passengerKm := passengerMeters / 1000
	if totalKm == 0 {
		return dto.FareResponseDto{}, myerrors.ErrDegenerateRoute
	}

	perKm := profile.TicketPrice / totalKm
	return dto.FareResponseDto{
		FromIndex:         fromIdx,
		ToIndex:           toIdx,
		TotalDistance:     totalKm,
		PassengerDistance: passengerKm,
		TicketPrice:       profile.TicketPrice,
		PricePerKm:        perKm,
		Fare:              math.Round(passengerKm * perKm),
	}, nil
}
