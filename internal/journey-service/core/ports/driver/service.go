package driver

import (
	"context"

	"bus-track/internal/journey-service/core/domain/dto"
	"bus-track/internal/journey-service/core/domain/model"
)

type IJourneyService interface {
	FindJourney(ctx context.Context, origin, destination model.Coordinate) (dto.JourneyResponseDto, error)
	CalculateFare(ctx context.Context, deviceID string, origin, destination model.Coordinate) (dto.FareResponseDto, error)
}

type IOverviewService interface {
	GetOverview(ctx context.Context) (dto.FleetOverviewDto, error)
}
