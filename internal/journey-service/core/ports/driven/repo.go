package driven

import (
	"context"

	"bus-track/internal/journey-service/core/domain/dto"
	"bus-track/internal/journey-service/core/domain/model"
)

type ITrackStore interface {
	// GetAllTracks returns a consistent snapshot of every vehicle track,
	// ordered by device id so match selection is deterministic.
	GetAllTracks(ctx context.Context) ([]model.VehicleTrack, error)
	GetTrack(ctx context.Context, deviceID string) (model.VehicleTrack, error)
}

type IProfileStore interface {
	GetProfiles(ctx context.Context, deviceIDs []string) (map[string]model.VehicleProfile, error)
	GetProfile(ctx context.Context, deviceID string) (model.VehicleProfile, error)
}

type IOverviewRepo interface {
	GetFleetCounts(ctx context.Context) (dto.FleetOverviewDto, error)
}
