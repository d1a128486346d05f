package driven

import (
	"context"

	"bus-track/internal/tracking-service/core/domain/model"
)

type ITrackRepository interface {
	// ApplyFix pushes the stored current location onto the route history
	// (capped at maxRoutePoints, oldest evicted), overwrites the current
	// location with point and stamps last_updated. Creates the track with an
	// empty route when the device is unknown. Runs as one transaction.
	ApplyFix(ctx context.Context, deviceID string, point model.TrajectoryPoint, maxRoutePoints int) (model.FixResult, error)

	UpsertProfile(ctx context.Context, profile model.VehicleProfile) error
}
