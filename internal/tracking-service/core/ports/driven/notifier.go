package driven

import (
	"context"

	"bus-track/internal/tracking-service/core/domain/model"
)

// ITrackNotifier fans accepted fixes out to downstream consumers
// (dashboards, simulators). Best-effort; a failed publish never fails the
// ingest.
type ITrackNotifier interface {
	TrackUpdated(ctx context.Context, result model.FixResult, point model.TrajectoryPoint) error
}
