package driven

import (
	"context"

	"bus-track/internal/journey-service/core/domain/model"
)

// IGeocoder resolves a coordinate to a human-readable address. Best-effort
// enrichment: callers substitute a placeholder on error.
type IGeocoder interface {
	ReverseGeocode(ctx context.Context, c model.Coordinate) (string, error)
}
