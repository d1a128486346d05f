package notify

import (
	"context"
	"time"

	"bus-track/internal/tracking-service/core/domain/model"
	ports "bus-track/internal/tracking-service/core/ports/driven"
)

const (
	trackExchangeName = "bus_topic"
	trackKeyPrefix    = "bus.track." // distinct from bus.fix.* so published events are never re-consumed
)

// Notifier publishes track-updated events for downstream subscribers.
type Notifier struct {
	broker ports.IFixBroker
}

var _ ports.ITrackNotifier = (*Notifier)(nil)

func New(broker ports.IFixBroker) *Notifier {
	return &Notifier{broker: broker}
}

type trackUpdatedEvent struct {
	DeviceID    string    `json:"deviceId"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	RoutePoints int       `json:"routePoints"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Created     bool      `json:"created"`
}

func (n *Notifier) TrackUpdated(ctx context.Context, result model.FixResult, point model.TrajectoryPoint) error {
	return n.broker.PublishJSON(ctx, trackExchangeName, trackKeyPrefix+result.DeviceID, trackUpdatedEvent{
		DeviceID:    result.DeviceID,
		Latitude:    point.Coordinates.Latitude,
		Longitude:   point.Coordinates.Longitude,
		RoutePoints: result.RoutePoints,
		UpdatedAt:   result.UpdatedAt,
		Created:     result.Created,
	})
}
