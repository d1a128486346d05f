package services

import (
	"context"
	"fmt"
	"time"

	"bus-track/internal/metrics"
	"bus-track/internal/mylogger"
	"bus-track/internal/tracking-service/core/domain/dto"
	"bus-track/internal/tracking-service/core/domain/model"
	"bus-track/internal/tracking-service/core/myerrors"
	"bus-track/internal/tracking-service/core/ports/driven"
)

type TrackingService struct {
	log            mylogger.Logger
	repo           driven.ITrackRepository
	notifier       driven.ITrackNotifier
	collector      *metrics.Collector
	maxRoutePoints int
	now            func() time.Time
}

func NewTrackingService(log mylogger.Logger, repo driven.ITrackRepository, notifier driven.ITrackNotifier, collector *metrics.Collector, maxRoutePoints int) *TrackingService {
	return &TrackingService{
		log:            log,
		repo:           repo,
		notifier:       notifier,
		collector:      collector,
		maxRoutePoints: maxRoutePoints,
		now:            time.Now,
	}
}

// RecordFix ingests one position report. Fire-and-forget from the search
// engine's point of view; searches only ever read.
func (ts *TrackingService) RecordFix(ctx context.Context, deviceID string, req dto.FixRequestDto, source string) (dto.FixResponseDto, error) {
	if deviceID == "" || !validCoordinate(req.Latitude, req.Longitude) {
		ts.collector.FixErrors.Inc()
		return dto.FixResponseDto{}, myerrors.ErrInvalidCoordinates
	}

	point := model.TrajectoryPoint{
		Coordinates: model.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude},
		RecordedAt:  ts.now(),
	}

	result, err := ts.repo.ApplyFix(ctx, deviceID, point, ts.maxRoutePoints)
	if err != nil {
		ts.collector.FixErrors.Inc()
		return dto.FixResponseDto{}, fmt.Errorf("apply fix: %w", err)
	}

	if result.Created {
		ts.log.Action("record_fix").Info("new track created", "device_id", deviceID)
	}
	ts.collector.FixesIngested.WithLabelValues(source).Inc()

	if ts.notifier != nil {
		if err := ts.notifier.TrackUpdated(ctx, result, point); err != nil {
			ts.log.Warn("track update event not published", "device_id", deviceID, "reason", err.Error())
		}
	}

	return dto.FixResponseDto{
		DeviceID:    result.DeviceID,
		RoutePoints: result.RoutePoints,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

func (ts *TrackingService) RegisterProfile(ctx context.Context, deviceID string, req dto.ProfileRequestDto) (dto.ProfileResponseDto, error) {
	if deviceID == "" || req.Name == "" || req.TicketPrice <= 0 {
		return dto.ProfileResponseDto{}, myerrors.ErrInvalidProfile
	}
	for _, slot := range req.TimeSlots {
		if !validWallClock(slot.StartTime) || !validWallClock(slot.EndTime) {
			return dto.ProfileResponseDto{}, myerrors.ErrInvalidProfile
		}
	}

	profile := model.VehicleProfile{
		DeviceID:    deviceID,
		Name:        req.Name,
		From:        req.From,
		To:          req.To,
		Driver:      req.Driver,
		TicketPrice: req.TicketPrice,
	}
	for _, slot := range req.TimeSlots {
		profile.TimeSlots = append(profile.TimeSlots, model.TimeSlot{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}

	if err := ts.repo.UpsertProfile(ctx, profile); err != nil {
		return dto.ProfileResponseDto{}, fmt.Errorf("upsert profile: %w", err)
	}

	return dto.ProfileResponseDto{
		DeviceID: deviceID,
		Message:  "Vehicle profile saved",
	}, nil
}

func validCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func validWallClock(hhmm string) bool {
	_, err := time.Parse("15:04", hhmm)
	return err == nil
}
