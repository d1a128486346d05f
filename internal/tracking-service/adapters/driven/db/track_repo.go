package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bus-track/internal/tracking-service/core/domain/model"

	"github.com/jackc/pgx/v5"
)

type TrackRepo struct {
	db *DB
}

func NewTrackRepo(db *DB) *TrackRepo {
	return &TrackRepo{db: db}
}

// ApplyFix runs the read-modify-write for one fix in a single transaction
// with the row locked, so readers never see route/current/previous torn
// apart. The displaced current location becomes the newest route point;
// history beyond maxRoutePoints is dropped oldest-first.
func (tr *TrackRepo) ApplyFix(ctx context.Context, deviceID string, point model.TrajectoryPoint, maxRoutePoints int) (model.FixResult, error) {
	tx, err := tr.db.GetConn().Begin(ctx)
	if err != nil {
		return model.FixResult{}, fmt.Errorf("begin fix tx: %w", err)
	}
	defer tx.Rollback(ctx)

	SelectQuery := `
		SELECT route, current_point
		FROM bus_tracks
		WHERE device_id = $1
		FOR UPDATE;
	`
	var routeRaw, currentRaw []byte
	err = tx.QueryRow(ctx, SelectQuery, deviceID).Scan(&routeRaw, &currentRaw)

	now := time.Now()
	result := model.FixResult{DeviceID: deviceID, UpdatedAt: now}

	if errors.Is(err, pgx.ErrNoRows) {
		InsertQuery := `
			INSERT INTO bus_tracks(device_id, route, current_point, previous_point, last_updated)
			VALUES ($1, '[]', $2, NULL, $3);
		`
		pointRaw, err := json.Marshal(point)
		if err != nil {
			return model.FixResult{}, fmt.Errorf("encode fix: %w", err)
		}
		if _, err := tx.Exec(ctx, InsertQuery, deviceID, pointRaw, now); err != nil {
			return model.FixResult{}, fmt.Errorf("insert track: %w", err)
		}
		result.Created = true
		return result, tx.Commit(ctx)
	}
	if err != nil {
		return model.FixResult{}, fmt.Errorf("select track: %w", err)
	}

	var route []model.TrajectoryPoint
	if err := json.Unmarshal(routeRaw, &route); err != nil {
		return model.FixResult{}, fmt.Errorf("decode route for %s: %w", deviceID, err)
	}
	var current model.TrajectoryPoint
	if err := json.Unmarshal(currentRaw, &current); err != nil {
		return model.FixResult{}, fmt.Errorf("decode current point for %s: %w", deviceID, err)
	}

	route = append(route, current)
	if maxRoutePoints > 0 && len(route) > maxRoutePoints {
		route = route[len(route)-maxRoutePoints:]
	}

	routeOut, err := json.Marshal(route)
	if err != nil {
		return model.FixResult{}, fmt.Errorf("encode route: %w", err)
	}
	pointRaw, err := json.Marshal(point)
	if err != nil {
		return model.FixResult{}, fmt.Errorf("encode fix: %w", err)
	}

	UpdateQuery := `
		UPDATE bus_tracks
		SET route = $1,
			previous_point = current_point,
			current_point = $2,
			last_updated = $3
		WHERE device_id = $4;
	`
	if _, err := tx.Exec(ctx, UpdateQuery, routeOut, pointRaw, now, deviceID); err != nil {
		return model.FixResult{}, fmt.Errorf("update track: %w", err)
	}

	result.RoutePoints = len(route)
	return result, tx.Commit(ctx)
}

func (tr *TrackRepo) UpsertProfile(ctx context.Context, profile model.VehicleProfile) error {
	slotsRaw, err := json.Marshal(profile.TimeSlots)
	if err != nil {
		return fmt.Errorf("encode time slots: %w", err)
	}

	UpsertQuery := `
		INSERT INTO bus_profiles(device_id, name, from_label, to_label, driver_name, ticket_price, time_slots)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (device_id) DO UPDATE
		SET name = EXCLUDED.name,
			from_label = EXCLUDED.from_label,
			to_label = EXCLUDED.to_label,
			driver_name = EXCLUDED.driver_name,
			ticket_price = EXCLUDED.ticket_price,
			time_slots = EXCLUDED.time_slots;
	`
	_, err = tr.db.GetConn().Exec(ctx, UpsertQuery,
		profile.DeviceID,
		profile.Name,
		profile.From,
		profile.To,
		profile.Driver,
		profile.TicketPrice,
		slotsRaw,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
