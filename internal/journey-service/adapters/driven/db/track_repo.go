package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bus-track/internal/journey-service/core/domain/model"
	"bus-track/internal/journey-service/core/myerrors"

	"github.com/jackc/pgx/v5"
)

type TrackRepo struct {
	db *DataBase
}

func NewTrackRepo(db *DataBase) *TrackRepo {
	return &TrackRepo{db: db}
}

// GetAllTracks reads every track inside one repeatable-read transaction so a
// search never observes currentLocation, previousLocation and route in a
// torn, half-updated state. Ordered by device_id for deterministic match
// selection.
func (tr *TrackRepo) GetAllTracks(ctx context.Context) ([]model.VehicleTrack, error) {
	tx, err := tr.db.GetConn().BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot read: %w", err)
	}
	defer tx.Rollback(ctx)

	Query := `
		SELECT device_id, route, current_point, previous_point, last_updated
		FROM bus_tracks
		ORDER BY device_id;
	`
	rows, err := tx.Query(ctx, Query)
	if err != nil {
		return nil, fmt.Errorf("query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []model.VehicleTrack
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tracks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit snapshot read: %w", err)
	}
	return tracks, nil
}

func (tr *TrackRepo) GetTrack(ctx context.Context, deviceID string) (model.VehicleTrack, error) {
	Query := `
		SELECT device_id, route, current_point, previous_point, last_updated
		FROM bus_tracks
		WHERE device_id = $1;
	`
	row := tr.db.GetConn().QueryRow(ctx, Query, deviceID)
	track, err := scanTrack(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.VehicleTrack{}, myerrors.ErrVehicleNotFound
		}
		return model.VehicleTrack{}, err
	}
	return track, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrack(row rowScanner) (model.VehicleTrack, error) {
	var (
		track       model.VehicleTrack
		routeRaw    []byte
		currentRaw  []byte
		previousRaw []byte
	)
	err := row.Scan(&track.DeviceID, &routeRaw, &currentRaw, &previousRaw, &track.LastUpdated)
	if err != nil {
		return model.VehicleTrack{}, err
	}

	if err := json.Unmarshal(routeRaw, &track.Route); err != nil {
		return model.VehicleTrack{}, fmt.Errorf("decode route for %s: %w", track.DeviceID, err)
	}
	if len(currentRaw) > 0 {
		if err := json.Unmarshal(currentRaw, &track.CurrentLocation); err != nil {
			return model.VehicleTrack{}, fmt.Errorf("decode current point for %s: %w", track.DeviceID, err)
		}
	}
	if len(previousRaw) > 0 {
		if err := json.Unmarshal(previousRaw, &track.PreviousLocation); err != nil {
			return model.VehicleTrack{}, fmt.Errorf("decode previous point for %s: %w", track.DeviceID, err)
		}
	}
	return track, nil
}
