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

type ProfileRepo struct {
	db *DataBase
}

func NewProfileRepo(db *DataBase) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (pr *ProfileRepo) GetProfiles(ctx context.Context, deviceIDs []string) (map[string]model.VehicleProfile, error) {
	profiles := make(map[string]model.VehicleProfile, len(deviceIDs))
	if len(deviceIDs) == 0 {
		return profiles, nil
	}

	Query := `
		SELECT device_id, name, from_label, to_label, driver_name, ticket_price, time_slots
		FROM bus_profiles
		WHERE device_id = ANY($1);
	`
	rows, err := pr.db.GetConn().Query(ctx, Query, deviceIDs)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles[profile.DeviceID] = profile
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	return profiles, nil
}

func (pr *ProfileRepo) GetProfile(ctx context.Context, deviceID string) (model.VehicleProfile, error) {
	Query := `
		SELECT device_id, name, from_label, to_label, driver_name, ticket_price, time_slots
		FROM bus_profiles
		WHERE device_id = $1;
	`
	row := pr.db.GetConn().QueryRow(ctx, Query, deviceID)
	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.VehicleProfile{}, myerrors.ErrVehicleNotFound
		}
		return model.VehicleProfile{}, err
	}
	return profile, nil
}

func scanProfile(row rowScanner) (model.VehicleProfile, error) {
	var (
		profile  model.VehicleProfile
		slotsRaw []byte
	)
	err := row.Scan(
		&profile.DeviceID,
		&profile.Name,
		&profile.From,
		&profile.To,
		&profile.Driver,
		&profile.TicketPrice,
		&slotsRaw,
	)
	if err != nil {
		return model.VehicleProfile{}, err
	}
	if len(slotsRaw) > 0 {
		if err := json.Unmarshal(slotsRaw, &profile.TimeSlots); err != nil {
			return model.VehicleProfile{}, fmt.Errorf("decode time slots for %s: %w", profile.DeviceID, err)
		}
	}
	return profile, nil
}
