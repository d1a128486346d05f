package db

import (
	"context"
	"fmt"

	"bus-track/internal/journey-service/core/domain/dto"
)

type OverviewRepo struct {
	db *DataBase
}

func NewOverviewRepo(db *DataBase) *OverviewRepo {
	return &OverviewRepo{db: db}
}

func (or *OverviewRepo) GetFleetCounts(ctx context.Context) (dto.FleetOverviewDto, error) {
	var overview dto.FleetOverviewDto

	q1 := `
	SELECT
		COUNT(*) as registered,
		COUNT(*) FILTER (WHERE last_updated > NOW() - INTERVAL '5 minutes') as reporting,
		COALESCE(SUM(jsonb_array_length(route)), 0) as recorded_points
	FROM bus_tracks;
	`
	err := or.db.GetConn().QueryRow(ctx, q1).Scan(
		&overview.RegisteredVehicles,
		&overview.ReportingVehicles,
		&overview.RecordedPoints,
	)
	if err != nil {
		return dto.FleetOverviewDto{}, fmt.Errorf("failed to get fleet metrics: %v", err)
	}

	return overview, nil
}
