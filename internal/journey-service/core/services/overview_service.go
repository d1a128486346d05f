package services

import (
	"context"
	"fmt"

	"bus-track/internal/journey-service/core/domain/dto"
	"bus-track/internal/journey-service/core/ports/driven"
	"bus-track/internal/mylogger"
)

type OverviewService struct {
	log   mylogger.Logger
	repo  driven.IOverviewRepo
	cache driven.IJourneyCache
}

func NewOverviewService(log mylogger.Logger, repo driven.IOverviewRepo, cache driven.IJourneyCache) *OverviewService {
	return &OverviewService{log: log, repo: repo, cache: cache}
}

func (os *OverviewService) GetOverview(ctx context.Context) (dto.FleetOverviewDto, error) {
	overview, err := os.repo.GetFleetCounts(ctx)
	if err != nil {
		return dto.FleetOverviewDto{}, fmt.Errorf("fleet counts: %w", err)
	}

	stats := os.cache.Stats()
	overview.Cache = dto.CacheStatsDto{
		Entries: stats.Entries,
		Fresh:   stats.Fresh,
		Stale:   stats.Stale,
	}
	return overview, nil
}
