package services

import (
	"context"
	"errors"
	"testing"

	"bus-track/internal/journey-service/core/domain/dto"
	"bus-track/internal/mylogger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOverviewRepo struct {
	overview dto.FleetOverviewDto
	err      error
}

func (f *fakeOverviewRepo) GetFleetCounts(ctx context.Context) (dto.FleetOverviewDto, error) {
	return f.overview, f.err
}

func TestGetOverview(t *testing.T) {
	l, err := mylogger.New(mylogger.LevelError)
	require.NoError(t, err)

	cache := newFakeCache()
	cache.SetWithTTL("k", []byte("v"), 0)

	repo := &fakeOverviewRepo{overview: dto.FleetOverviewDto{
		RegisteredVehicles: 12,
		ReportingVehicles:  9,
		RecordedPoints:     840,
	}}

	res, err := NewOverviewService(l, repo, cache).GetOverview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 12, res.RegisteredVehicles)
	assert.Equal(t, 9, res.ReportingVehicles)
	assert.Equal(t, int64(840), res.RecordedPoints)
	assert.Equal(t, 1, res.Cache.Entries)
}

func TestGetOverview_RepoError(t *testing.T) {
	l, err := mylogger.New(mylogger.LevelError)
	require.NoError(t, err)

	repo := &fakeOverviewRepo{err: errors.New("db down")}

	_, err = NewOverviewService(l, repo, newFakeCache()).GetOverview(context.Background())
	assert.Error(t, err)
}
