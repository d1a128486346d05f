package services

import (
	"context"
	"testing"

	"bus-track/internal/journey-service/core/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSearcher() *Searcher {
	return NewSearcher(1000, 500, 10000, 6)
}

// Fleet for the transfer scenarios: bus-a covers the western half, bus-b
// picks up ~220 m from bus-a's last stop and continues east.
func transferFleet() []model.VehicleTrack {
	return []model.VehicleTrack{
		{DeviceID: "bus-a", Route: route(0, 0.02, 0.04)},
		{DeviceID: "bus-b", Route: route(0.042, 0.06, 0.08)},
	}
}

func TestSearch_TwoLegTransfer(t *testing.T) {
	tracks := transferFleet()
	idx := BuildStopIndex(tracks)
	origin := coord(0, 0.002)
	destination := coord(0, 0.082)

	result, stats, err := newTestSearcher().Search(context.Background(), origin, destination, tracks, idx)

	require.NoError(t, err)
	assert.True(t, stats.Found)
	assert.Equal(t, []string{"bus-a", "bus-b"}, result.VehiclesUsed)
	require.NotEmpty(t, result.Path)
	assert.Equal(t, origin, result.Path[0])
	assert.Equal(t, destination, result.Path[len(result.Path)-1])
}

func TestSearch_TransferThresholdBlocksFarConnection(t *testing.T) {
	// bus-b now starts ~670 m from bus-a's last stop: within the general
	// radius but outside the transfer radius, so no connection exists.
	tracks := []model.VehicleTrack{
		{DeviceID: "bus-a", Route: route(0, 0.02, 0.04)},
		{DeviceID: "bus-b", Route: route(0.046, 0.06, 0.08)},
	}
	idx := BuildStopIndex(tracks)

	_, stats, err := newTestSearcher().Search(context.Background(),
		coord(0, 0.002), coord(0, 0.082), tracks, idx)

	require.NoError(t, err)
	assert.False(t, stats.Found)
}

func TestSearch_OriginAlreadyNearDestination(t *testing.T) {
	tracks := transferFleet()
	idx := BuildStopIndex(tracks)
	origin := coord(0, 0.002)
	destination := coord(0, 0.004)

	result, stats, err := newTestSearcher().Search(context.Background(), origin, destination, tracks, idx)

	require.NoError(t, err)
	assert.True(t, stats.Found)
	assert.Empty(t, result.VehiclesUsed)
	assert.Equal(t, []model.Coordinate{origin, destination}, result.Path)
}

func TestSearch_NoVehicles(t *testing.T) {
	idx := BuildStopIndex(nil)

	_, stats, err := newTestSearcher().Search(context.Background(),
		coord(0, 0.002), coord(0, 0.082), nil, idx)

	require.NoError(t, err)
	assert.False(t, stats.Found)
}

func TestSearch_HopBound(t *testing.T) {
	tracks := transferFleet()
	idx := BuildStopIndex(tracks)

	// One boarding allowed: the bus-a leg consumes it, so the transfer to
	// bus-b is pruned.
	s := NewSearcher(1000, 500, 10000, 1)
	_, stats, err := s.Search(context.Background(),
		coord(0, 0.002), coord(0, 0.082), tracks, idx)

	require.NoError(t, err)
	assert.False(t, stats.Found)
}

func TestSearch_NoBackwardRideOnBoardedVehicle(t *testing.T) {
	// bus-a runs east and then loops back to its starting stop. The rider
	// boards near the third stop, so the only stop left ahead is the
	// loop-back one; the destination sits next to the second stop, behind
	// the boarding point, and riding back to it is not allowed.
	tracks := []model.VehicleTrack{
		{DeviceID: "bus-a", Route: route(0, 0.012, 0.03, 0)},
	}
	idx := BuildStopIndex(tracks)

	result, stats, err := newTestSearcher().Search(context.Background(),
		coord(0, 0.03), coord(0, 0.012), tracks, idx)

	require.NoError(t, err)
	assert.False(t, stats.Found)
	assert.Empty(t, result.Path)
}

func TestSearch_VisitedSetStopsLoopingTransfers(t *testing.T) {
	// bus-a and bus-b run the same two stops in opposite directions, so
	// transferring back and forth between them is always geometrically
	// possible. With the destination unreachable and a generous hop and
	// state budget, the search must still terminate after expanding each
	// (vehicle, stop) pair once: one bus-a state and one bus-b state.
	tracks := []model.VehicleTrack{
		{DeviceID: "bus-a", Route: route(0, 0.02)},
		{DeviceID: "bus-b", Route: route(0.02, 0)},
	}
	idx := BuildStopIndex(tracks)

	s := NewSearcher(1000, 500, 10000, 10)
	_, stats, err := s.Search(context.Background(),
		coord(0, 0), coord(0, 0.5), tracks, idx)

	require.NoError(t, err)
	assert.False(t, stats.Found)
	assert.Equal(t, 2, stats.Enqueued)
}

func TestSearch_SkippedBoardingStaysAvailable(t *testing.T) {
	// bus-a loops back to within metres of its first stop, so a bus-a
	// state examines that stop first and is turned away by the backward
	// rule. The rider arrives there later on bus-b and must still be able
	// to board bus-a: its second stop is the only point near the
	// destination, and boarding anywhere past the first stop skips it.
	tracks := []model.VehicleTrack{
		{DeviceID: "bus-a", Route: route(0, 0.03, 0.06, 0.0005)},
		{DeviceID: "bus-b", Route: route(0.0225, 0.004)},
	}
	idx := BuildStopIndex(tracks)

	result, stats, err := newTestSearcher().Search(context.Background(),
		coord(0, 0.0225), coord(0, 0.0375), tracks, idx)

	require.NoError(t, err)
	assert.True(t, stats.Found)
	assert.Equal(t, []string{"bus-b", "bus-a"}, result.VehiclesUsed)
	require.NotEmpty(t, result.Path)
	assert.Equal(t, coord(0, 0.0375), result.Path[len(result.Path)-1])
}

func TestSearch_StateBudget(t *testing.T) {
	tracks := transferFleet()
	idx := BuildStopIndex(tracks)

	s := NewSearcher(1000, 500, 1, 6)
	_, stats, err := s.Search(context.Background(),
		coord(0, 0.002), coord(0, 0.082), tracks, idx)

	require.NoError(t, err)
	assert.False(t, stats.Found)
	assert.Equal(t, 1, stats.Enqueued)
}

func TestSearch_CanceledContext(t *testing.T) {
	tracks := transferFleet()
	idx := BuildStopIndex(tracks)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := newTestSearcher().Search(ctx, coord(0, 0.002), coord(0, 0.082), tracks, idx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildStopIndex_GroupsExactPointsOnly(t *testing.T) {
	tracks := []model.VehicleTrack{
		{DeviceID: "bus-a", Route: route(0, 0.02)},
		{DeviceID: "bus-b", Route: route(0, 0.06)}, // shares the lon 0 stop
	}

	idx := BuildStopIndex(tracks)
	assert.Equal(t, 3, idx.Len())

	var shared *StopBucket
	idx.Buckets(func(b *StopBucket) {
		if b.Point == coord(0, 0) {
			shared = b
		}
	})
	require.NotNil(t, shared)
	assert.Len(t, shared.Entries, 2)
}
