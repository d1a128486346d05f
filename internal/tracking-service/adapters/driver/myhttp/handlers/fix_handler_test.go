package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bus-track/internal/mylogger"
	"bus-track/internal/tracking-service/core/domain/dto"
	"bus-track/internal/tracking-service/core/myerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTrackingService struct {
	fix        dto.FixResponseDto
	fixErr     error
	profile    dto.ProfileResponseDto
	profileErr error

	gotDeviceID string
	gotSource   string
	gotFix      dto.FixRequestDto
}

func (s *stubTrackingService) RecordFix(ctx context.Context, deviceID string, req dto.FixRequestDto, source string) (dto.FixResponseDto, error) {
	s.gotDeviceID, s.gotFix, s.gotSource = deviceID, req, source
	return s.fix, s.fixErr
}

func (s *stubTrackingService) RegisterProfile(ctx context.Context, deviceID string, req dto.ProfileRequestDto) (dto.ProfileResponseDto, error) {
	s.gotDeviceID = deviceID
	return s.profile, s.profileErr
}

func newFixFixture(t *testing.T) (*http.ServeMux, *stubTrackingService) {
	t.Helper()

	l, err := mylogger.New(mylogger.LevelError)
	require.NoError(t, err)

	stub := &stubTrackingService{}
	fh := NewFixHandler(stub, l)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /buses/{device_id}/location", fh.RecordFix)
	mux.HandleFunc("PUT /buses/{device_id}", fh.UpsertProfile)
	return mux, stub
}

func TestRecordFixHandler(t *testing.T) {
	mux, stub := newFixFixture(t)
	stub.fix = dto.FixResponseDto{DeviceID: "bus-1", RoutePoints: 5, UpdatedAt: time.Now()}

	req := httptest.NewRequest(http.MethodPost, "/buses/bus-1/location",
		strings.NewReader(`{"latitude":43.23,"longitude":76.88}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bus-1", stub.gotDeviceID)
	assert.Equal(t, "http", stub.gotSource)
	assert.Equal(t, 43.23, stub.gotFix.Latitude)

	var body dto.FixResponseDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 5, body.RoutePoints)
}

func TestRecordFixHandler_BadPayload(t *testing.T) {
	mux, _ := newFixFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/buses/bus-1/location",
		strings.NewReader(`{"latitude":`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordFixHandler_InvalidCoordinates(t *testing.T) {
	mux, stub := newFixFixture(t)
	stub.fixErr = myerrors.ErrInvalidCoordinates

	req := httptest.NewRequest(http.MethodPost, "/buses/bus-1/location",
		strings.NewReader(`{"latitude":99,"longitude":0}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsertProfileHandler(t *testing.T) {
	mux, stub := newFixFixture(t)
	stub.profile = dto.ProfileResponseDto{DeviceID: "bus-1", Message: "Vehicle profile saved"}

	req := httptest.NewRequest(http.MethodPut, "/buses/bus-1",
		strings.NewReader(`{"name":"12A","ticketPrice":400}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bus-1", stub.gotDeviceID)
}

func TestUpsertProfileHandler_InvalidProfile(t *testing.T) {
	mux, stub := newFixFixture(t)
	stub.profileErr = myerrors.ErrInvalidProfile

	req := httptest.NewRequest(http.MethodPut, "/buses/bus-1",
		strings.NewReader(`{"name":""}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
