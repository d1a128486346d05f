package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"bus-track/internal/mylogger"
	"bus-track/internal/tracking-service/core/domain/dto"
	"bus-track/internal/tracking-service/core/myerrors"
	"bus-track/internal/tracking-service/core/ports/driver"
)

type FixHandler struct {
	trackingService driver.ITrackingService
	log             mylogger.Logger
}

func NewFixHandler(ts driver.ITrackingService, log mylogger.Logger) *FixHandler {
	return &FixHandler{
		trackingService: ts,
		log:             log,
	}
}

func (fh *FixHandler) RecordFix(w http.ResponseWriter, r *http.Request) {
	deviceID := r.PathValue("device_id")

	req := dto.FixRequestDto{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JsonError(w, http.StatusBadRequest, err)
		return
	}

	res, err := fh.trackingService.RecordFix(r.Context(), deviceID, req, "http")
	if err != nil {
		if errors.Is(err, myerrors.ErrInvalidCoordinates) {
			JsonError(w, http.StatusBadRequest, err)
			return
		}
		fh.log.Error("record fix failed", err, "device_id", deviceID)
		JsonError(w, http.StatusInternalServerError, err)
		return
	}

	jsonResponse(w, http.StatusOK, res)
}

func (fh *FixHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	deviceID := r.PathValue("device_id")

	req := dto.ProfileRequestDto{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JsonError(w, http.StatusBadRequest, err)
		return
	}

	res, err := fh.trackingService.RegisterProfile(r.Context(), deviceID, req)
	if err != nil {
		if errors.Is(err, myerrors.ErrInvalidProfile) {
			JsonError(w, http.StatusBadRequest, err)
			return
		}
		fh.log.Error("upsert profile failed", err, "device_id", deviceID)
		JsonError(w, http.StatusInternalServerError, err)
		return
	}

	jsonResponse(w, http.StatusOK, res)
}
