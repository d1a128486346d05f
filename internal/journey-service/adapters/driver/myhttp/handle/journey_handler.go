package handle

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bus-track/internal/journey-service/core/domain/model"
	"bus-track/internal/journey-service/core/myerrors"
	"bus-track/internal/journey-service/core/ports/driver"
	"bus-track/internal/mylogger"
)

type JourneyHandler struct {
	journeyService driver.IJourneyService
	log            mylogger.Logger
}

func NewJourneyHandler(js driver.IJourneyService, log mylogger.Logger) *JourneyHandler {
	return &JourneyHandler{
		journeyService: js,
		log:            log,
	}
}

func (jh *JourneyHandler) FindJourney() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin, destination, err := parseJourneyQuery(r)
		if err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := jh.journeyService.FindJourney(r.Context(), origin, destination)
		if err != nil {
			jh.writeServiceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (jh *JourneyHandler) CalculateFare() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceID := r.PathValue("device_id")

		origin, destination, err := parseJourneyQuery(r)
		if err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := jh.journeyService.CalculateFare(r.Context(), deviceID, origin, destination)
		if err != nil {
			jh.writeServiceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (jh *JourneyHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, myerrors.ErrInvalidCoordinates),
		errors.Is(err, myerrors.ErrDegenerateRoute):
		JsonError(w, http.StatusBadRequest, err)
	case errors.Is(err, myerrors.ErrNoRouteFound),
		errors.Is(err, myerrors.ErrVehicleNotFound):
		JsonError(w, http.StatusNotFound, err)
	default:
		jh.log.Error("journey request failed", err)
		JsonError(w, http.StatusInternalServerError, err)
	}
}

func parseJourneyQuery(r *http.Request) (model.Coordinate, model.Coordinate, error) {
	parse := func(name string) (float64, error) {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			return 0, fmt.Errorf("missing query parameter %q", name)
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("parameter %q is not a number", name)
		}
		return val, nil
	}

	fromLat, err := parse("fromLat")
	if err != nil {
		return model.Coordinate{}, model.Coordinate{}, err
	}
	fromLon, err := parse("fromLon")
	if err != nil {
		return model.Coordinate{}, model.Coordinate{}, err
	}
	toLat, err := parse("toLat")
	if err != nil {
		return model.Coordinate{}, model.Coordinate{}, err
	}
	toLon, err := parse("toLon")
	if err != nil {
		return model.Coordinate{}, model.Coordinate{}, err
	}

	origin := model.Coordinate{Latitude: fromLat, Longitude: fromLon}
	destination := model.Coordinate{Latitude: toLat, Longitude: toLon}
	return origin, destination, nil
}
