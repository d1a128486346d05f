package handle

import (
	"net/http"

	"bus-track/internal/journey-service/core/ports/driver"
	"bus-track/internal/mylogger"
)

type OverviewHandler struct {
	overviewService driver.IOverviewService
	log             mylogger.Logger
}

func NewOverviewHandler(os driver.IOverviewService, log mylogger.Logger) *OverviewHandler {
	return &OverviewHandler{
		overviewService: os,
		log:             log,
	}
}

func (oh *OverviewHandler) GetOverview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := oh.overviewService.GetOverview(r.Context())
		if err != nil {
			oh.log.Error("overview request failed", err)
			JsonError(w, http.StatusInternalServerError, err)
			return
		}
		jsonResponse(w, http.StatusOK, res)
	}
}
