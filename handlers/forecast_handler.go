package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Deeksha-0406/LAMP/forecast"
	"github.com/Deeksha-0406/LAMP/utils"
)

// ForecastDemand projects per-asset assignment demand periodsAhead months
// into the future from the claim history.
func ForecastDemand(w http.ResponseWriter, r *http.Request) {
	periods := 3
	if raw := r.URL.Query().Get("periods"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "periods must be a positive integer")
			return
		}
		periods = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	result, err := forecaster.Project(ctx, periods)
	if err != nil {
		if errors.Is(err, forecast.ErrInsufficientHistory) {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "insufficient assignment history for a forecast")
			return
		}
		logger.Error("forecast failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "internal error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"periodsAhead": periods,
		"forecast":     result,
	})
}

// MaintenanceDue lists laptops whose service interval has lapsed.
func MaintenanceDue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	reports, err := maintenance.Due(ctx, time.Now().UTC())
	if err != nil {
		logger.Error("maintenance check failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "internal error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, reports)
}
