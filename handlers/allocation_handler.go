package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Deeksha-0406/LAMP/allocation"
	"github.com/Deeksha-0406/LAMP/feature"
	"github.com/Deeksha-0406/LAMP/utils"
)

type recommendRequest struct {
	EmployeeName string `json:"employeeName"`
	feature.Attributes
}

// RecommendLaptop grants a laptop to an employee: their open reservation if
// one exists, otherwise a predicted candidate.
func RecommendLaptop(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EmployeeName == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "employeeName is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	summary, err := allocator.RecommendOrAssign(ctx, req.EmployeeName, req.Attributes)
	if err != nil {
		respondAllocationError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"recommendedLaptop": summary,
	})
}

type reserveRequest struct {
	EmployeeName string `json:"employeeName"`
	LaptopID     string `json:"laptopId"`
}

// ReserveLaptop places a hold on a specific laptop.
func ReserveLaptop(w http.ResponseWriter, r *http.Request) {
	var req reserveRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EmployeeName == "" || req.LaptopID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "employeeName and laptopId are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := allocator.Reserve(ctx, req.EmployeeName, req.LaptopID); err != nil {
		respondAllocationError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Laptop reserved successfully",
	})
}

// OnboardEmployee creates the employee and immediately runs the recommend
// flow with their declared requirement profile.
func OnboardEmployee(w http.ResponseWriter, r *http.Request) {
	var profile allocation.Profile
	if err := utils.ParseJSON(r, &profile); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if profile.Name == "" || profile.Role == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name and role are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	summary, err := allocator.Onboard(ctx, profile)
	if err != nil {
		// The employee record exists either way; only the grant failed.
		respondAllocationError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"recommendedLaptop": summary,
	})
}

type offboardRequest struct {
	EmployeeID string `json:"employeeId"`
}

// OffboardEmployee returns every laptop the employee holds. Per-asset
// failures are internal log events; the batch itself always acks.
func OffboardEmployee(w http.ResponseWriter, r *http.Request) {
	var req offboardRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EmployeeID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "employeeId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := allocator.Offboard(ctx, req.EmployeeID); err != nil {
		respondAllocationError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Employee offboarded",
	})
}

// respondAllocationError maps the allocation error taxonomy onto HTTP
// status codes. Anything outside the taxonomy reports as an opaque
// internal error.
func respondAllocationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, allocation.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "employee or laptop not found")
	case errors.Is(err, allocation.ErrNotAvailable):
		utils.RespondWithError(w, http.StatusConflict, "laptop is not available")
	case errors.Is(err, allocation.ErrNoCandidate):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "no candidate laptop available")
	default:
		logger.Error("allocation request failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "internal error")
	}
}
