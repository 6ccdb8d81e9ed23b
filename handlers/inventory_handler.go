package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Deeksha-0406/LAMP/ledger"
	"github.com/Deeksha-0406/LAMP/models"
	"github.com/Deeksha-0406/LAMP/utils"
)

// ListLaptops returns every laptop in the pool.
func ListLaptops(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var out []models.Laptop
	if err := laptops.Find(ctx, bson.M{}, &out); err != nil {
		logger.Error("laptops query failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	if out == nil {
		out = []models.Laptop{}
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// ListEmployees returns every employee on record.
func ListEmployees(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var out []models.Employee
	if err := employees.Find(ctx, bson.M{}, &out); err != nil {
		logger.Error("employees query failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	if out == nil {
		out = []models.Employee{}
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

type createLaptopRequest struct {
	SerialNumber   string                `json:"serialNumber"`
	Model          string                `json:"model"`
	Brand          string                `json:"brand"`
	Specifications models.Specifications `json:"specifications"`
	Location       string                `json:"location,omitempty"`
}

// CreateLaptop intakes a new unit into the pool. New laptops always start
// Available; every later status change goes through the ledger.
func CreateLaptop(w http.ResponseWriter, r *http.Request) {
	var req createLaptopRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SerialNumber == "" || req.Model == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "serialNumber and model are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	laptop := models.Laptop{
		ID:             primitive.NewObjectID(),
		SerialNumber:   req.SerialNumber,
		Model:          req.Model,
		Brand:          req.Brand,
		Specifications: req.Specifications,
		Status:         string(ledger.StatusAvailable),
		Location:       req.Location,
		LastServiced:   time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	if err := laptops.InsertOne(ctx, laptop); err != nil {
		logger.Error("laptop insert failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create laptop")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, laptop)
}
