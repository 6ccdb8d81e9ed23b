// handlers/handlers.go
package handlers

import (
	"go.uber.org/zap"

	"github.com/Deeksha-0406/LAMP/allocation"
	"github.com/Deeksha-0406/LAMP/forecast"
	"github.com/Deeksha-0406/LAMP/store"
)

var (
	allocator   *allocation.Service
	forecaster  *forecast.Forecaster
	maintenance *forecast.MaintenanceChecker
	laptops     store.Collection
	employees   store.Collection
	logger      *zap.Logger
)

// Init wires the handler package. Mirrors collection initialization: called
// once from main after the database connection is up.
func Init(
	svc *allocation.Service,
	fc *forecast.Forecaster,
	mc *forecast.MaintenanceChecker,
	laptopColl, employeeColl store.Collection,
	log *zap.Logger,
) {
	allocator = svc
	forecaster = fc
	maintenance = mc
	laptops = laptopColl
	employees = employeeColl
	logger = log
}
