package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Deeksha-0406/LAMP/handlers"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly  = []string{"GET", "OPTIONS"}
	MethodsPostOnly = []string{"POST", "OPTIONS"}
)

const (
	PathAPI    = "/api"
	PathHealth = "/health"
)

func RegisterRoutes(r *mux.Router, serveWS http.HandlerFunc) {
	// ====================
	// HEALTH CHECK
	// ====================
	r.HandleFunc(PathHealth, handlers.HealthCheck).Methods(MethodsGetOnly...)

	// ====================
	// LIVE ALLOCATION EVENTS
	// ====================
	r.HandleFunc("/ws/allocations", serveWS)

	apiRouter := r.PathPrefix(PathAPI).Subrouter()

	// ====================
	// ALLOCATION
	// ====================
	apiRouter.HandleFunc("/recommendations", handlers.RecommendLaptop).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/reserve", handlers.ReserveLaptop).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/onboard", handlers.OnboardEmployee).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/offboard", handlers.OffboardEmployee).Methods(MethodsPostOnly...)

	// ====================
	// FORECASTING
	// ====================
	apiRouter.HandleFunc("/forecast", handlers.ForecastDemand).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/maintenance/due", handlers.MaintenanceDue).Methods(MethodsGetOnly...)

	// ====================
	// INVENTORY
	// ====================
	apiRouter.HandleFunc("/laptops", handlers.ListLaptops).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/laptops", handlers.CreateLaptop).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/employees", handlers.ListEmployees).Methods(MethodsGetOnly...)
}
