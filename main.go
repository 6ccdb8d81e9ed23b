package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Deeksha-0406/LAMP/allocation"
	"github.com/Deeksha-0406/LAMP/claims"
	"github.com/Deeksha-0406/LAMP/config"
	"github.com/Deeksha-0406/LAMP/database"
	"github.com/Deeksha-0406/LAMP/feature"
	"github.com/Deeksha-0406/LAMP/forecast"
	"github.com/Deeksha-0406/LAMP/handlers"
	"github.com/Deeksha-0406/LAMP/ledger"
	"github.com/Deeksha-0406/LAMP/middleware"
	"github.com/Deeksha-0406/LAMP/predictor"
	"github.com/Deeksha-0406/LAMP/routes"
	"github.com/Deeksha-0406/LAMP/store"
	"github.com/Deeksha-0406/LAMP/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	conf, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Database connection
	if err := database.Connect(conf.MongoURI, logger); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// The trained-model artifact loads once at startup; a broken artifact
	// is fatal here, never per-request.
	artifact, err := predictor.LoadArtifact(conf.ModelPath)
	if err != nil {
		logger.Fatal("failed to load model artifact", zap.Error(err))
	}
	model, err := predictor.NewCentroidModel(artifact.Centroids)
	if err != nil {
		logger.Fatal("failed to build predictor", zap.Error(err))
	}

	db := database.Client.Database(conf.DatabaseName)
	laptopColl := store.NewMongo(db.Collection("Laptops"))
	employeeColl := store.NewMongo(db.Collection("Employees"))
	reservationColl := store.NewMongo(db.Collection("Reservations"))
	assignmentColl := store.NewMongo(db.Collection("Assignments"))

	assetLedger := ledger.New(laptopColl, logger)
	recorder := claims.NewRecorder(reservationColl, assignmentColl, logger)
	codec := feature.NewCodec(feature.Config{
		Vocabularies: artifact.Vocabularies,
		Classes:      artifact.Classes,
	}, logger)

	hub := websocket.NewHub(logger)

	allocator := allocation.NewService(assetLedger, recorder, codec, model, employeeColl, hub, logger, allocation.Policy{
		MaxCandidateRetries:         conf.MaxCandidateRetries,
		SingleAssignmentPerEmployee: conf.SingleAssignmentPerEmployee,
	})
	forecaster := forecast.NewForecaster(recorder, logger)
	maintenance := forecast.NewMaintenanceChecker(laptopColl, conf.MaintenanceThresholdDays, logger)

	handlers.Init(allocator, forecaster, maintenance, laptopColl, employeeColl, logger)

	// Router setup
	router := mux.NewRouter()
	routes.RegisterRoutes(router, hub.ServeWS)

	// Global middlewares (order matters!)
	router.Use(middleware.Logging(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS)

	// HTTP server configuration
	srv := &http.Server{
		Addr:         ":" + conf.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("LAMP backend running", zap.String("port", conf.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("server forced shutdown", zap.Error(err))
	}

	database.Disconnect(logger)
	logger.Info("server stopped gracefully")
}
