package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/upmpoly/internal/api/handler"
	"github.com/mcoot/upmpoly/internal/api/middleware"
	"github.com/mcoot/upmpoly/internal/services/economy"
	"github.com/mcoot/upmpoly/internal/services/query"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	EconomyController *economy.Controller
	QueryService      *query.Service
	// AdminTokenHash is the bcrypt hash guarding seed and delete
	AdminTokenHash string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	ledgerHandler := handler.NewLedgerHandler(cfg.EconomyController, cfg.QueryService)
	playerHandler := handler.NewPlayerHandler(cfg.EconomyController, cfg.QueryService)
	facultyHandler := handler.NewFacultyHandler(cfg.EconomyController, cfg.QueryService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestID())
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Asset routes
	api.HandleFunc("/assets/{id}/exists", ledgerHandler.Exists).Methods(http.MethodGet)

	// Administrative routes
	admin := api.NewRoute().Subrouter()
	admin.Use(middleware.Admin(cfg.AdminTokenHash, cfg.Logger))
	admin.HandleFunc("/ledger/seed", ledgerHandler.Seed).Methods(http.MethodPost)
	admin.HandleFunc("/assets/{id}", ledgerHandler.Delete).Methods(http.MethodDelete)

	// Player routes; /active is registered before /{id} so it is not captured
	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players/active", playerHandler.ListActive).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}/credit", playerHandler.Credit).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}/eliminated", playerHandler.Eliminated).Methods(http.MethodGet)

	// Faculty routes
	api.HandleFunc("/faculties", facultyHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/faculties", facultyHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/faculties/{id}", facultyHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/faculties/{id}/owner", facultyHandler.Owner).Methods(http.MethodGet)

	// Economic transitions
	api.HandleFunc("/faculties/{id}/purchase", facultyHandler.Purchase).Methods(http.MethodPost)
	api.HandleFunc("/faculties/{id}/rent", facultyHandler.Rent).Methods(http.MethodPost)
	api.HandleFunc("/faculties/{id}/trade", facultyHandler.Trade).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
