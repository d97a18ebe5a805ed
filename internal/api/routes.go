package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(metricsMiddleware)

	// Health check and metrics
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Asset routes
	api.HandleFunc("/assets", handler.GetAllAssets).Methods("GET")
	api.HandleFunc("/assets", handler.CreateAsset).Methods("POST")
	api.HandleFunc("/assets/{id}", handler.GetAsset).Methods("GET")
	api.HandleFunc("/assets/{id}", handler.UpdateAsset).Methods("PUT")
	api.HandleFunc("/assets/{id}", handler.DeleteAsset).Methods("DELETE")
	api.HandleFunc("/assets/{id}/trade", handler.ExecuteTrade).Methods("POST")

	// Transaction log routes
	api.HandleFunc("/transactions", handler.GetAllTransactions).Methods("GET")
	api.HandleFunc("/transactions", handler.CreateTransaction).Methods("POST")
	api.HandleFunc("/transactions/{id}", handler.DeleteTransaction).Methods("DELETE")

	// Portfolio valuation routes
	api.HandleFunc("/portfolio/summary", handler.GetPortfolioSummary).Methods("GET")
	api.HandleFunc("/portfolio/distribution", handler.GetPortfolioDistribution).Methods("GET")
	api.HandleFunc("/portfolio/metrics", handler.GetPortfolioMetrics).Methods("GET")

	// Goal routes
	api.HandleFunc("/goals", handler.GetAllGoals).Methods("GET")
	api.HandleFunc("/goals", handler.CreateGoal).Methods("POST")
	api.HandleFunc("/goals/{id}/progress", handler.UpdateGoalProgress).Methods("PUT")
	api.HandleFunc("/goals/{id}", handler.DeleteGoal).Methods("DELETE")

	// Predefined instrument routes; search must register before {symbol}
	api.HandleFunc("/predefined-assets/search", handler.SearchInstruments).Methods("GET")
	api.HandleFunc("/predefined-assets/{symbol}", handler.GetInstrument).Methods("GET")
	api.HandleFunc("/predefined-assets/{symbol}/price", handler.UpdateInstrumentPrice).Methods("PUT")

	// Market view routes
	api.HandleFunc("/market/data", handler.GetMarketData).Methods("GET")
	api.HandleFunc("/market/sectors", handler.GetMarketSectors).Methods("GET")
	api.HandleFunc("/market/news", handler.GetMarketNews).Methods("GET")

	return r
}
