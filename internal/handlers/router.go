package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xelth-com/goodstrack/internal/buildinfo"
	"github.com/xelth-com/goodstrack/internal/middleware"
	"github.com/xelth-com/goodstrack/internal/models"
	"github.com/xelth-com/goodstrack/internal/services/parcels"
	"github.com/xelth-com/goodstrack/internal/services/reports"
	"github.com/xelth-com/goodstrack/internal/services/users"
	"github.com/xelth-com/goodstrack/internal/sync"
	"go.uber.org/zap"
)

// Services are the collaborators served over HTTP
type Services struct {
	Parcels *parcels.Service
	Users   *users.Service
	Reports *reports.Service
	Sync    *sync.Engine
}

// Router wraps the mux router and the services
type Router struct {
	*mux.Router
	parcels   *parcels.Service
	users     *users.Service
	reports   *reports.Service
	sync      *sync.Engine
	jwtSecret string
	logger    *zap.Logger
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(svc Services, jwtSecret string, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{
		Router:    mux.NewRouter(),
		parcels:   svc.Parcels,
		users:     svc.Users,
		reports:   svc.Reports,
		sync:      svc.Sync,
		jwtSecret: jwtSecret,
		logger:    logger.Named("http"),
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(jwtSecret))

	api.HandleFunc("/parcels", r.listParcels).Methods("GET")
	api.HandleFunc("/parcels", r.createParcel).Methods("POST")
	api.HandleFunc("/parcels/id/{id}", r.getParcelByID).Methods("GET")
	api.HandleFunc("/parcels/{ref}", r.getParcel).Methods("GET")
	api.HandleFunc("/parcels/{ref}/acknowledge", r.acknowledgeParcel).Methods("POST")
	api.HandleFunc("/parcels/{ref}/status", r.updateParcelStatus).Methods("PUT")
	api.HandleFunc("/parcels/{ref}/qr.png", r.parcelQRCode).Methods("GET")
	api.HandleFunc("/parcels/{ref}/documents", r.listStoredDocuments).Methods("GET")
	api.HandleFunc("/parcels/{ref}/documents/{kind:[a-z_]+}.pdf", r.parcelDocument).Methods("GET")
	api.HandleFunc("/parcels/{ref}/publish", r.publishArtifacts).Methods("POST")
	api.HandleFunc("/scan", r.handleScan).Methods("POST")
	api.HandleFunc("/labels", r.generateLabels).Methods("POST")

	api.HandleFunc("/drivers/{id}/parcels", r.driverParcels).Methods("GET")
	api.HandleFunc("/drivers/{id}/report", r.driverReport).Methods("GET")
	api.HandleFunc("/drivers/{id}/report.xlsx", r.driverReportXLSX).Methods("GET")

	api.HandleFunc("/users", r.listUsers).Methods("GET")
	api.HandleFunc("/users/{id}", r.updateUser).Methods("PUT")
	api.HandleFunc("/stats", r.getStats).Methods("GET")

	NewSyncHandler(svc.Sync).RegisterRoutes(api)

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	status := r.sync.Status()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "ok",
		"remoteConfigured": status.RemoteConfigured,
		"autoSync":         status.Running,
		"build":            buildinfo.Current(),
	})
}

// getStats returns record counts for the officials' dashboard
func (r *Router) getStats(w http.ResponseWriter, req *http.Request) {
	stats, err := r.parcels.Stats(req.Context())
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondServiceError maps core errors to HTTP status codes
func (r *Router) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		r.logger.Error("❌ Request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// respondFile sends a binary attachment
func respondFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	}
	w.Write(data)
}
