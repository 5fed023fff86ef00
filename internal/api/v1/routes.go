// Package v1 provides the REST API handlers for catalog location management.
package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/swcatalog/location-server/internal/catalog"
	"github.com/swcatalog/location-server/internal/service"
	"github.com/swcatalog/location-server/internal/store"
	"github.com/swcatalog/location-server/pkg/logger"
	"github.com/swcatalog/location-server/pkg/versions"
)

// CreateLocationRequest is the body of a location registration request.
type CreateLocationRequest struct {
	Type   string `json:"type"`
	Target string `json:"target"`
}

// ListLocationsResponse wraps the registered locations.
type ListLocationsResponse struct {
	Items []*catalog.Location `json:"items"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Routes defines the routes for the location API with dependency injection
type Routes struct {
	service service.LocationService
}

// NewRoutes creates a new Routes instance with the provided service
func NewRoutes(svc service.LocationService) *Routes {
	return &Routes{
		service: svc,
	}
}

// Router creates a new router for the location API
func Router(svc service.LocationService) http.Handler {
	routes := NewRoutes(svc)

	r := chi.NewRouter()

	r.Post("/locations", routes.createLocation)
	r.Get("/locations", routes.listLocations)
	r.Get("/locations/{id}", routes.getLocation)
	r.Delete("/locations/{id}", routes.deleteLocation)

	return r
}

// createLocation handles POST /api/v1/locations
//
// The dryRun query parameter simulates ingestion of the referenced
// metadata without persisting anything.
func (lr *Routes) createLocation(w http.ResponseWriter, r *http.Request) {
	dryRun := false
	if raw := r.URL.Query().Get("dryRun"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			lr.writeErrorResponse(w, "Invalid dryRun query parameter", http.StatusBadRequest)
			return
		}
		dryRun = parsed
	}

	var req CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		lr.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Type == "" || req.Target == "" {
		lr.writeErrorResponse(w, "Both type and target are required", http.StatusBadRequest)
		return
	}

	spec := catalog.LocationSpec{Type: req.Type, Target: req.Target}
	result, err := lr.service.CreateLocation(r.Context(), spec, dryRun)
	if err != nil {
		lr.writeServiceError(w, err)
		return
	}

	lr.writeJSONResponse(w, result, http.StatusCreated)
}

// listLocations handles GET /api/v1/locations
func (lr *Routes) listLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := lr.service.ListLocations(r.Context())
	if err != nil {
		lr.writeServiceError(w, err)
		return
	}

	lr.writeJSONResponse(w, ListLocationsResponse{Items: locations}, http.StatusOK)
}

// getLocation handles GET /api/v1/locations/{id}
func (lr *Routes) getLocation(w http.ResponseWriter, r *http.Request) {
	location, err := lr.service.GetLocation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		lr.writeServiceError(w, err)
		return
	}

	lr.writeJSONResponse(w, location, http.StatusOK)
}

// deleteLocation handles DELETE /api/v1/locations/{id}
func (lr *Routes) deleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := lr.service.DeleteLocation(r.Context(), chi.URLParam(r, "id")); err != nil {
		lr.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps service errors onto HTTP status codes.
func (lr *Routes) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case service.IsInputError(err):
		lr.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrLocationNotFound):
		lr.writeErrorResponse(w, "Location not found", http.StatusNotFound)
	case errors.Is(err, store.ErrLocationAlreadyExists):
		lr.writeErrorResponse(w, "Location already exists", http.StatusConflict)
	default:
		logger.Errorf("Location service error: %v", err)
		lr.writeErrorResponse(w, "Internal server error", http.StatusInternalServerError)
	}
}

// HealthRouter creates a router for health check endpoints
func HealthRouter(svc service.LocationService) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", healthHandler)
	r.Get("/readiness", readinessHandler(svc))
	r.Get("/version", versionHandler)

	return r
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// readinessHandler handles readiness check requests
func readinessHandler(svc service.LocationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.CheckReadiness(r.Context()); err != nil {
			errorResp := ErrorResponse{
				Error: "LocationService not ready: " + err.Error(),
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			if encodeErr := json.NewEncoder(w).Encode(errorResp); encodeErr != nil {
				logger.Errorf("Failed to encode readiness error response: %v", encodeErr)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}
}

// versionHandler handles version information requests
func versionHandler(w http.ResponseWriter, _ *http.Request) {
	info := versions.GetVersionInfo()

	response := map[string]string{
		"version":    info.Version,
		"commit":     info.Commit,
		"build_date": info.BuildDate,
		"go_version": info.GoVersion,
		"platform":   info.Platform,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Errorf("Failed to encode version info: %v", err)
	}
}

// writeJSONResponse writes a JSON response with the given data
func (*Routes) writeJSONResponse(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("Failed to encode JSON response: %v", err)
	}
}

// writeErrorResponse writes a standardized error response
func (*Routes) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	errorResp := ErrorResponse{
		Error: message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		logger.Errorf("Failed to encode error response: %v", err)
	}
}
