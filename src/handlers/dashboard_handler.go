// backend/src/handlers/dashboard_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/usgrp/citizen-portal/backend/src/logger"
	"github.com/usgrp/citizen-portal/backend/src/models"
	"github.com/usgrp/citizen-portal/backend/src/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// HandleGetDashboard returns the full aggregated view-model for the caller.
//
// Unauthenticated callers get a 401 whose body still carries the default
// view-model shape, so the frontend can render its demo state from the same
// decode path. Upstream failures never surface here; they are already folded
// into defaults by the service.
func (h *DashboardHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())

	data, err := h.dashboardService.GetDashboard(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUnauthenticated) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(struct {
				*models.DashboardData
				Error string `json:"error"`
			}{models.DefaultDashboard(), "Not authenticated"})
			return
		}
		logger.ErrorFromContext(r.Context(), "Dashboard aggregation failed", "error", err)
		sendJSONError(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	writeJSON(w, data)
}

// HandleHealth reports this service's own liveness plus whether the economy
// bot is currently reachable.
func (h *DashboardHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"ok":           true,
		"apiConnected": h.dashboardService.Healthy(r.Context()),
	})
}
