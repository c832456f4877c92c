// backend/src/handlers/auth_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/usgrp/citizen-portal/backend/src/config"
	"github.com/usgrp/citizen-portal/backend/src/logger"
	"github.com/usgrp/citizen-portal/backend/src/security"
)

type contextKey string

const userIDContextKey contextKey = "userID"

// AuthHandler owns session issuance and the identity-resolving middleware.
type AuthHandler struct {
	authService *security.AuthService
}

func NewAuthHandler(authService *security.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func sendJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	logger.L.Warn("Sending JSON error to client", "message", message, "statusCode", statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// GetUserIDFromContext returns the Discord user ID the request was resolved
// to, if any.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok && userID != ""
}

// AuthMiddleware resolves the caller's identity from a Bearer session token.
// When DEV_USER_ID is configured, requests without a token fall back to that
// identity so the portal can run against the bot without a Discord login.
// Requests that resolve to no identity still pass through; handlers decide
// whether identity is required.
func (h *AuthHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger := logger.FromContext(r.Context())

		userID := ""
		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			resolved, err := h.authService.ValidateToken(tokenString)
			if err != nil {
				ctxLogger.Warn("AuthMiddleware: Token validation failed", "path", r.URL.Path, "error", err)
				sendJSONError(w, "Invalid or expired session", http.StatusUnauthorized)
				return
			}
			userID = resolved
		} else if config.Cfg.DevUserID != "" {
			userID = config.Cfg.DevUserID
			ctxLogger.Debug("AuthMiddleware: Using DEV_USER_ID fallback identity", "path", r.URL.Path)
		}

		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		enrichedLogger := ctxLogger.With(slog.String("userID", userID))
		ctx := logger.ToContext(r.Context(), enrichedLogger)
		ctx = context.WithValue(ctx, userIDContextKey, userID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminMiddleware restricts a route to the configured staff Discord IDs.
func (h *AuthHandler) AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		if !ok {
			sendJSONError(w, "Not authenticated", http.StatusUnauthorized)
			return
		}
		if !slices.Contains(config.Cfg.AdminIDs, userID) {
			logger.FromContext(r.Context()).Warn("AdminMiddleware: non-staff access attempt", "userID", userID, "path", r.URL.Path)
			sendJSONError(w, "Staff access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HandleSession reports the caller's resolved identity to the frontend.
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]any{
		"userId":  userID,
		"isAdmin": slices.Contains(config.Cfg.AdminIDs, userID),
	})
}
