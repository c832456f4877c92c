package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/usgrp/citizen-portal/backend/src/config"
	"github.com/usgrp/citizen-portal/backend/src/economy"
	"github.com/usgrp/citizen-portal/backend/src/handlers"
	"github.com/usgrp/citizen-portal/backend/src/logger"
	"github.com/usgrp/citizen-portal/backend/src/security"
	"github.com/usgrp/citizen-portal/backend/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000":    true,
			config.Cfg.FrontendBaseURL: true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Citizen Portal backend server starting...")

	if len(config.Cfg.JWTSecret) < 32 {
		logger.L.Error("JWT_SECRET configuration invalid, must be at least 32 characters.")
		stdlog.Fatal("invalid JWT_SECRET")
	}

	statusCache := cache.New(services.DefaultCacheExpiration, services.CacheCleanupInterval)

	handlers.InitializeDiscordOAuthConfig()

	authService := security.NewAuthService(config.Cfg.JWTSecret, config.Cfg.SessionExpiry)
	economyClient := economy.NewClient(
		config.Cfg.EconomyAPIURL,
		config.Cfg.EconomyAPIKey,
		config.Cfg.EconomyGuildID,
		config.Cfg.EconomyTimeout,
	)
	dashboardService := services.NewDashboardService(economyClient, statusCache, config.Cfg.HealthCacheTTL)

	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	citizenHandler := handlers.NewCitizenHandler(economyClient)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Citizen Portal Backend is running"})
	})

	r.Get("/health", dashboardHandler.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Get("/auth/discord/login", authHandler.HandleDiscordLogin)
			r.Get("/auth/discord/callback", authHandler.HandleDiscordCallback)
		})

		// Protected routes (identity resolved from session or DEV_USER_ID)
		r.Group(func(r chi.Router) {
			r.Use(authHandler.AuthMiddleware)

			r.Get("/auth/session", authHandler.HandleSession)

			r.Get("/dashboard", dashboardHandler.HandleGetDashboard)
			r.Get("/banking", citizenHandler.HandleGetBanking)
			r.Get("/transactions", citizenHandler.HandleGetTransactions)
			r.Get("/loans", citizenHandler.HandleGetLoans)
			r.Get("/loans/estimate", citizenHandler.HandleLoanEstimate)
			r.Get("/fines", citizenHandler.HandleGetFines)
			r.Get("/housing", citizenHandler.HandleGetHousing)
			r.Get("/payroll", citizenHandler.HandleGetPayroll)
		})
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
