// backend/src/services/interfaces.go
package services

import (
	"context"

	"github.com/usgrp/citizen-portal/backend/src/economy"
	"github.com/usgrp/citizen-portal/backend/src/models"
)

// EconomyAPI is the read-only surface of the CO-Economy-Bot client that the
// service layer depends on. *economy.Client satisfies it; tests substitute
// fakes.
type EconomyAPI interface {
	Citizen(ctx context.Context, userID string) (*models.Citizen, error)
	Accounts(ctx context.Context, userID string) (*economy.AccountsResult, error)
	Transactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
	Credit(ctx context.Context, userID string) (*models.Credit, error)
	Loans(ctx context.Context, userID string) ([]models.Loan, error)
	Fines(ctx context.Context, userID string) (*economy.FinesResult, error)
	Housing(ctx context.Context, userID string) (*economy.HousingResult, error)
	Payroll(ctx context.Context, userID string) (*economy.PayrollResult, error)
	Health(ctx context.Context) bool
}

// DashboardService produces the merged per-citizen view-model.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID string) (*models.DashboardData, error)
	Healthy(ctx context.Context) bool
}
