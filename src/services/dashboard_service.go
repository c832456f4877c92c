// backend/src/services/dashboard_service.go
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/usgrp/citizen-portal/backend/src/economy"
	"github.com/usgrp/citizen-portal/backend/src/logger"
	"github.com/usgrp/citizen-portal/backend/src/models"
	"github.com/usgrp/citizen-portal/backend/src/processors"
	"github.com/usgrp/citizen-portal/backend/src/security/validation"
)

// ErrUnauthenticated is the only error GetDashboard surfaces to callers.
// Everything upstream-related degrades into default field values instead.
var ErrUnauthenticated = errors.New("no authenticated citizen identity")

// DashboardTransactionLimit caps the recent-activity list on the dashboard.
const DashboardTransactionLimit = 10

const healthCacheKey = "economy:healthy"

// Cache settings shared with main.go wiring.
const (
	DefaultCacheExpiration = 1 * time.Minute
	CacheCleanupInterval   = 5 * time.Minute
)

type dashboardServiceImpl struct {
	api         EconomyAPI
	statusCache *cache.Cache
	healthTTL   time.Duration
}

// NewDashboardService wires the aggregator over an economy client. The cache
// holds only the health-probe verdict so a burst of page loads costs one
// upstream /health call, not one per request.
func NewDashboardService(api EconomyAPI, statusCache *cache.Cache, healthTTL time.Duration) DashboardService {
	return &dashboardServiceImpl{
		api:         api,
		statusCache: statusCache,
		healthTTL:   healthTTL,
	}
}

// Healthy reports whether the bot is reachable, consulting the short-lived
// cached verdict first.
func (s *dashboardServiceImpl) Healthy(ctx context.Context) bool {
	if cached, found := s.statusCache.Get(healthCacheKey); found {
		if healthy, ok := cached.(bool); ok {
			return healthy
		}
	}
	healthy := s.api.Health(ctx)
	s.statusCache.Set(healthCacheKey, healthy, s.healthTTL)
	return healthy
}

// GetDashboard assembles the citizen's full view-model.
//
// The seven resource fetches run concurrently and every one of them is
// allowed to fail on its own: a failed fetch leaves its slot nil and the
// merge substitutes the documented default. The join waits for all seven;
// nothing fails fast. APIConnected reflects only the citizen-profile fetch.
func (s *dashboardServiceImpl) GetDashboard(ctx context.Context, userID string) (*models.DashboardData, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	// Health gate: if the bot is down, skip the fan-out entirely rather than
	// waiting out seven parallel timeouts.
	if !s.Healthy(ctx) {
		logger.FromContext(ctx).Warn("Economy API unreachable, serving default dashboard", "userID", userID)
		return models.DefaultDashboard(), nil
	}

	var (
		citizen      *models.Citizen
		accounts     *economy.AccountsResult
		transactions []models.Transaction
		credit       *models.Credit
		loans        []models.Loan
		fines        []models.Fine
		debts        []models.Debt
		warrants     []models.Warrant
		housing      *models.Housing
	)

	var (
		errMu     sync.Mutex
		fetchErrs *multierror.Error
	)
	recordErr := func(err error) {
		errMu.Lock()
		fetchErrs = multierror.Append(fetchErrs, err)
		errMu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.api.Citizen(gctx, userID)
		if err != nil {
			recordErr(err)
			return nil
		}
		citizen = c
		return nil
	})
	g.Go(func() error {
		res, err := s.api.Accounts(gctx, userID)
		if err != nil {
			recordErr(err)
			return nil
		}
		accounts = res
		return nil
	})
	g.Go(func() error {
		txs, err := s.api.Transactions(gctx, userID, DashboardTransactionLimit)
		if err != nil {
			recordErr(err)
			return nil
		}
		transactions = txs
		return nil
	})
	g.Go(func() error {
		c, err := s.api.Credit(gctx, userID)
		if err != nil {
			recordErr(err)
			return nil
		}
		credit = c
		return nil
	})
	g.Go(func() error {
		ls, err := s.api.Loans(gctx, userID)
		if err != nil {
			recordErr(err)
			return nil
		}
		loans = ls
		return nil
	})
	g.Go(func() error {
		res, err := s.api.Fines(gctx, userID)
		if err != nil {
			recordErr(err)
			return nil
		}
		fines, debts, warrants = res.Fines, res.Debts, res.Warrants
		return nil
	})
	g.Go(func() error {
		res, err := s.api.Housing(gctx, userID)
		if err != nil {
			recordErr(err)
			return nil
		}
		housing = res.Housing
		return nil
	})

	// Closures never return errors, so Wait only joins.
	_ = g.Wait()

	if err := fetchErrs.ErrorOrNil(); err != nil {
		logger.FromContext(ctx).Warn("Dashboard aggregation completed with degraded resources",
			"userID", userID, "failures", len(fetchErrs.Errors), "error", err)
	}

	data := models.DefaultDashboard()
	data.Citizen = citizen
	// Connected means the bot knows this citizen, independent of how the
	// sibling fetches fared.
	data.APIConnected = citizen != nil

	if accounts != nil {
		if accounts.Accounts != nil {
			data.Accounts = accounts.Accounts
		}
		// The bot usually reports its own total; fall back to summing when it
		// doesn't.
		data.TotalBalance = accounts.Total
		if data.TotalBalance == 0 {
			data.TotalBalance = processors.TotalBalance(accounts.Accounts)
		}
	}
	if transactions != nil {
		data.Transactions = transactions
	}
	if credit != nil {
		data.Credit = *credit
	}
	if loans != nil {
		data.Loans = loans
	}
	if fines != nil {
		data.Fines = fines
	}
	if debts != nil {
		data.Debts = debts
	}
	if warrants != nil {
		data.Warrants = warrants
	}
	data.Housing = housing

	sanitizeDashboard(data)
	return data, nil
}

// sanitizeDashboard scrubs every free-form upstream string before it is
// serialized for the frontend.
func sanitizeDashboard(d *models.DashboardData) {
	if d.Citizen != nil {
		d.Citizen.Name = validation.CleanDisplayText(d.Citizen.Name)
	}
	for i := range d.Transactions {
		d.Transactions[i].Description = validation.CleanDisplayText(d.Transactions[i].Description)
	}
	for i := range d.Fines {
		d.Fines[i].Reason = validation.CleanDisplayText(d.Fines[i].Reason)
	}
	for i := range d.Debts {
		d.Debts[i].Reason = validation.CleanDisplayText(d.Debts[i].Reason)
		d.Debts[i].Creditor = validation.CleanDisplayText(d.Debts[i].Creditor)
	}
	for i := range d.Warrants {
		d.Warrants[i].Reason = validation.CleanDisplayText(d.Warrants[i].Reason)
	}
	if d.Housing != nil {
		d.Housing.Address.Display = validation.CleanDisplayText(d.Housing.Address.Display)
	}
}
