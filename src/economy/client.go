// backend/src/economy/client.go
package economy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/usgrp/citizen-portal/backend/src/logger"
	"github.com/usgrp/citizen-portal/backend/src/models"
)

// DefaultTransactionLimit is applied when a caller passes limit <= 0.
const DefaultTransactionLimit = 20

// Client is a typed, read-only client for the CO-Economy-Bot citizen API.
// Every call is a GET carrying the static X-API-Key header, optionally scoped
// to a guild via the guildId query parameter.
type Client struct {
	baseURL    string
	apiKey     string
	guildID    string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, guildID string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		guildID: guildID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- Upstream envelope structs ---
// The bot wraps every resource in { ok: bool, <resource>: ... }.

type citizenResponse struct {
	OK      bool            `json:"ok"`
	Citizen *models.Citizen `json:"citizen"`
}

type accountsResponse struct {
	OK       bool             `json:"ok"`
	Accounts []models.Account `json:"accounts"`
	Cards    []models.Card    `json:"cards"`
	Total    float64          `json:"total"`
}

type transactionsResponse struct {
	OK           bool                 `json:"ok"`
	Transactions []models.Transaction `json:"transactions"`
}

type creditResponse struct {
	OK     bool           `json:"ok"`
	Credit *models.Credit `json:"credit"`
}

type loansResponse struct {
	OK    bool          `json:"ok"`
	Loans []models.Loan `json:"loans"`
}

type finesResponse struct {
	OK       bool             `json:"ok"`
	Fines    []models.Fine    `json:"fines"`
	Debts    []models.Debt    `json:"debts"`
	Warrants []models.Warrant `json:"warrants"`
}

type housingResponse struct {
	OK                  bool                       `json:"ok"`
	Housing             *models.Housing            `json:"housing"`
	Config              models.HousingConfig       `json:"config"`
	AvailableProperties []models.AvailableProperty `json:"availableProperties"`
}

type payrollResponse struct {
	OK       bool             `json:"ok"`
	Payslips []models.Payslip `json:"payslips"`
	Job      *models.Job      `json:"job"`
}

// --- Exported result bundles for multi-field resources ---

type AccountsResult struct {
	Accounts []models.Account
	Cards    []models.Card
	Total    float64
}

type FinesResult struct {
	Fines    []models.Fine
	Debts    []models.Debt
	Warrants []models.Warrant
}

type HousingResult struct {
	Housing             *models.Housing
	Config              models.HousingConfig
	AvailableProperties []models.AvailableProperty
}

type PayrollResult struct {
	Payslips []models.Payslip
	Job      *models.Job
}

// get issues one upstream request and decodes the envelope into out.
// Any failure mode is normalized into a *FetchError for the resource.
func (c *Client) get(ctx context.Context, resource Resource, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if c.guildID != "" {
		if query == nil {
			query = url.Values{}
		}
		query.Set("guildId", c.guildID)
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &FetchError{Resource: resource, Err: err}
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &FetchError{
			Resource: resource,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{
			Resource: resource,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("malformed payload: %w", err),
		}
	}
	return nil
}

func (c *Client) requireUser(resource Resource, userID string) error {
	if userID == "" {
		return &FetchError{Resource: resource, Err: errors.New("empty user id")}
	}
	return nil
}

// envelopeNotOK marks a 2xx response whose envelope said ok=false (or was
// missing the resource body). Treated the same as a failed fetch.
func envelopeNotOK(resource Resource) error {
	return &FetchError{Resource: resource, Status: http.StatusOK, Err: errors.New("upstream envelope not ok")}
}

func (c *Client) Citizen(ctx context.Context, userID string) (*models.Citizen, error) {
	if err := c.requireUser(ResourceCitizen, userID); err != nil {
		return nil, err
	}
	var res citizenResponse
	if err := c.get(ctx, ResourceCitizen, "/api/citizen/"+url.PathEscape(userID), nil, &res); err != nil {
		return nil, err
	}
	if !res.OK || res.Citizen == nil {
		return nil, envelopeNotOK(ResourceCitizen)
	}
	return res.Citizen, nil
}

func (c *Client) Accounts(ctx context.Context, userID string) (*AccountsResult, error) {
	if err := c.requireUser(ResourceAccounts, userID); err != nil {
		return nil, err
	}
	var res accountsResponse
	if err := c.get(ctx, ResourceAccounts, "/api/citizen/"+url.PathEscape(userID)+"/accounts", nil, &res); err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, envelopeNotOK(ResourceAccounts)
	}
	return &AccountsResult{Accounts: res.Accounts, Cards: res.Cards, Total: res.Total}, nil
}

func (c *Client) Transactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	if err := c.requireUser(ResourceTransactions, userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultTransactionLimit
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	var res transactionsResponse
	if err := c.get(ctx, ResourceTransactions, "/api/citizen/"+url.PathEscape(userID)+"/transactions", query, &res); err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, envelopeNotOK(ResourceTransactions)
	}
	return res.Transactions, nil
}

func (c *Client) Credit(ctx context.Context, userID string) (*models.Credit, error) {
	if err := c.requireUser(ResourceCredit, userID); err != nil {
		return nil, err
	}
	var res creditResponse
	if err := c.get(ctx, ResourceCredit, "/api/citizen/"+url.PathEscape(userID)+"/credit", nil, &res); err != nil {
		return nil, err
	}
	if !res.OK || res.Credit == nil {
		return nil, envelopeNotOK(ResourceCredit)
	}
	return res.Credit, nil
}

func (c *Client) Loans(ctx context.Context, userID string) ([]models.Loan, error) {
	if err := c.requireUser(ResourceLoans, userID); err != nil {
		return nil, err
	}
	var res loansResponse
	if err := c.get(ctx, ResourceLoans, "/api/citizen/"+url.PathEscape(userID)+"/loans", nil, &res); err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, envelopeNotOK(ResourceLoans)
	}
	return res.Loans, nil
}

func (c *Client) Fines(ctx context.Context, userID string) (*FinesResult, error) {
	if err := c.requireUser(ResourceFines, userID); err != nil {
		return nil, err
	}
	var res finesResponse
	if err := c.get(ctx, ResourceFines, "/api/citizen/"+url.PathEscape(userID)+"/fines", nil, &res); err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, envelopeNotOK(ResourceFines)
	}
	return &FinesResult{Fines: res.Fines, Debts: res.Debts, Warrants: res.Warrants}, nil
}

func (c *Client) Housing(ctx context.Context, userID string) (*HousingResult, error) {
	if err := c.requireUser(ResourceHousing, userID); err != nil {
		return nil, err
	}
	var res housingResponse
	if err := c.get(ctx, ResourceHousing, "/api/citizen/"+url.PathEscape(userID)+"/housing", nil, &res); err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, envelopeNotOK(ResourceHousing)
	}
	return &HousingResult{
		Housing:             res.Housing,
		Config:              res.Config,
		AvailableProperties: res.AvailableProperties,
	}, nil
}

func (c *Client) Payroll(ctx context.Context, userID string) (*PayrollResult, error) {
	if err := c.requireUser(ResourcePayroll, userID); err != nil {
		return nil, err
	}
	var res payrollResponse
	if err := c.get(ctx, ResourcePayroll, "/api/citizen/"+url.PathEscape(userID)+"/payroll", nil, &res); err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, envelopeNotOK(ResourcePayroll)
	}
	return &PayrollResult{Payslips: res.Payslips, Job: res.Job}, nil
}

// Health answers "is the bot reachable at all". Any transport error or
// non-2xx status means false; it never returns an error so callers can use it
// as a plain gate.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.FromContext(ctx).Debug("Economy API health check failed", "error", err)
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}
