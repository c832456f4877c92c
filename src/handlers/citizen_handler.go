// backend/src/handlers/citizen_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/usgrp/citizen-portal/backend/src/logger"
	"github.com/usgrp/citizen-portal/backend/src/models"
	"github.com/usgrp/citizen-portal/backend/src/processors"
	"github.com/usgrp/citizen-portal/backend/src/services"
)

// CitizenHandler serves the per-page proxy routes. Each route forwards the
// caller's identity to one or two upstream resources and attaches the derived
// metrics the page needs, so no arithmetic lives in the frontend.
type CitizenHandler struct {
	api services.EconomyAPI
}

func NewCitizenHandler(api services.EconomyAPI) *CitizenHandler {
	return &CitizenHandler{api: api}
}

const pageTransactionLimit = 50

func requireIdentity(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Not authenticated", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

// HandleGetBanking returns accounts, cards, and the asset total.
func (h *CitizenHandler) HandleGetBanking(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	res, err := h.api.Accounts(r.Context(), userID)
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Banking fetch failed", "error", err)
		sendJSONError(w, "Failed to retrieve accounts", http.StatusInternalServerError)
		return
	}

	accounts := res.Accounts
	if accounts == nil {
		accounts = []models.Account{}
	}
	cards := res.Cards
	if cards == nil {
		cards = []models.Card{}
	}
	total := res.Total
	if total == 0 {
		total = processors.TotalBalance(accounts)
	}

	writeJSON(w, map[string]any{
		"accounts": accounts,
		"cards":    cards,
		"total":    total,
	})
}

// HandleGetTransactions returns the transaction history with income/expense
// totals and the top spending categories for the period.
func (h *CitizenHandler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	limit := pageTransactionLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	transactions, err := h.api.Transactions(r.Context(), userID, limit)
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Transactions fetch failed", "error", err)
		sendJSONError(w, "Failed to retrieve transactions", http.StatusInternalServerError)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	writeJSON(w, map[string]any{
		"transactions": transactions,
		"summary": map[string]any{
			"totalIncome":       processors.TotalIncome(transactions),
			"totalExpenses":     processors.TotalExpenses(transactions),
			"netFlow":           processors.NetFlow(transactions),
			"categoryBreakdown": processors.CategoryBreakdown(transactions),
		},
	})
}

// loanView augments an upstream loan with its repayment progress.
type loanView struct {
	models.Loan
	ProgressPercent int `json:"progressPercent"`
}

// creditView carries the canonical band mapping so every page colors scores
// the same way, regardless of what the bot reported.
type creditView struct {
	Score   int                   `json:"score"`
	Band    string                `json:"band"`
	Color   string                `json:"color"`
	Factors []models.CreditFactor `json:"factors,omitempty"`
}

// HandleGetLoans returns the citizen's loans and credit standing. The two
// upstream resources are fetched in parallel; unlike the dashboard, a failure
// of either fails the whole page request.
func (h *CitizenHandler) HandleGetLoans(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var (
		loans  []models.Loan
		credit *models.Credit
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		loans, err = h.api.Loans(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		credit, err = h.api.Credit(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.ErrorFromContext(r.Context(), "Loans fetch failed", "error", err)
		sendJSONError(w, "Failed to retrieve loans", http.StatusInternalServerError)
		return
	}

	views := make([]loanView, 0, len(loans))
	var totalDebt float64
	for _, loan := range loans {
		views = append(views, loanView{Loan: loan, ProgressPercent: processors.LoanProgressPercent(loan)})
		totalDebt += loan.RemainingBalance
	}

	cv := creditView{Score: models.DefaultCreditScore}
	if credit != nil {
		cv.Score = credit.Score
		cv.Factors = credit.Factors
	}
	cv.Band = processors.CreditBand(cv.Score)
	cv.Color = processors.CreditBandColor(cv.Score)

	writeJSON(w, map[string]any{
		"loans":     views,
		"credit":    cv,
		"totalDebt": totalDebt,
	})
}

// HandleLoanEstimate prices a prospective loan with the standard amortization
// formula. Used by the apply-for-loan form and the loan calculator widget.
func (h *CitizenHandler) HandleLoanEstimate(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	query := r.URL.Query()
	amount, err := strconv.ParseFloat(query.Get("amount"), 64)
	if err != nil || amount <= 0 {
		sendJSONError(w, "amount must be a positive number", http.StatusBadRequest)
		return
	}
	apr, err := strconv.ParseFloat(query.Get("apr"), 64)
	if err != nil || apr < 0 {
		sendJSONError(w, "apr must be a non-negative number", http.StatusBadRequest)
		return
	}
	term, err := strconv.Atoi(query.Get("term"))
	if err != nil || term <= 0 {
		sendJSONError(w, "term must be a positive number of months", http.StatusBadRequest)
		return
	}

	monthly := processors.MonthlyPayment(amount, apr, term)
	total := monthly * term
	writeJSON(w, map[string]any{
		"monthlyPayment": monthly,
		"totalPayment":   total,
		"totalInterest":  float64(total) - amount,
	})
}

// HandleGetFines returns fines, debts and warrants plus the outstanding
// total (unpaid fines + remaining debt, paid fines excluded).
func (h *CitizenHandler) HandleGetFines(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	res, err := h.api.Fines(r.Context(), userID)
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Fines fetch failed", "error", err)
		sendJSONError(w, "Failed to retrieve fines", http.StatusInternalServerError)
		return
	}

	fines := res.Fines
	if fines == nil {
		fines = []models.Fine{}
	}
	debts := res.Debts
	if debts == nil {
		debts = []models.Debt{}
	}
	warrants := res.Warrants
	if warrants == nil {
		warrants = []models.Warrant{}
	}

	writeJSON(w, map[string]any{
		"fines":     fines,
		"debts":     debts,
		"warrants":  warrants,
		"totalOwed": processors.TotalOwed(fines, debts),
	})
}

// HandleGetHousing returns the citizen's residence, the tier configuration,
// and current market listings. Monthly figures use the portal's fixed
// 4-weeks-per-month convention.
func (h *CitizenHandler) HandleGetHousing(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	res, err := h.api.Housing(r.Context(), userID)
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Housing fetch failed", "error", err)
		sendJSONError(w, "Failed to retrieve housing", http.StatusInternalServerError)
		return
	}

	properties := res.AvailableProperties
	if properties == nil {
		properties = []models.AvailableProperty{}
	}

	payload := map[string]any{
		"housing":             res.Housing,
		"config":              res.Config,
		"availableProperties": properties,
	}
	if res.Housing != nil {
		payload["monthlyRent"] = processors.MonthlyFromWeekly(res.Housing.WeeklyRent)
	}
	writeJSON(w, payload)
}

// HandleGetPayroll returns payslips and the citizen's employment record.
func (h *CitizenHandler) HandleGetPayroll(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	res, err := h.api.Payroll(r.Context(), userID)
	if err != nil {
		logger.ErrorFromContext(r.Context(), "Payroll fetch failed", "error", err)
		sendJSONError(w, "Failed to retrieve payroll", http.StatusInternalServerError)
		return
	}

	payslips := res.Payslips
	if payslips == nil {
		payslips = []models.Payslip{}
	}

	writeJSON(w, map[string]any{
		"payslips": payslips,
		"job":      res.Job,
	})
}
