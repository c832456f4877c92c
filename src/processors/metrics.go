// backend/src/processors/metrics.go
package processors

import (
	"math"
	"sort"

	"github.com/usgrp/citizen-portal/backend/src/models"
)

// Pure derived metrics over already-fetched view-model data. Nothing in this
// package performs I/O; every function is safe to call on partial data.

// TotalBalance sums account balances. Negative balances (credit-card style
// accounts) subtract.
func TotalBalance(accounts []models.Account) float64 {
	var total float64
	for _, a := range accounts {
		total += a.Balance
	}
	return total
}

// TotalOwed is the sum of unpaid fine amounts plus remaining debt balances.
// Paid fines do not count.
func TotalOwed(fines []models.Fine, debts []models.Debt) float64 {
	var total float64
	for _, f := range fines {
		if f.Status == models.FineStatusUnpaid {
			total += f.Amount
		}
	}
	for _, d := range debts {
		total += d.Remaining
	}
	return total
}

// TotalLoansOwed sums the remaining balances of all loans.
func TotalLoansOwed(loans []models.Loan) float64 {
	var total float64
	for _, l := range loans {
		total += l.RemainingBalance
	}
	return total
}

// LoanProgressPercent reports how much of the principal has been repaid,
// rounded and clamped to [0, 100]. A zero principal is an upstream data error
// displayed as 0% rather than a division by zero.
func LoanProgressPercent(loan models.Loan) int {
	if loan.Principal == 0 {
		return 0
	}
	progress := int(math.Round(100 * (loan.Principal - loan.RemainingBalance) / loan.Principal))
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// Credit score bands. The canonical mapping used everywhere a score is shown:
// 700 and up is good, 500-699 fair, below 500 poor.
const (
	creditGoodThreshold = 700
	creditFairThreshold = 500
)

func CreditBand(score int) string {
	switch {
	case score >= creditGoodThreshold:
		return "Good"
	case score >= creditFairThreshold:
		return "Fair"
	default:
		return "Poor"
	}
}

// CreditBandColor maps a score to the frontend's semantic color token.
func CreditBandColor(score int) string {
	switch {
	case score >= creditGoodThreshold:
		return "good"
	case score >= creditFairThreshold:
		return "fair"
	default:
		return "poor"
	}
}

// MonthlyFromWeekly converts a weekly amount to a monthly one using the
// portal's fixed 4-weeks-per-month convention (not calendar months).
func MonthlyFromWeekly(amount float64) float64 {
	return amount * 4
}

// MonthlyPayment is the standard fixed-rate amortized payment for a loan of
// principal p at annualRate APR percent over n periods, rounded to the
// nearest whole currency unit. A zero rate degenerates to p/n.
func MonthlyPayment(principal float64, annualRate float64, periods int) int {
	if periods <= 0 {
		return 0
	}
	r := annualRate / 100 / 12
	if r == 0 {
		return int(math.Round(principal / float64(periods)))
	}
	factor := math.Pow(1+r, float64(periods))
	return int(math.Round(principal * r * factor / (factor - 1)))
}

// CategoryTotal is one row of a spending breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// topCategories is how many rows a spending breakdown keeps.
const topCategories = 5

// CategoryBreakdown groups outflow transactions by category, sums absolute
// amounts, and returns the top spending categories in descending order.
// Uncategorized transactions fall under "Other".
func CategoryBreakdown(transactions []models.Transaction) []CategoryTotal {
	totals := make(map[string]float64)
	for _, tx := range transactions {
		if tx.Amount >= 0 {
			continue
		}
		cat := tx.Category
		if cat == "" {
			cat = "Other"
		}
		totals[cat] += math.Abs(tx.Amount)
	}

	breakdown := make([]CategoryTotal, 0, len(totals))
	for cat, total := range totals {
		breakdown = append(breakdown, CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Total != breakdown[j].Total {
			return breakdown[i].Total > breakdown[j].Total
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	if len(breakdown) > topCategories {
		breakdown = breakdown[:topCategories]
	}
	return breakdown
}

// TotalIncome sums positive transaction amounts.
func TotalIncome(transactions []models.Transaction) float64 {
	var total float64
	for _, tx := range transactions {
		if tx.Amount > 0 {
			total += tx.Amount
		}
	}
	return total
}

// TotalExpenses sums outflows and reports them as a positive number.
func TotalExpenses(transactions []models.Transaction) float64 {
	var total float64
	for _, tx := range transactions {
		if tx.Amount < 0 {
			total += tx.Amount
		}
	}
	return math.Abs(total)
}

// NetFlow is income minus expenses over the same set of transactions.
func NetFlow(transactions []models.Transaction) float64 {
	return TotalIncome(transactions) - TotalExpenses(transactions)
}
