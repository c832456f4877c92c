// backend/src/processors/metrics_test.go
package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usgrp/citizen-portal/backend/src/models"
)

func TestTotalBalance(t *testing.T) {
	tests := []struct {
		name     string
		accounts []models.Account
		want     float64
	}{
		{
			name:     "empty list is zero",
			accounts: []models.Account{},
			want:     0,
		},
		{
			name: "sums positive balances",
			accounts: []models.Account{
				{Type: "Checking", Balance: 45230},
				{Type: "Savings", Balance: 12500},
			},
			want: 57730,
		},
		{
			name: "negative balances subtract",
			accounts: []models.Account{
				{Type: "Checking", Balance: 1000},
				{Type: "Credit Card", Balance: -250},
			},
			want: 750,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalBalance(tt.accounts))
		})
	}
}

func TestTotalOwed(t *testing.T) {
	fines := []models.Fine{
		{FineID: "FINE-001", Amount: 250, Status: "unpaid"},
		{FineID: "FINE-002", Amount: 50, Status: "paid"},
	}
	debts := []models.Debt{
		{DebtID: "DEBT-001", Remaining: 750},
	}

	// The paid fine must not count.
	assert.Equal(t, float64(1000), TotalOwed(fines, debts))
	assert.Equal(t, float64(0), TotalOwed(nil, nil))
	assert.Equal(t, float64(750), TotalOwed(nil, debts))
}

func TestLoanProgressPercent(t *testing.T) {
	tests := []struct {
		name string
		loan models.Loan
		want int
	}{
		{"untouched loan", models.Loan{Principal: 50000, RemainingBalance: 50000}, 0},
		{"partially repaid", models.Loan{Principal: 50000, RemainingBalance: 42500}, 15},
		{"fully repaid", models.Loan{Principal: 25000, RemainingBalance: 0}, 100},
		{"zero principal is zero, not a crash", models.Loan{Principal: 0, RemainingBalance: 0}, 0},
		{"overpaid clamps to 100", models.Loan{Principal: 1000, RemainingBalance: -50}, 100},
		{"upstream data error clamps to 0", models.Loan{Principal: 1000, RemainingBalance: 2000}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LoanProgressPercent(tt.loan)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestCreditBand(t *testing.T) {
	tests := []struct {
		score     int
		wantBand  string
		wantColor string
	}{
		{720, "Good", "good"},
		{700, "Good", "good"},
		{699, "Fair", "fair"},
		{650, "Fair", "fair"},
		{500, "Fair", "fair"},
		{499, "Poor", "poor"},
		{300, "Poor", "poor"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.wantBand, CreditBand(tt.score), "score %d", tt.score)
		assert.Equal(t, tt.wantColor, CreditBandColor(tt.score), "score %d", tt.score)
	}
}

func TestMonthlyFromWeekly(t *testing.T) {
	// Fixed 4-weeks-per-month convention, not calendar months.
	assert.Equal(t, float64(2200), MonthlyFromWeekly(550))
	assert.Equal(t, float64(0), MonthlyFromWeekly(0))
}

func TestMonthlyPayment(t *testing.T) {
	// Standard amortization: 10000 at 12% APR over 12 months.
	assert.Equal(t, 888, MonthlyPayment(10000, 12, 12))

	// Zero rate degenerates to round(p/n).
	assert.Equal(t, 833, MonthlyPayment(10000, 0, 12))
	assert.Equal(t, 100, MonthlyPayment(1200, 0, 12))

	// Degenerate term.
	assert.Equal(t, 0, MonthlyPayment(10000, 5, 0))
}

func TestCategoryBreakdown(t *testing.T) {
	transactions := []models.Transaction{
		{Amount: -100, Category: "Food"},
		{Amount: -50, Category: "Food"},
		{Amount: -300, Category: "Housing"},
		{Amount: -20, Category: ""},
		{Amount: 5000, Category: "Payroll"}, // income, excluded
		{Amount: -10, Category: "Transportation"},
		{Amount: -5, Category: "Utilities"},
		{Amount: -2, Category: "Shopping"},
		{Amount: -1, Category: "Gambling"},
	}

	breakdown := CategoryBreakdown(transactions)

	// Top five only, descending by total.
	assert.Len(t, breakdown, 5)
	assert.Equal(t, CategoryTotal{Category: "Housing", Total: 300}, breakdown[0])
	assert.Equal(t, CategoryTotal{Category: "Food", Total: 150}, breakdown[1])
	assert.Equal(t, CategoryTotal{Category: "Other", Total: 20}, breakdown[2])
	for i := 1; i < len(breakdown); i++ {
		assert.LessOrEqual(t, breakdown[i].Total, breakdown[i-1].Total)
	}
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	assert.Empty(t, CategoryBreakdown(nil))
	assert.Empty(t, CategoryBreakdown([]models.Transaction{{Amount: 100, Category: "Payroll"}}))
}

func TestTransactionTotals(t *testing.T) {
	transactions := []models.Transaction{
		{Amount: 4290, Description: "Payroll"},
		{Amount: -500, Description: "Transfer"},
		{Amount: -120, Description: "Groceries"},
	}

	assert.Equal(t, float64(4290), TotalIncome(transactions))
	assert.Equal(t, float64(620), TotalExpenses(transactions))
	assert.Equal(t, float64(3670), NetFlow(transactions))

	assert.Equal(t, float64(0), TotalIncome(nil))
	assert.Equal(t, float64(0), TotalExpenses(nil))
	assert.Equal(t, float64(0), NetFlow(nil))
}

func TestTotalLoansOwed(t *testing.T) {
	loans := []models.Loan{
		{RemainingBalance: 42500},
		{RemainingBalance: 18750},
	}
	assert.Equal(t, float64(61250), TotalLoansOwed(loans))
	assert.Equal(t, float64(0), TotalLoansOwed(nil))
}
