// backend/src/models/banking.go
package models

import "encoding/json"

// Account is one bank account row as returned by the bot. Order within a
// response is upstream-defined and preserved as-is.
type Account struct {
	Type    string  `json:"type"`
	Number  string  `json:"number"`
	Balance float64 `json:"balance"`
	Icon    string  `json:"icon"`
}

// Card payloads are passed through untouched; the bot owns their schema and
// the frontend renders whatever it gets.
type Card = json.RawMessage

// Transaction is immutable once observed. Amount is signed: positive is an
// inflow, negative an outflow.
type Transaction struct {
	TransactionID string  `json:"transaction_id"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
	CreatedAt     string  `json:"created_at"`
	Category      string  `json:"category,omitempty"`
	Account       string  `json:"account,omitempty"`
}

// Loan is a read projection; 0 <= RemainingBalance <= Principal is an
// upstream contract that this layer displays but does not enforce.
type Loan struct {
	LoanID           string  `json:"loan_id"`
	LoanType         string  `json:"loan_type"`
	Principal        float64 `json:"principal"`
	RemainingBalance float64 `json:"remaining_balance"`
	APR              float64 `json:"apr,omitempty"`
	WeeklyPayment    float64 `json:"weekly_payment"`
	Status           string  `json:"status"`
	PaymentsMade     int     `json:"payments,omitempty"`
	TermLength       int     `json:"term,omitempty"`
}
