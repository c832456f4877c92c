// backend/src/models/obligations.go
package models

// Fine statuses observed upstream: "unpaid", "paid".
type Fine struct {
	FineID   string  `json:"fine_id"`
	Amount   float64 `json:"amount"`
	Reason   string  `json:"reason"`
	Status   string  `json:"status"`
	IssuedAt string  `json:"issued_at"`
}

const FineStatusUnpaid = "unpaid"

type Debt struct {
	DebtID         string  `json:"debt_id"`
	Creditor       string  `json:"creditor"`
	OriginalAmount float64 `json:"original_amount"`
	Remaining      float64 `json:"remaining"`
	Reason         string  `json:"reason"`
	DueDate        string  `json:"due_date"`
	Status         string  `json:"status"`
	PaymentPlan    bool    `json:"payment_plan"`
	MonthlyPayment float64 `json:"monthly_payment,omitempty"`
}

type Warrant struct {
	WarrantID  string  `json:"warrant_id"`
	Type       string  `json:"type"`
	Reason     string  `json:"reason"`
	IssuedAt   string  `json:"issued_at"`
	Court      string  `json:"court"`
	BailAmount float64 `json:"bail_amount"`
}
