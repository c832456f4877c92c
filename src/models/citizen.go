// backend/src/models/citizen.go
package models

// Citizen is the profile record owned by the CO-Economy-Bot. Its presence in
// an upstream response is what decides whether the portal considers itself
// connected to the live economy.
type Citizen struct {
	CitizenID    string       `json:"citizenId"`
	UserID       string       `json:"userId"`
	Name         string       `json:"name"`
	Balance      float64      `json:"balance"`
	BankAccounts BankAccounts `json:"bankAccounts"`
	CreditScore  int          `json:"creditScore"`
	Status       string       `json:"status"`
}

type BankAccounts struct {
	Checking AccountBalance `json:"checking"`
	Savings  AccountBalance `json:"savings"`
}

type AccountBalance struct {
	Balance float64 `json:"balance"`
}

// Credit is the citizen's credit standing as reported upstream.
type Credit struct {
	Score   int            `json:"score"`
	Band    string         `json:"band"`
	Factors []CreditFactor `json:"factors,omitempty"`
}

// CreditFactor impact is one of "positive", "neutral" or "negative".
type CreditFactor struct {
	Name   string `json:"name"`
	Impact string `json:"impact"`
	Detail string `json:"detail"`
}
