// backend/src/models/dashboard.go
package models

// DashboardData is the merged view-model returned to the frontend. Every
// field defaults independently; APIConnected is the single flag the UI uses
// to decide whether to show the "offline demo data" banner.
type DashboardData struct {
	Citizen      *Citizen      `json:"citizen"`
	Accounts     []Account     `json:"accounts"`
	TotalBalance float64       `json:"totalBalance"`
	Transactions []Transaction `json:"transactions"`
	Credit       Credit        `json:"credit"`
	Loans        []Loan        `json:"loans"`
	Fines        []Fine        `json:"fines"`
	Debts        []Debt        `json:"debts"`
	Warrants     []Warrant     `json:"warrants"`
	Housing      *Housing      `json:"housing"`
	APIConnected bool          `json:"apiConnected"`
}

// Fallback credit standing shown when the bot has no credit record for the
// citizen (or the fetch failed).
const (
	DefaultCreditScore = 650
	DefaultCreditBand  = "Fair"
)

// DefaultCredit returns the documented fallback credit record.
func DefaultCredit() Credit {
	return Credit{Score: DefaultCreditScore, Band: DefaultCreditBand}
}

// DefaultDashboard returns the all-default view-model: empty collections,
// fallback credit, nil citizen and housing, not connected. This is the single
// owner of the offline shape; handlers must not build their own fixtures.
func DefaultDashboard() *DashboardData {
	return &DashboardData{
		Citizen:      nil,
		Accounts:     []Account{},
		TotalBalance: 0,
		Transactions: []Transaction{},
		Credit:       DefaultCredit(),
		Loans:        []Loan{},
		Fines:        []Fine{},
		Debts:        []Debt{},
		Warrants:     []Warrant{},
		Housing:      nil,
		APIConnected: false,
	}
}
