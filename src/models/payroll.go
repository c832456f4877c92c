// backend/src/models/payroll.go
package models

// Payslip is one issued pay statement.
type Payslip struct {
	PayslipID string  `json:"id"`
	Period    string  `json:"period"`
	IssueDate string  `json:"issueDate"`
	Gross     float64 `json:"gross"`
	Tax       float64 `json:"tax"`
	Net       float64 `json:"net"`
}

// Job is the citizen's current government employment record.
type Job struct {
	Position   string  `json:"position"`
	Department string  `json:"department"`
	PayGrade   string  `json:"payGrade"`
	Salary     float64 `json:"salary"`
	StartDate  string  `json:"startDate"`
	Status     string  `json:"status"`
}
