// backend/src/economy/errors.go
package economy

import "fmt"

// Resource identifies one of the bot's citizen API resources.
type Resource string

const (
	ResourceCitizen      Resource = "citizen"
	ResourceAccounts     Resource = "accounts"
	ResourceTransactions Resource = "transactions"
	ResourceCredit       Resource = "credit"
	ResourceLoans        Resource = "loans"
	ResourceFines        Resource = "fines"
	ResourceHousing      Resource = "housing"
	ResourcePayroll      Resource = "payroll"
)

// FetchError is the single failure signal surfaced for any upstream problem:
// transport errors, non-2xx statuses, ok=false envelopes and undecodable
// bodies all collapse into it. Status is 0 when no HTTP response was
// received.
type FetchError struct {
	Resource Resource
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("economy: %s fetch failed (status %d): %v", e.Resource, e.Status, e.Err)
	}
	return fmt.Sprintf("economy: %s fetch failed: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
