// Package patient manages the patient roster and the derived billing
// summary shown on the superbill dashboard.
package patient

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	DOB       string    `json:"dob" db:"dob"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Address   string    `json:"address" db:"address"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Summary is a patient row joined with a rollup of their superbills. The
// rollup fields are derived per request, never stored.
type Summary struct {
	Patient
	SuperbillCount int        `json:"superbill_count"`
	TotalVisits    int        `json:"total_visits"`
	TotalAmount    float64    `json:"total_amount"`
	FirstVisitDate *time.Time `json:"first_visit_date,omitempty"`
	LastVisitDate  *time.Time `json:"last_visit_date,omitempty"`
	BillingStatus  string     `json:"billing_status"`
}
