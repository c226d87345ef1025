package superbill

import (
	"time"

	"github.com/google/uuid"
)

// Superbill statuses. The status field is the single source of truth for
// submission-readiness and overrides any content-based inference.
const (
	StatusDraft      = "draft"
	StatusInProgress = "in_progress"
	StatusInReview   = "in_review"
	StatusCompleted  = "completed"
)

// Visit lifecycle statuses, mutated only by the owning superbill flow.
const (
	VisitStatusDraft    = "draft"
	VisitStatusUnbilled = "unbilled"
	VisitStatusBilled   = "billed"
	VisitStatusIncluded = "included_in_superbill"
)

// CPTEntry is one itemized procedure line on a visit. When a visit carries
// entries they take precedence over the legacy flat cpt_codes list for
// per-line fee math.
type CPTEntry struct {
	Code        string  `json:"code"`
	Description string  `json:"description,omitempty"`
	Fee         float64 `json:"fee"`
}

// Visit is one clinical encounter. Visits are owned by exactly one superbill
// and stored embedded in the superbill row.
type Visit struct {
	ID             string     `json:"id"`
	Date           time.Time  `json:"date"`
	ICDCodes       []string   `json:"icd_codes"`
	CPTCodes       []string   `json:"cpt_codes"`
	CPTCodeEntries []CPTEntry `json:"cpt_code_entries,omitempty"`
	Fee            float64    `json:"fee"`
	MainComplaints []string   `json:"main_complaints,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	Status         string     `json:"status,omitempty"`
}

// HasNotes reports whether the visit carries any free-text content for the
// notes section of a generated document.
func (v *Visit) HasNotes() bool {
	return v.Notes != "" || len(v.MainComplaints) > 0
}

// Superbill maps to the superbill table. Clinic and provider fields are
// snapshotted from the clinic defaults at creation and never re-derived.
type Superbill struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PatientName   string    `db:"patient_name" json:"patient_name"`
	PatientDOB    string    `db:"patient_dob" json:"patient_dob"`
	IssueDate     time.Time `db:"issue_date" json:"issue_date"`
	ClinicName    string    `db:"clinic_name" json:"clinic_name"`
	ClinicAddress string    `db:"clinic_address" json:"clinic_address"`
	ClinicPhone   string    `db:"clinic_phone" json:"clinic_phone"`
	ClinicEmail   string    `db:"clinic_email" json:"clinic_email"`
	EIN           string    `db:"ein" json:"ein"`
	NPI           string    `db:"npi" json:"npi"`
	ProviderName  string    `db:"provider_name" json:"provider_name"`
	Visits        []Visit   `db:"visits" json:"visits"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
