package superbill

import "strings"

// PatientStatus is the aggregate submission status resolved from all
// superbills belonging to one patient.
type PatientStatus string

const (
	PatientStatusNone        PatientStatus = "No Superbill"
	PatientStatusDraft       PatientStatus = "Draft"
	PatientStatusMissingInfo PatientStatus = "Missing Info"
	PatientStatusComplete    PatientStatus = "Complete"
)

// DeterminePatientStatus resolves a patient's aggregate status from their
// superbills. Explicit superbill status fields dominate, scanned in input
// order with first-match-wins: in_progress/in_review and draft short-circuit,
// completed only wins when every superbill is completed. The content-based
// inference below is a fallback for malformed or legacy rows whose status is
// outside the known set.
func DeterminePatientStatus(superbills []*Superbill) PatientStatus {
	if len(superbills) == 0 {
		return PatientStatusNone
	}

	allCompleted := true
	for _, sb := range superbills {
		switch sb.Status {
		case StatusInProgress, StatusInReview:
			return PatientStatusMissingInfo
		case StatusDraft:
			return PatientStatusDraft
		case StatusCompleted:
			// does not short-circuit; every superbill must agree
		default:
			allCompleted = false
		}
	}
	if allCompleted {
		return PatientStatusComplete
	}

	if contentComplete(superbills) {
		return PatientStatusComplete
	}
	for _, sb := range superbills {
		for _, v := range sb.Visits {
			if len(v.ICDCodes) == 0 || len(v.CPTCodes) == 0 || v.Fee <= 0 {
				return PatientStatusMissingInfo
			}
		}
	}
	return PatientStatusDraft
}

// contentComplete reports whether every superbill looks finished: a patient
// name, at least one visit, and every visit fully coded with its own status
// unset or completed.
func contentComplete(superbills []*Superbill) bool {
	for _, sb := range superbills {
		if strings.TrimSpace(sb.PatientName) == "" || len(sb.Visits) == 0 {
			return false
		}
		for _, v := range sb.Visits {
			if len(v.ICDCodes) == 0 || len(v.CPTCodes) == 0 {
				return false
			}
			if v.Status != "" && v.Status != "completed" {
				return false
			}
		}
	}
	return true
}
