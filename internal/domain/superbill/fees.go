package superbill

import "time"

// TotalFee sums the flat fee of each visit. A zero-valued fee contributes
// nothing; the empty sequence yields exactly 0.
func TotalFee(visits []Visit) float64 {
	var total float64
	for _, v := range visits {
		total += v.Fee
	}
	return total
}

// VisitSubtotal returns the itemized sum of a visit's CPT entries when
// present, otherwise the visit's flat fee.
func VisitSubtotal(v Visit) float64 {
	if len(v.CPTCodeEntries) == 0 {
		return v.Fee
	}
	var total float64
	for _, e := range v.CPTCodeEntries {
		total += e.Fee
	}
	return total
}

// EarliestVisitDate returns the minimum visit date, or nil for an empty
// sequence. Callers must handle the nil case explicitly.
func EarliestVisitDate(visits []Visit) *time.Time {
	var earliest *time.Time
	for i := range visits {
		d := visits[i].Date
		if earliest == nil || d.Before(*earliest) {
			earliest = &d
		}
	}
	return earliest
}

// LatestVisitDate returns the maximum visit date, or nil for an empty
// sequence.
func LatestVisitDate(visits []Visit) *time.Time {
	var latest *time.Time
	for i := range visits {
		d := visits[i].Date
		if latest == nil || d.After(*latest) {
			latest = &d
		}
	}
	return latest
}

// VisitDates returns each visit's date in input order.
func VisitDates(visits []Visit) []time.Time {
	dates := make([]time.Time, 0, len(visits))
	for _, v := range visits {
		dates = append(dates, v.Date)
	}
	return dates
}
