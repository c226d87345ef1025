package compose

import (
	"fmt"
	"strings"

	"github.com/superbill/superbill/internal/domain/superbill"
)

// CoverSheet summarizes a grouped submission: aggregate totals plus a
// per-patient grid. Patients appear in first-seen order of the input.
func CoverSheet(superbills []*superbill.Superbill) string {
	type patientSummary struct {
		name   string
		visits int
		amount float64
	}
	var order []string
	byName := map[string]*patientSummary{}
	totalVisits := 0
	var totalAmount float64
	for _, sb := range superbills {
		ps, ok := byName[sb.PatientName]
		if !ok {
			ps = &patientSummary{name: sb.PatientName}
			byName[sb.PatientName] = ps
			order = append(order, sb.PatientName)
		}
		ps.visits += len(sb.Visits)
		ps.amount += superbill.TotalFee(sb.Visits)
		totalVisits += len(sb.Visits)
		totalAmount += superbill.TotalFee(sb.Visits)
	}

	var b strings.Builder
	b.WriteString(`<h1>Submission Cover Sheet</h1>`)
	b.WriteString(`<div class="cover-sheet-summary"><table class="info-grid">`)
	b.WriteString(fmt.Sprintf(`<tr><td class="info-label">Patients</td><td>%d</td></tr>`, len(order)))
	b.WriteString(fmt.Sprintf(`<tr><td class="info-label">Visits</td><td>%d</td></tr>`, totalVisits))
	b.WriteString(`<tr><td class="info-label">Total Charges</td><td>` + money(totalAmount) + `</td></tr>`)
	b.WriteString(`</table></div>`)

	b.WriteString(`<table class="services"><thead><tr><th>Patient</th><th>Visits</th><th class="fee">Amount</th></tr></thead><tbody>`)
	for _, name := range order {
		ps := byName[name]
		b.WriteString(`<tr><td>` + escape(ps.name) + `</td>`)
		b.WriteString(fmt.Sprintf(`<td>%d</td>`, ps.visits))
		b.WriteString(`<td class="fee">` + money(ps.amount) + `</td></tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// CoverSheetDocument wraps the cover sheet in the printable document chrome.
func CoverSheetDocument(superbills []*superbill.Superbill) string {
	return documentHead("Submission Cover Sheet") + CoverSheet(superbills) + documentFoot
}
