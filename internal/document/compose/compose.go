// Package compose renders superbills and their companion documents into
// self-contained HTML fragments suitable for on-screen print preview and
// off-screen rasterization. Composition never mutates its inputs and
// preserves the order of visits and line entries.
package compose

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/superbill/superbill/internal/domain/superbill"
)

const dateLayout = "01/02/2006"

func escape(s string) string { return html.EscapeString(s) }

func money(v float64) string { return fmt.Sprintf("$%.2f", v) }

// FormatDate renders a date as MM/DD/YYYY.
func FormatDate(t time.Time) string { return t.Format(dateLayout) }

// FormatDOB parses and re-renders a date-of-birth string. Parse failures
// render as an explicit "Invalid date" rather than propagating garbage into
// the document.
func FormatDOB(dob string) string {
	if strings.TrimSpace(dob) == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, dob); err == nil {
			return t.Format(dateLayout)
		}
	}
	return "Invalid date"
}

// PatientInfoSection renders name, DOB and issue date. The Visit Period line
// appears only when visitDates is non-empty.
func PatientInfoSection(sb *superbill.Superbill, visitDates []time.Time) string {
	var b strings.Builder
	b.WriteString(`<h2>Patient Information</h2><table class="info-grid">`)
	b.WriteString(`<tr><td class="info-label">Name</td><td>` + escape(sb.PatientName) + `</td></tr>`)
	b.WriteString(`<tr><td class="info-label">Date of Birth</td><td>` + escape(FormatDOB(sb.PatientDOB)) + `</td></tr>`)
	b.WriteString(`<tr><td class="info-label">Issue Date</td><td>` + FormatDate(sb.IssueDate) + `</td></tr>`)
	if len(visitDates) > 0 {
		min, max := visitDates[0], visitDates[0]
		for _, d := range visitDates[1:] {
			if d.Before(min) {
				min = d
			}
			if d.After(max) {
				max = d
			}
		}
		b.WriteString(`<tr><td class="info-label">Visit Period</td><td>` + FormatDate(min) + ` to ` + FormatDate(max) + `</td></tr>`)
	}
	b.WriteString(`</table>`)
	return b.String()
}

// ProviderInfoSection renders the clinic and provider identity block.
// Missing fields render as empty cells rather than being omitted.
func ProviderInfoSection(sb *superbill.Superbill) string {
	var b strings.Builder
	b.WriteString(`<h2>Provider Information</h2><table class="info-grid">`)
	rows := []struct{ label, value string }{
		{"Clinic", sb.ClinicName},
		{"Address", sb.ClinicAddress},
		{"Phone", sb.ClinicPhone},
		{"Email", sb.ClinicEmail},
		{"EIN", sb.EIN},
		{"NPI", sb.NPI},
		{"Provider", sb.ProviderName},
	}
	for _, row := range rows {
		b.WriteString(`<tr><td class="info-label">` + row.label + `</td><td>` + escape(row.value) + `</td></tr>`)
	}
	b.WriteString(`</table>`)
	return b.String()
}

// serviceLine is one rendered row of the services table.
type serviceLine struct {
	code        string
	description string
	fee         float64
}

// visitLines expands a visit into its service rows. Itemized entries take
// precedence; the legacy flat code list divides the visit fee evenly.
func visitLines(v superbill.Visit) []serviceLine {
	if len(v.CPTCodeEntries) > 0 {
		lines := make([]serviceLine, 0, len(v.CPTCodeEntries))
		for _, e := range v.CPTCodeEntries {
			desc := e.Description
			if desc == "" {
				desc = DescribeCPT(e.Code)
			}
			lines = append(lines, serviceLine{code: e.Code, description: desc, fee: e.Fee})
		}
		return lines
	}
	if len(v.CPTCodes) > 0 {
		perCode := v.Fee / float64(len(v.CPTCodes))
		lines := make([]serviceLine, 0, len(v.CPTCodes))
		for _, code := range v.CPTCodes {
			lines = append(lines, serviceLine{code: code, description: DescribeCPT(code), fee: perCode})
		}
		return lines
	}
	return nil
}

// ServicesTable renders one row per CPT line item, a subtotal row per visit
// group and a final grand total. Date and ICD-10 cells span all rows of a
// visit via rowspan and appear once per group.
func ServicesTable(sb *superbill.Superbill) string {
	var b strings.Builder
	b.WriteString(`<h2>Services</h2><table class="services"><thead><tr>`)
	b.WriteString(`<th>Date</th><th>ICD-10</th><th>CPT</th><th>Description</th><th class="fee">Fee</th>`)
	b.WriteString(`</tr></thead><tbody>`)

	var grandTotal float64
	for _, v := range sb.Visits {
		lines := visitLines(v)
		if len(lines) == 0 {
			continue
		}
		var subtotal float64
		for i, line := range lines {
			b.WriteString(`<tr>`)
			if i == 0 {
				span := fmt.Sprintf("%d", len(lines))
				b.WriteString(`<td rowspan="` + span + `">` + FormatDate(v.Date) + `</td>`)
				b.WriteString(`<td rowspan="` + span + `">` + escape(strings.Join(v.ICDCodes, ", ")) + `</td>`)
			}
			b.WriteString(`<td>` + escape(line.code) + `</td>`)
			b.WriteString(`<td>` + escape(line.description) + `</td>`)
			b.WriteString(`<td class="fee">` + money(line.fee) + `</td>`)
			b.WriteString(`</tr>`)
			subtotal += line.fee
		}
		b.WriteString(`<tr class="visit-subtotal"><td colspan="4">Visit Subtotal</td><td class="fee">` + money(subtotal) + `</td></tr>`)
		grandTotal += subtotal
	}
	b.WriteString(`<tr class="grand-total"><td colspan="4">Grand Total</td><td class="fee">` + money(grandTotal) + `</td></tr>`)
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// NotesSection concatenates, per visit with content, a date header plus main
// complaints and free-text notes. A placeholder renders when no visit has
// any notes.
func NotesSection(sb *superbill.Superbill) string {
	var b strings.Builder
	b.WriteString(`<h2>Notes</h2>`)
	any := false
	for _, v := range sb.Visits {
		if !v.HasNotes() {
			continue
		}
		any = true
		b.WriteString(`<div class="notes-visit"><p class="notes-date">` + FormatDate(v.Date) + `</p>`)
		for _, complaint := range v.MainComplaints {
			b.WriteString(`<p>Complaint: ` + escape(complaint) + `</p>`)
		}
		if v.Notes != "" {
			b.WriteString(`<p>` + escape(v.Notes) + `</p>`)
		}
		b.WriteString(`</div>`)
	}
	if !any {
		b.WriteString(`<p class="notes-empty">No notes</p>`)
	}
	return b.String()
}

// Footer returns the fixed superbill disclaimer.
func Footer() string {
	return `<div class="footer">This is a superbill provided for insurance reimbursement purposes. ` +
		`It is not a bill; payment has already been collected for the services listed. ` +
		`Please submit this document directly to your insurance company.</div>`
}

// SuperbillBody renders all superbill sections without the document chrome.
func SuperbillBody(sb *superbill.Superbill) string {
	var b strings.Builder
	b.WriteString(`<div class="document-header"><div><div class="document-title">SUPERBILL</div></div></div>`)
	b.WriteString(PatientInfoSection(sb, superbill.VisitDates(sb.Visits)))
	b.WriteString(ProviderInfoSection(sb))
	b.WriteString(ServicesTable(sb))
	b.WriteString(NotesSection(sb))
	b.WriteString(Footer())
	return b.String()
}

// Document composes the complete printable superbill.
func Document(sb *superbill.Superbill) string {
	return documentHead("Superbill - "+sb.PatientName) + SuperbillBody(sb) + documentFoot
}

// MultiDocument joins body fragments into one printable HTML document with
// an explicit page break between each top-level document. The browser's
// native print CSS handles pagination on this path; no rasterization runs.
func MultiDocument(title string, bodies []string) string {
	var b strings.Builder
	b.WriteString(documentHead(title))
	for i, body := range bodies {
		if i > 0 {
			b.WriteString(`<div class="page-break"></div>`)
		}
		b.WriteString(body)
	}
	b.WriteString(documentFoot)
	return b.String()
}

// CoverLetterDocument wraps already-rendered cover letter HTML in the
// printable document chrome.
func CoverLetterDocument(bodyHTML string) string {
	return documentHead("Cover Letter") + `<div class="cover-letter">` + bodyHTML + `</div>` + documentFoot
}

// Fragment wraps a body fragment in the document chrome. Used by the print
// path to assemble multi-document HTML with explicit page breaks.
func Fragment(title, bodyHTML string) string {
	return documentHead(title) + bodyHTML + documentFoot
}
