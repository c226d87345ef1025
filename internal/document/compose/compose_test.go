package compose

import (
	"strings"
	"testing"
	"time"

	"github.com/superbill/superbill/internal/domain/superbill"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func janeDoe() *superbill.Superbill {
	return &superbill.Superbill{
		PatientName: "Jane Doe",
		PatientDOB:  "1985-01-01",
		IssueDate:   date(2024, time.March, 1),
		ClinicName:  "Lakeside Physical Therapy",
		NPI:         "1234567890",
		Visits: []superbill.Visit{
			{
				Date:     date(2024, time.January, 10),
				ICDCodes: []string{"M54.5"},
				CPTCodes: []string{"99213"},
				Fee:      100,
			},
			{
				Date:     date(2024, time.February, 10),
				ICDCodes: []string{"M54.5"},
				CPTCodes: []string{"99213"},
				Fee:      120,
			},
		},
	}
}

func TestPatientInfoVisitPeriod(t *testing.T) {
	sb := janeDoe()
	html := PatientInfoSection(sb, superbill.VisitDates(sb.Visits))
	if !strings.Contains(html, "01/10/2024 to 02/10/2024") {
		t.Errorf("expected visit period line, got: %s", html)
	}
}

func TestPatientInfoNoVisitPeriodWhenEmpty(t *testing.T) {
	sb := janeDoe()
	sb.Visits = nil
	html := PatientInfoSection(sb, nil)
	if strings.Contains(html, "Visit Period") {
		t.Error("visit period must be omitted for empty visit dates")
	}
}

func TestFormatDOBInvalid(t *testing.T) {
	if got := FormatDOB("not-a-date"); got != "Invalid date" {
		t.Errorf("expected Invalid date, got %q", got)
	}
	if got := FormatDOB("1985-01-01"); got != "01/01/1985" {
		t.Errorf("expected 01/01/1985, got %q", got)
	}
}

func TestProviderInfoRendersBlanks(t *testing.T) {
	sb := janeDoe()
	sb.ClinicPhone = ""
	html := ProviderInfoSection(sb)
	if !strings.Contains(html, "Phone") {
		t.Error("missing fields must still render their label")
	}
	if !strings.Contains(html, "1234567890") {
		t.Error("expected NPI in provider block")
	}
}

func TestServicesTableLegacyFeeDivision(t *testing.T) {
	sb := &superbill.Superbill{
		PatientName: "Jane Doe",
		Visits: []superbill.Visit{{
			Date:     date(2024, time.January, 10),
			ICDCodes: []string{"M54.5"},
			CPTCodes: []string{"99213", "97110", "97140"},
			Fee:      150,
		}},
	}
	html := ServicesTable(sb)
	if got := strings.Count(html, "$50.00"); got != 3 {
		t.Errorf("expected three $50.00 rows, got %d in: %s", got, html)
	}
	if !strings.Contains(html, `Visit Subtotal</td><td class="fee">$150.00`) {
		t.Errorf("expected visit subtotal of $150.00, got: %s", html)
	}
	// date and ICD cells span the whole visit group
	if !strings.Contains(html, `rowspan="3"`) {
		t.Error("expected rowspan across the visit group")
	}
	if got := strings.Count(html, "01/10/2024"); got != 1 {
		t.Errorf("expected the visit date to appear once, got %d", got)
	}
}

func TestServicesTableEntriesTakePrecedence(t *testing.T) {
	sb := &superbill.Superbill{
		PatientName: "Jane Doe",
		Visits: []superbill.Visit{{
			Date:     date(2024, time.January, 10),
			ICDCodes: []string{"M54.5"},
			CPTCodes: []string{"99213"},
			Fee:      999, // ignored when entries are present
			CPTCodeEntries: []superbill.CPTEntry{
				{Code: "97110", Fee: 80},
				{Code: "XX999", Fee: 70},
			},
		}},
	}
	html := ServicesTable(sb)
	if !strings.Contains(html, "Therapeutic exercise") {
		t.Error("expected CPT description lookup for known code")
	}
	if !strings.Contains(html, "Service rendered") {
		t.Error("expected generic description for unknown code")
	}
	if !strings.Contains(html, `Visit Subtotal</td><td class="fee">$150.00`) {
		t.Errorf("expected entry-based subtotal of $150.00, got: %s", html)
	}
	if strings.Contains(html, "$999.00") {
		t.Error("flat fee must not leak into an itemized visit")
	}
}

func TestServicesTableGrandTotal(t *testing.T) {
	html := ServicesTable(janeDoe())
	if !strings.Contains(html, `Grand Total</td><td class="fee">$220.00`) {
		t.Errorf("expected grand total of $220.00, got: %s", html)
	}
}

func TestNotesPlaceholder(t *testing.T) {
	sb := janeDoe()
	html := NotesSection(sb)
	if !strings.Contains(html, "No notes") {
		t.Error("expected No notes placeholder")
	}
	if strings.Contains(html, "notes-date") {
		t.Error("expected no visit date headers without notes")
	}
}

func TestNotesPerVisit(t *testing.T) {
	sb := janeDoe()
	sb.Visits[0].MainComplaints = []string{"Lower back pain"}
	sb.Visits[1].Notes = "Improving range of motion."
	html := NotesSection(sb)
	if !strings.Contains(html, "Lower back pain") || !strings.Contains(html, "Improving range of motion.") {
		t.Errorf("expected complaints and notes rendered: %s", html)
	}
	if strings.Contains(html, "No notes") {
		t.Error("placeholder must not render when notes exist")
	}
	if !strings.Contains(html, "01/10/2024") || !strings.Contains(html, "02/10/2024") {
		t.Error("expected a date header per visit with content")
	}
}

func TestDocumentEscapesValues(t *testing.T) {
	sb := janeDoe()
	sb.PatientName = `Jane <script>alert("x")</script>`
	html := Document(sb)
	if strings.Contains(html, "<script>") {
		t.Error("patient-supplied values must be escaped")
	}
}

func TestDocumentContainsAllSections(t *testing.T) {
	html := Document(janeDoe())
	for _, want := range []string{"SUPERBILL", "Patient Information", "Provider Information", "Services", "Notes", "not a bill"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected document to contain %q", want)
		}
	}
}

func TestCoverSheetAggregates(t *testing.T) {
	a := janeDoe()
	b := janeDoe()
	b.PatientName = "John Roe"
	b.Visits = b.Visits[:1]
	html := CoverSheet([]*superbill.Superbill{a, b})
	if !strings.Contains(html, ">3<") {
		t.Errorf("expected 3 total visits, got: %s", html)
	}
	if !strings.Contains(html, "$320.00") {
		t.Errorf("expected total charges $320.00, got: %s", html)
	}
	if !strings.Contains(html, "Jane Doe") || !strings.Contains(html, "John Roe") {
		t.Error("expected a per-patient summary row for each patient")
	}
}
