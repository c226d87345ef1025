package lettertemplate

// Built-in fallback templates used when the clinic has not saved its own.

const defaultCoverLetterSingle = `{{date}}

To Whom It May Concern,

Enclosed please find a superbill for **{{patient_name}}** covering services
provided at {{clinic_name}}. The total amount charged for the enclosed
visits is {{total_amount}}.

Please process this claim for out-of-network reimbursement. If any further
documentation is required, contact our office.

Sincerely,

{{provider_name}}
{{clinic_name}}
`

const defaultCoverLetterMulti = `{{date}}

To Whom It May Concern,

Enclosed please find superbills for {{patient_count}} patients covering
services provided at {{clinic_name}}. A cover sheet summarizing each
patient's visits and charges follows this letter.

Please process these claims for out-of-network reimbursement. If any further
documentation is required, contact our office.

Sincerely,

{{provider_name}}
{{clinic_name}}
`

var defaultBodies = map[string]string{
	KindCoverLetterSingle: defaultCoverLetterSingle,
	KindCoverLetterMulti:  defaultCoverLetterMulti,
}

// DefaultBody returns the built-in template body for a kind, or the empty
// string when the kind has no default.
func DefaultBody(kind string) string {
	return defaultBodies[kind]
}
