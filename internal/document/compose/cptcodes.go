package compose

// cptDescriptions is the static CPT code lookup consulted by the services
// table. Unknown codes degrade to a generic description rather than erroring.
var cptDescriptions = map[string]string{
	"99202": "Office visit, new patient, straightforward",
	"99203": "Office visit, new patient, low complexity",
	"99204": "Office visit, new patient, moderate complexity",
	"99205": "Office visit, new patient, high complexity",
	"99211": "Office visit, established patient, minimal",
	"99212": "Office visit, established patient, straightforward",
	"99213": "Office visit, established patient, low complexity",
	"99214": "Office visit, established patient, moderate complexity",
	"99215": "Office visit, established patient, high complexity",
	"97110": "Therapeutic exercise",
	"97112": "Neuromuscular re-education",
	"97116": "Gait training",
	"97140": "Manual therapy techniques",
	"97150": "Group therapeutic procedures",
	"97530": "Therapeutic activities",
	"97535": "Self-care/home management training",
	"97010": "Hot or cold pack application",
	"97014": "Electrical stimulation, unattended",
	"97035": "Ultrasound therapy",
	"98940": "Chiropractic manipulative treatment, 1-2 regions",
	"98941": "Chiropractic manipulative treatment, 3-4 regions",
	"98943": "Chiropractic manipulative treatment, extraspinal",
	"90791": "Psychiatric diagnostic evaluation",
	"90832": "Psychotherapy, 30 minutes",
	"90834": "Psychotherapy, 45 minutes",
	"90837": "Psychotherapy, 60 minutes",
	"90846": "Family psychotherapy without patient",
	"90847": "Family psychotherapy with patient",
	"20560": "Needle insertion, 1-2 muscles",
	"20561": "Needle insertion, 3 or more muscles",
}

// defaultCPTDescription is used when a code is not in the lookup table.
const defaultCPTDescription = "Service rendered"

// DescribeCPT returns the description for a CPT code, falling back to a
// generic label for unknown codes.
func DescribeCPT(code string) string {
	if desc, ok := cptDescriptions[code]; ok {
		return desc
	}
	return defaultCPTDescription
}
