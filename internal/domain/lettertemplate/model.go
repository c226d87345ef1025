package lettertemplate

import (
	"time"

	"github.com/google/uuid"
)

// Template kinds. The orchestrator chooses between the single- and
// multi-patient cover letters by how many patients a submission spans.
const (
	KindCoverLetterSingle = "cover_letter_single"
	KindCoverLetterMulti  = "cover_letter_multi"
	KindCoverSheetIntro   = "cover_sheet_intro"
)

// LetterTemplate maps to the letter_template table. Body is markdown with
// {{variable}} placeholders interpolated at render time.
type LetterTemplate struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Kind      string    `db:"kind" json:"kind"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
