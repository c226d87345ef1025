package compose

// Style generation is plain string concatenation: the output is static
// markup for print and rasterization, not interactive UI.

func baseStyles() string {
	return `
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #1a1a1a; background: #ffffff; margin: 0; padding: 24px; }
h1 { font-size: 20px; margin: 0 0 4px 0; }
h2 { font-size: 14px; margin: 16px 0 6px 0; border-bottom: 1px solid #d0d0d0; padding-bottom: 2px; }
p { margin: 2px 0; }
`
}

func componentStyles() string {
	return `
.document-header { display: flex; justify-content: space-between; align-items: flex-start; margin-bottom: 12px; }
.document-title { font-size: 22px; font-weight: bold; letter-spacing: 1px; }
.info-grid { width: 100%; }
.info-grid td { padding: 1px 12px 1px 0; vertical-align: top; }
.info-label { font-weight: bold; }
table.services { width: 100%; border-collapse: collapse; margin-top: 8px; }
table.services th, table.services td { border: 1px solid #b5b5b5; padding: 4px 6px; text-align: left; vertical-align: top; }
table.services th { background: #f0f0f0; }
table.services td.fee, table.services th.fee { text-align: right; white-space: nowrap; }
tr.visit-subtotal td { background: #fafafa; font-weight: bold; }
tr.grand-total td { background: #e8e8e8; font-weight: bold; }
.notes-visit { margin-bottom: 8px; }
.notes-date { font-weight: bold; }
.notes-empty { font-style: italic; color: #666666; }
.cover-letter { line-height: 1.5; }
.cover-sheet-summary { margin: 12px 0; }
.footer { margin-top: 24px; padding-top: 8px; border-top: 1px solid #d0d0d0; font-size: 10px; color: #555555; }
.page-break { page-break-before: always; break-before: page; }
`
}

func printStyles() string {
	return `
@media print {
  body { padding: 0; }
  .page-break { page-break-before: always; }
  table.services tr { page-break-inside: avoid; }
}
@page { size: A4; margin: 10mm; }
`
}

// documentHead wraps the style generators into a printable <head> block.
func documentHead(title string) string {
	return `<!doctype html><html><head><meta charset="utf-8"><title>` + escape(title) + `</title><style>` +
		baseStyles() + componentStyles() + printStyles() +
		`</style></head><body>`
}

const documentFoot = `</body></html>`
