// Package bundle orchestrates document generation: it feeds composed HTML
// through the rasterizer and PDF assembler, one document at a time, and
// combines multiple patients' superbills into a single submission package.
package bundle

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/superbill/superbill/internal/document/compose"
	"github.com/superbill/superbill/internal/document/pdfpage"
	"github.com/superbill/superbill/internal/document/raster"
	"github.com/superbill/superbill/internal/domain/superbill"
)

// Result is a finished PDF plus its download name.
type Result struct {
	PDF      []byte
	Filename string
}

// GroupOptions selects the summary documents prepended to a grouped
// submission. CoverLetterHTML is the already-rendered letter body; empty
// means no cover letter.
type GroupOptions struct {
	CoverLetterHTML   string
	IncludeCoverSheet bool
}

type Generator struct {
	renderer raster.Renderer
	logger   zerolog.Logger
	now      func() time.Time
}

func NewGenerator(renderer raster.Renderer, logger zerolog.Logger) *Generator {
	return &Generator{renderer: renderer, logger: logger, now: time.Now}
}

// SuperbillPDF generates the PDF for one superbill, with an optional cover
// letter paginated fully before the superbill begins on a fresh page.
func (g *Generator) SuperbillPDF(ctx context.Context, sb *superbill.Superbill, coverLetterHTML string) (*Result, error) {
	var docs []string
	if coverLetterHTML != "" {
		docs = append(docs, compose.CoverLetterDocument(coverLetterHTML))
	}
	docs = append(docs, compose.Document(sb))

	pdf, err := g.assemble(ctx, docs)
	if err != nil {
		return nil, err
	}
	return &Result{PDF: pdf, Filename: pdfpage.Filename(sb.PatientName, sb.IssueDate)}, nil
}

// GroupedSubmission bundles multiple patients' superbills with optional
// cover letter and cover sheet, in the order: cover letter, cover sheet,
// then each superbill in selection order.
func (g *Generator) GroupedSubmission(ctx context.Context, superbills []*superbill.Superbill, opts GroupOptions) (*Result, error) {
	if len(superbills) == 0 {
		return nil, fmt.Errorf("no superbills selected")
	}

	var docs []string
	if opts.CoverLetterHTML != "" {
		docs = append(docs, compose.CoverLetterDocument(opts.CoverLetterHTML))
	}
	if opts.IncludeCoverSheet {
		docs = append(docs, compose.CoverSheetDocument(superbills))
	}
	for _, sb := range superbills {
		docs = append(docs, compose.Document(sb))
	}

	pdf, err := g.assemble(ctx, docs)
	if err != nil {
		return nil, err
	}
	return &Result{PDF: pdf, Filename: pdfpage.GroupFilename(g.now())}, nil
}

// GroupedSubmissionHTML is the print path: the concatenated documents with
// page-break markers, paginated by the browser's print CSS instead of the
// rasterizer.
func (g *Generator) GroupedSubmissionHTML(superbills []*superbill.Superbill, opts GroupOptions) string {
	var bodies []string
	if opts.CoverLetterHTML != "" {
		bodies = append(bodies, `<div class="cover-letter">`+opts.CoverLetterHTML+`</div>`)
	}
	if opts.IncludeCoverSheet {
		bodies = append(bodies, compose.CoverSheet(superbills))
	}
	for _, sb := range superbills {
		bodies = append(bodies, compose.SuperbillBody(sb))
	}
	return compose.MultiDocument("Grouped Submission", bodies)
}

// assemble rasterizes each document sequentially and paginates the canvases
// in production order. Rasterization is the dominant suspension point; the
// render surface is single-owner, so one canvas completes before the next
// is requested.
func (g *Generator) assemble(ctx context.Context, docs []string) ([]byte, error) {
	asm := pdfpage.NewAssembler()
	for i, html := range docs {
		bm, err := g.renderer.RenderHTML(ctx, html)
		if err != nil {
			return nil, fmt.Errorf("rasterize document %d: %w", i+1, err)
		}
		if err := asm.AddCanvas(bm); err != nil {
			return nil, fmt.Errorf("paginate document %d: %w", i+1, err)
		}
	}

	pdf, err := asm.Output()
	if err != nil {
		return nil, err
	}
	g.logger.Info().
		Int("documents", len(docs)).
		Int("pages", asm.PageCount()).
		Msg("assembled pdf")
	return pdf, nil
}
