package bundle

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/superbill/superbill/internal/document/compose"
	"github.com/superbill/superbill/internal/domain/lettertemplate"
	"github.com/superbill/superbill/internal/domain/superbill"
	"github.com/superbill/superbill/internal/platform/auth"
)

type Handler struct {
	superbills *superbill.Service
	templates  *lettertemplate.Service
	generator  *Generator
}

func NewHandler(superbills *superbill.Service, templates *lettertemplate.Service, generator *Generator) *Handler {
	return &Handler{superbills: superbills, templates: templates, generator: generator}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	group := api.Group("", auth.RequireRole("admin", "biller"))
	group.POST("/superbills/:id/pdf", h.SuperbillPDF)
	group.POST("/submissions/pdf", h.SubmissionPDF)
	group.POST("/submissions/html", h.SubmissionHTML)
}

type pdfRequest struct {
	IncludeCoverLetter bool `json:"include_cover_letter"`
}

type submissionRequest struct {
	IDs                []uuid.UUID `json:"ids"`
	IncludeCoverLetter bool        `json:"include_cover_letter"`
	IncludeCoverSheet  bool        `json:"include_cover_sheet"`
}

// SuperbillPDF generates one patient's superbill, optionally preceded by a
// cover letter.
func (h *Handler) SuperbillPDF(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req pdfRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sb, err := h.superbills.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "superbill not found")
	}

	var coverLetter string
	if req.IncludeCoverLetter {
		coverLetter, err = h.templates.RenderByKind(c.Request().Context(),
			lettertemplate.KindCoverLetterSingle, letterVars([]*superbill.Superbill{sb}))
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	result, err := h.generator.SuperbillPDF(c.Request().Context(), sb, coverLetter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "download failed, please try again")
	}
	return writePDF(c, result)
}

// SubmissionPDF bundles the selected superbills into one grouped package.
func (h *Handler) SubmissionPDF(c echo.Context) error {
	superbills, opts, err := h.prepareSubmission(c)
	if err != nil {
		return err
	}
	result, err := h.generator.GroupedSubmission(c.Request().Context(), superbills, opts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "download failed, please try again")
	}
	return writePDF(c, result)
}

// SubmissionHTML returns the printable HTML for the browser's native print
// dialog; this path never touches the rasterizer.
func (h *Handler) SubmissionHTML(c echo.Context) error {
	superbills, opts, err := h.prepareSubmission(c)
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, h.generator.GroupedSubmissionHTML(superbills, opts))
}

func (h *Handler) prepareSubmission(c echo.Context) ([]*superbill.Superbill, GroupOptions, error) {
	var req submissionRequest
	if err := c.Bind(&req); err != nil {
		return nil, GroupOptions{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.IDs) == 0 {
		return nil, GroupOptions{}, echo.NewHTTPError(http.StatusBadRequest, "ids are required")
	}

	superbills, err := h.superbills.ListByIDs(c.Request().Context(), req.IDs)
	if err != nil {
		return nil, GroupOptions{}, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(superbills) == 0 {
		return nil, GroupOptions{}, echo.NewHTTPError(http.StatusNotFound, "no superbills found")
	}

	opts := GroupOptions{IncludeCoverSheet: req.IncludeCoverSheet}
	if req.IncludeCoverLetter {
		kind := lettertemplate.KindCoverLetterSingle
		if distinctPatients(superbills) > 1 {
			kind = lettertemplate.KindCoverLetterMulti
		}
		opts.CoverLetterHTML, err = h.templates.RenderByKind(c.Request().Context(), kind, letterVars(superbills))
		if err != nil {
			return nil, GroupOptions{}, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return superbills, opts, nil
}

func distinctPatients(superbills []*superbill.Superbill) int {
	names := map[string]struct{}{}
	for _, sb := range superbills {
		names[sb.PatientName] = struct{}{}
	}
	return len(names)
}

// letterVars assembles the interpolation variables for cover letter
// templates from the selected superbills.
func letterVars(superbills []*superbill.Superbill) map[string]string {
	var total float64
	for _, sb := range superbills {
		total += superbill.TotalFee(sb.Visits)
	}
	first := superbills[0]
	return map[string]string{
		"date":          compose.FormatDate(time.Now()),
		"patient_name":  first.PatientName,
		"patient_count": fmt.Sprintf("%d", distinctPatients(superbills)),
		"clinic_name":   first.ClinicName,
		"provider_name": first.ProviderName,
		"total_amount":  fmt.Sprintf("$%.2f", total),
	}
}

func writePDF(c echo.Context, result *Result) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, result.Filename))
	return c.Blob(http.StatusOK, "application/pdf", result.PDF)
}
