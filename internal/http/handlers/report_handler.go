package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vulntrack/internal/report"
	"vulntrack/internal/store"
)

// buildReportData walks the ancestry of an assessment and collects its
// findings into one renderable snapshot.
func buildReportData(c *gin.Context, st *store.Store, assessmentID int64) (*report.Data, bool) {
	ctx := c.Request.Context()

	assessment, err := st.Assessments.Get(ctx, assessmentID)
	if err != nil {
		storeFail(c, err)
		return nil, false
	}
	asset, err := st.Assets.Get(ctx, assessment.AssetID)
	if err != nil {
		storeFail(c, err)
		return nil, false
	}
	org, err := st.Orgs.ByID(ctx, asset.OrgID)
	if err != nil {
		storeFail(c, err)
		return nil, false
	}
	findings, err := st.Vulns.ListByAssessment(ctx, assessmentID)
	if err != nil {
		storeFail(c, err)
		return nil, false
	}

	return &report.Data{
		Organization: *org,
		Asset:        *asset,
		Assessment:   *assessment,
		Findings:     findings,
		GeneratedAt:  time.Now().UTC(),
	}, true
}

// AssessmentReportData returns the raw snapshot a report is built from.
func AssessmentReportData(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		data, ok := buildReportData(c, st, id)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"report": data})
	}
}

// GenerateReport renders the snapshot to a PDF through the external
// document service.
func GenerateReport(st *store.Store, renderer report.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			AssessmentID int64 `json:"assessmentId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "validation", err.Error())
			return
		}

		data, ok := buildReportData(c, st, input.AssessmentID)
		if !ok {
			return
		}

		pdf, err := renderer.Render(c.Request.Context(), *data)
		if err != nil {
			fail(c, http.StatusBadGateway, "upstream", err.Error())
			return
		}

		c.Header("Content-Disposition", `attachment; filename="report.pdf"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}
