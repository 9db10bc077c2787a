package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"vulntrack/internal/models"
	"vulntrack/internal/store"
)

type assessmentInput struct {
	AssetID   int64      `json:"assetId" binding:"required"`
	Name      string     `json:"name" binding:"required"`
	Executive string     `json:"executiveSummary"`
	Testers   string     `json:"testers"`
	Scope     string     `json:"scope"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// CreateAssessment creates an assessment under an existing asset.
func CreateAssessment(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input assessmentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "validation", err.Error())
			return
		}
		if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
			fail(c, http.StatusBadRequest, "validation", "endDate before startDate")
			return
		}

		a := models.Assessment{
			AssetID:   input.AssetID,
			Name:      strings.TrimSpace(input.Name),
			Executive: input.Executive,
			Testers:   input.Testers,
			Scope:     input.Scope,
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
		}
		if err := st.Assessments.Create(c.Request.Context(), &a); err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"assessment": a})
	}
}

// ListAssetAssessments returns all assessments for an asset.
func ListAssetAssessments(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		assetID, ok := paramID(c, "id")
		if !ok {
			return
		}
		list, err := st.Assessments.ListByAsset(c.Request.Context(), assetID)
		if err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"assessments": list})
	}
}

// GetAssessment fetches an assessment scoped by its owning asset.
func GetAssessment(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		assetID, ok := paramID(c, "assetId")
		if !ok {
			return
		}
		id, ok := paramID(c, "assessmentId")
		if !ok {
			return
		}
		a, err := st.Assessments.ByID(c.Request.Context(), assetID, id)
		if err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"assessment": a})
	}
}

func UpdateAssessment(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		assetID, ok := paramID(c, "assetId")
		if !ok {
			return
		}
		id, ok := paramID(c, "assessmentId")
		if !ok {
			return
		}
		var input struct {
			Name      string     `json:"name" binding:"required"`
			Executive string     `json:"executiveSummary"`
			Testers   string     `json:"testers"`
			Scope     string     `json:"scope"`
			StartDate *time.Time `json:"startDate"`
			EndDate   *time.Time `json:"endDate"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "validation", err.Error())
			return
		}

		a := models.Assessment{
			ID:        id,
			AssetID:   assetID,
			Name:      strings.TrimSpace(input.Name),
			Executive: input.Executive,
			Testers:   input.Testers,
			Scope:     input.Scope,
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
		}
		if err := st.Assessments.Update(c.Request.Context(), &a); err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"assessment": a})
	}
}

// DeleteAssessment cascades: the assessment's vulnerabilities go with it.
func DeleteAssessment(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		if err := st.Assessments.Delete(c.Request.Context(), id); err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "assessment deleted"})
	}
}

// ListAssessmentVulns returns the findings recorded under an assessment.
func ListAssessmentVulns(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		vulns, err := st.Vulns.ListByAssessment(c.Request.Context(), id)
		if err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"vulnerabilities": vulns})
	}
}
