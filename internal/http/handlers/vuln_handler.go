package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"vulntrack/internal/jira"
	"vulntrack/internal/models"
	"vulntrack/internal/store"
)

// CreateVuln records a finding under an assessment.
func CreateVuln(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			AssessmentID int64             `json:"assessmentId" binding:"required"`
			Name         string            `json:"name" binding:"required"`
			Severity     models.Severity   `json:"severity"`
			Status       models.VulnStatus `json:"status"`
			Description  string            `json:"description"`
			Remediation  string            `json:"remediation"`
			Evidence     datatypes.JSON    `json:"evidence"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "validation", err.Error())
			return
		}
		if input.Severity == "" {
			input.Severity = models.SeverityInformational
		}
		if input.Status == "" {
			input.Status = models.VulnOpen
		}

		v := models.Vulnerability{
			AssessmentID: input.AssessmentID,
			Name:         strings.TrimSpace(input.Name),
			Severity:     input.Severity,
			Status:       input.Status,
			Description:  input.Description,
			Remediation:  input.Remediation,
			Evidence:     input.Evidence,
		}
		if err := st.Vulns.Create(c.Request.Context(), &v); err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"vulnerability": v})
	}
}

func GetVuln(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "vulnId")
		if !ok {
			return
		}
		v, err := st.Vulns.ByID(c.Request.Context(), id)
		if err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"vulnerability": v})
	}
}

// PatchVuln updates mutable finding fields. The assessment edge is fixed.
func PatchVuln(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "vulnId")
		if !ok {
			return
		}
		var input struct {
			Name        *string            `json:"name"`
			Severity    *models.Severity   `json:"severity"`
			Status      *models.VulnStatus `json:"status"`
			Description *string            `json:"description"`
			Remediation *string            `json:"remediation"`
			Evidence    datatypes.JSON     `json:"evidence"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "validation", err.Error())
			return
		}

		v, err := st.Vulns.ByID(c.Request.Context(), id)
		if err != nil {
			storeFail(c, err)
			return
		}
		if input.Name != nil {
			v.Name = strings.TrimSpace(*input.Name)
		}
		if input.Severity != nil {
			v.Severity = *input.Severity
		}
		if input.Status != nil {
			v.Status = *input.Status
		}
		if input.Description != nil {
			v.Description = *input.Description
		}
		if input.Remediation != nil {
			v.Remediation = *input.Remediation
		}
		if input.Evidence != nil {
			v.Evidence = input.Evidence
		}

		if err := st.Vulns.Update(c.Request.Context(), v); err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"vulnerability": v})
	}
}

func DeleteVuln(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "vulnId")
		if !ok {
			return
		}
		if err := st.Vulns.Delete(c.Request.Context(), id); err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "vulnerability deleted"})
	}
}

// ExportVulnToJira creates an external ticket for the finding and stores
// the returned issue key. Upstream failures pass through as 502.
func ExportVulnToJira(st *store.Store, ticketer jira.Ticketer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "vulnId")
		if !ok {
			return
		}
		v, err := st.Vulns.ByID(c.Request.Context(), id)
		if err != nil {
			storeFail(c, err)
			return
		}
		if v.JiraIssueKey != "" {
			c.JSON(http.StatusOK, gin.H{"issueKey": v.JiraIssueKey})
			return
		}

		key, err := ticketer.CreateIssue(c.Request.Context(), jira.Issue{
			Summary:     v.Name,
			Description: fmt.Sprintf("%s\n\nRemediation:\n%s", v.Description, v.Remediation),
			Priority:    jiraPriority(v.Severity),
		})
		if err != nil {
			fail(c, http.StatusBadGateway, "upstream", err.Error())
			return
		}
		if err := st.Vulns.SetJiraKey(c.Request.Context(), id, key); err != nil {
			storeFail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"issueKey": key})
	}
}

func jiraPriority(s models.Severity) string {
	switch s {
	case models.SeverityCritical:
		return "Highest"
	case models.SeverityHigh:
		return "High"
	case models.SeverityMedium:
		return "Medium"
	case models.SeverityLow:
		return "Low"
	default:
		return "Lowest"
	}
}
