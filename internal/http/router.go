package httpserver

import (
	"github.com/gin-gonic/gin"

	"vulntrack/internal/auth"
	"vulntrack/internal/http/handlers"
	"vulntrack/internal/jira"
	"vulntrack/internal/report"
	"vulntrack/internal/store"
	"vulntrack/internal/token"
)

// NewRouter builds the full route table at startup. Everything under
// /api except registration, verification, login, refresh and the
// password flows requires a bearer token.
func NewRouter(st *store.Store, tokens *token.Service, ticketer jira.Ticketer, renderer report.Renderer) *gin.Engine {
	r := gin.Default()

	// Public routes
	r.POST("/api/user/register", handlers.RegisterUser(st, tokens))
	r.GET("/api/user/verify/:token", handlers.VerifyUser(st, tokens))
	r.POST("/api/login", handlers.LoginHandler(st, tokens))
	r.POST("/api/refresh", handlers.RefreshHandler(st, tokens))
	r.PATCH("/api/forgot-password", handlers.ForgotPasswordHandler(st, tokens))
	r.PATCH("/api/password-reset", handlers.ResetPasswordHandler(st, tokens))
	r.PATCH("/api/user/password", handlers.UpdatePassword(st))

	api := r.Group("/api", auth.Bearer(tokens))
	{
		// Users
		api.GET("/user", handlers.GetCurrentUser(st))
		api.GET("/users", handlers.ListUsers(st))
		api.PATCH("/user", handlers.PatchUser(st))
		api.POST("/user/invite", handlers.InviteUser(st, tokens))

		// Organizations
		api.POST("/organization", handlers.CreateOrg(st))
		api.GET("/organization", handlers.ListActiveOrgs(st))
		api.GET("/organization/archive", handlers.ListArchivedOrgs(st))
		api.GET("/organization/:id", handlers.GetOrg(st))
		api.PATCH("/organization/:id", handlers.UpdateOrg(st))
		api.PATCH("/organization/:id/archive", handlers.ArchiveOrg(st))
		api.PATCH("/organization/:id/activate", handlers.ActivateOrg(st))

		// Assets
		api.POST("/organization/:id/asset", handlers.CreateAsset(st))
		api.GET("/organization/:id/asset", handlers.ListOrgAssets(st))
		api.GET("/organization/:id/asset/archive", handlers.ListArchivedOrgAssets(st))
		api.GET("/organization/:id/asset/:assetId", handlers.GetAsset(st))
		api.PATCH("/organization/:id/asset/:assetId", handlers.UpdateAsset(st))
		api.PATCH("/asset/archive/:assetId", handlers.ArchiveAsset(st))
		api.PATCH("/asset/activate/:assetId", handlers.ActivateAsset(st))

		// Assessments
		api.POST("/assessment", handlers.CreateAssessment(st))
		api.GET("/assessment/:id", handlers.ListAssetAssessments(st))
		api.GET("/assessment/:id/vulnerability", handlers.ListAssessmentVulns(st))
		api.GET("/asset/:assetId/assessment/:assessmentId", handlers.GetAssessment(st))
		api.PATCH("/asset/:assetId/assessment/:assessmentId", handlers.UpdateAssessment(st))
		api.DELETE("/assessment/:id", handlers.DeleteAssessment(st))
		api.GET("/assessment/:id/report", handlers.AssessmentReportData(st))

		// Vulnerabilities
		api.POST("/vulnerability", handlers.CreateVuln(st))
		api.GET("/vulnerability/:vulnId", handlers.GetVuln(st))
		api.PATCH("/vulnerability/:vulnId", handlers.PatchVuln(st))
		api.DELETE("/vulnerability/:vulnId", handlers.DeleteVuln(st))
		api.GET("/vulnerability/jira/:vulnId", handlers.ExportVulnToJira(st, ticketer))

		// Reports & files
		api.POST("/report/generate", handlers.GenerateReport(st, renderer))
		api.POST("/upload", handlers.UploadFile(st))
		api.GET("/file/:id", handlers.GetFile(st))
	}

	return r
}
