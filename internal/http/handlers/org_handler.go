package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vulntrack/internal/models"
	"vulntrack/internal/store"
)

// CreateOrg creates an organization in the active state.
func CreateOrg(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "validation", err.Error())
			return
		}

		org := models.Organization{Name: strings.TrimSpace(input.Name)}
		if err := st.Orgs.Create(c.Request.Context(), &org); err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"organization": org})
	}
}

// ListActiveOrgs and ListArchivedOrgs are disjoint partitions on the
// organization's own archived flag.
func ListActiveOrgs(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orgs, err := st.Orgs.ListActive(c.Request.Context())
		if err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"organizations": orgs})
	}
}

func ListArchivedOrgs(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orgs, err := st.Orgs.ListArchived(c.Request.Context())
		if err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"organizations": orgs})
	}
}

func GetOrg(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		org, err := st.Orgs.ByID(c.Request.Context(), id)
		if err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"organization": org})
	}
}

func UpdateOrg(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		var input struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			fail(c, http.StatusBadRequest, "validation", err.Error())
			return
		}

		org := models.Organization{ID: id, Name: strings.TrimSpace(input.Name)}
		if err := st.Orgs.Update(c.Request.Context(), &org); err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"organization": org})
	}
}

// ArchiveOrg soft-deletes the organization only; child assets keep their
// own archived flags.
func ArchiveOrg(st *store.Store) gin.HandlerFunc {
	return setOrgArchived(st, true)
}

func ActivateOrg(st *store.Store) gin.HandlerFunc {
	return setOrgArchived(st, false)
}

func setOrgArchived(st *store.Store, archived bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		if err := st.Orgs.SetArchived(c.Request.Context(), id, archived); err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "archived": archived})
	}
}
