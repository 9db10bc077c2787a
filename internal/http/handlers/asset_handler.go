package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vulntrack/internal/models"
	"vulntrack/internal/store"
)

// CreateAsset creates an asset under an organization. The ownership edge
// is fixed at creation; the org must exist.
func CreateAsset(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID, ok := paramID(c, "id")
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

		if _, err := st.Orgs.ByID(c.Request.Context(), orgID); err != nil {
			storeFail(c, err)
			return
		}

		asset := models.Asset{OrgID: orgID, Name: strings.TrimSpace(input.Name)}
		if err := st.Assets.Create(c.Request.Context(), &asset); err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"asset": asset})
	}
}

func ListOrgAssets(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID, ok := paramID(c, "id")
		if !ok {
			return
		}
		assets, err := st.Assets.ListActive(c.Request.Context(), orgID)
		if err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"assets": assets})
	}
}

func ListArchivedOrgAssets(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID, ok := paramID(c, "id")
		if !ok {
			return
		}
		assets, err := st.Assets.ListArchived(c.Request.Context(), orgID)
		if err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"assets": assets})
	}
}

// GetAsset looks the asset up scoped by its owning org; an asset reached
// through the wrong org id is a 404, never a leak.
func GetAsset(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID, ok := paramID(c, "id")
		if !ok {
			return
		}
		assetID, ok := paramID(c, "assetId")
		if !ok {
			return
		}
		asset, err := st.Assets.ByID(c.Request.Context(), orgID, assetID)
		if err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"asset": asset})
	}
}

func UpdateAsset(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID, ok := paramID(c, "id")
		if !ok {
			return
		}
		assetID, ok := paramID(c, "assetId")
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

		asset := models.Asset{ID: assetID, OrgID: orgID, Name: strings.TrimSpace(input.Name)}
		if err := st.Assets.Update(c.Request.Context(), &asset); err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"asset": asset})
	}
}

func ArchiveAsset(st *store.Store) gin.HandlerFunc {
	return setAssetArchived(st, true)
}

func ActivateAsset(st *store.Store) gin.HandlerFunc {
	return setAssetArchived(st, false)
}

func setAssetArchived(st *store.Store, archived bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		assetID, ok := paramID(c, "assetId")
		if !ok {
			return
		}
		if err := st.Assets.SetArchived(c.Request.Context(), assetID, archived); err != nil {
			storeFail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": assetID, "archived": archived})
	}
}
