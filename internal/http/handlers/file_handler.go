package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vulntrack/internal/models"
	"vulntrack/internal/store"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// UploadFile stores a multipart upload and returns its blob id.
func UploadFile(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			fail(c, http.StatusBadRequest, "validation", "missing file field")
			return
		}
		if fh.Size > maxUploadBytes {
			fail(c, http.StatusBadRequest, "validation", "file too large")
			return
		}

		f, err := fh.Open()
		if err != nil {
			fail(c, http.StatusInternalServerError, "internal", err.Error())
			return
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
		if err != nil {
			fail(c, http.StatusInternalServerError, "internal", err.Error())
			return
		}

		stored := models.StoredFile{
			ID:          uuid.NewString(),
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		}
		if err := st.Files.Put(c.Request.Context(), &stored); err != nil {
			storeFail(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": stored.ID, "name": stored.Name})
	}
}

// GetFile streams a stored blob back by id.
func GetFile(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			fail(c, http.StatusBadRequest, "validation", "invalid file id")
			return
		}

		f, err := st.Files.Get(c.Request.Context(), id)
		if err != nil {
			storeFail(c, err)
			return
		}

		contentType := f.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Header("Content-Disposition", `attachment; filename="`+f.Name+`"`)
		c.Data(http.StatusOK, contentType, f.Data)
	}
}
