package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vulntrack/internal/store"
)

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": code, "message": message})
}

// storeFail maps repository errors onto the response taxonomy.
func storeFail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		fail(c, http.StatusNotFound, "not_found", "entity not found")
	case errors.Is(err, store.ErrConflict):
		fail(c, http.StatusConflict, "conflict", "entity already exists")
	default:
		fail(c, http.StatusInternalServerError, "internal", err.Error())
	}
}

// paramID parses a numeric path parameter, responding 400 on garbage.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "validation", "invalid "+name)
		return 0, false
	}
	return id, true
}
