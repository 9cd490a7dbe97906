package franchise

import (
	"net/http"
	"strconv"

	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/gin-gonic/gin"
)

// CreateHandler handles POST /franchises (admin).
func CreateHandler(c *gin.Context) {
	var input CreateFranchiseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid request body: %v", err))
		return
	}
	f, err := Create(input)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// ListHandler handles GET /franchises.
func ListHandler(c *gin.Context) {
	franchises, err := FindAll()
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, franchises)
}

// GetHandler handles GET /franchises/:id.
func GetHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	f, err := FindByID(id)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// UpdateHandler handles PATCH /franchises/:id (admin).
func UpdateHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	var input UpdateFranchiseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid request body: %v", err))
		return
	}
	f, err := Update(id, input)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// DeleteHandler handles DELETE /franchises/:id (admin).
func DeleteHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	if err := Delete(id); err != nil {
		apperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.BadRequest("invalid id %q", raw)
	}
	return uint(id), nil
}
