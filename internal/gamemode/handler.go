package gamemode

import (
	"net/http"
	"strconv"

	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/gin-gonic/gin"
)

// CreateModeHandler handles POST /game-modes (admin).
func CreateModeHandler(c *gin.Context) {
	var input CreateModeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid request body: %v", err))
		return
	}
	mode, err := CreateMode(input)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, mode)
}

// ListModesHandler handles GET /game-modes.
func ListModesHandler(c *gin.Context) {
	modes, err := FindAll()
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, modes)
}

// GetModeHandler handles GET /game-modes/:id.
func GetModeHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	mode, err := FindByID(id)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, mode)
}

// UpdateModeHandler handles PATCH /game-modes/:id (admin).
func UpdateModeHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	var input UpdateModeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid request body: %v", err))
		return
	}
	mode, err := UpdateMode(id, input)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, mode)
}

// DeleteModeHandler handles DELETE /game-modes/:id (admin).
func DeleteModeHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	if err := DeleteMode(id); err != nil {
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
