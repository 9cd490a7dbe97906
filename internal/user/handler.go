package user

import (
	"net/http"
	"strconv"

	"github.com/charadle/charadle-backend/internal/auth/authctx"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/gin-gonic/gin"
)

// RegisterHandler handles POST /users (public registration).
func RegisterHandler(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid request body: %v", err))
		return
	}
	safe, err := Create(input)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, safe)
}

// ListHandler handles GET /users (admin).
func ListHandler(c *gin.Context) {
	users, err := FindAll()
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// MeHandler handles GET /users/me.
func MeHandler(c *gin.Context) {
	userID, ok := authctx.UserID(c)
	if !ok {
		apperr.Abort(c, apperr.Unauthorized("authentication required"))
		return
	}
	u, err := FindByID(userID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Sanitize())
}

// GetHandler handles GET /users/:id. Callers may read their own record;
// everything else requires the admin role.
func GetHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	if err := requireSelfOrAdmin(c, id); err != nil {
		apperr.Abort(c, err)
		return
	}
	u, err := FindByID(id)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Sanitize())
}

// UpdateHandler handles PATCH /users/:id, same self-or-admin rule.
func UpdateHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	if err := requireSelfOrAdmin(c, id); err != nil {
		apperr.Abort(c, err)
		return
	}
	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid request body: %v", err))
		return
	}
	safe, err := Update(id, input)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, safe)
}

// DeleteHandler handles DELETE /users/:id (admin).
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

func requireSelfOrAdmin(c *gin.Context, targetID uint) error {
	userID, ok := authctx.UserID(c)
	if !ok {
		return apperr.Unauthorized("authentication required")
	}
	if userID == targetID {
		return nil
	}
	if role, _ := authctx.Role(c); role == RoleAdmin {
		return nil
	}
	return apperr.Forbidden("not allowed to access user %d", targetID)
}

func parseID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.BadRequest("invalid id %q", raw)
	}
	return uint(id), nil
}
