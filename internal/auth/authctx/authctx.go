// Package authctx holds the authenticated-identity keys stored on the gin
// context, shared between the auth middleware and every handler package.
package authctx

import "github.com/gin-gonic/gin"

const (
	userIDKey = "authUserID"
	emailKey  = "authEmail"
	roleKey   = "authRole"
)

// Set stores the authenticated identity on the request context.
func Set(c *gin.Context, userID uint, email, role string) {
	c.Set(userIDKey, userID)
	c.Set(emailKey, email)
	c.Set(roleKey, role)
}

// UserID returns the authenticated user id, if any.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Email returns the authenticated email, if any.
func Email(c *gin.Context) (string, bool) {
	v, ok := c.Get(emailKey)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}

// Role returns the authenticated role, if any.
func Role(c *gin.Context) (string, bool) {
	v, ok := c.Get(roleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}
