package character

import (
	"net/http"
	"strconv"

	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/gin-gonic/gin"
)

// characterResponse is the list/detail projection with flattened franchise
// names, matching what the admin frontend renders.
type characterResponse struct {
	Character
	FranchiseNames []string `json:"franchiseNames"`
}

func toResponse(ch *Character) characterResponse {
	return characterResponse{Character: *ch, FranchiseNames: ch.FranchiseNames()}
}

// CreateHandler handles POST /characters (admin).
func CreateHandler(c *gin.Context) {
	var input CreateCharacterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid request body: %v", err))
		return
	}
	ch, err := Create(input)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(ch))
}

// ListHandler handles GET /characters.
func ListHandler(c *gin.Context) {
	chars, err := FindAll()
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	out := make([]characterResponse, 0, len(chars))
	for i := range chars {
		out = append(out, toResponse(&chars[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetHandler handles GET /characters/:id.
func GetHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	ch, err := FindByID(id)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(ch))
}

// UpdateHandler handles PATCH /characters/:id (admin).
func UpdateHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	var input UpdateCharacterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid request body: %v", err))
		return
	}
	ch, err := Update(id, input)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(ch))
}

// ReplaceImageHandler handles PUT /characters/:id/image (admin).
func ReplaceImageHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	var body struct {
		ImageURL1 string `json:"imageUrl1" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid request body: %v", err))
		return
	}
	ch, err := ReplaceImage(id, body.ImageURL1)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(ch))
}

// DeleteImageHandler handles DELETE /characters/:id/image (admin).
func DeleteImageHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	ch, err := DeleteImage(id)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(ch))
}

// DeleteHandler handles DELETE /characters/:id (admin).
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
