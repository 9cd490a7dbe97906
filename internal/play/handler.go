package play

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charadle/charadle-backend/internal/auth/authctx"
	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/charadle/charadle-backend/pkg/gameday"
	"github.com/gin-gonic/gin"
)

// GuestIDHeader carries the opaque guest identity for anonymous players.
const GuestIDHeader = "X-Guest-Id"

// ownerFromContext assembles the caller's identity from the (optional) auth
// context and the guest header. An authenticated user always wins.
func ownerFromContext(c *gin.Context) Owner {
	if userID, ok := authctx.UserID(c); ok {
		return Owner{UserID: &userID}
	}
	if guestID := c.GetHeader(GuestIDHeader); guestID != "" {
		return Owner{GuestID: &guestID}
	}
	return Owner{}
}

// StartHandler handles POST /plays/start.
func StartHandler(c *gin.Context) {
	var body struct {
		ModeConfigID uint   `json:"modeConfigId" binding:"required"`
		Date         string `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid request body: %v", err))
		return
	}

	var day *time.Time
	if body.Date != "" {
		parsed, err := gameday.ParseDay(body.Date)
		if err != nil {
			apperr.Abort(c, apperr.BadRequest("%v", err))
			return
		}
		day = &parsed
	}

	result, err := StartPlay(ownerFromContext(c), body.ModeConfigID, day)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GuessHandler handles POST /plays/:playId/guess.
func GuessHandler(c *gin.Context) {
	playID, err := parsePlayID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	var body struct {
		Guess string `json:"guess" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid request body: %v", err))
		return
	}
	result, err := MakeGuess(ownerFromContext(c), playID, body.Guess)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AttemptsHandler handles GET /plays/:playId/attempts.
func AttemptsHandler(c *gin.Context) {
	playID, err := parsePlayID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	results, err := ListAttempts(ownerFromContext(c), playID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// ProgressHandler handles GET /plays/:playId/progress.
func ProgressHandler(c *gin.Context) {
	playID, err := parsePlayID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	progress, err := Progress(ownerFromContext(c), playID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// ProgressByModeHandler handles GET /plays/progress/:modeConfigId. A caller
// with no play today gets {"started": false} rather than an error, so the
// client can decide whether to offer the start button.
func ProgressByModeHandler(c *gin.Context) {
	raw := c.Param("modeConfigId")
	modeID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid mode id %q", raw))
		return
	}
	progress, err := ProgressByMode(ownerFromContext(c), uint(modeID))
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	if progress == nil {
		c.JSON(http.StatusOK, gin.H{"started": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"started": true, "play": progress})
}

func parsePlayID(c *gin.Context) (uint, error) {
	raw := c.Param("playId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.BadRequest("invalid play id %q", raw)
	}
	return uint(id), nil
}
