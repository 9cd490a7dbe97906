package selection

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/charadle/charadle-backend/pkg/gameday"
	"github.com/gin-gonic/gin"
)

// selectionView is the public projection of an active selection.
type selectionView struct {
	ModeConfigID uint `json:"modeConfigId"`
	Character    any  `json:"character"`
}

// TodayHandler handles GET /daily-selection. The response maps mode display
// names to their active selection.
func TodayHandler(c *gin.Context) {
	modeID, err := optionalModeID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	sels, err := TodayLatest(modeID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	result := make(map[string]selectionView, len(sels))
	for i := range sels {
		sel := &sels[i]
		result[sel.ModeConfig.Name] = selectionView{
			ModeConfigID: sel.ModeConfigID,
			Character:    sel.Character,
		}
	}
	c.JSON(http.StatusOK, result)
}

// LatestHandler handles GET /daily-selection/latest.
func LatestHandler(c *gin.Context) {
	modeID, err := optionalModeID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	sels, err := TodayLatest(modeID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, sels)
}

// AllTodayHandler handles GET /daily-selection/all-today, returning raw rows
// including superseded redraws.
func AllTodayHandler(c *gin.Context) {
	sels, err := AllTodayRaw()
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, sels)
}

// ByModeHandler handles GET /daily-selection/mode/:modeId.
func ByModeHandler(c *gin.Context) {
	raw := c.Param("modeId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid mode id %q", raw))
		return
	}
	sel, err := LatestByMode(uint(id))
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, selectionView{ModeConfigID: sel.ModeConfigID, Character: sel.Character})
}

// ByDateHandler handles GET /daily-selection/by-date?modeId=&date=.
func ByDateHandler(c *gin.Context) {
	modeRaw := c.Query("modeId")
	modeID, err := strconv.ParseUint(modeRaw, 10, 32)
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid mode id %q", modeRaw))
		return
	}
	day, err := gameday.ParseDay(c.Query("date"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("%v", err))
		return
	}
	sel, err := LatestByDayAndMode(uint(modeID), day)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}

// CalendarHandler handles GET /daily-selection/calendar?modeId=&from=&to=.
func CalendarHandler(c *gin.Context) {
	modeID, err := optionalModeID(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	from := gameday.Today().AddDate(0, -1, 0)
	to := gameday.Today()
	if raw := c.Query("from"); raw != "" {
		if from, err = gameday.ParseDay(raw); err != nil {
			apperr.Abort(c, apperr.BadRequest("%v", err))
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = gameday.ParseDay(raw); err != nil {
			apperr.Abort(c, apperr.BadRequest("%v", err))
			return
		}
	}
	days, err := Calendar(modeID, from, to)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

// ManualHandler handles POST /daily-selection/manual (admin). With a
// characterId it forces that character; otherwise it redraws the mode.
func ManualHandler(c *gin.Context) {
	var body struct {
		ModeConfigID uint  `json:"modeConfigId" binding:"required"`
		CharacterID  *uint `json:"characterId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid request body: %v", err))
		return
	}

	var sel *DailySelection
	var err error
	if body.CharacterID != nil {
		sel, err = ManualSelect(body.ModeConfigID, *body.CharacterID)
	} else {
		sel, err = ManualDraw(body.ModeConfigID)
	}
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, sel)
}

// RepairLatestHandler handles POST /daily-selection/repair-latest (admin).
func RepairLatestHandler(c *gin.Context) {
	var body struct {
		Date   string `json:"date" binding:"required"`
		ModeID *uint  `json:"modeId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid request body: %v", err))
		return
	}
	var day time.Time
	day, err := gameday.ParseDay(body.Date)
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("%v", err))
		return
	}
	if err := RepairLatest(day, body.ModeID); err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"repaired": body.Date})
}

func optionalModeID(c *gin.Context) (*uint, error) {
	raw := c.Query("modeId")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, apperr.BadRequest("invalid mode id %q", raw)
	}
	out := uint(id)
	return &out, nil
}
