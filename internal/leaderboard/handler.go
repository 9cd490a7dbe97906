package leaderboard

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/charadle/charadle-backend/pkg/gameday"
	"github.com/gin-gonic/gin"
)

// scopeFromQuery resolves the optional ?date= and ?modeId= parameters into a
// scope key for the given period, defaulting to the current day/week.
func scopeFromQuery(c *gin.Context, period Period) (string, uint, error) {
	anchor := time.Now()
	if raw := c.Query("date"); raw != "" {
		day, err := gameday.ParseDay(raw)
		if err != nil {
			return "", 0, apperr.BadRequest("invalid date, expected YYYY-MM-DD")
		}
		anchor = day
	}

	var key string
	switch period {
	case PeriodDaily:
		key = DailyKey(anchor)
	case PeriodWeekly:
		key = WeeklyKey(anchor)
	case PeriodAllTime:
		key = ""
	}

	var modeID uint
	if raw := c.Query("modeId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return "", 0, apperr.BadRequest("invalid modeId")
		}
		modeID = uint(parsed)
	}
	return key, modeID, nil
}

func serveScope(c *gin.Context, period Period) {
	key, modeID, err := scopeFromQuery(c, period)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	entries, err := GetScope(period, key, modeID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"period":    period,
		"periodKey": key,
		"modeId":    modeID,
		"entries":   entries,
	})
}

func rebuildScope(c *gin.Context, period Period) {
	key, modeID, err := scopeFromQuery(c, period)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	if err := Rebuild(period, key, modeID); err != nil {
		apperr.Abort(c, err)
		return
	}
	entries, err := GetScope(period, key, modeID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"period":    period,
		"periodKey": key,
		"modeId":    modeID,
		"entries":   entries,
	})
}

// DailyHandler handles GET /api/leaderboard/daily
func DailyHandler(c *gin.Context) { serveScope(c, PeriodDaily) }

// WeeklyHandler handles GET /api/leaderboard/weekly
func WeeklyHandler(c *gin.Context) { serveScope(c, PeriodWeekly) }

// LifetimeHandler handles GET /api/leaderboard/lifetime
func LifetimeHandler(c *gin.Context) { serveScope(c, PeriodAllTime) }

// RebuildDailyHandler handles POST /api/leaderboard/rebuild/daily
func RebuildDailyHandler(c *gin.Context) { rebuildScope(c, PeriodDaily) }

// RebuildWeeklyHandler handles POST /api/leaderboard/rebuild/weekly
func RebuildWeeklyHandler(c *gin.Context) { rebuildScope(c, PeriodWeekly) }

// RebuildLifetimeHandler handles POST /api/leaderboard/rebuild/lifetime
func RebuildLifetimeHandler(c *gin.Context) { rebuildScope(c, PeriodAllTime) }
