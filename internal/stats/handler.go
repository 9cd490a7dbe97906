package stats

import (
	"net/http"
	"time"

	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/charadle/charadle-backend/pkg/gameday"
	"github.com/gin-gonic/gin"
)

func dayFromQuery(c *gin.Context, key string, fallback time.Time) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	day, err := gameday.ParseDay(raw)
	if err != nil {
		return time.Time{}, apperr.BadRequest("invalid " + key + ", expected YYYY-MM-DD")
	}
	return day, nil
}

// OverviewHandler handles GET /api/stats/overview?from=&to=
// Defaults to the trailing 30 days.
func OverviewHandler(c *gin.Context) {
	now := time.Now()
	from, err := dayFromQuery(c, "from", now.AddDate(0, 0, -29))
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	to, err := dayFromQuery(c, "to", now)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	rows, err := OverviewRange(from, to)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ModesHandler handles GET /api/stats/modes?date=
func ModesHandler(c *gin.Context) {
	day, err := dayFromQuery(c, "date", time.Now())
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	rows, err := ModeStatsForDay(day)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// SyncHandler handles POST /api/stats/sync?date= for on-demand recompute.
func SyncHandler(c *gin.Context) {
	day, err := dayFromQuery(c, "date", time.Now())
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	if err := SyncDay(day); err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "stats synced", "day": gameday.FormatDay(gameday.Start(day))})
}
