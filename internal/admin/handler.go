package admin

import (
	"net/http"
	"time"

	"github.com/charadle/charadle-backend/pkg/apperr"
	"github.com/charadle/charadle-backend/pkg/gameday"
	"github.com/gin-gonic/gin"
)

// KPIHandler handles GET /api/admin/kpis?date=
func KPIHandler(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := gameday.ParseDay(raw)
		if err != nil {
			apperr.Abort(c, apperr.BadRequest("invalid date, expected YYYY-MM-DD"))
			return
		}
		day = parsed
	}
	report, err := BuildKPIs(day)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
