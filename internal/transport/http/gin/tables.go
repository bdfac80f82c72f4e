package httpgin

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/tablebook/internal/clock"
	"github.com/kirinyoku/tablebook/internal/domain"
	"github.com/kirinyoku/tablebook/internal/service"
)

// @Summary  List tables
// @Success  200  {array}  domain.Table
// @Router   /tables [get]
func handleListTables(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		tables, err := svcs.Query.ListTables(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		if tables == nil {
			tables = []domain.Table{}
		}

		writeJSONWithCache(c, http.StatusOK, tables, "public, max-age=60", true)
	}
}

// @Summary  Table availability for a time slot
// @Param    date            query  string  true   "YYYY-MM-DD"
// @Param    start           query  string  true   "H:MM"
// @Param    start_meridiem  query  string  false  "AM|PM (or inline in start)"
// @Param    end             query  string  true   "H:MM"
// @Param    end_meridiem    query  string  false  "AM|PM (or inline in end)"
// @Success  200  {array}   domain.TableStatus
// @Failure  400  {object}  ErrorResponse
// @Failure  422  {object}  ErrorResponse
// @Router   /tables/availability [get]
func handleTableAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		date, err := time.Parse(domain.DateLayout, strings.TrimSpace(c.Query("date")))
		if err != nil {
			badRequest(c, "invalid date (YYYY-MM-DD)")
			return
		}

		start, ok := parseSlotTime(c.Query("start"), c.Query("start_meridiem"))
		if !ok {
			badRequest(c, "invalid start")
			return
		}

		end, ok := parseSlotTime(c.Query("end"), c.Query("end_meridiem"))
		if !ok {
			badRequest(c, "invalid end")
			return
		}

		out, err := svcs.Query.TableAvailability(c.Request.Context(), date, start, end)
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=15", true)
	}
}

// @Summary  Create table
// @Param    req body  CreateTableRequest true "payload"
// @Success  201 {object} domain.Table
// @Failure  409 {object} ErrorResponse
// @Router   /admin/tables [post]
func handleCreateTable(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTableRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		t, err := svcs.Admin.CreateTable(c.Request.Context(), domain.Table{
			ID:    req.Number,
			Seats: req.Seats,
			Area:  req.Area,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, t)
	}
}

// @Summary  Live-typing time display
// @Param    digits  query  string  true  "digits typed so far"
// @Success  200  {object}  TimeResponse
// @Router   /time/live [get]
func handleTimeLive() gin.HandlerFunc {
	return func(c *gin.Context) {
		in := c.Query("digits")
		display := clock.Live(in)

		resp := TimeResponse{Input: in, Display: display}
		if _, minute, found := strings.Cut(display, ":"); found && len(minute) == 2 {
			resp.Normalized, resp.Valid = clock.Normalize(display)
		}

		c.JSON(http.StatusOK, resp)
	}
}

// @Summary  Normalize a typed time to H:MM
// @Param    text  query  string  true  "time as typed"
// @Success  200  {object}  TimeResponse
// @Failure  422  {object}  TimeResponse
// @Router   /time/normalize [get]
func handleTimeNormalize() gin.HandlerFunc {
	return func(c *gin.Context) {
		in := c.Query("text")

		n, ok := clock.Normalize(in)
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, TimeResponse{Input: in, Display: in})
			return
		}

		c.JSON(http.StatusOK, TimeResponse{Input: in, Display: n, Normalized: n, Valid: true})
	}
}

func parseSlotTime(text, meridiem string) (domain.TimeOfDay, bool) {
	text, meridiem = splitMeridiem(text, meridiem)

	ck, ok := clock.Parse(text)
	if !ok {
		return domain.TimeOfDay{}, false
	}

	m, ok := clock.ParseMeridiem(meridiem)
	if !ok {
		return domain.TimeOfDay{}, false
	}

	return domain.NewTimeOfDay(ck, m), true
}
