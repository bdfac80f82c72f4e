package httpgin

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kirinyoku/tablebook/internal/domain"
	redisrepo "github.com/kirinyoku/tablebook/internal/repository/redis"
	"github.com/kirinyoku/tablebook/internal/service"
)

const maxPageSize = 500

// @Summary  List reservations
// @Param    date   query  string  false  "YYYY-MM-DD"
// @Param    limit  query  int     false  "page size"
// @Param    offset query  int     false  "offset"
// @Success  200  {array}   ReservationResponse
// @Failure  400  {object}  ErrorResponse
// @Router   /reservations [get]
func handleListReservations(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f domain.ReservationFilter

		if s := strings.TrimSpace(c.Query("date")); s != "" {
			d, err := time.Parse(domain.DateLayout, s)
			if err != nil {
				badRequest(c, "invalid date (YYYY-MM-DD)")
				return
			}
			f.Date = &d
		}

		f.Limit = min(parseIntDefault(c.Query("limit"), 100), maxPageSize)
		f.Offset = max(parseIntDefault(c.Query("offset"), 0), 0)

		list, err := svcs.Reservation.List(c.Request.Context(), f)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toReservationResponses(list))
	}
}

// @Summary  Get reservation
// @Param    id  path  string  true  "Reservation ID (uuid)"
// @Success  200  {object}  ReservationResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /reservations/{id} [get]
func handleGetReservation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		r, err := svcs.Reservation.Get(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, toReservationResponse(r), "private, no-cache", true)
	}
}

// @Summary  Create reservation (idempotent)
// @Param    req body  ReservationRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} ReservationResponse
// @Failure  409 {object} ErrorResponse "idem in progress"
// @Failure  422 {object} ValidationErrorResponse
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /reservations [post]
func handleCreateReservation(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemReservation(idemKey)

			state, payload, err := idem.Begin(c.Request.Context(), idemStorageKey)
			if err != nil {
				respondErr(c, err)
				return
			}

			switch state {
			case redisrepo.IdemReplay:
				c.Header("Idempotency-Key", idemKey)
				c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
				return
			case redisrepo.IdemInFlight:
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		r, err := svcs.Reservation.Create(c.Request.Context(), req.Form(), "ip:"+c.ClientIP())
		if err != nil {
			if idemStorageKey != "" {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		resp := toReservationResponse(r)

		if idemStorageKey != "" {
			b, _ := json.Marshal(resp)
			_ = idem.Save(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  Update reservation
// @Param    id  path  string  true  "Reservation ID (uuid)"
// @Param    req body  ReservationRequest true "payload"
// @Success  200 {object} ReservationResponse
// @Failure  404 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "locked"
// @Failure  422 {object} ValidationErrorResponse
// @Router   /reservations/{id} [put]
func handleUpdateReservation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		var req ReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		r, err := svcs.Reservation.Update(c.Request.Context(), id, req.Form(), "ip:"+c.ClientIP())
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toReservationResponse(r))
	}
}

// @Summary  Delete reservation
// @Param    id  path  string  true  "Reservation ID (uuid)"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "locked"
// @Router   /reservations/{id} [delete]
func handleDeleteReservation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		if err := svcs.Reservation.Delete(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary  Advance reservation status
// @Description pending -> confirmed -> completed -> cancelled -> pending
// @Param    id  path  string  true  "Reservation ID (uuid)"
// @Success  200 {object} ReservationResponse
// @Failure  409 {object} ErrorResponse "locked"
// @Router   /reservations/{id}/status/advance [post]
func handleAdvanceStatus(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		r, err := svcs.Reservation.AdvanceStatus(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toReservationResponse(r))
	}
}

// @Summary  Confirm a completed or cancelled reservation (locks it)
// @Param    id  path  string  true  "Reservation ID (uuid)"
// @Success  200 {object} ReservationResponse
// @Failure  409 {object} ErrorResponse "locked"
// @Failure  422 {object} ErrorResponse "not completed or cancelled"
// @Router   /reservations/{id}/status/confirm [post]
func handleConfirmStatus(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		r, err := svcs.Reservation.ConfirmStatus(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toReservationResponse(r))
	}
}

// @Summary  Validate a reservation without saving it
// @Param    id  query  string  false  "Reservation being edited (uuid)"
// @Param    req body  ReservationRequest true "payload"
// @Success  200 {object} ReservationResponse
// @Failure  422 {object} ValidationErrorResponse
// @Router   /reservations/check [post]
func handleCheckReservation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.Nil
		if s := c.Query("id"); s != "" {
			var err error
			if id, err = uuid.Parse(s); err != nil {
				badRequest(c, "invalid id")
				return
			}
		}

		var req ReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		r, err := svcs.Reservation.Check(c.Request.Context(), id, req.Form())
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toReservationResponse(r))
	}
}

// @Summary  Stream reservation changes (SSE)
// @Produce  text/event-stream
// @Success  200
// @Failure  503 {object} ErrorResponse "notices disabled"
// @Router   /reservations/stream [get]
func handleReservationStream(notices *redisrepo.ReservationsPubSub, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if notices == nil {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "change notices are disabled"})
			return
		}

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		ch := make(chan redisrepo.ReservationNotice, 16)
		go func() {
			err := notices.Subscribe(ctx, func(_ context.Context, n redisrepo.ReservationNotice) {
				select {
				case ch <- n:
				default:
					// slow client, drop
				}
			})
			if err != nil && ctx.Err() == nil {
				logger.Warn("reservation stream subscription ended", "error", err)
				cancel()
			}
		}()

		ping := time.NewTicker(25 * time.Second)
		defer ping.Stop()

		c.Header("Cache-Control", "no-cache")
		c.Header("X-Accel-Buffering", "no")

		c.Stream(func(io.Writer) bool {
			select {
			case <-ctx.Done():
				return false
			case n := <-ch:
				c.SSEvent(n.Type, n)
				return true
			case <-ping.C:
				c.SSEvent("ping", gin.H{"ts_unix": time.Now().Unix()})
				return true
			}
		})
	}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
