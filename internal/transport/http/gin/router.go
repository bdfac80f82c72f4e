package httpgin

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	redisrepo "github.com/kirinyoku/tablebook/internal/repository/redis"
	"github.com/kirinyoku/tablebook/internal/service"
	"github.com/kirinyoku/tablebook/internal/service/admin"
	"github.com/kirinyoku/tablebook/internal/service/query"
	"github.com/kirinyoku/tablebook/internal/service/reservation"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires every HTTP route. idem and notices may be nil when Redis
// is disabled; auth may be nil to leave mutating routes open.
func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	notices *redisrepo.ReservationsPubSub,
	auth gin.HandlerFunc,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggingMiddleware(logger), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	guard := func(c *gin.Context) { c.Next() }
	if auth != nil {
		guard = auth
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	res := r.Group("/reservations")
	{
		res.GET("", handleListReservations(svcs))
		res.GET("/stream", handleReservationStream(notices, logger))
		res.GET("/:id", handleGetReservation(svcs))
		res.POST("/check", handleCheckReservation(svcs))

		res.POST("", guard, handleCreateReservation(svcs, idem))
		res.PUT("/:id", guard, handleUpdateReservation(svcs))
		res.DELETE("/:id", guard, handleDeleteReservation(svcs))
		res.POST("/:id/status/advance", guard, handleAdvanceStatus(svcs))
		res.POST("/:id/status/confirm", guard, handleConfirmStatus(svcs))
	}

	r.GET("/tables", handleListTables(svcs))
	r.GET("/tables/availability", handleTableAvailability(svcs))

	r.GET("/time/live", handleTimeLive())
	r.GET("/time/normalize", handleTimeNormalize())

	adm := r.Group("/admin", guard)
	{
		adm.POST("/tables", handleCreateTable(svcs))
	}

	return r
}

// --- Helpers ---

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var fields reservation.FieldErrors
	if errors.As(err, &fields) {
		c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: fields,
		})
		return
	}

	var rl reservation.RateLimitedError
	if errors.As(err, &rl) {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(rl.RetryAfter.Seconds()))))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many requests"})
		return
	}

	switch {
	// reservation service
	case errors.Is(err, reservation.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "reservation not found"})
	case errors.Is(err, reservation.ErrReservationLocked):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "reservation is locked"})
	case errors.Is(err, reservation.ErrConfirmNotAllowed):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: reservation.ErrConfirmNotAllowed.Error()})
	case errors.Is(err, reservation.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many requests"})
	// query service
	case errors.Is(err, query.ErrInvalidSlot):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: query.ErrInvalidSlot.Error()})
	// admin service
	case errors.Is(err, admin.ErrTableConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "table conflict"})
	case errors.Is(err, admin.ErrInvalidTable):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: admin.ErrInvalidTable.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
