package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/suchimauz/salon-availability-engine/internal/config"
	"github.com/suchimauz/salon-availability-engine/internal/core/domain"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/in"
	"github.com/suchimauz/salon-availability-engine/internal/core/services/scheduling_service"
	"github.com/suchimauz/salon-availability-engine/internal/utils"
)

// Причины отказа в пользовательских ответах
const (
	ReasonInPast                = "InPast"
	ReasonOutsideWorkingHours   = "OutsideWorkingHours"
	ReasonConflict              = "Conflict"
	ReasonIncompatibleSelection = "IncompatibleSelection"
)

type SchedulingController struct {
	useCase in.SchedulingUseCase
	cfg     *config.Config
}

func NewSchedulingController(useCase in.SchedulingUseCase, cfg *config.Config) *SchedulingController {
	return &SchedulingController{
		useCase: useCase,
		cfg:     cfg,
	}
}

func (c *SchedulingController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.POST("/availability/check", c.checkSlot)
		api.GET("/availability/slots", c.daySlots)
		api.GET("/availability/grid-range", c.gridRange)

		api.GET("/filters/staff", c.compatibleStaff)
		api.GET("/filters/services", c.compatibleServices)
		api.POST("/filters/reconcile", c.reconcileSelection)

		api.POST("/grid/position", c.gridPosition)

		api.PATCH("/appointments/:id/status", c.changeStatus)
		api.PATCH("/appointments/:id/reschedule", c.reschedule)
	}
}

type CheckSlotRequest struct {
	StaffID string `json:"staffId" binding:"required"`
	Start   string `json:"start" binding:"required"`
	End     string `json:"end" binding:"required"`
}

func (c *SchedulingController) checkSlot(ctx *gin.Context) {
	var req CheckSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID format"})
		return
	}

	start, err := utils.ParseDate(req.Start)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date format"})
		return
	}

	end, err := utils.ParseDate(req.End)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date format"})
		return
	}

	if !start.Before(end) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "start must be before end"})
		return
	}

	query := domain.AvailabilityQuery{
		StaffID:        staffID,
		CandidateStart: start,
		CandidateEnd:   end,
	}

	checkErr := c.useCase.CheckSlot(ctx.Request.Context(), query)
	if checkErr == nil {
		ctx.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	// Ожидаемые отказы - не ошибки HTTP, форма показывает их пользователю
	var conflictErr *domain.ConflictError
	switch {
	case errors.Is(checkErr, domain.ErrSlotInPast):
		ctx.JSON(http.StatusOK, gin.H{"ok": false, "reason": ReasonInPast})
	case errors.Is(checkErr, domain.ErrOutsideWorkingHours):
		ctx.JSON(http.StatusOK, gin.H{"ok": false, "reason": ReasonOutsideWorkingHours})
	case errors.As(checkErr, &conflictErr):
		ctx.JSON(http.StatusOK, gin.H{
			"ok":       false,
			"reason":   ReasonConflict,
			"conflict": conflictErr.Conflicting,
		})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": checkErr.Error()})
	}
}

func (c *SchedulingController) daySlots(ctx *gin.Context) {
	day, err := utils.ParseDate(ctx.Query("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	durationMinutes := c.cfg.Grid.IntervalMinutes
	if raw := ctx.Query("durationMinutes"); raw != "" {
		parsed, err := parsePositiveInt(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid durationMinutes"})
			return
		}
		durationMinutes = parsed
	}

	staffIDs, err := parseUUIDList(ctx.QueryArray("staffIds"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID format"})
		return
	}

	slots, debug, err := c.useCase.DaySlots(ctx.Request.Context(), day, durationMinutes, staffIDs)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"date":  day.Format("2006-01-02"),
		"slots": slots,
		"debug": debug,
	})
}

func (c *SchedulingController) gridRange(ctx *gin.Context) {
	gridRange, err := c.useCase.GridRange(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gridRange)
}

func (c *SchedulingController) compatibleStaff(ctx *gin.Context) {
	serviceIDs, err := parseUUIDList(ctx.QueryArray("serviceIds"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID format"})
		return
	}

	staff, err := c.useCase.CompatibleStaff(ctx.Request.Context(), serviceIDs, ctx.Query("language"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"staff": staff})
}

func (c *SchedulingController) compatibleServices(ctx *gin.Context) {
	staffIDs, err := parseUUIDList(ctx.QueryArray("staffIds"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID format"})
		return
	}

	services, err := c.useCase.CompatibleServices(ctx.Request.Context(), staffIDs)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"services": services})
}

func (c *SchedulingController) reconcileSelection(ctx *gin.Context) {
	var selection domain.Selection
	if err := ctx.ShouldBindJSON(&selection); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reconciled, err := c.useCase.ReconcileSelection(ctx.Request.Context(), selection)
	if errors.Is(err, domain.ErrIncompatibleSelection) {
		// Результат сверки отдаем вместе с причиной: форма сбросит выбор
		ctx.JSON(http.StatusOK, gin.H{
			"ok":        false,
			"reason":    ReasonIncompatibleSelection,
			"selection": reconciled,
		})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "selection": reconciled})
}

type GridPositionRequest struct {
	Start             string  `json:"start" binding:"required"`
	End               string  `json:"end" binding:"required"`
	DayRangeStart     string  `json:"dayRangeStart" binding:"required"`
	IntervalMinutes   int     `json:"intervalMinutes" binding:"required,gt=0"`
	PixelsPerInterval float64 `json:"pixelsPerInterval" binding:"required,gt=0"`
}

func (c *SchedulingController) gridPosition(ctx *gin.Context) {
	var req GridPositionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := utils.ParseDate(req.Start)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date format"})
		return
	}

	end, err := utils.ParseDate(req.End)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date format"})
		return
	}

	dayRangeStart, err := utils.ParseDate(req.DayRangeStart)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dayRangeStart date format"})
		return
	}

	if !start.Before(end) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "start must be before end"})
		return
	}
	if start.Before(dayRangeStart) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "start must not be before dayRangeStart"})
		return
	}

	window := domain.TimeWindow{Start: start, End: end}
	position := scheduling_service.PositionOf(window, dayRangeStart, req.IntervalMinutes, req.PixelsPerInterval)

	ctx.JSON(http.StatusOK, position)
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (c *SchedulingController) changeStatus(ctx *gin.Context) {
	appointmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID format"})
		return
	}

	var req ChangeStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment, err := c.useCase.ChangeStatus(ctx.Request.Context(), appointmentID, domain.AppointmentStatus(req.Status))
	if err != nil {
		c.renderCommandError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"appointment": appointment})
}

type RescheduleRequest struct {
	Start   string `json:"start" binding:"required"`
	StaffID string `json:"staffId"`
}

func (c *SchedulingController) reschedule(ctx *gin.Context) {
	appointmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID format"})
		return
	}

	var req RescheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newStart, err := utils.ParseDate(req.Start)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date format"})
		return
	}

	var newStaffID *uuid.UUID
	if req.StaffID != "" {
		parsed, err := uuid.Parse(req.StaffID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID format"})
			return
		}
		newStaffID = &parsed
	}

	appointment, err := c.useCase.Reschedule(ctx.Request.Context(), appointmentID, newStart, newStaffID)
	if err != nil {
		c.renderCommandError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"appointment": appointment})
}

// renderCommandError переводит доменные ошибки команд в HTTP-ответы
func (c *SchedulingController) renderCommandError(ctx *gin.Context, err error) {
	var conflictErr *domain.ConflictError
	switch {
	case errors.Is(err, domain.ErrAppointmentNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
	case errors.Is(err, domain.ErrTerminalStatus):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Appointment status is terminal"})
	case errors.Is(err, domain.ErrUnknownStatus):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown appointment status"})
	case errors.Is(err, domain.ErrSlotInPast):
		ctx.JSON(http.StatusConflict, gin.H{"reason": ReasonInPast})
	case errors.Is(err, domain.ErrOutsideWorkingHours):
		ctx.JSON(http.StatusConflict, gin.H{"reason": ReasonOutsideWorkingHours})
	case errors.As(err, &conflictErr):
		ctx.JSON(http.StatusConflict, gin.H{
			"reason":   ReasonConflict,
			"conflict": conflictErr.Conflicting,
		})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (c *SchedulingController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}

func parseUUIDList(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		if s == "" {
			continue
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parsePositiveInt(raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, errors.New("value must be positive")
	}
	return value, nil
}
