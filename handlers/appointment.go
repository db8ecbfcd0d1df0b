package handlers

import (
	"context"
	"net/http"
	"strconv"

	"vetassist/models"
	appointmentSvc "vetassist/services/appointment"
	"vetassist/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AppointmentService interface {
	ListBySession(ctx context.Context, sessionID string) ([]models.Appointment, error)
	List(ctx context.Context, status string, page, limit int64) (*appointmentSvc.ListResult, error)
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error)
}

type AppointmentHandler struct {
	Service AppointmentService
	Logger  *zap.Logger
}

// ListBySessionHandler handles GET /api/appointments/session/:sessionId.
func (h *AppointmentHandler) ListBySessionHandler(c *gin.Context) {
	appts, err := h.Service.ListBySession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, h.Logger, err, "Failed to fetch appointments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// ListHandler handles GET /api/appointments?status=&page=&limit=.
func (h *AppointmentHandler) ListHandler(c *gin.Context) {
	page := queryInt(c, "page", appointmentSvc.DefaultPage)
	limit := queryInt(c, "limit", appointmentSvc.DefaultLimit)

	res, err := h.Service.List(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to fetch appointments")
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateStatusHandler handles PATCH /api/appointments/:id/status.
func (h *AppointmentHandler) UpdateStatusHandler(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}

	appt, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to update appointment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// queryInt reads a positive integer query parameter, or def when absent or malformed.
func queryInt(c *gin.Context, key string, def int64) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil || v < 1 {
		return def
	}
	return v
}
