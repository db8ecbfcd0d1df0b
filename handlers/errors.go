package handlers

import (
	"errors"
	"net/http"

	appointmentRepo "vetassist/database/repository/appointment"
	sessionRepo "vetassist/database/repository/session"
	appointmentSvc "vetassist/services/appointment"
	"vetassist/services/chat"
	ai "vetassist/services/intelligence"
	"vetassist/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses. fallback is the
// message used for unexpected failures.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, chat.ErrMissingFields):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, appointmentSvc.ErrInvalidStatus):
		utils.JSONError(c, http.StatusBadRequest, "status must be one of pending, confirmed, cancelled")
	case errors.Is(err, sessionRepo.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Session not found")
	case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		utils.JSONError(c, http.StatusNotFound, "Appointment not found")
	case errors.Is(err, chat.ErrSessionBusy):
		utils.JSONError(c, http.StatusConflict, "session is busy")
	case errors.Is(err, sessionRepo.ErrVersionConflict):
		utils.JSONError(c, http.StatusConflict, "session was modified concurrently, please retry")
	case errors.Is(err, ai.ErrGenerationFailed):
		logger.Error("generation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, ai.ErrGenerationFailed.Error())
	default:
		logger.Error(fallback, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, fallback)
	}
}
