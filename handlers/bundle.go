// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Chat endpoints
	CreateSessionHandler gin.HandlerFunc
	SendMessageHandler   gin.HandlerFunc
	GetHistoryHandler    gin.HandlerFunc

	// Appointment endpoints
	ListSessionAppointmentsHandler gin.HandlerFunc
	ListAppointmentsHandler        gin.HandlerFunc
	UpdateAppointmentStatusHandler gin.HandlerFunc

	// Operational endpoints
	HealthHandler  gin.HandlerFunc
	MetricsHandler gin.HandlerFunc
}

// NewHandlerBundle wires the chat and appointment handlers.
func NewHandlerBundle(chat *ChatHandler, appts *AppointmentHandler, health HealthReporter, metrics gin.HandlerFunc) *HandlerBundle {
	return &HandlerBundle{
		CreateSessionHandler:           chat.CreateSessionHandler,
		SendMessageHandler:             chat.SendMessageHandler,
		GetHistoryHandler:              chat.GetHistoryHandler,
		ListSessionAppointmentsHandler: appts.ListBySessionHandler,
		ListAppointmentsHandler:        appts.ListHandler,
		UpdateAppointmentStatusHandler: appts.UpdateStatusHandler,
		HealthHandler:                  HealthHandler(health),
		MetricsHandler:                 metrics,
	}
}
