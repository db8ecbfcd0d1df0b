package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"vetassist/models"
	"vetassist/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatService is the conversation router behind the chat endpoints.
type ChatService interface {
	CreateSession(ctx context.Context, req models.CreateSessionRequest) (*models.CreateSessionResponse, error)
	SendMessage(ctx context.Context, sessionID, message string) (*models.SendMessageResponse, error)
	GetHistory(ctx context.Context, sessionID string) (*models.HistoryResponse, error)
}

type ChatHandler struct {
	Service ChatService
	Logger  *zap.Logger
}

// CreateSessionHandler handles POST /api/chat/session.
func (h *ChatHandler) CreateSessionHandler(c *gin.Context) {
	var req models.CreateSessionRequest
	// The body is optional.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.CreateSession(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err, "Failed to create session")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SendMessageHandler handles POST /api/chat/message.
func (h *ChatHandler) SendMessageHandler(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "sessionId and message are required")
		return
	}

	resp, err := h.Service.SendMessage(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		respondError(c, h.Logger.With(zap.String("sessionId", req.SessionID)), err, "Failed to process message")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetHistoryHandler handles GET /api/chat/history/:sessionId.
func (h *ChatHandler) GetHistoryHandler(c *gin.Context) {
	sessionID := c.Param("sessionId")
	resp, err := h.Service.GetHistory(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, h.Logger.With(zap.String("sessionId", sessionID)), err, "Failed to get history")
		return
	}
	c.JSON(http.StatusOK, resp)
}
