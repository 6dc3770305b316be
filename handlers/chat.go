// File: handlers/chat.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tavola/services/chat"
	"tavola/utils"
)

// ChatHandler serves the chatbot widget's message endpoint.
type ChatHandler struct {
	Chat   chat.Service
	Logger *zap.Logger
}

func NewChatHandler(svc chat.Service, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Chat: svc, Logger: logger}
}

func (h *ChatHandler) ChatMessageHandler(c *gin.Context) {
	var input struct {
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ValidationError", "details": "message is required"})
		return
	}
	if input.SessionID == "" {
		input.SessionID = uuid.New().String()
	}

	reply, err := h.Chat.Respond(c.Request.Context(), input.SessionID, input.Message)
	if err != nil {
		h.Logger.Error("chat responder failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "StorageError", "could not process the message")
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": reply, "sessionId": input.SessionID})
}
