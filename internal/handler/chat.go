package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"brandchat/internal/config"
	"brandchat/internal/model"
	"brandchat/internal/service"
)

// ChatHandler serves POST /api/chat.
type ChatHandler struct {
	chatSvc *service.ChatService
	chatCfg *config.ChatConfig
}

// NewChatHandler creates the chat handler.
func NewChatHandler(chatSvc *service.ChatService, chatCfg *config.ChatConfig) *ChatHandler {
	return &ChatHandler{
		chatSvc: chatSvc,
		chatCfg: chatCfg,
	}
}

// Chat handles one chat turn. Validation happens before any store mutation
// or upstream call.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Message is required"))
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Message is required"))
		return
	}
	if len(req.Message) > h.chatCfg.MaxMessageLength {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Message exceeds maximum length"))
		return
	}

	result, err := h.chatSvc.Chat(c.Request.Context(), req.ConversationID, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrUpstream) {
			c.JSON(http.StatusServiceUnavailable, model.NewErrorResponse("AI service unavailable"))
			return
		}
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Internal server error"))
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{
		Response:       result.Reply,
		ConversationID: result.ConversationID,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Status:         model.StatusSuccess,
	})
}
