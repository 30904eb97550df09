package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brandchat/internal/model"
	"brandchat/internal/service"
)

// ConversationHandler serves DELETE /api/conversations/:id.
type ConversationHandler struct {
	chatSvc *service.ChatService
}

// NewConversationHandler creates the conversation handler.
func NewConversationHandler(chatSvc *service.ChatService) *ConversationHandler {
	return &ConversationHandler{chatSvc: chatSvc}
}

// Delete removes a conversation. Succeeds regardless of prior existence.
func (h *ConversationHandler) Delete(c *gin.Context) {
	convID := c.Param("id")

	if err := h.chatSvc.DeleteConversation(c.Request.Context(), convID); err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Internal server error"))
		return
	}

	c.JSON(http.StatusOK, model.DeleteResponse{
		Status:  model.StatusSuccess,
		Message: "Conversation deleted",
	})
}
