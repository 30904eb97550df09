package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brandchat/internal/config"
	"brandchat/internal/model"
)

// ConfigHandler serves GET /api/config with static frontend settings.
type ConfigHandler struct {
	chatCfg *config.ChatConfig
}

// NewConfigHandler creates the config handler.
func NewConfigHandler(chatCfg *config.ChatConfig) *ConfigHandler {
	return &ConfigHandler{chatCfg: chatCfg}
}

// Config returns the values the web widget needs at load time.
func (h *ConfigHandler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, model.ConfigResponse{
		MaxMessageLength: h.chatCfg.MaxMessageLength,
		TypingDelay:      h.chatCfg.TypingDelay,
		BrandName:        h.chatCfg.BrandName,
		WelcomeMessage:   h.chatCfg.WelcomeMessage,
	})
}
