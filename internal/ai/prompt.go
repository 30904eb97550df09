package ai

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"brandchat/internal/config"
)

// promptFallback is returned when no prompt is configured and the prompt
// file is missing, so a misconfigured deployment still answers (blandly)
// rather than failing every request.
const promptFallback = "[System prompt not found]"

// LoadSystemPrompt resolves the brand persona prompt: an inline config value
// wins, otherwise the prompt file is read.
func LoadSystemPrompt(cfg *config.ChatConfig) string {
	if strings.TrimSpace(cfg.SystemPrompt) != "" {
		return cfg.SystemPrompt
	}

	data, err := os.ReadFile(cfg.SystemPromptPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.SystemPromptPath).Msg("system prompt file not found, using fallback")
		return promptFallback
	}

	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		log.Warn().Str("path", cfg.SystemPromptPath).Msg("system prompt file is empty, using fallback")
		return promptFallback
	}
	return prompt
}
